package state

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// signatureSize is the number of HMAC-SHA256 bytes appended to signed
// payloads. 128 bits keeps encodings short while leaving forgery out of
// reach.
const signatureSize = 16

// NewSigned returns a codec producing "payload.signature" encodings:
// the msgpack payload and a truncated HMAC-SHA256 tag, both unpadded
// base64url. The payload is readable by anyone; Decode rejects any
// modification with ErrBadSignature.
//
// Keys of any non-zero length are accepted.
func NewSigned(key []byte) (Codec, error) {
	if len(key) == 0 {
		return nil, ErrNoKey
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &signedCodec{key: k}, nil
}

type signedCodec struct {
	key []byte
}

func (c *signedCodec) Encode(v any) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("state: marshal: %w", err)
	}

	payload := base64.RawURLEncoding.EncodeToString(packed)

	return payload + "." + base64.RawURLEncoding.EncodeToString(c.sum(packed)), nil
}

func (c *signedCodec) Decode(encoded string, v any) error {
	payload, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return ErrMalformed
	}

	packed, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ErrMalformed
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ErrMalformed
	}

	if !hmac.Equal(got, c.sum(packed)) {
		return ErrBadSignature
	}

	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("state: unmarshal: %w", err)
	}

	return nil
}

func (c *signedCodec) sum(packed []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(packed)

	return mac.Sum(nil)[:signatureSize]
}
