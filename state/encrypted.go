package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// NewEncrypted returns a codec sealing msgpack payloads with AES-256-GCM,
// encoded as unpadded base64url with the nonce prepended. The state is
// opaque to the client; Decode rejects any modification with ErrDecrypt.
//
// Keys that are not exactly 32 bytes are run through SHA-256 to derive
// the AES-256 key.
func NewEncrypted(key []byte) (Codec, error) {
	if len(key) == 0 {
		return nil, ErrNoKey
	}

	if len(key) != 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("state: cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("state: gcm: %w", err)
	}

	return &encryptedCodec{gcm: gcm}, nil
}

type encryptedCodec struct {
	gcm cipher.AEAD
}

func (c *encryptedCodec) Encode(v any) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("state: marshal: %w", err)
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("state: nonce: %w", err)
	}

	sealed := c.gcm.Seal(nonce, nonce, packed, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *encryptedCodec) Decode(encoded string, v any) error {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrMalformed
	}

	if len(sealed) < c.gcm.NonceSize() {
		return ErrMalformed
	}

	nonce, ciphertext := sealed[:c.gcm.NonceSize()], sealed[c.gcm.NonceSize():]

	packed, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrDecrypt
	}

	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("state: unmarshal: %w", err)
	}

	return nil
}
