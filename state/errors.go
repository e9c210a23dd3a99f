package state

import "errors"

var (
	// ErrNoKey is returned by the codec constructors when the key is
	// empty.
	ErrNoKey = errors.New("state: key must not be empty")

	// ErrMalformed is returned when encoded input cannot be parsed:
	// missing signature separator, invalid base64, or a ciphertext too
	// short to carry a nonce.
	ErrMalformed = errors.New("state: malformed encoded state")

	// ErrBadSignature is returned by a signed codec when the payload
	// does not match its signature.
	ErrBadSignature = errors.New("state: signature verification failed")

	// ErrDecrypt is returned by an encrypted codec when decryption or
	// authentication fails.
	ErrDecrypt = errors.New("state: decryption failed")
)
