package state

// Codec encodes values to URL-safe strings and back. Implementations
// are safe for concurrent use.
type Codec interface {
	// Encode serializes v into a string safe for attribute values,
	// form fields, and URLs.
	Encode(v any) (string, error)

	// Decode deserializes an encoded string into v, which must be a
	// pointer. It fails with ErrMalformed, ErrBadSignature, or
	// ErrDecrypt before any payload bytes reach the deserializer.
	Decode(encoded string, v any) error
}
