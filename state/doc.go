// Package state encodes component state into URL-safe strings that can
// ride inside markup and come back on the next fragment request, without
// server-side sessions.
//
// Values are serialized with msgpack and protected in one of two modes:
//
//   - NewSigned: base64 payload plus an HMAC-SHA256 signature. The state
//     is visible to the client but tamper-evident.
//   - NewEncrypted: AES-256-GCM. The state is opaque and tamper-evident.
//
// A handler encodes state into a hidden input and decodes it back:
//
//	codec, err := state.NewSigned(key)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("state codec")
//	}
//
//	encoded, err := codec.Encode(pagination{Offset: 20})
//
//	var p pagination
//	if err := codec.Decode(r.FormValue("state"), &p); err != nil {
//	    // ErrMalformed, ErrBadSignature, or ErrDecrypt
//	}
//
// Decode failures are checkable with errors.Is: a client that edited the
// payload trips ErrBadSignature or ErrDecrypt, while truncated or
// corrupted input trips ErrMalformed.
package state
