package fragment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"rivaas.dev/binding"
)

// DefaultMaxBodyBytes caps how much of a request body Body reads for
// JSON and multipart decoding.
const DefaultMaxBodyBytes = 1 << 20 // 1 MiB

// Body decodes the request body into T, selecting the decoder from the
// Content-Type: application/json (and +json variants), form-urlencoded,
// or multipart/form-data. An absent or empty body yields the zero value
// so optional bodies fall back to struct defaults. Unknown JSON fields
// are rejected.
//
// Decode failures return binding errors that carry an HTTP status, so a
// handler can return them directly and the router writes the right
// response:
//
//	form, err := fragment.Body[CreateComment](c)
//	if err != nil {
//	    return nil, err
//	}
func Body[T any](c *Context, opts ...binding.Option) (T, error) {
	var zero T
	req := c.Request

	if req.Body == nil || req.ContentLength == 0 {
		return zero, nil
	}

	mediaType := ""
	if ct := req.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return zero, &statusError{
				status: http.StatusUnsupportedMediaType,
				msg:    fmt.Sprintf("fragment: malformed content type %q", ct),
			}
		}
		mediaType = mt
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		body, err := readBody(req.Body)
		if err != nil {
			return zero, err
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return zero, nil
		}
		jsonOpts := append([]binding.Option{
			binding.WithUnknownFields(binding.UnknownError),
		}, opts...)
		return binding.JSON[T](body, jsonOpts...)

	case mediaType == "application/x-www-form-urlencoded":
		if err := req.ParseForm(); err != nil {
			return zero, formBodyError(err)
		}
		if len(req.PostForm) == 0 {
			return zero, nil
		}
		return binding.Form[T](req.PostForm, opts...)

	case mediaType == "multipart/form-data":
		if err := req.ParseMultipartForm(DefaultMaxBodyBytes); err != nil {
			return zero, formBodyError(err)
		}
		if req.MultipartForm == nil {
			return zero, nil
		}
		return binding.Multipart[T](req.MultipartForm, opts...)

	case mediaType == "":
		// A body without a declared type: tolerate emptiness, reject
		// the rest.
		body, err := readBody(req.Body)
		if err != nil {
			return zero, err
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return zero, nil
		}
		return zero, ErrUnsupportedMediaType

	default:
		return zero, ErrUnsupportedMediaType
	}
}

// Query binds URL query parameters into T using `query` struct tags.
func Query[T any](c *Context, opts ...binding.Option) (T, error) {
	return binding.Query[T](c.Request.URL.Query(), opts...)
}

// Headers binds request headers into T using `header` struct tags.
func Headers[T any](c *Context, opts ...binding.Option) (T, error) {
	return binding.Header[T](c.Request.Header, opts...)
}

// Params binds the decoded path parameters into T using `path` struct
// tags, converting values to the field types.
func Params[T any](c *Context, opts ...binding.Option) (T, error) {
	return binding.Path[T](c.vars, opts...)
}

// readBody reads the request body up to DefaultMaxBodyBytes, rejecting
// anything larger with a 413-class error. A tighter limit installed by
// http.MaxBytesReader surfaces as 413 as well.
func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, DefaultMaxBodyBytes+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &statusError{
				status: http.StatusRequestEntityTooLarge,
				msg:    "fragment: request body too large",
			}
		}
		return nil, fmt.Errorf("fragment: read body: %w", err)
	}
	if int64(len(body)) > DefaultMaxBodyBytes {
		return nil, &statusError{
			status: http.StatusRequestEntityTooLarge,
			msg:    "fragment: request body too large",
		}
	}
	return body, nil
}

// formBodyError maps a form parse failure to an HTTP status: 413 when an
// http.MaxBytesReader limit was hit, 400 otherwise.
func formBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &statusError{
			status: http.StatusRequestEntityTooLarge,
			msg:    "fragment: request body too large",
		}
	}
	return &statusError{
		status: http.StatusBadRequest,
		msg:    "fragment: malformed form body",
	}
}
