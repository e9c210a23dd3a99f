package fragment

import "errors"

// ErrFragmentRequired is reported when a fragment route receives a request
// without a recognized AJAX header. The router translates it into a
// 400-class response via the FragmentRequiredHandler; handlers may also
// return it to trigger the same response.
var ErrFragmentRequired = errors.New("fragment: request is not a fragment request")

// ErrMethodMismatch is set on a RouteMatch when the request path matches a
// registered route but the method does not. Triggers 405 Method Not
// Allowed per RFC 9110 Section 15.5.6.
var ErrMethodMismatch = errors.New("fragment: method is not allowed")

// ErrNotFound is set on a RouteMatch when no route matches the request.
// Triggers 404 Not Found per RFC 9110 Section 15.5.5.
var ErrNotFound = errors.New("fragment: no matching route was found")

// ErrUnsupportedMediaType is returned by Body when the request carries a
// Content-Type no decoder is registered for. Carries HTTP status 415.
var ErrUnsupportedMediaType = &statusError{
	status: 415,
	msg:    "fragment: unsupported media type",
}

// statusError is an error with an associated HTTP status code.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) HTTPStatus() int { return e.status }

// statusCoder is satisfied by errors that map to a specific HTTP status,
// such as binding errors. The router uses it when writing error responses.
type statusCoder interface {
	HTTPStatus() int
}

// IsFragmentRequired reports whether err is the AJAX-guard rejection.
func IsFragmentRequired(err error) bool {
	return errors.Is(err, ErrFragmentRequired)
}
