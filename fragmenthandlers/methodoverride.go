package fragmenthandlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/huelabs/hue/fragment"
)

// ErrInvalidOverrideMethod is returned when MethodOverrideConfig.AllowedMethods
// or MethodOverrideConfig.OriginalMethods contains an invalid HTTP method.
var ErrInvalidOverrideMethod = errors.New("method override: allowed methods must be valid HTTP methods")

// MethodOverrideConfig configures the Method Override middleware behaviour.
type MethodOverrideConfig struct {
	// HeaderNames is the list of header names checked in order.
	// The first non-empty header value is used as the override.
	// When nil, defaults to
	// ["X-HTTP-Method-Override", "X-Method-Override", "X-HTTP-Method"].
	HeaderNames []string

	// FormField is the form field checked on urlencoded bodies when no
	// override header is present. HTML forms submit only GET and POST;
	// a hidden input carries the intended method instead. Defaults to
	// "_method" when empty. The field is removed from the parsed form
	// when the override applies.
	FormField string

	// DisableFormField turns off the form field check, leaving headers as
	// the only override channel.
	DisableFormField bool

	// OriginalMethods is the set of HTTP methods eligible for override.
	// When nil, defaults to [POST].
	OriginalMethods []string

	// AllowedMethods restricts which methods can be used as overrides.
	// When nil, defaults to PUT, PATCH, DELETE, HEAD, OPTIONS.
	AllowedMethods []string
}

// defaultOverrideHeaders is the default set of header names checked for
// method override when HeaderNames is nil.
var defaultOverrideHeaders = []string{
	"X-HTTP-Method-Override",
	"X-Method-Override",
	"X-HTTP-Method",
}

// defaultOriginalMethods is the set of HTTP methods eligible for override
// when OriginalMethods is nil.
var defaultOriginalMethods = []string{http.MethodPost}

// defaultOverrideMethods is the set of methods allowed as overrides when
// AllowedMethods is nil.
var defaultOverrideMethods = []string{
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// MethodOverrideMiddleware returns a middleware that allows clients to
// override the HTTP method of a request. Override values come from the
// first non-empty header in HeaderNames or, when no header is present and
// the body is urlencoded, from the FormField form value. The value is
// uppercased and checked against the allowed set; when allowed, r.Method
// is rewritten and the carrying header or field is removed. Override only
// applies when the original request method is in OriginalMethods.
//
// Routes are keyed by method, so the override must happen before route
// matching. Mount this around the router on the host mux rather than
// through Router.Use:
//
//	mw, err := fragmenthandlers.MethodOverrideMiddleware(fragmenthandlers.MethodOverrideConfig{})
//	if err != nil {
//	    log.Fatal().Err(err).Msg("method override")
//	}
//	mux.Handle(r.Prefix(), mw.Middleware(r))
//
// It returns ErrInvalidOverrideMethod if AllowedMethods or OriginalMethods
// contains an invalid method.
func MethodOverrideMiddleware(cfg MethodOverrideConfig) (fragment.MiddlewareFunc, error) {
	headers := cfg.HeaderNames
	if len(headers) == 0 {
		headers = defaultOverrideHeaders
	}

	formField := cfg.FormField
	if formField == "" {
		formField = "_method"
	}
	if cfg.DisableFormField {
		formField = ""
	}

	originals := cfg.OriginalMethods
	if originals == nil {
		originals = defaultOriginalMethods
	}

	methods := cfg.AllowedMethods
	if methods == nil {
		methods = defaultOverrideMethods
	}

	for _, m := range originals {
		if m == "" || m != strings.ToUpper(m) {
			return nil, ErrInvalidOverrideMethod
		}
	}

	for _, m := range methods {
		if m == "" || m != strings.ToUpper(m) {
			return nil, ErrInvalidOverrideMethod
		}
	}

	headerNames := make([]string, len(headers))
	copy(headerNames, headers)

	originalSet := make(map[string]struct{}, len(originals))
	for _, m := range originals {
		originalSet[m] = struct{}{}
	}

	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := originalSet[r.Method]; ok {
				if !overrideFromHeader(r, headerNames, allowed) && formField != "" {
					overrideFromForm(r, formField, allowed)
				}
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// overrideFromHeader applies the first non-empty override header. It
// reports whether any override header was present; a present but
// disallowed value still ends the search.
func overrideFromHeader(r *http.Request, headerNames []string, allowed map[string]struct{}) bool {
	for _, h := range headerNames {
		if v := r.Header.Get(h); v != "" {
			override := strings.ToUpper(v)
			if _, ok := allowed[override]; ok {
				r.Method = override
				r.Header.Del(h)
			}

			return true
		}
	}

	return false
}

// overrideFromForm applies an override carried in a urlencoded form field.
// The parsed form is cached on the request, so downstream body decoding
// sees the same values minus the override field.
func overrideFromForm(r *http.Request, field string, allowed map[string]struct{}) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/x-www-form-urlencoded" {
		return
	}

	if err := r.ParseForm(); err != nil {
		return
	}

	v := r.PostForm.Get(field)
	if v == "" {
		return
	}

	override := strings.ToUpper(v)
	if _, ok := allowed[override]; ok {
		r.Method = override
		r.PostForm.Del(field)
		r.Form.Del(field)
	}
}
