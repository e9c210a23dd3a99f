package fragmenthandlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/huelabs/hue/fragment"
)

// ContentTypeCheckConfig configures the Content-Type Check middleware
// behaviour.
type ContentTypeCheckConfig struct {
	// AllowedTypes is the set of acceptable Content-Type values.
	// Matching is case-insensitive and ignores parameters
	// (e.g. "application/json" matches "application/json; charset=utf-8").
	// When "application/json" is allowed, structured suffixes such as
	// "application/ld+json" are accepted as well. When nil, defaults to
	// the media types the fragment body decoder understands: JSON,
	// urlencoded forms, and multipart forms.
	AllowedTypes []string

	// Methods is the set of HTTP methods that require Content-Type
	// validation. When nil, defaults to POST, PUT, PATCH.
	Methods []string
}

// defaultAllowedTypes matches the media types fragment.Body decodes.
var defaultAllowedTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// defaultCheckedMethods is the set of HTTP methods that require
// Content-Type validation when Methods is nil.
var defaultCheckedMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
}

// ContentTypeCheckMiddleware returns a middleware that validates the
// Content-Type header on requests with matching methods, answering 415
// Unsupported Media Type when it is missing or not allowed. Requests
// without a body are exempt: fragment actions frequently POST with an
// empty body (a delete button, a toggle) and carry no Content-Type.
func ContentTypeCheckMiddleware(cfg ContentTypeCheckConfig) fragment.MiddlewareFunc {
	types := cfg.AllowedTypes
	if len(types) == 0 {
		types = defaultAllowedTypes
	}

	methods := cfg.Methods
	if methods == nil {
		methods = defaultCheckedMethods
	}

	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}

	allowedSet := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowedSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	_, jsonSuffixOK := allowedSet["application/json"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, check := methodSet[r.Method]; check && r.ContentLength != 0 {
				ct := r.Header.Get("Content-Type")
				if ct == "" {
					unsupportedMediaType(w)
					return
				}

				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil {
					unsupportedMediaType(w)
					return
				}

				mediaType = strings.ToLower(mediaType)
				if _, ok := allowedSet[mediaType]; !ok {
					if !(jsonSuffixOK && strings.HasSuffix(mediaType, "+json")) {
						unsupportedMediaType(w)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unsupportedMediaType(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType)
}
