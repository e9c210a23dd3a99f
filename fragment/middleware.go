package fragment

import (
	"net/http"
	"strings"
)

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. Middleware wraps matched dispatch handlers with
// additional behavior such as logging or panic recovery.
type MiddlewareFunc func(http.Handler) http.Handler

// Middleware allows MiddlewareFunc to implement the Middleware interface.
func (mw MiddlewareFunc) Middleware(handler http.Handler) http.Handler {
	return mw(handler)
}

// AllowedMethodsMiddleware sets the Access-Control-Allow-Methods response
// header (Fetch Standard, CORS protocol) on matched requests to the
// method set registered for the request path.
func AllowedMethodsMiddleware(r *Router) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if methods := r.allowedMethods(req); len(methods) > 0 {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(methods, ","))
			}
			next.ServeHTTP(w, req)
		})
	}
}
