package fragment

import (
	"net/http"
	"sync"
)

// HandlerFunc is the signature of a fragment handler. It receives the
// per-request Context and returns a Response plus an error. Handlers
// block until done; cancellation flows through c.Context().
type HandlerFunc func(c *Context) (Response, error)

// Route is one registered (method, pattern) entry. Routes are created by
// the Router's registration methods and are immutable once the router
// starts serving; the exported methods are read-only introspection plus
// setup-time chained configuration.
type Route struct {
	method   string
	pattern  string
	rx       *pathRegexp
	params   []string
	handler  HandlerFunc
	fragment bool
	name     string

	staticCtx     *routeContext
	staticCtxOnce sync.Once
}

// Method returns the HTTP method the route matches.
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the normalized mount-relative pattern, e.g.
// "replies/{id:int}/".
func (r *Route) Pattern() string {
	return r.pattern
}

// Params returns a copy of the parameter names in order of appearance.
func (r *Route) Params() []string {
	out := make([]string, len(r.params))
	copy(out, r.params)
	return out
}

// IsFragment reports whether the route is AJAX-guarded. Every verb
// registration produces a fragment route; only Index routes are not.
func (r *Route) IsFragment() bool {
	return r.fragment
}

// Name assigns a name to the route for Lookup and URL building. Naming a
// route twice is a programming error and panics.
func (r *Route) Name(name string) *Route {
	if r.name != "" {
		panic("fragment: route already has name " + r.name)
	}
	r.name = name
	return r
}

// GetName returns the name assigned to the route, if any.
func (r *Route) GetName() string {
	return r.name
}

// URL builds the full mounted path for the route from key/value parameter
// pairs. Every parameter must be supplied and match its constraint.
//
//	path, err := route.URL("id", "42") // "/comments/replies/42/"
func (r *Route) URL(pairs ...string) (string, error) {
	values, err := mapFromPairs(pairs...)
	if err != nil {
		return "", err
	}
	return r.rx.url(values)
}

// match matches the route against the request. A path match with the
// wrong method records ErrMethodMismatch on the RouteMatch so the router
// can distinguish 405 from 404.
func (r *Route) match(req *http.Request, match *RouteMatch) bool {
	if !r.rx.match(req.URL.Path) {
		return false
	}

	if req.Method != r.method {
		match.MatchErr = ErrMethodMismatch
		return false
	}

	match.Route = r
	match.MatchErr = nil
	if len(r.rx.varsN) > 0 {
		if match.Vars == nil {
			match.Vars = make(map[string]string, len(r.rx.varsN))
		}
		r.rx.setVars(req.URL.Path, match.Vars)
	}
	return true
}
