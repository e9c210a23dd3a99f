package fragment

import (
	"context"
	"net/http"
)

// Context is the per-request value passed to fragment handlers. It
// bundles the request, the anti-forgery token extracted by the adapter,
// and the decoded path parameters. A Context is created fresh for each
// dispatch and must not be retained after the handler returns.
type Context struct {
	// Request is the incoming HTTP request.
	Request *http.Request

	// CSRF is the anti-forgery token the adapter extracted, or empty.
	CSRF string

	vars map[string]string
}

// Context returns the request context, which carries cancellation and
// deadlines for blocking work done by the handler.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// Param returns the value of a path parameter, or "" if absent.
func (c *Context) Param(name string) string {
	return c.vars[name]
}

// ParamOK returns a path parameter value and whether it exists.
func (c *Context) ParamOK(name string) (string, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Params returns a copy of all path parameters. Mutating the copy does
// not affect the request.
func (c *Context) Params() map[string]string {
	out := make(map[string]string, len(c.vars))
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store both route and vars.
var ctxKey = routeContextKey{}

// routeContext holds the matched route and extracted parameters.
type routeContext struct {
	route *Route
	vars  map[string]string
}

// Vars returns the path parameters for the current request, if any.
// Intended for middleware, which sees the request but not the handler
// Context.
func Vars(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// VarGet returns the value of a single path parameter by name and a
// boolean indicating whether the parameter exists.
func VarGet(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return "", false
}

// CurrentRoute returns the matched route for the current request, if any.
// This only works inside the dispatch of the matched route because the
// route is stored in the request context.
func CurrentRoute(r *http.Request) *Route {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.route
	}
	return nil
}

// SetVars sets the path parameters for the given request, returning the
// modified request. This is intended for testing handlers and middleware
// outside a router.
func SetVars(r *http.Request, vars map[string]string) *http.Request {
	var route *Route
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		route = rc.route
	}
	return setRouteContext(r, route, vars)
}

// setRouteContext stores both the matched route and vars in the request
// context using a single WithContext call. For static routes (no
// parameters), the routeContext is cached on the Route to avoid a heap
// allocation per request after the first dispatch.
func setRouteContext(r *http.Request, route *Route, vars map[string]string) *http.Request {
	var rc *routeContext
	if route != nil && vars == nil {
		route.staticCtxOnce.Do(func() {
			route.staticCtx = &routeContext{route: route}
		})
		rc = route.staticCtx
	} else {
		rc = &routeContext{route: route, vars: vars}
	}
	ctx := context.WithValue(r.Context(), ctxKey, rc)
	return r.WithContext(ctx)
}

// RouteMatch stores information about a matched route.
type RouteMatch struct {
	// Route is the matched route, if any.
	Route *Route

	// Handler is the dispatch handler for the matched route, with the
	// router's middleware applied.
	Handler http.Handler

	// Vars contains the extracted path parameters.
	Vars map[string]string

	// MatchErr is ErrMethodMismatch when the path matched but the
	// method did not, and ErrNotFound when nothing matched.
	MatchErr error

	// methodNotAllowed signals that the router should respond with
	// 405 Method Not Allowed instead of 404 Not Found.
	methodNotAllowed bool
}
