package fragment

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Router registers fragment routes under one mount prefix and dispatches
// matched requests. It implements http.Handler for its mounted subtree:
//
//	r := fragment.NewRouter("/comments")
//	r.Get("list/", listHandler)
//	http.Handle(r.Prefix(), r)
//
// Registration must finish before the router starts serving; the
// registry is read concurrently and never locked.
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path
	// but not the method. If nil, a default 405 handler is used.
	// The Allow header is always set before this handler is invoked,
	// per RFC 9110 Section 15.5.6.
	MethodNotAllowedHandler http.Handler

	// FragmentRequiredHandler is called when a fragment route receives
	// a request without an AJAX header. If nil, a default 400 handler
	// is used.
	FragmentRequiredHandler http.Handler

	// ErrorHandler receives handler errors other than the AJAX-guard
	// rejection. If nil, errors carrying an HTTP status produce that
	// status and everything else is logged and answered with 500.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	prefix      string
	adapter     Adapter
	log         zerolog.Logger
	routes      []*Route
	byKey       map[routeKey]*Route
	middlewares []MiddlewareFunc

	// handlerCache caches the middleware-wrapped dispatch handler per
	// route to avoid re-wrapping on every request.
	handlerCache sync.Map // map[*Route]http.Handler
}

// routeKey identifies a registry entry. Registering the same key twice
// replaces the earlier route.
type routeKey struct {
	method  string
	pattern string
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithAdapter sets the adapter used for path parsing, context extraction,
// and the optional normalization and AJAX-detection overrides.
func WithAdapter(a Adapter) Option {
	return func(r *Router) {
		if a != nil {
			r.adapter = a
		}
	}
}

// WithLogger sets the logger used for handler errors. The default is a
// no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Router) {
		r.log = log
	}
}

// NewRouter returns a router mounted at the given prefix. The prefix is
// canonicalized to the "/prefix/" form ("" and "/" mean the root). With
// no options the router uses DefaultAdapter and stays silent.
func NewRouter(prefix string, opts ...Option) *Router {
	r := &Router{
		prefix:  cleanMountPrefix(prefix),
		adapter: DefaultAdapter{},
		log:     zerolog.Nop(),
		byKey:   make(map[routeKey]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prefix returns the canonical mount prefix, e.g. "/comments/". It is
// also the pattern to register on the host mux, covering the subtree.
func (r *Router) Prefix() string {
	return r.prefix
}

// --- Registration ---

// Get registers a fragment route for GET requests.
func (r *Router) Get(path string, h HandlerFunc) *Route {
	return r.Handle(http.MethodGet, path, h)
}

// Post registers a fragment route for POST requests.
func (r *Router) Post(path string, h HandlerFunc) *Route {
	return r.Handle(http.MethodPost, path, h)
}

// Put registers a fragment route for PUT requests.
func (r *Router) Put(path string, h HandlerFunc) *Route {
	return r.Handle(http.MethodPut, path, h)
}

// Patch registers a fragment route for PATCH requests.
func (r *Router) Patch(path string, h HandlerFunc) *Route {
	return r.Handle(http.MethodPatch, path, h)
}

// Delete registers a fragment route for DELETE requests.
func (r *Router) Delete(path string, h HandlerFunc) *Route {
	return r.Handle(http.MethodDelete, path, h)
}

// Handle registers a fragment route for an arbitrary method. The path
// must be non-empty; it is normalized, parsed through the adapter, and
// stored keyed by (method, normalized pattern). The last registration
// for a key wins. Invalid paths panic: registration failures are
// programming errors.
func (r *Router) Handle(method, path string, h HandlerFunc) *Route {
	if path == "" {
		panic("fragment: empty route path (use Index for the mount root)")
	}
	return r.register(strings.ToUpper(method), path, h, true)
}

// Index registers the GET route for the mount root itself, without the
// AJAX guard. This is the full-page entry point of the mount; without
// it, requests to the mount root are not found.
func (r *Router) Index(h HandlerFunc) *Route {
	return r.register(http.MethodGet, "", h, false)
}

func (r *Router) register(method, path string, h HandlerFunc, fragment bool) *Route {
	if h == nil {
		panic(fmt.Sprintf("fragment: nil handler for %s %q", method, path))
	}

	normalized := r.normalizePath(path)

	parsed, err := r.adapter.ParsePath(normalized)
	if err != nil {
		panic(fmt.Sprintf("fragment: parse path %q: %v", path, err))
	}

	rx, err := newPathRegexp(r.prefix, parsed.Pattern)
	if err != nil {
		panic(fmt.Sprintf("fragment: compile path %q: %v", path, err))
	}

	route := &Route{
		method:   method,
		pattern:  parsed.Pattern,
		rx:       rx,
		params:   parsed.Params,
		handler:  h,
		fragment: fragment,
	}

	key := routeKey{method: method, pattern: parsed.Pattern}
	if existing, ok := r.byKey[key]; ok {
		// Last registration wins, keeping the original position.
		for i, rt := range r.routes {
			if rt == existing {
				r.routes[i] = route
				break
			}
		}
	} else {
		r.routes = append(r.routes, route)
	}
	r.byKey[key] = route

	return route
}

// Routes returns a copy of the registered routes in registration order.
// Mutating the returned slice does not affect dispatch.
func (r *Router) Routes() []*Route {
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Lookup returns the route registered under the given name, or nil.
// Routes are named with Route.Name. The scan is read-only, so Lookup is
// safe during serving, e.g. for URL reversing while rendering.
func (r *Router) Lookup(name string) *Route {
	if name == "" {
		return nil
	}
	for _, route := range r.routes {
		if route.name == name {
			return route
		}
	}
	return nil
}

// Use appends middleware to the chain. Middleware wraps the dispatch of
// matched routes, including the AJAX guard; 404 and 405 responses do not
// pass through it.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)
}

// --- Dispatch ---

// ServeHTTP dispatches the handler registered for the matched route.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Normalize the request path per RFC 3986 Section 5.2.4
	// (removing dot segments).
	if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
		u := *req.URL
		u.Path = cleaned
		u.RawPath = ""
		req = req.Clone(req.Context())
		req.URL = &u
	}

	var match RouteMatch
	if r.Match(req, &match) {
		req = setRouteContext(req, match.Route, match.Vars)
		match.Handler.ServeHTTP(w, req)
		return
	}

	if match.methodNotAllowed {
		// RFC 9110 Section 15.5.6: the origin server MUST generate an
		// Allow header field in a 405 response.
		w.Header().Set("Allow", strings.Join(r.allowedMethods(req), ", "))
		h := r.MethodNotAllowedHandler
		if h == nil {
			h = defaultMethodNotAllowedHandler
		}
		h.ServeHTTP(w, req)
		return
	}

	h := r.NotFoundHandler
	if h == nil {
		h = http.NotFoundHandler()
	}
	h.ServeHTTP(w, req)
}

// Match attempts to match the request against the registered routes. It
// distinguishes 404 Not Found from 405 Method Not Allowed by tracking
// method mismatches independently across route iteration; RouteMatch
// carries the result either way.
func (r *Router) Match(req *http.Request, match *RouteMatch) bool {
	var methodNotAllowed bool
	for _, route := range r.routes {
		if route.match(req, match) {
			match.Handler = r.routeHandler(route)
			return true
		}
		if match.MatchErr == ErrMethodMismatch {
			methodNotAllowed = true
		}
	}

	if methodNotAllowed {
		match.MatchErr = ErrMethodMismatch
		match.methodNotAllowed = true
		return false
	}

	match.MatchErr = ErrNotFound
	return false
}

// routeHandler returns the middleware-wrapped dispatch handler for the
// route, building and caching it on first use.
func (r *Router) routeHandler(route *Route) http.Handler {
	if cached, ok := r.handlerCache.Load(route); ok {
		return cached.(http.Handler)
	}
	h := r.applyMiddleware(r.dispatcher(route))
	actual, _ := r.handlerCache.LoadOrStore(route, h)
	return actual.(http.Handler)
}

// dispatcher builds the dispatch pipeline for one route: AJAX guard,
// adapter context extraction, handler invocation, response writing.
func (r *Router) dispatcher(route *Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if route.fragment && !r.isFragment(req) {
			r.fragmentRequired(w, req)
			return
		}

		args, err := r.adapter.ContextArgs(req)
		if err != nil {
			r.handleError(w, req, err)
			return
		}

		c := &Context{
			Request: req,
			CSRF:    args.CSRFToken,
			vars:    Vars(req),
		}

		resp, err := route.handler(c)
		if err != nil {
			r.handleError(w, req, err)
			return
		}

		r.writeResponse(w, req, resp)
	})
}

// handleError translates a handler error into a response. The AJAX-guard
// sentinel takes the FragmentRequiredHandler path; a configured
// ErrorHandler receives everything else; otherwise errors carrying an
// HTTP status (such as binding failures) produce that status, and the
// rest are logged and answered with 500.
func (r *Router) handleError(w http.ResponseWriter, req *http.Request, err error) {
	if IsFragmentRequired(err) {
		r.fragmentRequired(w, req)
		return
	}

	if r.ErrorHandler != nil {
		r.ErrorHandler(w, req, err)
		return
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		http.Error(w, err.Error(), sc.HTTPStatus())
		return
	}

	r.log.Error().
		Err(err).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("fragment handler failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// fragmentRequired writes the AJAX-guard rejection.
func (r *Router) fragmentRequired(w http.ResponseWriter, req *http.Request) {
	h := r.FragmentRequiredHandler
	if h == nil {
		h = defaultFragmentRequiredHandler
	}
	h.ServeHTTP(w, req)
}

// allowedMethods returns the sorted HTTP methods registered for routes
// whose pattern matches the request path. Used to populate the Allow
// header field required by RFC 9110 Section 15.5.6 on 405 responses.
func (r *Router) allowedMethods(req *http.Request) []string {
	seen := make(map[string]bool)
	var allowed []string
	for _, route := range r.routes {
		if !seen[route.method] && route.rx.match(req.URL.Path) {
			seen[route.method] = true
			allowed = append(allowed, route.method)
		}
	}
	sort.Strings(allowed)
	return allowed
}

// normalizePath applies the adapter's normalization when it implements
// PathNormalizer, and the package default otherwise.
func (r *Router) normalizePath(path string) string {
	if n, ok := r.adapter.(PathNormalizer); ok {
		return n.NormalizePath(path)
	}
	return NormalizePath(path)
}

// isFragment applies the adapter's AJAX detection when it implements
// FragmentChecker, and the package default otherwise.
func (r *Router) isFragment(req *http.Request) bool {
	if c, ok := r.adapter.(FragmentChecker); ok {
		return c.IsFragment(req)
	}
	return IsFragment(req)
}

// applyMiddleware wraps the handler with all registered middleware.
func (r *Router) applyMiddleware(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i].Middleware(handler)
	}
	return handler
}

var defaultMethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	// The Allow header is set by ServeHTTP before this handler runs.
	w.WriteHeader(http.StatusMethodNotAllowed)
})

var defaultFragmentRequiredHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "this endpoint only accepts fragment requests", http.StatusBadRequest)
})
