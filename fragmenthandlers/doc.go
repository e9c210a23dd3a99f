// Package fragmenthandlers provides HTTP middleware for fragment routers.
//
// All middleware returns fragment.MiddlewareFunc and composes through
// Router.Use. Constructors that validate their configuration return an
// error; the rest return the middleware directly.
//
// # Access Log Middleware
//
// AccessLogMiddleware emits one structured event per completed request:
// method, path, status, response size, duration, and whether the request
// carried a fragment marker. The request ID is included when the Request
// ID middleware runs upstream.
//
//	r.Use(fragmenthandlers.AccessLogMiddleware(fragmenthandlers.AccessLogConfig{
//	    Logger: log,
//	}))
//
// # Method Override Middleware
//
// MethodOverrideMiddleware lets clients tunnel PUT, PATCH, and DELETE
// through POST. Browsers only submit GET and POST from HTML forms, so the
// intended method travels in an override header or, for urlencoded form
// posts, a hidden "_method" field:
//
//	<form method="post" action="/comments/replies/42/">
//	    <input type="hidden" name="_method" value="delete">
//	</form>
//
// Routes are keyed by method, so mount it around the router rather than
// through Router.Use; see MethodOverrideMiddleware.
//
// # Static Files Handler
//
// StaticFilesHandler serves embedded or on-disk assets with an optional
// long-lived Cache-Control header. Rendered fragments are personalized
// and should not be cached; their assets should be:
//
//	assets, err := fragmenthandlers.StaticFilesHandler(fragmenthandlers.StaticFilesConfig{
//	    FS:     ui.Styles,
//	    MaxAge: 24 * time.Hour,
//	})
//	if err != nil {
//	    log.Fatal().Err(err).Msg("static assets")
//	}
//	mux.Handle("/static/hue/", http.StripPrefix("/static/hue/", assets))
//
// # HTTP Server
//
// NewHTTPServer builds an http.Server with slowloris-safe timeouts and
// optional HTTP/2 over cleartext (h2c) for deployments behind a trusted
// load balancer:
//
//	srv := fragmenthandlers.NewHTTPServer(mux, fragmenthandlers.HTTPServerConfig{
//	    Addr:      ":8080",
//	    EnableH2C: true,
//	})
//	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
package fragmenthandlers
