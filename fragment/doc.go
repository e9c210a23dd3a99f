// Package fragment implements a routing layer for AJAX-only sub-routes
// that return HTML markup fragments instead of full pages.
//
// A Router owns the fragment routes mounted under one path prefix. Routes
// are registered with one method per HTTP verb during setup; the registry
// is immutable once the router starts serving. Each fragment route is
// guarded: requests must carry one of the two AJAX headers
// (X-Requested-With: XMLHttpRequest, or X-Alpine-Request: true) or they
// are rejected with a 400-class response before the handler runs.
//
// # Router
//
// Create a router for a mount prefix, register routes, and mount it on
// the host mux:
//
//	r := fragment.NewRouter("/comments")
//	r.Index(pageHandler)
//	r.Get("list/", listHandler)
//	r.Post("create/", createHandler)
//	http.Handle(r.Prefix(), r)
//
// The host mux owns everything outside the prefix. Within it, the router
// distinguishes 404 Not Found from 405 Method Not Allowed (the Allow
// header is set on 405 responses, sorted, per RFC 9110 Section 15.5.6)
// and rejects non-AJAX requests to fragment routes.
//
// # Handlers
//
// Handlers receive a per-request Context carrying the request, the
// anti-forgery token extracted by the adapter, and the decoded path
// parameters. They return a Response: either rendered markup or a raw
// passthrough.
//
//	func listHandler(c *fragment.Context) (fragment.Response, error) {
//	    return fragment.HTML(commentList(c.Param("id"))), nil
//	}
//
// Markup responses support a target-element wrap and a status override:
//
//	return fragment.HTML(view).Target("comments-list").Status(http.StatusCreated), nil
//
// A Raw response bypasses rendering entirely, for prebuilt responses
// such as redirects:
//
//	return fragment.Redirect("/login", http.StatusSeeOther), nil
//
// # Path Variables
//
// Route paths use {name} placeholders, optionally constrained with a
// macro or an inline regular expression:
//
//	r.Get("replies/{id:int}/", replyHandler)
//	r.Get("files/{rest:path}", fileHandler)
//
// Available macros: int, uuid, float, slug, alpha, alphanum, date, hex,
// path (matches across slashes). An unknown name after the colon is
// treated as a raw regular expression. Matched values are available on
// the handler Context and, for middleware, via Vars:
//
//	id := c.Param("id")
//	vars := fragment.Vars(req)
//
// # Registration
//
// Registration normalizes the path (leading slashes are stripped; the
// default policy is idempotent and preserves trailing slashes), parses
// placeholders through the active adapter, and stores the route keyed
// by (method, normalized pattern). Registering the same key twice
// replaces the earlier route; the last registration wins. Invalid
// patterns and adapter failures panic: they are programming errors, not
// request-time conditions.
//
// # Adapters
//
// An Adapter translates host-framework conventions into the router's
// contract: ParsePath converts path syntax, ContextArgs extracts the
// anti-forgery token. Adapters may additionally implement PathNormalizer
// or FragmentChecker to override the default normalization and
// AJAX-header policies. DefaultAdapter handles the canonical {name}
// syntax and a header/cookie token scheme.
//
// # Body Binding
//
// Body decodes a request body into a typed struct, selecting the decoder
// from the Content-Type (JSON, form, or multipart). Query, Headers, and
// Params bind the other request sources. Decode failures carry an HTTP
// status, so returning them from a handler produces the right response:
//
//	form, err := fragment.Body[CreateComment](c)
//	if err != nil {
//	    return nil, err
//	}
//
// # Middleware
//
// Use appends middleware applied to matched handlers only; 404, 405, and
// AJAX-guard responses are produced before the chain runs:
//
//	r.Use(fragmenthandlers.RecoveryMiddleware(fragmenthandlers.RecoveryConfig{Logger: logger}))
package fragment
