// Package livereload pushes reload notifications to browsers during
// development. A Hub upgrades websocket connections at a well-known
// endpoint, Watch polls source paths for changes, and ScriptTag injects
// the client that reloads the page when a notification arrives.
//
//	hub := livereload.NewHub(livereload.Config{Logger: log})
//	mux.Handle(livereload.DefaultEndpoint, hub)
//
//	go livereload.Watch(ctx, hub, []string{"./views", "./static"}, time.Second)
//
// Pages include the client once, typically only in development builds:
//
//	@livereload.ScriptTag("ws://localhost:8080/hmr")
//
// Nothing in this package runs unless the application mounts it.
package livereload
