package fragmenthandlers

import (
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/huelabs/hue/fragment"
)

// ServerConfig configures the Server middleware behaviour.
type ServerConfig struct {
	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variable, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty
	// value is used. Only consulted when Hostname is empty. When all
	// variables are unset or empty, os.Hostname is used as a fallback.
	HostnameEnv []string
}

// ServerMiddleware returns a middleware that sets server identification
// response headers. The hostname is resolved once when the middleware is
// created. It returns an error if the hostname cannot be determined.
func ServerMiddleware(cfg ServerConfig) (fragment.MiddlewareFunc, error) {
	hostname := cfg.Hostname

	if hostname == "" {
		for _, env := range cfg.HostnameEnv {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				hostname = v
				break
			}
		}
	}

	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}

		hostname = h
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Server-Hostname", hostname)
			next.ServeHTTP(w, r)
		})
	}, nil
}

// HTTPServerConfig configures NewHTTPServer.
type HTTPServerConfig struct {
	// Addr is the TCP address to listen on, e.g. ":8080".
	Addr string

	// EnableH2C serves HTTP/2 over cleartext TCP. Use only in development
	// or behind a load balancer that terminates TLS; without it HTTP/2 is
	// negotiated through ALPN on TLS connections.
	EnableH2C bool

	// ReadHeaderTimeout bounds reading the request headers.
	// Defaults to 5 seconds.
	ReadHeaderTimeout time.Duration

	// ReadTimeout bounds reading the entire request. Defaults to 15
	// seconds.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response. Defaults to 30 seconds.
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive waits between requests. Defaults to
	// 60 seconds.
	IdleTimeout time.Duration
}

// NewHTTPServer returns an http.Server for the handler with timeouts that
// bound every phase of a connection, so a stalled client cannot hold a
// goroutine forever. The caller runs it:
//
//	srv := fragmenthandlers.NewHTTPServer(mux, fragmenthandlers.HTTPServerConfig{Addr: ":8080"})
//	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
func NewHTTPServer(handler http.Handler, cfg HTTPServerConfig) *http.Server {
	h := handler
	if cfg.EnableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}

	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout == 0 {
		readHeaderTimeout = 5 * time.Second
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15 * time.Second
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}

	idleTimeout := cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 60 * time.Second
	}

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
