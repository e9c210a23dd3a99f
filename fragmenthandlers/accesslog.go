package fragmenthandlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/huelabs/hue/fragment"
)

// AccessLogConfig configures the Access Log middleware behaviour.
type AccessLogConfig struct {
	// Logger receives one event per completed request: info for 2xx and
	// 3xx responses, warn for 4xx, error for 5xx. A zero Logger discards
	// everything.
	Logger zerolog.Logger

	// SkipPaths is a list of exact request paths excluded from logging,
	// such as health check endpoints.
	SkipPaths []string
}

// AccessLogMiddleware returns a middleware that logs one structured event
// per request: method, path, status, response bytes, duration, and whether
// the request carried a fragment marker. When the Request ID middleware
// runs upstream, the request ID is attached to the event.
func AccessLogMiddleware(cfg AccessLogConfig) fragment.MiddlewareFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	log := cfg.Logger

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			aw := &accessLogResponseWriter{ResponseWriter: w}

			next.ServeHTTP(aw, r)

			status := aw.status()

			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = log.Error()
			case status >= http.StatusBadRequest:
				event = log.Warn()
			default:
				event = log.Info()
			}

			event = event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int64("bytes", aw.written).
				Dur("duration", time.Since(start)).
				Bool("fragment", fragment.IsFragment(r))

			if id := RequestIDFromContext(r.Context()); id != "" {
				event = event.Str("request_id", id)
			}

			event.Msg("request")
		})
	}
}

// accessLogResponseWriter records the status code and body size written by
// downstream handlers.
type accessLogResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (aw *accessLogResponseWriter) WriteHeader(statusCode int) {
	if aw.statusCode == 0 {
		aw.statusCode = statusCode
	}

	aw.ResponseWriter.WriteHeader(statusCode)
}

func (aw *accessLogResponseWriter) Write(b []byte) (int, error) {
	if aw.statusCode == 0 {
		aw.statusCode = http.StatusOK
	}

	n, err := aw.ResponseWriter.Write(b)
	aw.written += int64(n)

	return n, err
}

func (aw *accessLogResponseWriter) status() int {
	if aw.statusCode == 0 {
		return http.StatusOK
	}

	return aw.statusCode
}

// Unwrap returns the underlying ResponseWriter for middleware compatibility.
func (aw *accessLogResponseWriter) Unwrap() http.ResponseWriter {
	return aw.ResponseWriter
}
