package fragmenthandlers

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/huelabs/hue/fragment"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives one error-level event per recovered panic, carrying
	// the recovered value and a stack trace. A zero Logger discards the
	// event.
	Logger zerolog.Logger

	// OnPanic is an optional callback invoked with the request and the
	// recovered value after the event is logged.
	OnPanic func(r *http.Request, v any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers, answering 500 Internal Server Error instead of
// tearing down the connection.
func RecoveryMiddleware(cfg RecoveryConfig) fragment.MiddlewareFunc {
	log := cfg.Logger
	onPanic := cfg.OnPanic

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					// http.ErrAbortHandler must propagate to the server.
					if v == http.ErrAbortHandler {
						panic(v)
					}

					log.Error().
						Interface("panic", v).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("handler panicked")

					if onPanic != nil {
						onPanic(r, v)
					}

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
