package fragmenthandlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huelabs/hue/fragment"
)

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("config validation", func(t *testing.T) {
		tests := []struct {
			name    string
			cfg     TimeoutConfig
			wantErr error
		}{
			{
				name:    "zero duration",
				cfg:     TimeoutConfig{},
				wantErr: ErrInvalidTimeout,
			},
			{
				name:    "negative duration",
				cfg:     TimeoutConfig{Duration: -time.Second},
				wantErr: ErrInvalidTimeout,
			},
			{
				name: "valid duration",
				cfg:  TimeoutConfig{Duration: time.Second},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mw, err := TimeoutMiddleware(tt.cfg)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.Nil(t, mw)
				} else {
					assert.NoError(t, err)
					assert.NotNil(t, mw)
				}
			})
		}
	})

	timeoutRouter := func(t *testing.T, cfg TimeoutConfig, h fragment.HandlerFunc) *fragment.Router {
		t.Helper()

		r := fragment.NewRouter("/t")
		r.Get("test/", h)

		mw, err := TimeoutMiddleware(cfg)
		require.NoError(t, err)
		r.Use(mw)

		return r
	}

	t.Run("fast handler passes through", func(t *testing.T) {
		r := timeoutRouter(t, TimeoutConfig{Duration: time.Second}, func(c *fragment.Context) (fragment.Response, error) {
			return fragment.RespondFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, "in time")
			}), nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, ajaxRequest(http.MethodGet, "/t/test/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "in time", rec.Body.String())
	})

	t.Run("slow handler times out", func(t *testing.T) {
		r := timeoutRouter(t, TimeoutConfig{Duration: 10 * time.Millisecond}, func(c *fragment.Context) (fragment.Response, error) {
			select {
			case <-c.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return fragment.RespondFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, "too late")
			}), nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, ajaxRequest(http.MethodGet, "/t/test/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "too late")
	})

	t.Run("custom timeout message", func(t *testing.T) {
		cfg := TimeoutConfig{
			Duration: 10 * time.Millisecond,
			Message:  `<div id="error">request timed out</div>`,
		}
		r := timeoutRouter(t, cfg, func(c *fragment.Context) (fragment.Response, error) {
			select {
			case <-c.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return nil, c.Context().Err()
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, ajaxRequest(http.MethodGet, "/t/test/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, `<div id="error">request timed out</div>`, rec.Body.String())
	})
}
