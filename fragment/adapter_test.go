package fragment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFragment(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{
			name:    "no markers",
			headers: nil,
			want:    false,
		},
		{
			name:    "xmlhttprequest",
			headers: map[string]string{"X-Requested-With": "XMLHttpRequest"},
			want:    true,
		},
		{
			name:    "alpine request",
			headers: map[string]string{"X-Alpine-Request": "true"},
			want:    true,
		},
		{
			name: "both markers",
			headers: map[string]string{
				"X-Requested-With": "XMLHttpRequest",
				"X-Alpine-Request": "true",
			},
			want: true,
		},
		{
			name:    "wrong requested with value",
			headers: map[string]string{"X-Requested-With": "fetch"},
			want:    false,
		},
		{
			name:    "wrong alpine value",
			headers: map[string]string{"X-Alpine-Request": "1"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, IsFragment(req))
		})
	}
}

func TestDefaultAdapterParsePath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantParams []string
		wantErr    bool
	}{
		{
			name:       "static",
			path:       "list/",
			wantParams: nil,
		},
		{
			name:       "single parameter",
			path:       "replies/{id}/",
			wantParams: []string{"id"},
		},
		{
			name:       "constraint stripped from name",
			path:       "replies/{id:int}/",
			wantParams: []string{"id"},
		},
		{
			name:       "multiple parameters in order",
			path:       "{a}/{b:uuid}/{c}/",
			wantParams: []string{"a", "b", "c"},
		},
		{
			name:    "unbalanced braces",
			path:    "x/{id/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultAdapter{}.ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, got.Pattern)
			assert.Equal(t, tt.wantParams, got.Params)
		})
	}
}

func TestDefaultAdapterContextArgs(t *testing.T) {
	t.Run("token from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x/", nil)
		req.Header.Set("X-CSRF-Token", "tok-header")

		args, err := DefaultAdapter{}.ContextArgs(req)
		require.NoError(t, err)
		assert.Equal(t, "tok-header", args.CSRFToken)
	})

	t.Run("token from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x/", nil)
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: "tok-cookie"})

		args, err := DefaultAdapter{}.ContextArgs(req)
		require.NoError(t, err)
		assert.Equal(t, "tok-cookie", args.CSRFToken)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x/", nil)
		req.Header.Set("X-CSRF-Token", "tok-header")
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: "tok-cookie"})

		args, err := DefaultAdapter{}.ContextArgs(req)
		require.NoError(t, err)
		assert.Equal(t, "tok-header", args.CSRFToken)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x/", nil)

		args, err := DefaultAdapter{}.ContextArgs(req)
		require.NoError(t, err)
		assert.Empty(t, args.CSRFToken)
	})

	t.Run("custom extractor", func(t *testing.T) {
		a := DefaultAdapter{CSRFToken: func(r *http.Request) string {
			return r.Header.Get("X-Custom-Token")
		}}
		req := httptest.NewRequest(http.MethodGet, "/x/", nil)
		req.Header.Set("X-Custom-Token", "tok-custom")
		req.Header.Set("X-CSRF-Token", "ignored")

		args, err := a.ContextArgs(req)
		require.NoError(t, err)
		assert.Equal(t, "tok-custom", args.CSRFToken)
	})
}
