package fragment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textComponent returns a component that writes fixed markup.
func textComponent(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// fragmentRequest builds a request carrying the AJAX marker header.
func fragmentRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return req
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "bare name", prefix: "comments", want: "/comments/"},
		{name: "leading slash", prefix: "/comments", want: "/comments/"},
		{name: "both slashes", prefix: "/comments/", want: "/comments/"},
		{name: "nested", prefix: "/blog/comments/", want: "/blog/comments/"},
		{name: "empty means root", prefix: "", want: "/"},
		{name: "root", prefix: "/", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRouter(tt.prefix).Prefix())
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter("/comments")
	r.Get("list/", func(c *Context) (Response, error) {
		return HTML(textComponent("<ul></ul>")), nil
	})

	t.Run("matched fragment request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/list/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<ul></ul>", rec.Body.String())
	})

	t.Run("alpine marker accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/comments/list/", nil)
		req.Header.Set("X-Alpine-Request", "true")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unmatched path is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/nope/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("trailing slash is significant", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/list", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("query string ignored for matching", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/list/?page=2", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("dot segments removed before matching", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/sub/../list/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouterFragmentGuard(t *testing.T) {
	r := NewRouter("/comments")
	handler := func(c *Context) (Response, error) {
		return HTML(textComponent("ok")), nil
	}
	r.Get("g/", handler)
	r.Post("g/", handler)
	r.Put("g/", handler)
	r.Patch("g/", handler)
	r.Delete("g/", handler)

	methods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}

	for _, method := range methods {
		t.Run("plain "+strings.ToLower(method)+" rejected", func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(method, "/comments/g/", nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "fragment requests")
		})

		t.Run("marked "+strings.ToLower(method)+" accepted", func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, fragmentRequest(method, "/comments/g/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRouterIndex(t *testing.T) {
	r := NewRouter("/comments")
	r.Index(func(c *Context) (Response, error) {
		return HTML(textComponent("<main>page</main>")), nil
	})

	t.Run("serves the mount root without the guard", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<main>page</main>", rec.Body.String())
	})

	t.Run("root not found without an index route", func(t *testing.T) {
		bare := NewRouter("/comments")
		bare.Get("list/", func(c *Context) (Response, error) { return nil, nil })

		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := NewRouter("/comments")
	h := func(c *Context) (Response, error) { return nil, nil }
	r.Get("item/", h)
	r.Post("item/", h)
	r.Delete("item/", h)

	t.Run("allow header lists registered methods sorted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodPut, "/comments/item/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "DELETE, GET, POST", rec.Header().Get("Allow"))
	})

	t.Run("single method", func(t *testing.T) {
		single := NewRouter("/x")
		single.Get("only/", h)

		rec := httptest.NewRecorder()
		single.ServeHTTP(rec, fragmentRequest(http.MethodPost, "/x/only/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET", rec.Header().Get("Allow"))
	})

	t.Run("guard not consulted before the method check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/comments/item/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRouterHandlerInvokedOnce(t *testing.T) {
	r := NewRouter("/comments")
	var calls int
	r.Get("once/", func(c *Context) (Response, error) {
		calls++
		return nil, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/once/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, calls)
}

// A handler that waits on background work renders exactly like one that
// computes its markup inline.
func TestRouterGoroutineBackedHandler(t *testing.T) {
	r := NewRouter("/comments")
	r.Get("inline/", func(c *Context) (Response, error) {
		return HTML(textComponent("<ul><li>one</li></ul>")), nil
	})
	r.Get("background/", func(c *Context) (Response, error) {
		result := make(chan string, 1)
		go func() {
			result <- "<ul><li>one</li></ul>"
		}()

		select {
		case markup := <-result:
			return HTML(textComponent(markup)), nil
		case <-c.Context().Done():
			return nil, c.Context().Err()
		}
	})

	inline := httptest.NewRecorder()
	r.ServeHTTP(inline, fragmentRequest(http.MethodGet, "/comments/inline/", nil))

	background := httptest.NewRecorder()
	r.ServeHTTP(background, fragmentRequest(http.MethodGet, "/comments/background/", nil))

	assert.Equal(t, inline.Code, background.Code)
	assert.Equal(t, inline.Body.String(), background.Body.String())
	assert.Equal(t, inline.Header().Get("Content-Type"), background.Header().Get("Content-Type"))
}

func TestRouterPathParams(t *testing.T) {
	r := NewRouter("/comments")
	var gotID, gotSlug string
	r.Get("replies/{id:int}/{slug}/", func(c *Context) (Response, error) {
		gotID = c.Param("id")
		gotSlug = c.Param("slug")
		return nil, nil
	})

	t.Run("values decoded into the context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/replies/42/intro/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "42", gotID)
		assert.Equal(t, "intro", gotSlug)
	})

	t.Run("constraint failure is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/replies/abc/intro/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouterDuplicateRegistration(t *testing.T) {
	r := NewRouter("/comments")
	r.Get("dup/", func(c *Context) (Response, error) {
		return HTML(textComponent("first")), nil
	})
	r.Get("other/", func(c *Context) (Response, error) { return nil, nil })
	r.Get("dup/", func(c *Context) (Response, error) {
		return HTML(textComponent("second")), nil
	})

	t.Run("last registration wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/dup/", nil))

		assert.Equal(t, "second", rec.Body.String())
	})

	t.Run("registry keeps one entry per key", func(t *testing.T) {
		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "dup/", routes[0].Pattern())
		assert.Equal(t, "other/", routes[1].Pattern())
	})

	t.Run("same pattern different methods coexist", func(t *testing.T) {
		rr := NewRouter("/x")
		rr.Get("a/", func(c *Context) (Response, error) { return nil, nil })
		rr.Post("a/", func(c *Context) (Response, error) { return nil, nil })
		assert.Len(t, rr.Routes(), 2)
	})
}

func TestRouterRoutesCopy(t *testing.T) {
	r := NewRouter("/comments")
	r.Get("a/", func(c *Context) (Response, error) { return nil, nil })

	routes := r.Routes()
	require.Len(t, routes, 1)
	routes[0] = nil

	again := r.Routes()
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}

func TestRouterRegistrationPanics(t *testing.T) {
	r := NewRouter("/comments")

	t.Run("empty path", func(t *testing.T) {
		assert.Panics(t, func() {
			r.Get("", func(c *Context) (Response, error) { return nil, nil })
		})
	})

	t.Run("nil handler", func(t *testing.T) {
		assert.Panics(t, func() { r.Get("x/", nil) })
	})

	t.Run("unbalanced braces", func(t *testing.T) {
		assert.Panics(t, func() {
			r.Get("x/{id/", func(c *Context) (Response, error) { return nil, nil })
		})
	})

	t.Run("duplicate parameter names", func(t *testing.T) {
		assert.Panics(t, func() {
			r.Get("{id}/{id}/", func(c *Context) (Response, error) { return nil, nil })
		})
	})
}

func TestRouterHandleNormalizesMethod(t *testing.T) {
	r := NewRouter("/comments")
	route := r.Handle("get", "lower/", func(c *Context) (Response, error) {
		return HTML(textComponent("ok")), nil
	})

	assert.Equal(t, http.MethodGet, route.Method())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/lower/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterPathNormalizationOnRegister(t *testing.T) {
	r := NewRouter("/comments")
	route := r.Get("///deep/list/", func(c *Context) (Response, error) {
		return HTML(textComponent("ok")), nil
	})

	assert.Equal(t, "deep/list/", route.Pattern())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/deep/list/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterLookup(t *testing.T) {
	r := NewRouter("/comments")
	route := r.Get("named/", func(c *Context) (Response, error) { return nil, nil })
	route.Name("comments.named")

	t.Run("found by name", func(t *testing.T) {
		assert.Same(t, route, r.Lookup("comments.named"))
	})

	t.Run("unknown name is nil", func(t *testing.T) {
		assert.Nil(t, r.Lookup("missing"))
	})

	t.Run("replaced route releases its name", func(t *testing.T) {
		rr := NewRouter("/x")
		rr.Get("a/", func(c *Context) (Response, error) { return nil, nil }).Name("old")
		rr.Get("a/", func(c *Context) (Response, error) { return nil, nil })
		assert.Nil(t, rr.Lookup("old"))
	})
}

func TestRouterMiddleware(t *testing.T) {
	t.Run("applied in registration order", func(t *testing.T) {
		r := NewRouter("/comments")
		var order []string
		mw := func(label string) MiddlewareFunc {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					order = append(order, label)
					next.ServeHTTP(w, req)
				})
			}
		}
		r.Use(mw("outer"), mw("inner"))
		r.Get("m/", func(c *Context) (Response, error) {
			order = append(order, "handler")
			return nil, nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/m/", nil))

		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("sees path parameters via Vars", func(t *testing.T) {
		r := NewRouter("/comments")
		var seen map[string]string
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				seen = Vars(req)
				next.ServeHTTP(w, req)
			})
		})
		r.Get("replies/{id}/", func(c *Context) (Response, error) { return nil, nil })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/replies/9/", nil))

		assert.Equal(t, map[string]string{"id": "9"}, seen)
	})

	t.Run("not applied to unmatched requests", func(t *testing.T) {
		r := NewRouter("/comments")
		var called bool
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				called = true
				next.ServeHTTP(w, req)
			})
		})
		r.Get("m/", func(c *Context) (Response, error) { return nil, nil })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/absent/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, called)
	})

	t.Run("wraps the guard rejection", func(t *testing.T) {
		r := NewRouter("/comments")
		var called bool
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				called = true
				next.ServeHTTP(w, req)
			})
		})
		r.Get("m/", func(c *Context) (Response, error) { return nil, nil })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/m/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, called)
	})
}

func TestRouterCustomHandlers(t *testing.T) {
	t.Run("not found handler", func(t *testing.T) {
		r := NewRouter("/comments")
		r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "custom not found", http.StatusNotFound)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/absent/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "custom not found")
	})

	t.Run("method not allowed handler keeps the allow header", func(t *testing.T) {
		r := NewRouter("/comments")
		r.Get("m/", func(c *Context) (Response, error) { return nil, nil })
		r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "custom method not allowed", http.StatusMethodNotAllowed)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodPost, "/comments/m/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET", rec.Header().Get("Allow"))
		assert.Contains(t, rec.Body.String(), "custom method not allowed")
	})

	t.Run("fragment required handler", func(t *testing.T) {
		r := NewRouter("/comments")
		r.Get("m/", func(c *Context) (Response, error) { return nil, nil })
		r.FragmentRequiredHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "ajax only", http.StatusUpgradeRequired)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/m/", nil))

		assert.Equal(t, http.StatusUpgradeRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "ajax only")
	})
}

func TestRouterErrorHandling(t *testing.T) {
	t.Run("plain error becomes 500", func(t *testing.T) {
		r := NewRouter("/comments")
		r.Get("boom/", func(c *Context) (Response, error) {
			return nil, errors.New("db unavailable")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/boom/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db unavailable")
	})

	t.Run("status carrying error keeps its status", func(t *testing.T) {
		r := NewRouter("/comments")
		r.Get("unsupported/", func(c *Context) (Response, error) {
			return nil, ErrUnsupportedMediaType
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/unsupported/", nil))

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("custom error handler receives the error", func(t *testing.T) {
		r := NewRouter("/comments")
		boom := errors.New("boom")
		var got error
		r.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
			got = err
			http.Error(w, "handled", http.StatusTeapot)
		}
		r.Get("boom/", func(c *Context) (Response, error) { return nil, boom })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/boom/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.ErrorIs(t, got, boom)
	})

	t.Run("guard sentinel from a handler takes the guard path", func(t *testing.T) {
		r := NewRouter("/comments")
		r.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
			t.Error("error handler must not see the guard sentinel")
		}
		r.Index(func(c *Context) (Response, error) {
			if !IsFragment(c.Request) {
				return nil, ErrFragmentRequired
			}
			return nil, nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// stubAdapter exercises the optional adapter capabilities: colon-style
// path parameters, a custom fragment marker, and trailing-slash-insensitive
// registration normalization.
type stubAdapter struct{}

func (stubAdapter) ParsePath(path string) (ParseResult, error) {
	var params []string
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			name := seg[1:]
			params = append(params, name)
			segments[i] = "{" + name + "}"
		}
	}
	return ParseResult{Pattern: strings.Join(segments, "/"), Params: params}, nil
}

func (stubAdapter) ContextArgs(r *http.Request) (ContextArgs, error) {
	return ContextArgs{CSRFToken: r.Header.Get("X-Stub-Token")}, nil
}

func (stubAdapter) NormalizePath(path string) string {
	return strings.Trim(path, "/")
}

func (stubAdapter) IsFragment(r *http.Request) bool {
	return r.Header.Get("X-Stub-Fragment") == "yes"
}

func TestRouterAdapterOverrides(t *testing.T) {
	r := NewRouter("/comments", WithAdapter(stubAdapter{}))
	var gotID, gotCSRF string
	r.Get("/replies/:id/", func(c *Context) (Response, error) {
		gotID = c.Param("id")
		gotCSRF = c.CSRF
		return HTML(textComponent("ok")), nil
	})

	t.Run("adapter path syntax translated", func(t *testing.T) {
		routes := r.Routes()
		require.Len(t, routes, 1)
		assert.Equal(t, "replies/{id}", routes[0].Pattern())
		assert.Equal(t, []string{"id"}, routes[0].Params())
	})

	t.Run("custom fragment marker honored", func(t *testing.T) {
		// The stub normalization trims trailing slashes, so the route
		// matches the bare path.
		req := httptest.NewRequest(http.MethodGet, "/comments/replies/7", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/comments/replies/7", nil)
		req.Header.Set("X-Stub-Fragment", "yes")
		req.Header.Set("X-Stub-Token", "tok")
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7", gotID)
		assert.Equal(t, "tok", gotCSRF)
	})
}

func TestRouterAdapterContextArgsError(t *testing.T) {
	r := NewRouter("/comments", WithAdapter(failingArgsAdapter{}))
	r.Get("x/", func(c *Context) (Response, error) {
		t.Error("handler must not run when context extraction fails")
		return nil, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, fragmentRequest(http.MethodGet, "/comments/x/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type failingArgsAdapter struct{ DefaultAdapter }

func (failingArgsAdapter) ContextArgs(_ *http.Request) (ContextArgs, error) {
	return ContextArgs{}, errors.New("session store down")
}

func TestRouterMatch(t *testing.T) {
	r := NewRouter("/comments")
	route := r.Get("replies/{id}/", func(c *Context) (Response, error) { return nil, nil })

	t.Run("successful match", func(t *testing.T) {
		var m RouteMatch
		ok := r.Match(fragmentRequest(http.MethodGet, "/comments/replies/3/", nil), &m)

		require.True(t, ok)
		assert.Same(t, route, m.Route)
		assert.NotNil(t, m.Handler)
		assert.Equal(t, map[string]string{"id": "3"}, m.Vars)
		assert.NoError(t, m.MatchErr)
	})

	t.Run("method mismatch", func(t *testing.T) {
		var m RouteMatch
		ok := r.Match(fragmentRequest(http.MethodDelete, "/comments/replies/3/", nil), &m)

		assert.False(t, ok)
		assert.ErrorIs(t, m.MatchErr, ErrMethodMismatch)
	})

	t.Run("no match", func(t *testing.T) {
		var m RouteMatch
		ok := r.Match(fragmentRequest(http.MethodGet, "/comments/absent/", nil), &m)

		assert.False(t, ok)
		assert.ErrorIs(t, m.MatchErr, ErrNotFound)
	})
}

func TestRouterCSRFInContext(t *testing.T) {
	r := NewRouter("/comments")
	var got string
	r.Get("c/", func(c *Context) (Response, error) {
		got = c.CSRF
		return nil, nil
	})

	req := fragmentRequest(http.MethodGet, "/comments/c/", nil)
	req.Header.Set("X-CSRF-Token", "tok-123")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "tok-123", got)
}
