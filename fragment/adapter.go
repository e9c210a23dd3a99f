package fragment

import (
	"net/http"
	"strings"
)

// ParseResult is the outcome of translating a route path through an
// adapter: the pattern in the canonical {name} syntax understood by the
// route compiler, and the parameter names in order of appearance. It is
// consumed once during registration and not retained.
type ParseResult struct {
	Pattern string
	Params  []string
}

// ContextArgs carries the per-request values an adapter extracts from the
// host framework for the handler Context.
type ContextArgs struct {
	// CSRFToken is the anti-forgery token associated with the request,
	// or empty when the host has none. The router never generates
	// tokens; it only transports what the adapter extracts.
	CSRFToken string
}

// Adapter translates host-framework conventions into the router's
// contract. ParsePath converts the adapter's path syntax into the
// canonical pattern form; ContextArgs extracts per-request metadata.
// Both are required. A ParsePath failure during registration is a
// programming error and panics.
//
// Adapters may additionally implement PathNormalizer and FragmentChecker
// to replace the default normalization and AJAX-detection policies.
type Adapter interface {
	ParsePath(path string) (ParseResult, error)
	ContextArgs(r *http.Request) (ContextArgs, error)
}

// PathNormalizer is an optional Adapter capability overriding the
// registration-time path normalization. Implementations must be
// idempotent.
type PathNormalizer interface {
	NormalizePath(path string) string
}

// FragmentChecker is an optional Adapter capability overriding how the
// router decides whether a request is a fragment request.
type FragmentChecker interface {
	IsFragment(r *http.Request) bool
}

// IsFragment reports whether the request carries one of the two AJAX
// headers that mark a fragment request: "X-Requested-With:
// XMLHttpRequest" (the common AJAX convention) or "X-Alpine-Request:
// true" (sent by Alpine AJAX). This is the default policy used when the
// adapter does not implement FragmentChecker.
func IsFragment(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return r.Header.Get("X-Alpine-Request") == "true"
}

// DefaultAdapter implements Adapter for the canonical pattern syntax. It
// is the adapter used when a Router is built without WithAdapter.
//
// ParsePath accepts {name} and {name:constraint} placeholders as-is and
// extracts the parameter names. ContextArgs reads the anti-forgery token
// from the X-CSRF-Token header, falling back to the csrftoken cookie;
// set CSRFToken to replace that scheme.
type DefaultAdapter struct {
	// CSRFToken extracts the anti-forgery token from a request. When
	// nil, the header/cookie scheme described above is used.
	CSRFToken func(r *http.Request) string
}

// ParsePath validates the canonical placeholder syntax and collects the
// parameter names. The pattern passes through unchanged.
func (DefaultAdapter) ParsePath(path string) (ParseResult, error) {
	idxs, err := braceIndices(path)
	if err != nil {
		return ParseResult{}, err
	}

	var params []string
	for i := 0; i < len(idxs); i += 2 {
		name := path[idxs[i]+1 : idxs[i+1]-1]
		if j := strings.Index(name, ":"); j >= 0 {
			name = name[:j]
		}
		params = append(params, name)
	}

	return ParseResult{Pattern: path, Params: params}, nil
}

// ContextArgs extracts the anti-forgery token for the handler Context.
func (a DefaultAdapter) ContextArgs(r *http.Request) (ContextArgs, error) {
	if a.CSRFToken != nil {
		return ContextArgs{CSRFToken: a.CSRFToken(r)}, nil
	}
	return ContextArgs{CSRFToken: headerOrCookieToken(r)}, nil
}

// headerOrCookieToken reads the anti-forgery token from the X-CSRF-Token
// header or, failing that, the csrftoken cookie.
func headerOrCookieToken(r *http.Request) string {
	if v := r.Header.Get("X-CSRF-Token"); v != "" {
		return v
	}
	if c, err := r.Cookie("csrftoken"); err == nil {
		return c.Value
	}
	return ""
}
