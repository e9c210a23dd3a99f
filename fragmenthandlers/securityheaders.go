package fragmenthandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/huelabs/hue/fragment"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption is
// not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the Security Headers middleware behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options: nosniff
	// header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY", "SAMEORIGIN", or empty string.
	// Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge sets the max-age directive for the Strict-Transport-Security
	// header in seconds. When zero, the header is not set.
	HSTSMaxAge int

	// HSTSIncludeSubDomains appends the includeSubDomains directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSIncludeSubDomains bool

	// HSTSPreload appends the preload directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSPreload bool

	// CrossOriginOpenerPolicy sets the Cross-Origin-Opener-Policy header.
	// When empty, the header is not set.
	CrossOriginOpenerPolicy string

	// ContentSecurityPolicy sets the Content-Security-Policy header.
	// When empty, the header is not set.
	ContentSecurityPolicy string

	// PermissionsPolicy sets the Permissions-Policy header.
	// When empty, the header is not set.
	PermissionsPolicy string
}

// headerPair is one precomputed response header.
type headerPair struct {
	name  string
	value string
}

// SecurityHeadersMiddleware returns a middleware that sets common security
// response headers. The header set is computed once at construction and
// written before calling the next handler.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value other
// than "DENY", "SAMEORIGIN", or empty string.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (fragment.MiddlewareFunc, error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return nil, ErrInvalidFrameOption
	}

	var headers []headerPair

	if !cfg.DisableContentTypeNosniff {
		headers = append(headers, headerPair{"X-Content-Type-Options", "nosniff"})
	}

	frameOption := cfg.FrameOption
	if frameOption == "" {
		frameOption = "DENY"
	}
	headers = append(headers, headerPair{"X-Frame-Options", frameOption})

	referrerPolicy := cfg.ReferrerPolicy
	if referrerPolicy == "" {
		referrerPolicy = "strict-origin-when-cross-origin"
	}
	headers = append(headers, headerPair{"Referrer-Policy", referrerPolicy})

	if cfg.HSTSMaxAge > 0 {
		hstsValue := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hstsValue += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hstsValue += "; preload"
		}
		headers = append(headers, headerPair{"Strict-Transport-Security", hstsValue})
	}

	if cfg.CrossOriginOpenerPolicy != "" {
		headers = append(headers, headerPair{"Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy})
	}

	if cfg.ContentSecurityPolicy != "" {
		headers = append(headers, headerPair{"Content-Security-Policy", cfg.ContentSecurityPolicy})
	}

	if cfg.PermissionsPolicy != "" {
		headers = append(headers, headerPair{"Permissions-Policy", cfg.PermissionsPolicy})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, p := range headers {
				h.Set(p.name, p.value)
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
