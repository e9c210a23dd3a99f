package fragment

import (
	"path"
	"strings"
)

// NormalizePath returns the canonical registration form of a route path:
// every leading slash is stripped and the rest is kept verbatim, trailing
// slash included. The operation is idempotent.
//
//	NormalizePath("/comments/")  // "comments/"
//	NormalizePath("comments/")   // "comments/"
//	NormalizePath("///x")        // "x"
//	NormalizePath("/")           // ""
//
// Routers apply this policy unless their adapter implements PathNormalizer.
func NormalizePath(p string) string {
	return strings.TrimLeft(p, "/")
}

// cleanMountPrefix canonicalizes a router mount prefix into the
// "/prefix/" form used to anchor route patterns: slashes are trimmed from
// both ends and single slashes restored around the remainder. The root
// mount is "/".
func cleanMountPrefix(prefix string) string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

// cleanPath returns the canonical path for p, eliminating . and .. elements
// per RFC 3986 Section 5.2.4 (remove dot segments).
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
