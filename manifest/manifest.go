// Package manifest renders the routes mounted under a fragment router
// into a YAML document. The output is deterministic, so it can be
// committed next to the code and diffed when routes change, or served
// for tooling that discovers fragment endpoints.
package manifest

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/huelabs/hue/fragment"
)

// Document describes one mounted router: its prefix and every
// registered route.
type Document struct {
	// Name labels the mount, e.g. the view name.
	Name string `yaml:"name"`

	// Prefix is the canonical mount prefix, e.g. "/comments/".
	Prefix string `yaml:"prefix"`

	Routes []RouteInfo `yaml:"routes"`
}

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method  string `yaml:"method"`
	Pattern string `yaml:"pattern"`

	// Name is the route's assigned name, when it has one.
	Name string `yaml:"name,omitempty"`

	// Fragment reports whether the route is AJAX-guarded.
	Fragment bool `yaml:"fragment"`

	Params []ParamInfo `yaml:"params,omitempty"`
}

// ParamInfo describes one path parameter.
type ParamInfo struct {
	Name string `yaml:"name"`

	// Kind is the macro name constraining the parameter, "string" for
	// unconstrained parameters, or "pattern" for raw regular
	// expressions.
	Kind string `yaml:"kind"`

	// Pattern carries the raw regular expression when Kind is
	// "pattern".
	Pattern string `yaml:"pattern,omitempty"`
}

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// Build collects the router's routes into a Document, sorted by pattern
// and then method so output is stable across registration orders.
func Build(name string, r *fragment.Router) Document {
	macros := make(map[string]struct{})
	for _, m := range fragment.MacroNames() {
		macros[m] = struct{}{}
	}

	routes := r.Routes()
	infos := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		infos = append(infos, RouteInfo{
			Method:   route.Method(),
			Pattern:  route.Pattern(),
			Name:     route.GetName(),
			Fragment: route.IsFragment(),
			Params:   parseParams(route.Pattern(), macros),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Pattern != infos[j].Pattern {
			return infos[i].Pattern < infos[j].Pattern
		}
		return infos[i].Method < infos[j].Method
	})

	return Document{
		Name:   name,
		Prefix: r.Prefix(),
		Routes: infos,
	}
}

// parseParams extracts parameter descriptions from a route pattern.
func parseParams(pattern string, macros map[string]struct{}) []ParamInfo {
	var params []ParamInfo

	for _, match := range pathVarRegexp.FindAllString(pattern, -1) {
		inner := match[1 : len(match)-1]
		varName, constraint, _ := strings.Cut(inner, ":")

		info := ParamInfo{Name: varName, Kind: "string"}
		if constraint != "" {
			if _, ok := macros[constraint]; ok {
				info.Kind = constraint
			} else {
				info.Kind = "pattern"
				info.Pattern = constraint
			}
		}

		params = append(params, info)
	}

	return params
}

// Generate marshals the router's manifest to YAML.
func Generate(name string, r *fragment.Router) ([]byte, error) {
	doc := Build(name, r)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest: marshal: %w", err)
	}

	return data, nil
}

// Write generates the manifest and writes it to w.
func Write(w io.Writer, name string, r *fragment.Router) error {
	data, err := Generate(name, r)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Handler returns an http.Handler serving the manifest as YAML. The
// document is generated on first request and cached; registration is
// finished by the time a router serves, so the routes cannot change
// underneath the cache.
func Handler(name string, r *fragment.Router) http.Handler {
	var (
		once sync.Once
		data []byte
		err  error
	)

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			data, err = Generate(name, r)
		})
		if err != nil {
			http.Error(w, "failed to serialize route manifest", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}
