package fragment

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// pathRegexp is the compiled matcher for one route: the mount prefix plus
// the route pattern, anchored at both ends.
type pathRegexp struct {
	// template is the mount-relative pattern as registered.
	template string
	// regexp matches the full request path, prefix included.
	regexp *regexp.Regexp
	// reverse is the full path template with %s placeholders for Sprintf.
	reverse string
	// varsN are the parameter names in order of appearance.
	varsN []string
	// varsR validate individual parameter values during URL building.
	varsR []*regexp.Regexp
}

// newPathRegexp compiles a route pattern anchored under a mount prefix.
// The prefix must be in the canonical "/prefix/" form. Placeholders use
// the {name} / {name:constraint} syntax; a parameter without a constraint
// matches a single path segment.
func newPathRegexp(prefix, tpl string) (*pathRegexp, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return nil, err
	}

	const defaultPattern = "[^/]+"

	var (
		pattern bytes.Buffer
		reverse bytes.Buffer
		varsN   []string
		varsR   []*regexp.Regexp
		end     int
	)

	pattern.WriteByte('^')
	pattern.WriteString(regexp.QuoteMeta(prefix))
	reverse.WriteString(strings.ReplaceAll(prefix, "%", "%%"))

	for i := 0; i < len(idxs); i += 2 {
		// Literal text between placeholders.
		raw := tpl[end:idxs[i]]
		end = idxs[i+1]

		parts := strings.SplitN(tpl[idxs[i]+1:end-1], ":", 2)
		name := parts[0]
		patt := defaultPattern
		if len(parts) == 2 {
			patt = expandMacro(parts[1])
		}

		if name == "" {
			return nil, fmt.Errorf("fragment: missing parameter name in %q from %q", tpl[idxs[i]:end], tpl)
		}

		fmt.Fprintf(&pattern, "%s(%s)", regexp.QuoteMeta(raw), patt)
		reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))
		reverse.WriteString("%s")

		varN, err := regexp.Compile(fmt.Sprintf("^%s$", patt))
		if err != nil {
			return nil, fmt.Errorf("fragment: invalid pattern %q in parameter %q: %w", patt, name, err)
		}

		varsN = append(varsN, name)
		varsR = append(varsR, varN)
	}

	// Remaining literal text after the last placeholder.
	raw := tpl[end:]
	pattern.WriteString(regexp.QuoteMeta(raw))
	pattern.WriteByte('$')
	reverse.WriteString(strings.ReplaceAll(raw, "%", "%%"))

	reg, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, err
	}

	if err := checkDuplicateVars(varsN); err != nil {
		return nil, err
	}

	return &pathRegexp{
		template: tpl,
		regexp:   reg,
		reverse:  reverse.String(),
		varsN:    varsN,
		varsR:    varsR,
	}, nil
}

// match reports whether the compiled regexp matches the given request path.
func (p *pathRegexp) match(path string) bool {
	return p.regexp.MatchString(path)
}

// setVars extracts parameter values from path and writes them into dst.
// Returns false if the path does not match.
func (p *pathRegexp) setVars(path string, dst map[string]string) bool {
	matches := p.regexp.FindStringSubmatch(path)
	if matches == nil {
		return false
	}
	for i, name := range p.varsN {
		if i+1 < len(matches) {
			dst[name] = matches[i+1]
		}
	}
	return true
}

// url builds the full mounted path from the reverse template and the given
// parameter values. Every parameter must be present and match its
// constraint.
func (p *pathRegexp) url(values map[string]string) (string, error) {
	urlValues := make([]any, len(p.varsN))
	for i, name := range p.varsN {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("fragment: missing route parameter %q", name)
		}
		if !p.varsR[i].MatchString(v) {
			return "", fmt.Errorf("fragment: parameter %q doesn't match, expected %q", name, p.varsR[i].String())
		}
		urlValues[i] = v
	}
	return fmt.Sprintf(p.reverse, urlValues...), nil
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("fragment: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("fragment: unbalanced braces in %q", s)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any parameter name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("fragment: duplicated route parameter %q", v)
		}
		seen[v] = true
	}
	return nil
}
