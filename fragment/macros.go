package fragment

// paramMacros maps macro names to regular expression patterns. Macros are
// used in route parameter definitions with the {name:macro} syntax; a
// name that is not a known macro is treated as a raw regular expression.
//
// The "path" macro is the only one that matches across slashes; every
// other parameter is confined to a single path segment.
var paramMacros = map[string]string{
	// RFC 4122 UUID, e.g. 550e8400-e29b-41d4-a716-446655440000.
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	// ISO 8601 calendar date, e.g. 2024-01-15.
	"date": `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":  `[0-9a-fA-F]+`,
	// Greedy remainder match, including slashes.
	"path": `.+`,
}

// expandMacro resolves a {name:pattern} constraint: a known macro name
// yields its pattern, anything else passes through as a raw regexp.
func expandMacro(pattern string) string {
	if p, ok := paramMacros[pattern]; ok {
		return p
	}
	return pattern
}

// MacroNames returns the names of the built-in parameter macros.
func MacroNames() []string {
	names := make([]string, 0, len(paramMacros))
	for name := range paramMacros {
		names = append(names, name)
	}
	return names
}
