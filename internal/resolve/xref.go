package resolve

import (
	"sort"

	"shape-generator/internal/parse"
)

// References returns the distinct generated names a shape pair's
// property types mention, excluding the pair's own names, sorted for
// deterministic import rendering. Structured types match on their leaf
// name under any collection or deferred wrappers; types the parser
// left unstructured fall back to an identifier scan of their source
// text. Only per-class emission calls this, the aggregate layout needs
// no cross-artifact wiring.
func References(pair ShapePair, table SymbolTable) []string {
	seen := make(map[string]bool)

	collect := func(shape ShapeDefinition) {
		for _, prop := range shape.Properties {
			for _, name := range mentionedNames(prop.Type) {
				if !table.KnownName(name) {
					continue
				}

				if name == pair.Plain.Name || name == pair.Full.Name {
					continue
				}

				seen[name] = true
			}
		}
	}

	collect(pair.Plain)
	collect(pair.Full)

	refs := make([]string, 0, len(seen))
	for name := range seen {
		refs = append(refs, name)
	}

	sort.Strings(refs)

	return refs
}

func mentionedNames(t parse.TypeText) []string {
	leaf := t.Leaf()
	if leaf.IsNamed() {
		return []string{leaf.Name}
	}

	if leaf.Raw != "" {
		return identifiers(leaf.Raw)
	}

	return nil
}

// identifiers extracts candidate type names from unstructured source
// text, e.g. the arguments of a foreign generic.
func identifiers(text string) []string {
	var names []string

	start := -1
	for i, r := range text {
		if isIdentRune(r, start >= 0) {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			names = append(names, text[start:i])
			start = -1
		}
	}

	if start >= 0 {
		names = append(names, text[start:])
	}

	return names
}

func isIdentRune(r rune, continuation bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		return true
	case r >= '0' && r <= '9':
		return continuation
	default:
		return false
	}
}
