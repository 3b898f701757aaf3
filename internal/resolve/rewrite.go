package resolve

import (
	"shape-generator/internal/parse"
)

// Rewriter substitutes entity names for generated shape names in
// relation property types. Rewriting is pure name substitution driven
// by the symbol table: it performs no semantic checking and never
// fails. An unresolved target degrades to the opaque marker, the
// original entity name would be meaningless in the output namespace.
type Rewriter struct {
	table SymbolTable
}

// NewRewriter creates a Rewriter over a completed symbol table.
func NewRewriter(table SymbolTable) *Rewriter {
	return &Rewriter{table: table}
}

// Rewrite produces the output type for a property given its relation
// kind. The second return is false when a relation target could not be
// resolved and the opaque marker was substituted.
func (r *Rewriter) Rewrite(prop *parse.PropertyDecl, kind RelationKind) (parse.TypeText, bool) {
	switch kind {
	case RelationEagerSingle:
		return r.resolveEntity(prop.Type)
	case RelationEagerCollection:
		elem, ok := r.resolveEntity(elemOf(prop.Type))

		return parse.Collection(elem), ok
	case RelationLazySingle:
		inner, ok := r.resolveInner(elemOf(prop.Type))

		return parse.Deferred(inner), ok
	default:
		// Plain fields keep their declared textual form, independent of
		// relation logic.
		return prop.Type, true
	}
}

// resolveEntity maps a named entity reference to its full-shape name.
func (r *Rewriter) resolveEntity(t parse.TypeText) (parse.TypeText, bool) {
	leaf := t.Leaf()
	if leaf.IsNamed() {
		if full, ok := r.table.FullShapeName(leaf.Name); ok {
			return parse.Named(full), true
		}
	}

	return parse.Opaque(), false
}

// resolveInner rewrites the wrapper's type argument, preserving an
// inner collection when the lazy relation resolves to many entities.
func (r *Rewriter) resolveInner(t parse.TypeText) (parse.TypeText, bool) {
	if t.Kind == parse.TypeKindCollection {
		elem, ok := r.resolveEntity(elemOf(t))

		return parse.Collection(elem), ok
	}

	return r.resolveEntity(t)
}

func elemOf(t parse.TypeText) parse.TypeText {
	if t.Elem != nil {
		return *t.Elem
	}

	return parse.TypeText{}
}
