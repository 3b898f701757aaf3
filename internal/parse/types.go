package parse

import (
	"slices"

	"shape-generator/internal/common"
)

// TypeKind represents the structural kind of a declared type.
type TypeKind int

const (
	TypeKindNamed      TypeKind = iota // identifier or predefined type (Profile, number)
	TypeKindCollection                 // T[] or Array<T>
	TypeKindDeferred                   // Promise<T>
	TypeKindOpaque                     // fallback for unresolvable relation targets
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindNamed:
		return "named"
	case TypeKindCollection:
		return "collection"
	case TypeKindDeferred:
		return "deferred"
	case TypeKindOpaque:
		return "opaque"
	default:
		return common.UnknownStr
	}
}

const (
	// deferredWrapper is the generic wrapper marking a lazily resolved value.
	deferredWrapper = "Promise"
	// opaqueMarker is the emitted type for relation targets that cannot be resolved.
	opaqueMarker = "unknown"
)

// TypeText is the structured form of a property's declared type. It is
// built once by the parser and never re-derived from text afterwards.
//
// Parsed nodes keep the exact source text in Raw so untouched types
// round-trip byte-exactly; rewritten nodes leave Raw empty and render
// canonically from their structure.
type TypeText struct {
	Kind TypeKind  // structural kind
	Name string    // for Named: the identifier; empty when the source shape was not recognized
	Elem *TypeText // for Collection and Deferred: the wrapped type
	Raw  string    // exact source text, empty on rewritten nodes
}

// Named returns a TypeText referring to an identifier or predefined type.
func Named(name string) TypeText {
	return TypeText{Kind: TypeKindNamed, Name: name}
}

// Collection returns a TypeText wrapping elem as an array type.
func Collection(elem TypeText) TypeText {
	return TypeText{Kind: TypeKindCollection, Elem: &elem}
}

// Deferred returns a TypeText wrapping inner in the deferred-value wrapper.
func Deferred(inner TypeText) TypeText {
	return TypeText{Kind: TypeKindDeferred, Elem: &inner}
}

// Opaque returns the fallback TypeText for unresolvable relation targets.
func Opaque() TypeText {
	return TypeText{Kind: TypeKindOpaque}
}

// String renders the type as TypeScript source text. Parsed nodes
// reproduce their original text; rewritten nodes render canonically.
func (t TypeText) String() string {
	if t.Raw != "" {
		return t.Raw
	}

	switch t.Kind {
	case TypeKindCollection:
		if t.Elem != nil {
			return t.Elem.String() + "[]"
		}
	case TypeKindDeferred:
		if t.Elem != nil {
			return deferredWrapper + "<" + t.Elem.String() + ">"
		}
	case TypeKindNamed:
		if t.Name != "" {
			return t.Name
		}
	}

	return opaqueMarker
}

// IsNamed returns true if this type is a plain identifier reference.
func (t TypeText) IsNamed() bool {
	return t.Kind == TypeKindNamed && t.Name != ""
}

// Leaf returns the innermost type under any collection or deferred wrappers.
func (t TypeText) Leaf() TypeText {
	cur := t
	for cur.Elem != nil && (cur.Kind == TypeKindCollection || cur.Kind == TypeKindDeferred) {
		cur = *cur.Elem
	}

	return cur
}

// PropertyDecl describes a single class property as parsed from source.
type PropertyDecl struct {
	Name        string   // property name
	Type        TypeText // structured declared type
	Optional    bool     // true when the property carries the ? marker
	Annotations []string // decorator names applied to the property, in source order
}

// HasAnnotation returns true if the property carries the named decorator.
func (p *PropertyDecl) HasAnnotation(name string) bool {
	return slices.Contains(p.Annotations, name)
}

// ClassUnit is a parsed class declaration. Read-only to the engine.
type ClassUnit struct {
	Name       string         // class name, empty for anonymous declarations
	Properties []PropertyDecl // in declaration order
}

// IsNamed returns true if the class has a resolvable name.
func (c *ClassUnit) IsNamed() bool {
	return c.Name != ""
}

// EnumMember is a single enum member with its raw initializer text.
type EnumMember struct {
	Name  string // member name
	Value string // raw initializer text including quoting, empty when absent
}

// EnumUnit is a parsed enum declaration, passed through to the output unchanged.
type EnumUnit struct {
	Name    string
	Members []EnumMember
}

// SourceUnit is one parsed source file.
type SourceUnit struct {
	Path    string      // file path as discovered
	Classes []ClassUnit // in declaration order
	Enums   []EnumUnit  // in declaration order
}
