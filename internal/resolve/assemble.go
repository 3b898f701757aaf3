package resolve

import (
	"shape-generator/internal/parse"
)

// PropertySignature is a single property of a generated shape.
// Immutable once assembled.
type PropertySignature struct {
	// Name is copied verbatim from the source property.
	Name string
	// Type is the rewritten output type.
	Type parse.TypeText
	// Optional carries the source property's ? marker unchanged.
	Optional bool
}

// ShapeDefinition is one generated interface declaration.
type ShapeDefinition struct {
	// Name is the generated shape name.
	Name string
	// Properties in source declaration order.
	Properties []PropertySignature
}

// ShapePair couples the two shapes generated for one entity class:
// the plain, relation-free variant and the full, relation-inclusive
// variant.
type ShapePair struct {
	// ClassName is the originating entity class.
	ClassName string
	// Plain holds only the non-relation properties.
	Plain ShapeDefinition
	// Full holds every property, relations rewritten.
	Full ShapeDefinition
}

// OutputModel is the complete result of a run: enums first, then shape
// pairs, both in first-seen order across units and declaration order
// within a unit. Constructed once per run, handed to emission, then
// discarded.
type OutputModel struct {
	Enums  []parse.EnumUnit
	Shapes []ShapePair
}

// RewrittenProperty couples an output property signature with the
// relation kind that produced it.
type RewrittenProperty struct {
	Signature PropertySignature
	Kind      RelationKind
}

// Assemble partitions rewritten properties into the plain and full
// shape definitions for one class. Both keep declaration order; a
// relation-free class yields two property-wise identical shapes, an
// expected outcome that is not deduplicated.
func Assemble(className, shapeName string, props []RewrittenProperty) ShapePair {
	pair := ShapePair{
		ClassName: className,
		Plain:     ShapeDefinition{Name: shapeName},
		Full:      ShapeDefinition{Name: shapeName + ShapeSuffix},
	}

	for _, p := range props {
		pair.Full.Properties = append(pair.Full.Properties, p.Signature)

		if p.Kind == RelationNone {
			pair.Plain.Properties = append(pair.Plain.Properties, p.Signature)
		}
	}

	return pair
}
