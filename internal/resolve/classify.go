package resolve

import (
	"shape-generator/internal/common"
	"shape-generator/internal/parse"
)

// RelationKind classifies how a property references another entity.
// Derived per property, never stored on the source model.
type RelationKind int

const (
	// RelationNone - plain data field, type passes through unchanged.
	RelationNone RelationKind = iota
	// RelationEagerSingle - single related entity, present eagerly.
	RelationEagerSingle
	// RelationEagerCollection - collection of related entities.
	RelationEagerCollection
	// RelationLazySingle - single related entity behind the deferred wrapper.
	RelationLazySingle
)

// String returns a human-readable kind name.
func (k RelationKind) String() string {
	switch k {
	case RelationNone:
		return "none"
	case RelationEagerSingle:
		return "eager_single"
	case RelationEagerCollection:
		return "eager_collection"
	case RelationLazySingle:
		return "lazy_single"
	default:
		return common.UnknownStr
	}
}

// relationMarkers are the four association decorators that mark a
// property as a relation reference.
var relationMarkers = []string{
	"OneToMany",
	"ManyToOne",
	"OneToOne",
	"ManyToMany",
}

// Classify determines a property's relation kind from its annotation
// set and declared type structure. The deferred wrapper always means a
// lazily resolved single entity, regardless of association arity.
func Classify(prop *parse.PropertyDecl) RelationKind {
	if !isRelation(prop) {
		return RelationNone
	}

	switch prop.Type.Kind {
	case parse.TypeKindDeferred:
		return RelationLazySingle
	case parse.TypeKindCollection:
		return RelationEagerCollection
	default:
		return RelationEagerSingle
	}
}

func isRelation(prop *parse.PropertyDecl) bool {
	for _, marker := range relationMarkers {
		if prop.HasAnnotation(marker) {
			return true
		}
	}

	return false
}
