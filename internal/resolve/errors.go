package resolve

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrNoInput indicates a run started with zero parsed units.
	ErrNoInput = errors.New("resolve: no input units")
	// ErrSymbolCollision indicates two declarations produced the same
	// output name.
	ErrSymbolCollision = errors.New("resolve: symbol collision")
)

// CollisionError reports an output name claimed by two declarations.
// A class claims both its plain and its full shape name, an enum
// claims its own name; any overlap between the claims collides.
type CollisionError struct {
	Class string // declaration whose claim collided
	Prior string // declaration that already owns the name
	Shape string // contested output name
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("resolve: declarations %q and %q both produce output name %q", e.Class, e.Prior, e.Shape)
}

// Is reports whether the target matches the sentinel error for CollisionError.
func (e *CollisionError) Is(target error) bool {
	return target == ErrSymbolCollision
}

// NewCollisionError creates a new CollisionError.
func NewCollisionError(class, prior, shape string) *CollisionError {
	return &CollisionError{
		Class: class,
		Prior: prior,
		Shape: shape,
	}
}
