package resolve

import (
	"shape-generator/internal/parse"
)

const (
	// ShapePrefix is prepended to class names when prefixing is enabled.
	ShapePrefix = "I"
	// ShapeSuffix distinguishes the relation-inclusive full shape.
	ShapeSuffix = "Data"
)

// SymbolTable maps entity class names to generated shape names. It is
// built completely in pass 1 and read-only afterwards; pass 2 receives
// it as context, never as shared mutable state.
type SymbolTable struct {
	shapes map[string]string // class name -> plain shape name
	enums  map[string]bool   // enum names seen in pass 1
	origin map[string]string // every output name -> declaring class or enum
	order  []string          // class names in first-seen order
}

// BuildSymbolTable runs pass 1 over all units: every named class is
// mapped to its shape name and every enum name is recorded. Classes
// without a resolvable name get no entry and no error, they cannot be
// referenced by relations anyway. A duplicate output name aborts with
// a CollisionError.
func BuildSymbolTable(units []parse.SourceUnit, usePrefix bool) (SymbolTable, error) {
	table := SymbolTable{
		shapes: make(map[string]string),
		enums:  make(map[string]bool),
		origin: make(map[string]string),
	}

	for _, unit := range units {
		for i := range unit.Classes {
			class := &unit.Classes[i]
			if !class.IsNamed() {
				continue
			}

			shape := class.Name
			if usePrefix {
				shape = ShapePrefix + class.Name
			}

			// A class claims two output names. Both must be free: the
			// plain shape of one class can equal the full shape of
			// another (User vs UserData), or an enum name.
			for _, name := range []string{shape, shape + ShapeSuffix} {
				if prior, taken := table.origin[name]; taken {
					return SymbolTable{}, NewCollisionError(class.Name, prior, name)
				}
			}

			table.shapes[class.Name] = shape
			table.origin[shape] = class.Name
			table.origin[shape+ShapeSuffix] = class.Name
			table.order = append(table.order, class.Name)
		}

		for _, enum := range unit.Enums {
			if enum.Name == "" {
				continue
			}

			if prior, taken := table.origin[enum.Name]; taken {
				return SymbolTable{}, NewCollisionError(enum.Name, prior, enum.Name)
			}

			table.enums[enum.Name] = true
			table.origin[enum.Name] = enum.Name
		}
	}

	return table, nil
}

// ShapeName returns the plain shape name mapped for a class.
func (t SymbolTable) ShapeName(class string) (string, bool) {
	shape, ok := t.shapes[class]

	return shape, ok
}

// FullShapeName returns the relation-inclusive shape name for a class.
func (t SymbolTable) FullShapeName(class string) (string, bool) {
	shape, ok := t.shapes[class]
	if !ok {
		return "", false
	}

	return shape + ShapeSuffix, true
}

// KnownName reports whether name is one of the generated output names:
// a plain shape name, a full shape name, or an enum name.
func (t SymbolTable) KnownName(name string) bool {
	_, ok := t.origin[name]

	return ok
}

// IsEnum reports whether name is an enum collected in pass 1.
func (t SymbolTable) IsEnum(name string) bool {
	return t.enums[name]
}

// Classes returns the mapped class names in first-seen order.
func (t SymbolTable) Classes() []string {
	return t.order
}

// Len returns the number of mapped classes.
func (t SymbolTable) Len() int {
	return len(t.shapes)
}
