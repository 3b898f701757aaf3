package resolve

import (
	"fmt"

	"shape-generator/internal/common"
	"shape-generator/internal/diagnostic"
	"shape-generator/internal/match"
	"shape-generator/internal/parse"
)

// Config controls a resolution run.
type Config struct {
	// UsePrefix prepends "I" to every generated shape name.
	UsePrefix bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{UsePrefix: true}
}

// Result is the complete outcome of a run, handed to emission.
type Result struct {
	// Model holds the enums and shape pairs in output order.
	Model OutputModel
	// Table is the completed symbol table, used for import wiring.
	Table SymbolTable
	// Diagnostics contains all warnings and notes from the run.
	Diagnostics diagnostic.Diagnostics
}

// Resolve runs the two-pass engine over the parsed units. Pass 1
// builds the symbol table and collects enums across all units; pass 2
// classifies, rewrites, and assembles every named class, reading the
// completed table. Unresolved relation targets degrade to the opaque
// marker with a warning; only an empty input set or a symbol collision
// is an error.
func Resolve(units []parse.SourceUnit, cfg Config) (*Result, error) {
	if common.IsEmpty(units) {
		return nil, ErrNoInput
	}

	table, err := BuildSymbolTable(units, cfg.UsePrefix)
	if err != nil {
		return nil, err
	}

	res := &Result{Table: table}

	for _, unit := range units {
		res.Model.Enums = append(res.Model.Enums, unit.Enums...)
	}

	rw := NewRewriter(table)

	for _, unit := range units {
		for i := range unit.Classes {
			class := &unit.Classes[i]
			if !class.IsNamed() {
				res.Diagnostics.AddInfo("skip-anonymous",
					fmt.Sprintf("skipping class without a resolvable name in %s", unit.Path), "", "")

				continue
			}

			pair, classDiags := resolveClass(class, rw)

			res.Model.Shapes = append(res.Model.Shapes, pair)
			res.Diagnostics.Merge(classDiags)
		}
	}

	return res, nil
}

// resolveClass classifies, rewrites, and assembles a single class,
// returning its shape pair together with the diagnostics the class
// produced.
func resolveClass(class *parse.ClassUnit, rw *Rewriter) (ShapePair, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	shapeName, _ := rw.table.ShapeName(class.Name)
	props := make([]RewrittenProperty, 0, len(class.Properties))

	for i := range class.Properties {
		prop := &class.Properties[i]
		kind := Classify(prop)

		typ, resolved := rw.Rewrite(prop, kind)
		if !resolved {
			msg := fmt.Sprintf("cannot resolve relation target %q, emitting %s", prop.Type.String(), parse.Opaque().String())
			if hint, ok := match.Suggest(prop.Type.Leaf().Name, rw.table.Classes()); ok {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}

			diags.AddWarning("unresolved-target", msg, class.Name, prop.Name)
		}

		props = append(props, RewrittenProperty{
			Signature: PropertySignature{Name: prop.Name, Type: typ, Optional: prop.Optional},
			Kind:      kind,
		})
	}

	pair := Assemble(class.Name, shapeName, props)

	diags.AddInfo("class-generated",
		fmt.Sprintf("%s -> %s, %s", class.Name, pair.Plain.Name, pair.Full.Name),
		class.Name, "")

	return pair, diags
}
