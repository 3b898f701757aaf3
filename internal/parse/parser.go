package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// NewParser creates a fresh tree-sitter parser configured for TypeScript.
// Each goroutine must use its own parser (not thread-safe).
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())

	return p
}

// File parses one TypeScript source file into a SourceUnit. Constructs
// other than class and enum declarations are ignored; malformed members
// degrade to skips, never errors.
func File(ctx context.Context, parser *sitter.Parser, source []byte, path string) (SourceUnit, error) {
	unit := SourceUnit{Path: path}

	if len(source) == 0 {
		return unit, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return unit, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		collectDeclaration(root.NamedChild(i), source, &unit)
	}

	return unit, nil
}

// collectDeclaration appends class and enum declarations to the unit,
// descending through export statements.
func collectDeclaration(node *sitter.Node, source []byte, unit *SourceUnit) {
	switch node.Type() {
	// "class" is the expression form, produced by anonymous default exports.
	case "class_declaration", "abstract_class_declaration", "class":
		unit.Classes = append(unit.Classes, parseClass(node, source))
	case "enum_declaration":
		unit.Enums = append(unit.Enums, parseEnum(node, source))
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			collectDeclaration(decl, source, unit)
		} else if value := node.ChildByFieldName("value"); value != nil {
			collectDeclaration(value, source, unit)
		}
	}
}

func parseClass(node *sitter.Node, source []byte) ClassUnit {
	cls := ClassUnit{}

	if name := node.ChildByFieldName("name"); name != nil {
		cls.Name = nodeText(name, source)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		// The TypeScript grammar names class fields public_field_definition
		// regardless of their accessibility modifier.
		case "public_field_definition", "field_definition":
			if prop, ok := parseProperty(member, source); ok {
				cls.Properties = append(cls.Properties, prop)
			}
		}
	}

	return cls
}

func parseProperty(node *sitter.Node, source []byte) (PropertyDecl, bool) {
	prop := PropertyDecl{}

	name := node.ChildByFieldName("name")
	if name == nil {
		return prop, false
	}

	prop.Name = nodeText(name, source)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "decorator":
			if dn := decoratorName(child, source); dn != "" {
				prop.Annotations = append(prop.Annotations, dn)
			}
		case "?":
			prop.Optional = true
		}
	}

	if annotation := node.ChildByFieldName("type"); annotation != nil && annotation.NamedChildCount() > 0 {
		prop.Type = parseType(annotation.NamedChild(0), source)
	}

	return prop, true
}

// decoratorName extracts the bare decorator identifier, unwrapping call
// and member expressions (@OneToMany(...), @orm.OneToMany).
func decoratorName(node *sitter.Node, source []byte) string {
	if node.NamedChildCount() == 0 {
		return ""
	}

	expr := node.NamedChild(0)

	if expr.Type() == "call_expression" {
		if fn := expr.ChildByFieldName("function"); fn != nil {
			expr = fn
		}
	}

	if expr.Type() == "member_expression" {
		if prop := expr.ChildByFieldName("property"); prop != nil {
			expr = prop
		}
	}

	return nodeText(expr, source)
}

// parseType builds the structured TypeText for a type node. Shapes the
// engine does not structure (unions, object literals, foreign generics)
// keep their raw text only.
func parseType(node *sitter.Node, source []byte) TypeText {
	raw := nodeText(node, source)

	switch node.Type() {
	case "predefined_type", "type_identifier":
		t := Named(raw)
		t.Raw = raw

		return t
	case "array_type":
		if node.NamedChildCount() > 0 {
			t := Collection(parseType(node.NamedChild(0), source))
			t.Raw = raw

			return t
		}
	case "generic_type":
		if t, ok := parseGeneric(node, source); ok {
			t.Raw = raw

			return t
		}
	case "parenthesized_type":
		if node.NamedChildCount() > 0 {
			t := parseType(node.NamedChild(0), source)
			t.Raw = raw

			return t
		}
	}

	return TypeText{Kind: TypeKindNamed, Raw: raw}
}

// parseGeneric structures the two wrapper generics the engine understands,
// Promise<T> and Array<T>. Anything else stays unstructured.
func parseGeneric(node *sitter.Node, source []byte) (TypeText, bool) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return TypeText{}, false
	}

	args := node.ChildByFieldName("type_arguments")
	if args == nil {
		args = childOfType(node, "type_arguments")
	}

	if args == nil || args.NamedChildCount() != 1 {
		return TypeText{}, false
	}

	switch nodeText(name, source) {
	case deferredWrapper:
		return Deferred(parseType(args.NamedChild(0), source)), true
	case "Array":
		return Collection(parseType(args.NamedChild(0), source)), true
	}

	return TypeText{}, false
}

func parseEnum(node *sitter.Node, source []byte) EnumUnit {
	enum := EnumUnit{}

	if name := node.ChildByFieldName("name"); name != nil {
		enum.Name = nodeText(name, source)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return enum
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "enum_assignment":
			m := EnumMember{}
			if n := member.ChildByFieldName("name"); n != nil {
				m.Name = nodeText(n, source)
			}

			if v := member.ChildByFieldName("value"); v != nil {
				m.Value = nodeText(v, source)
			}

			if m.Name != "" {
				enum.Members = append(enum.Members, m)
			}
		case "property_identifier", "string":
			enum.Members = append(enum.Members, EnumMember{Name: nodeText(member, source)})
		}
	}

	return enum
}

func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == typ {
			return child
		}
	}

	return nil
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
