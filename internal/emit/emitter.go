package emit

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"

	"shape-generator/internal/common"
	"shape-generator/internal/parse"
	"shape-generator/internal/resolve"
)

// tsExt is the extension of every generated file.
const tsExt = ".ts"

// ErrFilenameCollision indicates two declarations mapped to the same
// per-class output file.
var ErrFilenameCollision = errors.New("emit: filename collision")

// Layout selects how generated declarations are distributed over files.
type Layout int

const (
	// LayoutAggregate writes every declaration into a single file.
	LayoutAggregate Layout = iota
	// LayoutPerClass writes one file per declaration plus an index barrel.
	LayoutPerClass
)

// String returns a human-readable representation of the Layout.
func (l Layout) String() string {
	switch l {
	case LayoutAggregate:
		return "aggregate"
	case LayoutPerClass:
		return "per-class"
	default:
		return common.UnknownStr
	}
}

// Config holds configuration for shape emission.
type Config struct {
	// Layout selects aggregate or per-class file output.
	Layout Layout
	// AggregateName is the file name used for LayoutAggregate output.
	AggregateName string
	// Header enables the generated-file banner comment.
	Header bool
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{
		Layout:        LayoutAggregate,
		AggregateName: "shapes" + tsExt,
		Header:        true,
	}
}

// Emitter renders an output model into TypeScript source files.
type Emitter struct {
	config Config
}

// NewEmitter creates a new Emitter with the given configuration.
func NewEmitter(config Config) *Emitter {
	return &Emitter{config: config}
}

// EmittedFile represents a generated TypeScript source file.
type EmittedFile struct {
	// Filename is relative to the output root (e.g. "order-item.ts").
	Filename string
	// Content is the rendered TypeScript source.
	Content []byte
}

// Emit renders the model according to the configured layout. The
// symbol table backs cross-file import resolution and is only
// consulted in per-class layout.
func (e *Emitter) Emit(model resolve.OutputModel, table resolve.SymbolTable) ([]EmittedFile, error) {
	if e.config.Layout == LayoutPerClass {
		return e.emitPerClass(model, table)
	}

	return e.emitAggregate(model)
}

// emitAggregate renders the whole model into one file: enums first in
// first-seen order, then each class's plain and full shape in class
// order. Everything is local to the file, so no imports are rendered.
func (e *Emitter) emitAggregate(model resolve.OutputModel) ([]EmittedFile, error) {
	data := &templateData{Header: e.config.Header}

	for _, enum := range model.Enums {
		data.Enums = append(data.Enums, buildEnum(enum))
	}

	for _, pair := range model.Shapes {
		data.Shapes = append(data.Shapes, buildShape(pair.Plain), buildShape(pair.Full))
	}

	file, err := render(e.config.AggregateName, data)
	if err != nil {
		return nil, err
	}

	return []EmittedFile{*file}, nil
}

// emitPerClass renders one file per enum and one file per class, then
// an index barrel re-exporting them all in emission order. Kebab-cased
// filenames can merge distinct declaration names, so every file claim
// is checked before rendering.
func (e *Emitter) emitPerClass(model resolve.OutputModel, table resolve.SymbolTable) ([]EmittedFile, error) {
	owners := declaringFiles(model)

	// The barrel claims index.ts up front so a declaration named Index
	// collides here instead of silently overwriting it.
	claimed := map[string]string{"index" + tsExt: "the index barrel"}

	var (
		files   []EmittedFile
		exports []string
	)

	for _, enum := range model.Enums {
		base := fileBase(enum.Name)

		if err := claimFile(claimed, base+tsExt, "enum "+enum.Name); err != nil {
			return nil, err
		}

		data := &templateData{
			Header: e.config.Header,
			Enums:  []enumData{buildEnum(enum)},
		}

		file, err := render(base+tsExt, data)
		if err != nil {
			return nil, fmt.Errorf("emitting enum %s: %w", enum.Name, err)
		}

		files = append(files, *file)
		exports = append(exports, "./"+base)
	}

	for _, pair := range model.Shapes {
		base := fileBase(pair.ClassName)

		if err := claimFile(claimed, base+tsExt, "class "+pair.ClassName); err != nil {
			return nil, err
		}

		data := &templateData{
			Header:  e.config.Header,
			Imports: importGroups(pair, table, owners),
			Shapes:  []shapeData{buildShape(pair.Plain), buildShape(pair.Full)},
		}

		file, err := render(base+tsExt, data)
		if err != nil {
			return nil, fmt.Errorf("emitting %s: %w", pair.ClassName, err)
		}

		files = append(files, *file)
		exports = append(exports, "./"+base)
	}

	index, err := renderIndex(e.config.Header, exports)
	if err != nil {
		return nil, fmt.Errorf("emitting index: %w", err)
	}

	files = append(files, *index)

	return files, nil
}

// templateData holds everything one rendered file needs.
type templateData struct {
	Header  bool
	Imports []importGroup
	Enums   []enumData
	Shapes  []shapeData
}

// importGroup is one import statement: all names pulled from a single
// module specifier.
type importGroup struct {
	Names []string
	From  string
}

type enumData struct {
	Name    string
	Members []memberData
}

type memberData struct {
	Name  string
	Value string // raw initializer text, empty when absent
}

type shapeData struct {
	Name       string
	Properties []propertyData
}

type propertyData struct {
	Name     string
	Optional bool
	Type     string
}

func buildEnum(enum parse.EnumUnit) enumData {
	data := enumData{Name: enum.Name}

	for _, m := range enum.Members {
		data.Members = append(data.Members, memberData{Name: m.Name, Value: m.Value})
	}

	return data
}

func buildShape(shape resolve.ShapeDefinition) shapeData {
	data := shapeData{Name: shape.Name}

	for _, p := range shape.Properties {
		data.Properties = append(data.Properties, propertyData{
			Name:     p.Name,
			Optional: p.Optional,
			Type:     p.Type.String(),
		})
	}

	return data
}

// declaringFiles maps every generated name to the module specifier of
// the file declaring it.
func declaringFiles(model resolve.OutputModel) map[string]string {
	owners := make(map[string]string)

	for _, enum := range model.Enums {
		owners[enum.Name] = "./" + fileBase(enum.Name)
	}

	for _, pair := range model.Shapes {
		spec := "./" + fileBase(pair.ClassName)
		owners[pair.Plain.Name] = spec
		owners[pair.Full.Name] = spec
	}

	return owners
}

// importGroups resolves the names a pair references to their declaring
// files and groups them into one import statement per file, sorted by
// module specifier for deterministic output.
func importGroups(pair resolve.ShapePair, table resolve.SymbolTable, owners map[string]string) []importGroup {
	byFile := make(map[string][]string)

	for _, name := range resolve.References(pair, table) {
		from, ok := owners[name]
		if !ok {
			continue
		}

		byFile[from] = append(byFile[from], name)
	}

	var froms []string
	for from := range byFile {
		froms = append(froms, from)
	}

	sort.Strings(froms)

	groups := make([]importGroup, 0, len(froms))
	for _, from := range froms {
		groups = append(groups, importGroup{Names: byFile[from], From: from})
	}

	return groups
}

// fileBase converts a declaration name to its kebab-case file stem,
// e.g. "OrderItem" -> "order-item".
func fileBase(name string) string {
	return inflect.Dasherize(inflect.Underscore(name))
}

// claimFile records which declaration owns an output filename and
// fails when the name is already taken.
func claimFile(claimed map[string]string, filename, owner string) error {
	if prior, taken := claimed[filename]; taken {
		return fmt.Errorf("emit: %s and %s both map to output file %q: %w", prior, owner, filename, ErrFilenameCollision)
	}

	claimed[filename] = owner

	return nil
}

func render(filename string, data *templateData) (*EmittedFile, error) {
	var buf bytes.Buffer
	if err := shapeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &EmittedFile{
		Filename: filename,
		Content:  normalize(buf.Bytes()),
	}, nil
}

func renderIndex(header bool, exports []string) (*EmittedFile, error) {
	data := &indexData{Header: header, Exports: exports}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &EmittedFile{
		Filename: "index" + tsExt,
		Content:  normalize(buf.Bytes()),
	}, nil
}

type indexData struct {
	Header  bool
	Exports []string
}

// normalize collapses the template's trailing blank lines into a
// single final newline.
func normalize(content []byte) []byte {
	return append(bytes.TrimRight(content, "\n"), '\n')
}

// Templates for the generated files

var shapeTemplate = template.Must(
	template.New("shape").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(`{{if .Header}}// Code generated by shape-gen. DO NOT EDIT.

{{end}}{{range .Imports}}import type { {{join .Names ", "}} } from "{{.From}}";
{{end}}{{if .Imports}}
{{end}}{{range .Enums}}export enum {{.Name}} {
{{range .Members}}  {{.Name}}{{if .Value}} = {{.Value}}{{end}},
{{end}}}

{{end}}{{range .Shapes}}export interface {{.Name}} {
{{range .Properties}}  {{.Name}}{{if .Optional}}?{{end}}: {{.Type}};
{{end}}}

{{end}}`))

var indexTemplate = template.Must(
	template.New("index").
		Parse(`{{if .Header}}// Code generated by shape-gen. DO NOT EDIT.

{{end}}{{range .Exports}}export * from "{{.}}";
{{end}}`))
