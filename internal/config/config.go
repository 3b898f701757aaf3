package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// outputExt marks an output path as a single aggregate file.
const outputExt = ".ts"

var (
	// ErrMissingInput is returned when no input path is configured.
	ErrMissingInput = errors.New("config: input path is required")
	// ErrMissingOutput is returned when no output path is configured.
	ErrMissingOutput = errors.New("config: output path is required")
)

// Options is the fully resolved run configuration.
type Options struct {
	// Input is the file, directory, or glob pattern naming the sources.
	Input string
	// Output is the generated file or directory path.
	Output string
	// Prefix enables the I prefix on shape names.
	Prefix bool
	// Verbose enables per-class progress output.
	Verbose bool
	// Watch keeps the process alive and regenerates on source changes.
	Watch bool
	// Exclude lists gitignore-style patterns filtered out of discovery.
	Exclude []string
}

// Default returns the built-in run configuration. Prefixing and
// verbose output are on unless explicitly disabled.
func Default() Options {
	return Options{
		Prefix:  true,
		Verbose: true,
	}
}

// Validate checks that the required paths are present.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Input) == "" {
		return ErrMissingInput
	}

	if strings.TrimSpace(o.Output) == "" {
		return ErrMissingOutput
	}

	return nil
}

// SingleFile reports whether Output names one aggregate file rather
// than a directory.
func (o *Options) SingleFile() bool {
	return strings.HasSuffix(o.Output, outputExt)
}

// OutputDir returns the directory generated files are written into.
func (o *Options) OutputDir() string {
	if o.SingleFile() {
		return filepath.Dir(o.Output)
	}

	return o.Output
}

// AggregateName returns the file name used when Output names a single
// aggregate file.
func (o *Options) AggregateName() string {
	return filepath.Base(o.Output)
}

// File is the YAML run configuration as written on disk. Boolean
// fields are pointers so absent keys can fall back to defaults.
type File struct {
	Input   string   `yaml:"input,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Prefix  *bool    `yaml:"prefix,omitempty"`
	Verbose *bool    `yaml:"verbose,omitempty"`
	Watch   *bool    `yaml:"watch,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return file, nil
}

// Parse parses YAML data into a File. Unknown keys are an error.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &f, nil
}

// Apply overlays the file's explicit values onto opts. Absent keys
// leave opts untouched.
func (f *File) Apply(opts *Options) {
	if f.Input != "" {
		opts.Input = f.Input
	}

	if f.Output != "" {
		opts.Output = f.Output
	}

	if f.Prefix != nil {
		opts.Prefix = *f.Prefix
	}

	if f.Verbose != nil {
		opts.Verbose = *f.Verbose
	}

	if f.Watch != nil {
		opts.Watch = *f.Watch
	}

	if len(f.Exclude) > 0 {
		opts.Exclude = append(opts.Exclude, f.Exclude...)
	}
}
