// Package main provides the CLI entrypoint for shape-gen.
//
// shape-gen turns annotated TypeScript entity classes into plain
// interface declarations:
//   - Parses entity sources with tree-sitter
//   - Maps every class to a plain and a relation-inclusive data shape
//   - Rewrites relation properties to reference the generated shapes
//   - Emits one aggregate file or one file per declaration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"shape-generator/internal/config"
	"shape-generator/internal/diagnostic"
	"shape-generator/internal/emit"
	"shape-generator/internal/parse"
	"shape-generator/internal/resolve"
	"shape-generator/internal/watch"
)

var version = "dev"

// usageError marks an invalid invocation, reported with exit code 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}

	os.Exit(exitCode(err))
}

// exitCode maps a run outcome to the process exit code: 0 on success,
// 2 for invocation problems, 1 for everything that failed during the
// run itself.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.Is(err, flag.ErrHelp) || errors.As(err, &uerr) {
		return 2
	}

	return 1
}

// flagValues carries the raw flag results into option resolution.
type flagValues struct {
	in         string
	out        string
	prefix     bool
	verbose    bool
	watchMode  bool
	configPath string
	exclude    string
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("shape-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		values      flagValues
		showVersion bool
	)

	fs.StringVar(&values.in, "in", "", "input file, directory, or glob of entity sources")
	fs.StringVar(&values.out, "out", "", "output file (aggregate) or directory (one file per declaration)")
	fs.BoolVar(&values.prefix, "prefix", true, "prefix shape names with I")
	fs.BoolVar(&values.verbose, "verbose", true, "print per-class generation summaries")
	fs.BoolVar(&values.watchMode, "watch", false, "regenerate whenever sources change")
	fs.StringVar(&values.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&values.exclude, "exclude", "", "comma-separated gitignore-style patterns to skip")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return &usageError{err}
	}

	if showVersion {
		fmt.Fprintf(stdout, "shape-gen %s\n", version)
		return nil
	}

	opts, err := buildOptions(fs, values)
	if err != nil {
		return err
	}

	if opts.Watch {
		return runWatch(opts, stdout, stderr)
	}

	return generate(context.Background(), opts, stdout, stderr)
}

// buildOptions resolves the effective run configuration: built-in
// defaults, overlaid with the config file when given, overlaid with
// explicitly set flags. A positional argument stands in for -in.
func buildOptions(fs *flag.FlagSet, values flagValues) (config.Options, error) {
	opts := config.Default()

	if values.configPath != "" {
		file, err := config.LoadFile(values.configPath)
		if err != nil {
			return config.Options{}, &usageError{err}
		}

		file.Apply(&opts)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["in"] {
		opts.Input = values.in
	}

	if set["out"] {
		opts.Output = values.out
	}

	if set["prefix"] {
		opts.Prefix = values.prefix
	}

	if set["verbose"] {
		opts.Verbose = values.verbose
	}

	if set["watch"] {
		opts.Watch = values.watchMode
	}

	if set["exclude"] {
		for _, pattern := range strings.Split(values.exclude, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				opts.Exclude = append(opts.Exclude, pattern)
			}
		}
	}

	if opts.Input == "" && fs.NArg() > 0 {
		opts.Input = fs.Arg(0)
	}

	if err := opts.Validate(); err != nil {
		return config.Options{}, &usageError{err}
	}

	return opts, nil
}

// generate runs one parse-resolve-emit-write cycle.
func generate(ctx context.Context, opts config.Options, stdout, stderr io.Writer) error {
	units, err := parse.Load(ctx, opts.Input, opts.Exclude)
	if err != nil {
		return err
	}

	res, err := resolve.Resolve(units, resolve.Config{UsePrefix: opts.Prefix})
	if err != nil {
		return err
	}

	printDiagnostics(&res.Diagnostics, opts.Verbose, stdout, stderr)

	emitCfg := emit.DefaultConfig()
	if opts.SingleFile() {
		emitCfg.Layout = emit.LayoutAggregate
		emitCfg.AggregateName = opts.AggregateName()
	} else {
		emitCfg.Layout = emit.LayoutPerClass
	}

	files, err := emit.NewEmitter(emitCfg).Emit(res.Model, res.Table)
	if err != nil {
		return err
	}

	if err := emit.WriteFiles(files, opts.OutputDir()); err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Fprintf(stdout, "generated %d file(s) from %d source file(s)\n", len(files), len(units))
	}

	return nil
}

// printDiagnostics reports warnings to stderr always, and infos to
// stdout only in verbose mode.
func printDiagnostics(diags *diagnostic.Diagnostics, verbose bool, stdout, stderr io.Writer) {
	for _, d := range diags.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", d.String())
	}

	if !verbose {
		return
	}

	for _, d := range diags.Infos {
		fmt.Fprintln(stdout, d.String())
	}
}

// runWatch generates once, then keeps regenerating on source changes
// until interrupted. Failed cycles report and keep watching.
func runWatch(opts config.Options, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regen := func() {
		if err := generate(ctx, opts, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}

	regen()

	fmt.Fprintf(stdout, "watching %s for changes\n", opts.Input)

	err := watch.Run(ctx, opts.Input, stderr, regen)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-in": true, "--in": true,
	"-out": true, "--out": true,
	"-config": true, "--config": true,
	"-exclude": true, "--exclude": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag
// package can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string

	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])

			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}

	return append(flags, positional...)
}
