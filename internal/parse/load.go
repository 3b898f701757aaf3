package parse

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Load discovers and parses every input file. Units come back in
// discovery order regardless of parse scheduling.
func Load(ctx context.Context, input string, excludes []string) ([]SourceUnit, error) {
	files, err := Discover(input, excludes)
	if err != nil {
		return nil, err
	}

	return Files(ctx, files)
}

// Files parses the given files concurrently, preserving input order in
// the result. Each task owns its parser instance.
func Files(ctx context.Context, paths []string) ([]SourceUnit, error) {
	units := make([]SourceUnit, len(paths))

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		errg.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			unit, err := File(ctx, NewParser(), source, path)
			if err != nil {
				return err
			}

			units[i] = unit

			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}

	return units, nil
}
