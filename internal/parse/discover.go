package parse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var skipDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"coverage":     {},
	"vendor":       {},
	".git":         {},
	".hg":          {},
	".svn":         {},
}

// Discover resolves the input argument to a sorted list of TypeScript
// source files. The argument may be a glob pattern, a single file, or a
// directory walked recursively. Directory walks skip well-known build
// and dependency directories, honor a .gitignore at the root, and apply
// the extra exclude patterns (gitignore syntax).
func Discover(input string, excludes []string) ([]string, error) {
	if strings.ContainsAny(input, "*?[") {
		return discoverGlob(input)
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input %s: %w", input, err)
	}

	if !info.IsDir() {
		return []string{input}, nil
	}

	return discoverDir(input, excludes)
}

func discoverGlob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var results []string
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil || info.IsDir() {
			continue
		}

		if IsSourceFile(filepath.Base(m)) {
			results = append(results, m)
		}
	}

	sort.Strings(results)

	return results, nil
}

func discoverDir(root string, excludes []string) ([]string, error) {
	gi := loadGitignore(root)

	var extra *ignore.GitIgnore
	if len(excludes) > 0 {
		extra = ignore.CompileIgnoreLines(excludes...)
	}

	var results []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}

			if SkippedDir(name) || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasPrefix(name, ".") || !IsSourceFile(name) {
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if extra != nil && extra.MatchesPath(rel) {
			return nil
		}

		results = append(results, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)

	return results, nil
}

// IsSourceFile reports whether name is a TypeScript source. Declaration
// files carry no entity classes and routinely shadow real sources.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, ".ts") && !strings.HasSuffix(name, ".d.ts")
}

// SkippedDir reports whether a directory name is excluded from
// discovery, such as dependency and build output directories.
func SkippedDir(name string) bool {
	_, skip := skipDirs[name]

	return skip
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}

	return gi
}
