package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"shape-generator/internal/parse"
)

// Debounce is the quiet period after a burst of filesystem events
// before regeneration runs.
const Debounce = 250 * time.Millisecond

// Run watches the input path and calls regen after every settled burst
// of source changes. It blocks until ctx is cancelled. regen handles
// its own failures so a broken intermediate state never stops the
// watch.
func Run(ctx context.Context, input string, stderr io.Writer, regen func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	root := Root(input)

	if err := addDirs(watcher, root); err != nil {
		return err
	}

	// New directories need watches of their own before their files
	// produce events, so every cycle re-registers the tree first.
	rescanAndRegen := func() {
		if err := addDirs(watcher, root); err != nil {
			fmt.Fprintf(stderr, "watch: %v\n", err)
		}

		regen()
	}

	return Loop(ctx, watcher.Events, watcher.Errors, Debounce, stderr, rescanAndRegen)
}

// Loop drives debounced regeneration from raw watcher channels. Split
// from Run so tests can feed synthetic events without a filesystem.
// It returns when ctx is done or the event channel closes.
func Loop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	stderr io.Writer,
	regen func(),
) error {
	// Stopped until the first relevant event. Stop and Reset discard
	// any undelivered fire (Go 1.23 timer semantics), so the channel
	// is never drained manually; a drain would block forever when the
	// fire was already discarded.
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			timer.Reset(debounce)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}

			fmt.Fprintf(stderr, "watch: %v\n", err)

		case <-timer.C:
			regen()
		}
	}
}

// relevant filters the event stream down to changes that can affect
// generated output: source file writes, removes, and renames, plus any
// create, which may introduce a directory that needs its own watch.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Create) {
		return true
	}

	if !parse.IsSourceFile(filepath.Base(event.Name)) {
		return false
	}

	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// Root maps the input argument to the directory watched for changes:
// globs collapse to their longest literal directory prefix, files to
// their parent, directories to themselves.
func Root(input string) string {
	if i := strings.IndexAny(input, "*?["); i >= 0 {
		prefix := input[:i]

		if j := strings.LastIndexAny(prefix, `/\`); j >= 0 {
			return filepath.Clean(prefix[:j+1])
		}

		return "."
	}

	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		return filepath.Clean(input)
	}

	return filepath.Dir(input)
}

// CollectDirs walks root and returns it plus every nested directory
// that discovery would descend into.
func CollectDirs(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root && (parse.SkippedDir(name) || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}

		dirs = append(dirs, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// addDirs registers every directory under root with the watcher.
// Re-adding an already watched directory is harmless.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	dirs, err := CollectDirs(root)
	if err != nil {
		return fmt.Errorf("collecting watch dirs: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return nil
}
