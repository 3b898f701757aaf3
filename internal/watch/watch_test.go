package watch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "user.ts")
	require.NoError(t, os.WriteFile(file, []byte("class User {}"), 0o644))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "directory", input: dir, want: dir},
		{name: "file", input: file, want: dir},
		{name: "glob with dir prefix", input: filepath.Join(dir, "*.ts"), want: dir},
		{name: "bare glob", input: "*.ts", want: "."},
		{name: "nested glob", input: "src/entities/**/*.ts", want: filepath.Join("src", "entities")},
		{name: "missing path", input: filepath.Join(dir, "gone", "user.ts"), want: filepath.Join(dir, "gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Root(tt.input))
		})
	}
}

func TestCollectDirs(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{
		filepath.Join(root, "entities"),
		filepath.Join(root, "entities", "billing"),
		filepath.Join(root, "node_modules", "pkg"),
		filepath.Join(root, ".cache"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	dirs, err := CollectDirs(root)
	require.NoError(t, err)

	assert.Contains(t, dirs, root)
	assert.Contains(t, dirs, filepath.Join(root, "entities"))
	assert.Contains(t, dirs, filepath.Join(root, "entities", "billing"))
	assert.NotContains(t, dirs, filepath.Join(root, "node_modules"))
	assert.NotContains(t, dirs, filepath.Join(root, "node_modules", "pkg"))
	assert.NotContains(t, dirs, filepath.Join(root, ".cache"))
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "source write",
			event: fsnotify.Event{Name: "user.ts", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "source remove",
			event: fsnotify.Event{Name: "user.ts", Op: fsnotify.Remove},
			want:  true,
		},
		{
			name:  "source rename",
			event: fsnotify.Event{Name: "user.ts", Op: fsnotify.Rename},
			want:  true,
		},
		{
			name:  "any create",
			event: fsnotify.Event{Name: "newdir", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "source chmod only",
			event: fsnotify.Event{Name: "user.ts", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "non-source write",
			event: fsnotify.Event{Name: "README.md", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "declaration file write",
			event: fsnotify.Event{Name: "types.d.ts", Op: fsnotify.Write},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}

func TestLoop_DebouncesBurst(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	regens := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, events, errs, 20*time.Millisecond, io.Discard, func() {
			regens <- struct{}{}
		})
	}()

	for n := 0; n < 3; n++ {
		events <- fsnotify.Event{Name: "user.ts", Op: fsnotify.Write}
	}

	select {
	case <-regens:
	case <-time.After(2 * time.Second):
		t.Fatal("regeneration never fired")
	}

	// The burst collapses into a single run
	select {
	case <-regens:
		t.Fatal("burst triggered more than one regeneration")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoop_EventAfterQuietPeriod(t *testing.T) {
	// Buffered so the paced sends below never block the test.
	events := make(chan fsnotify.Event, 8)
	errs := make(chan error)
	regens := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, events, errs, 10*time.Millisecond, io.Discard, func() {
			regens <- struct{}{}
		})
	}()

	// Pace events one debounce window apart so later ones can arrive
	// with the previous window already fired. The loop must keep
	// accepting events whichever side of the fire they land on.
	for n := 0; n < 4; n++ {
		events <- fsnotify.Event{Name: "user.ts", Op: fsnotify.Write}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-regens:
	case <-time.After(2 * time.Second):
		t.Fatal("regeneration never fired")
	}

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop stopped responding to cancellation")
	}
}

func TestLoop_IgnoresIrrelevantEvents(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	regens := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, events, errs, 10*time.Millisecond, io.Discard, func() {
			regens <- struct{}{}
		})
	}()

	events <- fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "user.ts", Op: fsnotify.Chmod}

	select {
	case <-regens:
		t.Fatal("irrelevant events triggered regeneration")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestLoop_EventChannelClosed(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)

	done := make(chan error, 1)
	go func() {
		done <- Loop(context.Background(), events, errs, time.Millisecond, io.Discard, func() {})
	}()

	close(events)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on closed event channel")
	}
}

func TestLoop_ReportsWatcherErrors(t *testing.T) {
	events := make(chan fsnotify.Event)
	// Unbuffered: the send returns only after the loop consumed the error.
	errs := make(chan error)

	var stderr bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- Loop(context.Background(), events, errs, time.Millisecond, &stderr, func() {})
	}()

	errs <- errors.New("event queue overflowed")
	close(events)

	require.NoError(t, <-done)
	assert.Contains(t, stderr.String(), "watch: event queue overflowed")
}
