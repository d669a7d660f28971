package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/layoutguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestWatcher(t *testing.T, path string) (*Watcher, <-chan domain.EntityID) {
	t.Helper()

	calls := make(chan domain.EntityID, 16)
	w, err := New(
		[]Target{{Entity: "treasury", Path: path}},
		func(_ context.Context, id domain.EntityID) { calls <- id },
		Options{Debounce: 30 * time.Millisecond},
	)
	require.NoError(t, err)
	return w, calls
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcherInvokesHandlerOnContentChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "struct A { a: u8 }")

	w, calls := newTestWatcher(t, path)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeFile(t, path, "struct A { a: u8, b: u16 }")

	select {
	case id := <-calls:
		assert.Equal(t, domain.EntityID("treasury"), id)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestWatcherCoalescesBurstsAndSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "v1")

	w, calls := newTestWatcher(t, path)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for _, content := range []string{"v2", "v3", "v4"} {
		writeFile(t, path, content)
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked")
	}

	writeFile(t, path, "v4")
	select {
	case id := <-calls:
		t.Fatalf("unexpected call for %s", id)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "v1")

	w, calls := newTestWatcher(t, path)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "other.rs"), "noise")

	select {
	case id := <-calls:
		t.Fatalf("unexpected call for %s", id)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRunStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeFile(t, path, "v1")

	w, _ := newTestWatcher(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	_, err := New(nil, func(context.Context, domain.EntityID) {}, Options{})
	assert.ErrorContains(t, err, "nothing to watch")

	_, err = New([]Target{{Entity: "a", Path: "a/lib.rs"}}, nil, Options{})
	assert.ErrorContains(t, err, "handler is nil")
}

func TestWatchMissingDirectoryFails(t *testing.T) {
	w, _ := newTestWatcher(t, filepath.Join(t.TempDir(), "missing", "lib.rs"))
	err := w.Start(context.Background())
	require.Error(t, err)
	w.Stop()
}
