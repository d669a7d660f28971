// Package watch re-runs layout checks when declaration files change.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/layoutguard/internal/domain"
	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	DefaultDebounce  = 300 * time.Millisecond
	DefaultCacheSize = 256
)

// Target is one declaration file and the entity it declares.
type Target struct {
	Entity domain.EntityID
	Path   string
}

type Handler func(ctx context.Context, id domain.EntityID)

type Options struct {
	Debounce  time.Duration
	CacheSize int
	Logger    *zap.Logger
}

type Watcher struct {
	mu      sync.Mutex
	fs      *fsnotify.Watcher
	targets map[string]domain.EntityID
	paths   map[domain.EntityID]string
	pending map[domain.EntityID]time.Time
	// hashes holds the content hash of the last checked version per entity.
	hashes   *lru.Cache[domain.EntityID, [sha256.Size]byte]
	handler  Handler
	debounce time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func New(targets []Target, handler Handler, opts Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch handler is nil")
	}
	if len(targets) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	hashes, err := lru.New[domain.EntityID, [sha256.Size]byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create hash cache: %w", err)
	}

	w := &Watcher{
		targets:  make(map[string]domain.EntityID, len(targets)),
		paths:    make(map[domain.EntityID]string, len(targets)),
		pending:  make(map[domain.EntityID]time.Time),
		hashes:   hashes,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   opts.Logger.Named("watch"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, target := range targets {
		path, err := filepath.Abs(target.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve watch path: %w", err)
		}
		path = filepath.Clean(path)
		w.targets[path] = target.Entity
		w.paths[target.Entity] = path
	}

	return w, nil
}

// Start records the current content of every target and begins watching
// their directories. Directories are watched instead of files so that
// editors replacing a file by rename are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("create file watcher: %w", err)
	}

	dirs := map[string]struct{}{}
	for path, id := range w.targets {
		if sum, ok := hashFile(path); ok {
			w.hashes.Add(id, sum)
		}
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			w.mu.Unlock()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}

	w.fs = fs
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fs.Close(); err != nil {
		w.logger.Warn("close file watcher", zap.Error(err))
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	id, ok := w.targets[filepath.Clean(event.Name)]
	if !ok {
		return
	}

	w.mu.Lock()
	w.pending[id] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []domain.EntityID
	for id, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, id)
			delete(w.pending, id)
		}
	}
	w.mu.Unlock()

	for _, id := range settled {
		if ctx.Err() != nil {
			return
		}
		if !w.changed(id) {
			w.logger.Debug("content unchanged, skipping", zap.String("entity", string(id)))
			continue
		}
		w.handler(ctx, id)
	}
}

// changed reports whether the target's content differs from the last
// checked version and records the new version. Unreadable files always
// count as changed so the check can report them.
func (w *Watcher) changed(id domain.EntityID) bool {
	sum, ok := hashFile(w.paths[id])
	if !ok {
		w.hashes.Remove(id)
		return true
	}

	if previous, seen := w.hashes.Get(id); seen && previous == sum {
		return false
	}
	w.hashes.Add(id, sum)
	return true
}

func hashFile(path string) ([sha256.Size]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, false
	}
	return sha256.Sum256(data), true
}
