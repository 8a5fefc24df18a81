// Package watch implements the `onyxc watch` front-end command (spec.md
// §6.3, §5's cancellation note): it watches the given files and their
// containing directories for changes and triggers a brand new
// compilation cycle per change, never an incremental one (an explicit
// Non-goal of the driver itself). Grounded on the teacher pack's own
// FileWatcher idiom (standardbeagle-lci/internal/indexing/watcher.go):
// an fsnotify watcher feeding a small debouncer goroutine, classifying
// events into create/write/remove/rename before invoking the compile
// callback.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// EventType classifies one filesystem change, mirroring the teacher's
// FileEventType enum.
type EventType int

const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

// Event is a single, debounced file-change notification.
type Event struct {
	Path string
	Type EventType
}

// Watcher monitors a set of directories and debounces fsnotify events
// before handing them to OnChange, which in the onyxc CLI front end
// starts a fresh compilation cycle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu        sync.Mutex
	lastHash  map[string]uint64
	pending   map[string]Event
	flushTick *time.Timer

	OnChange func(Event)
	OnError  func(error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher with the given debounce interval.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		lastHash: map[string]uint64{},
		pending:  map[string]Event{},
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Add registers dir (non-recursively) for watching.
func (w *Watcher) Add(dir string) error {
	return w.fsw.Add(dir)
}

// AddSources registers the containing directory of every path in files
// for watching, deduplicated, and additionally expands any
// doublestar-style glob pattern among them (e.g. "src/**/*.onyx") to
// its matching directories before adding them, matching the Load
// Expander's own directory-walk discipline (onyxc's LoadAll).
func (w *Watcher) AddSources(files []string) error {
	seen := map[string]bool{}
	for _, f := range files {
		matches, err := doublestar.FilepathGlob(f)
		if err != nil || len(matches) == 0 {
			matches = []string{f}
		}
		for _, m := range matches {
			dir := filepath.Dir(m)
			if seen[dir] {
				continue
			}
			seen[dir] = true
			if err := w.Add(dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// Start begins the event-processing goroutine. Stop interrupts it.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

// Stop cancels the watcher and blocks until its goroutine exits. A stop
// signal interrupts the watcher's blocking call and no further
// compilation cycle is started (spec.md §5).
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	var kind EventType
	switch {
	case ev.Op&fsnotify.Create != 0:
		kind = EventCreate
	case ev.Op&fsnotify.Write != 0:
		kind = EventWrite
	case ev.Op&fsnotify.Remove != 0:
		kind = EventRemove
	case ev.Op&fsnotify.Rename != 0:
		kind = EventRename
	default:
		return
	}

	if kind == EventWrite && w.contentUnchanged(ev.Name) {
		// A touch-without-modify (e.g. an editor rewriting the same
		// bytes on save) produces a Write event with no content change;
		// skip it rather than starting a pointless recompile.
		return
	}

	w.mu.Lock()
	w.pending[ev.Name] = Event{Path: ev.Name, Type: kind}
	if w.flushTick != nil {
		w.flushTick.Stop()
	}
	w.flushTick = time.AfterFunc(w.debounce, w.flush)
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = map[string]Event{}
	w.mu.Unlock()

	for _, ev := range batch {
		if w.OnChange != nil {
			w.OnChange(ev)
		}
	}
}

// contentUnchanged hashes path's current contents with xxhash and
// compares against the hash recorded the last time this path was seen,
// recording the new hash either way.
func (w *Watcher) contentUnchanged(path string) bool {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return false
	}
	h := xxhash.Sum64(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	prev, ok := w.lastHash[path]
	w.lastHash[path] = h
	return ok && prev == h
}
