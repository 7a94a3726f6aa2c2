// Package watcher detects changes to configuration files so callers can
// rebuild the action registry.
//
// A registry is an immutable snapshot; the watcher never mutates one.
// It only reports that the files backing a registry changed — the caller
// responds by constructing a fresh registry from current disk state.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is one observed configuration change.
type Event struct {
	// Path is the configuration file that changed.
	Path string

	// Op is the operation observed.
	Op Operation

	// Time is when the change was observed.
	Time time.Time
}

// Operation is the kind of change observed.
type Operation uint8

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota
	// OpCreate indicates the file was created.
	OpCreate
	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Handler is called for each debounced configuration change.
type Handler func(Event)

// Watcher monitors a fixed set of configuration file paths. The parent
// directories are watched so files that do not exist yet are still
// picked up when created.
type Watcher struct {
	mu       sync.Mutex
	paths    map[string]struct{}
	fsw      *fsnotify.Watcher
	handlers []Handler
	debounce time.Duration
	pending  map[string]*time.Timer
	done     chan struct{}
	closed   bool
}

// New creates a watcher over the given file paths.
func New(paths []string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		paths:    make(map[string]struct{}, len(paths)),
		fsw:      fsw,
		debounce: 200 * time.Millisecond,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		w.paths[filepath.Clean(p)] = struct{}{}
		dirs[filepath.Dir(filepath.Clean(p))] = struct{}{}
	}
	for dir := range dirs {
		// A missing directory is fine: the config it would hold does not
		// exist either.
		_ = fsw.Add(dir)
	}

	go w.run()
	return w, nil
}

// SetDebounce adjusts the debounce window. Must be called before events
// are expected.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// OnChange registers a handler for debounced change events.
func (w *Watcher) OnChange(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	close(w.done)
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the next rebuild
			// reads from disk regardless.
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, watched := w.paths[path]; !watched || w.closed {
		return
	}

	var op Operation
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	// Editors often emit bursts of writes; collapse them per path.
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.fire(Event{Path: path, Op: op, Time: time.Now()})
	})
}

func (w *Watcher) fire(ev Event) {
	w.mu.Lock()
	delete(w.pending, ev.Path)
	if w.closed {
		w.mu.Unlock()
		return
	}
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
