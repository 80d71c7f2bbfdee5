// Package watch pushes debounced filesystem change notifications. It
// knows nothing about sessions or the engine — callers adapt watch.Event
// into an engine message when forwarding it.
package watch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is one debounced change notification.
type Event struct {
	Path string
	Time time.Time
}

const defaultDebounce = 300 * time.Millisecond

// Watcher watches a set of paths and emits one debounced Event per path
// per burst of writes, collapsing editors' save-as-multiple-writes
// behavior into a single notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	out       chan Event

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a Watcher over paths with the given debounce interval (a
// non-positive value uses defaultDebounce).
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: adding %s: %w", p, err)
		}
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		out:       make(chan Event, 64),
		pending:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel debounced change notifications are
// delivered on.
func (w *Watcher) Events() <-chan Event { return w.out }

// Run drives the watcher until ctx is cancelled, closing the underlying
// fsnotify watcher on exit.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsWatcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounceEvent(ev.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) debounceEvent(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.out <- Event{Path: path, Time: time.Now()}:
		default:
			log.Printf("watch: event channel full, dropping change for %s", path)
		}
	})
}
