package stream

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// rotationWatcher is an optional wake-up source for tail mode, grounded in
// the fsnotify-based tailer in justin4957/logflow-anomaly-detector (a pack
// reference file). It never replaces the mandatory poll_interval_ms timer
// or the signature check in spec.md §4.1 — it only lets WaitingForData
// return sooner when the filesystem tells us something changed. If the
// watch cannot be established, waitForData silently falls back to pure
// polling, the same posture tailf.go's own optional notify channel takes.
type rotationWatcher struct {
	w      *fsnotify.Watcher
	events chan struct{}
}

// newRotationWatcher attempts to watch path's directory for changes. It
// returns nil (not an error) if the watch cannot be set up; tail mode is
// expected to function by polling alone.
func newRotationWatcher(path string) *rotationWatcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil
	}
	rw := &rotationWatcher{w: w, events: make(chan struct{}, 1)}
	go rw.pump(filepath.Base(path))
	return rw
}

func (rw *rotationWatcher) pump(base string) {
	for {
		select {
		case ev, ok := <-rw.w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			select {
			case rw.events <- struct{}{}:
			default:
			}
		case _, ok := <-rw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// wake returns the channel that fires when the watched file changes, or
// nil if no watcher is active (a nil channel blocks forever in a select,
// which is exactly the desired "fall back to polling" behavior).
func (rw *rotationWatcher) wake() <-chan struct{} {
	if rw == nil {
		return nil
	}
	return rw.events
}

func (rw *rotationWatcher) close() {
	if rw != nil {
		rw.w.Close()
	}
}
