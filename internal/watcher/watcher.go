// Package watcher re-runs an action whenever files land in a directory.
package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// DefaultCooldown is how long after a run events are ignored.
const DefaultCooldown = time.Second

// Action is the work triggered by a burst of events.
type Action func(ctx context.Context) error

// Watcher monitors one directory and runs an action after changes settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	tracker   *rootTracker
	action    Action
	// Debounce delay for triggering the action after events
	debounceDelay time.Duration
	// How long after the action completes to ignore events
	eventCooldown time.Duration
	runOnStart    bool

	timer         *time.Timer
	fire          chan struct{}
	lastCompleted time.Time
	runs          int

	// Channel for timestamped events from event goroutine
	eventChan chan TimestampedEvent

	// Closed when the watcher is stopping to unblock goroutines
	done chan struct{}
}

// TimestampedEvent wraps an fsnotify event with its receive time.
type TimestampedEvent struct {
	Event fsnotify.Event
	Time  time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithCooldown sets how long after a run events are ignored.
func WithCooldown(d time.Duration) Option {
	return func(w *Watcher) {
		w.eventCooldown = d
	}
}

// WithSkip drops events for paths matching skip.
func WithSkip(skip func(path string) bool) Option {
	return func(w *Watcher) {
		w.tracker.skip = skip
	}
}

// WithRunOnStart runs the action once when Run starts, if the directory exists.
func WithRunOnStart() Option {
	return func(w *Watcher) {
		w.runOnStart = true
	}
}

// New creates a Watcher for dir. A missing dir is watched for until it appears.
func New(dir string, debounce time.Duration, action Action, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher:     fsw,
		tracker:       newRootTracker(afero.NewOsFs(), fsw, dir),
		action:        action,
		debounceDelay: debounce,
		eventCooldown: DefaultCooldown,
		fire:          make(chan struct{}),
		eventChan:     make(chan TimestampedEvent, 100),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	// Timer starts stopped; events reset it.
	w.timer = time.AfterFunc(time.Hour, func() {
		select {
		case w.fire <- struct{}{}:
		case <-w.done:
		}
	})
	w.timer.Stop()

	if err := w.tracker.attach(); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// eventLoop reads from fsnotify and timestamps events before forwarding.
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			te := TimestampedEvent{
				Event: event,
				Time:  time.Now(),
			}
			select {
			case w.eventChan <- te:
			case <-w.done:
				return
			}
		}
	}
}

// Run starts the watcher and blocks until context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watcher started", "dir", w.tracker.target, "debounce", w.debounceDelay)

	go w.eventLoop(ctx)

	if w.runOnStart && w.tracker.attached() {
		w.execute(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopping", "runs", w.runs)
			close(w.done)
			w.timer.Stop()
			return w.fsWatcher.Close()

		case event := <-w.eventChan:
			if w.tracker.process(event.Event) {
				w.schedule(event)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)

		case <-w.fire:
			w.execute(ctx)
		}
	}
}

// Watching reports whether the directory itself is currently watched.
// It is false while the directory is missing.
func (w *Watcher) Watching() bool {
	return w.tracker.attached()
}

// schedule arms the debounce timer unless the event falls in the cooldown after the last run.
// The cooldown keeps the action's own moves from re-triggering it.
func (w *Watcher) schedule(event TimestampedEvent) {
	filterUntil := w.lastCompleted.Add(w.eventCooldown)
	if event.Time.Before(filterUntil) {
		slog.Debug("ignoring event during cooldown", "path", event.Event.Name)
		return
	}
	slog.Debug("scheduling run", "path", event.Event.Name, "op", event.Event.Op)
	w.timer.Reset(w.debounceDelay)
}

func (w *Watcher) execute(ctx context.Context) {
	start := time.Now()
	err := w.action(ctx)
	w.lastCompleted = time.Now()
	w.runs++
	if err != nil {
		slog.Error("watch run failed", "dir", w.tracker.target, "error", err)
		return
	}
	slog.Debug("watch run finished", "dir", w.tracker.target, "duration", w.lastCompleted.Sub(start))
}
