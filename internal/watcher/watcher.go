// Package watcher reports debounced file changes. The preview server uses it
// to reload the features file while it is being edited.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/crabby-lang/website/internal/logging"
)

// FileWatcher watches directories and groups rapid changes together.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	logger    logging.Logger
	mutex     sync.RWMutex
	stopOnce  sync.Once
}

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
	Size    int64
}

// EventType represents the type of file change
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter reports whether a path is of interest.
type FileFilter func(path string) bool

// ChangeHandler handles a batch of debounced events.
type ChangeHandler func(events []ChangeEvent) error

// NewFileWatcher creates a watcher that waits debounceDelay after the last
// change before calling handlers.
func NewFileWatcher(debounceDelay time.Duration, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &FileWatcher{
		watcher:   w,
		debouncer: newDebouncer(debounceDelay),
		logger:    logger.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a file filter. Every filter must accept a path.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddPath watches a directory (or a single file).
func (fw *FileWatcher) AddPath(path string) error {
	return fw.watcher.Add(filepath.Clean(path))
}

// WatchFile watches one file. The parent directory is watched so that
// editors which save by renaming a temporary file are still seen.
func (fw *FileWatcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	fw.AddFilter(ExactFilter(abs))
	return fw.AddPath(filepath.Dir(abs))
}

// Start runs the watcher until ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.debouncer.run(ctx)
	go fw.processEvents(ctx)
	go fw.watchLoop(ctx)
}

// Stop releases the underlying watcher.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		fw.debouncer.stop()
		err = fw.watcher.Close()
	})
	return err
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsnotifyEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "file watcher error")
		}
	}
}

func (fw *FileWatcher) accepts(path string) bool {
	fw.mutex.RLock()
	defer fw.mutex.RUnlock()
	for _, filter := range fw.filters {
		if !filter(path) {
			return false
		}
	}
	return true
}

func (fw *FileWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	if !fw.accepts(event.Name) {
		return
	}

	change := ChangeEvent{Path: event.Name, Type: eventType(event.Op)}
	if info, err := os.Stat(event.Name); err == nil {
		change.ModTime = info.ModTime()
		change.Size = info.Size()
	}

	fw.debouncer.add(change)
}

func eventType(op fsnotify.Op) EventType {
	switch {
	case op.Has(fsnotify.Create):
		return EventTypeCreated
	case op.Has(fsnotify.Write):
		return EventTypeModified
	case op.Has(fsnotify.Remove):
		return EventTypeDeleted
	case op.Has(fsnotify.Rename):
		return EventTypeRenamed
	default:
		return EventTypeModified
	}
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-fw.debouncer.output:
			fw.dispatch(ctx, events)
		}
	}
}

func (fw *FileWatcher) dispatch(ctx context.Context, events []ChangeEvent) {
	fw.mutex.RLock()
	handlers := append([]ChangeHandler(nil), fw.handlers...)
	fw.mutex.RUnlock()

	for _, handler := range handlers {
		if err := handler(events); err != nil {
			fw.logger.Warn(ctx, err, "file change handler failed", "events", len(events))
		}
	}
}

// Debouncer groups rapid file changes together
type Debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

func newDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		events: make(chan ChangeEvent, 100),
		output: make(chan []ChangeEvent, 10),
	}
}

func (d *Debouncer) add(event ChangeEvent) {
	select {
	case d.events <- event:
	default:
		// Full: a flush is already pending and will pick up the file state.
	}
}

func (d *Debouncer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.stop()
			return
		case event := <-d.events:
			d.addEvent(event)
		}
	}
}

func (d *Debouncer) addEvent(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// flush emits the pending events, keeping the latest event per path.
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	latest := make(map[string]ChangeEvent, len(d.pending))
	for _, event := range d.pending {
		latest[event.Path] = event
	}

	events := make([]ChangeEvent, 0, len(latest))
	for _, event := range latest {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })

	select {
	case d.output <- events:
	default:
	}

	d.pending = d.pending[:0]
}

// ExactFilter accepts only the given absolute path.
func ExactFilter(abs string) FileFilter {
	abs = filepath.Clean(abs)
	return func(path string) bool {
		p, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return p == abs
	}
}
