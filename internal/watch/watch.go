// Package watch re-reads a config file whenever it changes on disk and reports
// which fields changed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	config "github.com/jcn509/Xbox-BIOS-config-editor-for-XBMC"
)

// LoadFunc builds a config from the watched file.
type LoadFunc func(path string) (*config.Config, error)

// Options configures file watching behavior
type Options struct {
	// Debounce duration to avoid rapid reloads
	Debounce time.Duration

	// Buffer is the capacity of the event channel
	Buffer int

	Logger zerolog.Logger
}

// DefaultOptions returns sensible defaults for file watching
func DefaultOptions() Options {
	return Options{
		Debounce: DefaultDebounce,
		Buffer:   DefaultBuffer,
		Logger:   zerolog.Nop(),
	}
}

// Event reports one reload of the watched file.
type Event struct {
	// Config is the newly loaded config, nil when Err is set.
	Config *config.Config
	// Changed lists the fields that differ from the previous load.
	Changed []string
	// Removed is set when the file disappeared.
	Removed bool
	Err     error
}

// Watcher reloads a config file on every change.
type Watcher struct {
	path string
	load LoadFunc
	opts Options

	mu            sync.Mutex
	current       *config.Config
	debounceTimer *time.Timer
}

// New creates a watcher for path. initial is the config loaded before
// watching starts and is the baseline for the first diff.
func New(path string, initial *config.Config, load LoadFunc, opts Options) *Watcher {
	if opts.Debounce < MinDebounce {
		opts.Debounce = MinDebounce
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	return &Watcher{
		path:    filepath.Clean(path),
		load:    load,
		opts:    opts,
		current: initial,
	}
}

// Run watches until ctx is cancelled, sending one Event per settled change.
// The returned channel is closed when watching stops.
func (w *Watcher) Run(ctx context.Context) (<-chan Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: atomic saves replace the file by rename.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch directory '%s': %w", dir, err)
	}

	events := make(chan Event, w.opts.Buffer)
	go w.loop(ctx, fsw, events)

	w.opts.Logger.Info().Str("path", w.path).Msg("Started watching config file")
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, events chan Event) {
	var wg sync.WaitGroup
	// Closed on exit so pending reloads stop waiting for a reader.
	done := make(chan struct{})
	defer func() {
		w.mu.Lock()
		if w.debounceTimer != nil && w.debounceTimer.Stop() {
			wg.Done()
		}
		w.mu.Unlock()
		close(done)
		wg.Wait()
		fsw.Close()
		close(events)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.opts.Logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Config file changed")

			if event.Op&fsnotify.Remove != 0 {
				w.send(ctx, done, events, Event{Removed: true})
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Debounce rapid changes
			w.mu.Lock()
			if w.debounceTimer != nil && w.debounceTimer.Stop() {
				wg.Done()
			}
			wg.Add(1)
			w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
				defer wg.Done()
				w.send(ctx, done, events, w.reload())
			})
			w.mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.opts.Logger.Warn().Err(err).Msg("Watcher error")
			w.send(ctx, done, events, Event{Err: err})
		}
	}
}

// reload loads the file and diffs it against the previous load.
func (w *Watcher) reload() Event {
	cfg, err := w.load(w.path)
	if err != nil {
		return Event{Err: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	if w.current != nil {
		changed = w.current.Diff(cfg)
	} else {
		for _, c := range cfg.NonDefault() {
			changed = append(changed, c.Field)
		}
	}
	w.current = cfg
	return Event{Config: cfg, Changed: changed}
}

func (w *Watcher) send(ctx context.Context, done <-chan struct{}, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	case <-done:
	}
}
