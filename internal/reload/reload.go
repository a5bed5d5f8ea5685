// Package reload keeps a grammar engine current while its rule file is
// edited. A Holder owns the active engine; a Watcher calls back when the
// rule file changes on disk.
package reload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/poeta-go/grammar"
)

// LoadFunc builds a fresh engine.
type LoadFunc func() (*grammar.Engine, *grammar.LoadReport, error)

// Holder serves the current engine to concurrent readers. A failed reload
// keeps the previous engine.
type Holder struct {
	current atomic.Pointer[grammar.Engine]
	load    LoadFunc
	logger  *log.Logger
	mu      sync.Mutex
	hooks   []func(*grammar.Engine, *grammar.LoadReport, error)
}

// NewHolder performs the initial load; its failure is returned.
func NewHolder(load LoadFunc, logger *log.Logger) (*Holder, error) {
	if logger == nil {
		logger = log.Default()
	}
	h := &Holder{load: load, logger: logger}
	e, rep, err := load()
	if err != nil {
		return nil, err
	}
	h.current.Store(e)
	logReport(logger, rep)
	return h, nil
}

// Engine returns the active engine.
func (h *Holder) Engine() *grammar.Engine { return h.current.Load() }

// OnReload registers fn to run after every reload attempt. It receives
// the new engine (nil on failure).
func (h *Holder) OnReload(fn func(*grammar.Engine, *grammar.LoadReport, error)) {
	h.mu.Lock()
	h.hooks = append(h.hooks, fn)
	h.mu.Unlock()
}

// Reload rebuilds the engine and swaps it in on success.
func (h *Holder) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, rep, err := h.load()
	if err == nil {
		h.current.Store(e)
		logReport(h.logger, rep)
		h.logger.Info("rules reloaded", "rules", e.Table().Len())
	} else {
		h.logger.Error("rule reload failed, keeping previous rules", "err", err)
	}
	for _, fn := range h.hooks {
		fn(e, rep, err)
	}
	return err
}

func logReport(logger *log.Logger, rep *grammar.LoadReport) {
	if rep == nil {
		return
	}
	if n := len(rep.Errors()); n > 0 {
		logger.Warn("rule file has invalid lines", "source", rep.Source, "skipped", n, "loaded", rep.Loaded)
	}
}

// Watcher reports changes of one file. It watches the parent directory so
// that editors replacing the file by rename are noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *log.Logger
}

// NewWatcher starts watching path. Events that happen before Watch is
// called are delivered once it runs.
func NewWatcher(path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}
	return &Watcher{path: abs, debounce: debounce, watcher: fw, logger: logger}, nil
}

// Watch blocks until ctx is cancelled, calling onChange once per burst of
// changes to the file. Errors from onChange are logged and watching goes
// on. The underlying watcher is closed when Watch returns.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	defer w.watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	fire := func() {
		if err := onChange(); err != nil {
			w.logger.Error("reload callback failed", "path", w.path, "err", err)
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	w.logger.Info("watching rule file", "path", w.path, "debounce", w.debounce)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("rule file event", "op", ev.Op.String())
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}
