package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/billie-coop/propedit/internal/logger"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher collects rapid changes and reports them once things settle.
type FileWatcher struct {
	debounceDelay time.Duration
	// names restricts reports to these base names. Empty means everything
	// that is not hidden.
	names map[string]struct{}

	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths map[string]struct{}
	stopped      bool

	onChange func([]string)
	log      logger.Logger
}

// NewWatcher creates a watcher that calls onChange with the changed paths
// after debounceDelay without further changes. When names are given only
// files with those base names are reported.
func NewWatcher(debounceDelay time.Duration, onChange func([]string), names ...string) *FileWatcher {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounce
	}
	w := &FileWatcher{
		debounceDelay: debounceDelay,
		names:         make(map[string]struct{}, len(names)),
		pendingPaths:  make(map[string]struct{}),
		onChange:      onChange,
		log:           logger.Nop(),
	}
	for _, n := range names {
		w.names[n] = struct{}{}
	}
	return w
}

// SetLogger sets the logger used for fsnotify errors.
func (w *FileWatcher) SetLogger(l logger.Logger) {
	w.log = l
}

// FileChanged notifies the watcher of a change. Multiple rapid calls are
// debounced into a single onChange call.
func (w *FileWatcher) FileChanged(path string) {
	w.FilesChanged([]string{path})
}

// FilesChanged notifies the watcher of several changes at once.
func (w *FileWatcher) FilesChanged(paths []string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.stopped {
		return
	}

	added := false
	for _, path := range paths {
		if !w.shouldIgnore(path) {
			w.pendingPaths[path] = struct{}{}
			added = true
		}
	}
	if !added {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// Stop cancels any pending report. Later notifications are ignored.
func (w *FileWatcher) Stop() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingPaths = make(map[string]struct{})
}

// Watch feeds the watcher from fsnotify events in dir until ctx is done.
func (w *FileWatcher) Watch(ctx context.Context, dir string) error {
	fsw, err := w.open(dir)
	if err != nil {
		return err
	}
	w.loop(ctx, fsw, dir)
	return nil
}

// Start is Watch in the background. Setup errors are returned before it
// returns.
func (w *FileWatcher) Start(ctx context.Context, dir string) error {
	fsw, err := w.open(dir)
	if err != nil {
		return err
	}
	go w.loop(ctx, fsw, dir)
	return nil
}

func (w *FileWatcher) open(dir string) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return fsw, nil
}

func (w *FileWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, dir string) {
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.FileChanged(event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
				w.log.Warn("file watcher error", "dir", dir, "error", err)
			}
		}
	}
}

func (w *FileWatcher) processPending() {
	w.timerMu.Lock()
	paths := make([]string, 0, len(w.pendingPaths))
	for path := range w.pendingPaths {
		paths = append(paths, path)
	}
	w.pendingPaths = make(map[string]struct{})
	w.timer = nil
	stopped := w.stopped
	w.timerMu.Unlock()

	sort.Strings(paths)
	if !stopped && len(paths) > 0 && w.onChange != nil {
		w.onChange(paths)
	}
}

func (w *FileWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if len(w.names) > 0 {
		_, ok := w.names[base]
		return !ok
	}
	if strings.HasPrefix(base, ".") {
		return true
	}
	switch filepath.Ext(base) {
	case ".lock", ".tmp", ".swp", ".swo":
		return true
	}
	return false
}
