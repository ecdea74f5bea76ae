package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cvmatch/internal/errors"
	"cvmatch/internal/types"
)

// Watcher keeps an in-memory snapshot of the corpus and reloads it when the
// workbook changes on disk. Readers always get an immutable snapshot slice;
// a reload swaps the slice, it never mutates records in place.
type Watcher struct {
	mu sync.RWMutex

	loader *Loader
	path   string

	records     []types.JobRecord
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	// onReload fires after every successful reload, with the new record count.
	onReload func(count int)
	logger   *errors.Logger

	running bool
}

// NewWatcher loads the corpus once and prepares a watcher for it. The
// initial load must succeed; later reload failures keep the previous
// snapshot and are logged.
func NewWatcher(loader *Loader, path string, debounceDelay time.Duration, onReload func(count int), logger *errors.Logger) (*Watcher, error) {
	if debounceDelay == 0 {
		debounceDelay = 2 * time.Second
	}

	records, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:        loader,
		path:          path,
		records:       records,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		onReload:      onReload,
		logger:        logger,
	}
	if stat, err := os.Stat(path); err == nil {
		w.lastModTime = stat.ModTime()
	}
	return w, nil
}

// Snapshot returns the current corpus. The returned slice must not be
// modified by callers.
func (w *Watcher) Snapshot() []types.JobRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.records
}

// Start begins watching the corpus file for changes
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("corpus watcher is already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = fsWatcher

	// Watch the directory too so atomic writes (rename onto the path) are
	// still seen.
	if err := fsWatcher.Add(w.path); err != nil {
		if !os.IsNotExist(err) {
			w.cleanupWatcher()
			return fmt.Errorf("failed to watch corpus file %s: %w", w.path, err)
		}
	}
	dir := filepath.Dir(w.path)
	if err := fsWatcher.Add(dir); err != nil && w.logger != nil {
		w.logger.Warn("Failed to watch corpus directory", "directory", dir, "error", err)
	}

	w.running = true
	go w.watchLoop()

	if w.logger != nil {
		w.logger.Info("Corpus file watcher started",
			"path", w.path,
			"debounce_delay", w.debounceDelay)
	}
	return nil
}

// Stop stops the corpus file watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			if w.logger != nil {
				w.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}
	w.running = false

	if w.logger != nil {
		w.logger.Info("Corpus file watcher stopped")
	}
	return nil
}

func (w *Watcher) cleanupWatcher() {
	if w.fsWatcher != nil {
		if closeErr := w.fsWatcher.Close(); closeErr != nil && w.logger != nil {
			w.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// watchLoop is the main event loop for file watching
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.LogError(err, "Corpus watcher error")
			}

		case <-w.reloadChan:
			if w.hasFileChanged() {
				w.reload()
			}

		case <-w.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != w.path && filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the corpus file was modified since the last load
func (w *Watcher) hasFileChanged() bool {
	stat, err := os.Stat(w.path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if stat.ModTime().After(w.lastModTime) {
		w.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// reload swaps in a fresh snapshot. A failed reload keeps the previous one.
func (w *Watcher) reload() {
	records, err := w.loader.Load(w.path)
	if err != nil {
		if w.logger != nil {
			w.logger.LogError(err, "Corpus reload failed, keeping previous snapshot", "path", w.path)
		}
		return
	}

	w.mu.Lock()
	w.records = records
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Info("Corpus reloaded", "path", w.path, "records", len(records))
	}
	if w.onReload != nil {
		w.onReload(len(records))
	}
}

// scheduleReload schedules a debounced reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
