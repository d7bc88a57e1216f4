package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ragscholar/scholar-cli/internal/core/ports/driving"
	"github.com/ragscholar/scholar-cli/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before upload.
// Editors and download managers write in bursts; uploading mid-write
// would ship a truncated document.
const DefaultDebounce = 500 * time.Millisecond

// UploadWatcher watches one directory and uploads new files.
type UploadWatcher struct {
	dir       string
	documents driving.DocumentService
	debounce  time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	done    map[string]bool
}

// NewUploadWatcher creates a watcher for the given directory. A
// non-positive debounce falls back to the default.
func NewUploadWatcher(dir string, documents driving.DocumentService, debounce time.Duration) (*UploadWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", dir)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &UploadWatcher{
		dir:       dir,
		documents: documents,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
		done:      make(map[string]bool),
	}, nil
}

// Start watches the directory until the context is cancelled. Files
// already present at startup are not uploaded; only new arrivals are.
func (w *UploadWatcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s for uploads", w.dir)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case <-ticker.C:
			w.uploadSettled(ctx)
		}
	}
}

// handleEvent records write activity for later upload.
func (w *UploadWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if skipFile(event.Name) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	if !w.done[event.Name] {
		w.pending[event.Name] = time.Now()
	}
	w.mu.Unlock()
}

// uploadSettled uploads pending files whose last write is older than
// the debounce window.
func (w *UploadWatcher) uploadSettled(ctx context.Context) {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		doc, err := w.documents.UploadPath(ctx, path)
		if err != nil {
			logger.Warn("uploading %s: %v", path, err)
			continue
		}
		logger.Info("uploaded %s as document %s", filepath.Base(path), doc.ID)
		w.mu.Lock()
		w.done[path] = true
		w.mu.Unlock()
	}
}

// skipFile filters out hidden files and editor temp files.
func skipFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasSuffix(base, ".part") ||
		strings.HasSuffix(base, ".crdownload")
}
