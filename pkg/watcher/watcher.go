package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// RecursiveWatcher wraps fsnotify with recursive directory support.
// fsnotify is NOT recursive on Linux/POSIX, so we must explicitly
// watch all subdirectories and dynamically add watchers for new directories.
type RecursiveWatcher struct {
	*fsnotify.Watcher
	mu      sync.RWMutex
	watched map[string]bool
}

// New creates a new RecursiveWatcher
func New() (*RecursiveWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &RecursiveWatcher{
		Watcher: w,
		watched: make(map[string]bool),
	}, nil
}

// AddRecursive adds a directory and all its subdirectories to the watcher.
func (w *RecursiveWatcher) AddRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip inaccessible directories
		}
		if d.IsDir() {
			// Skip hidden directories (e.g., .git)
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				return nil // Skip, don't fail entirely
			}
			w.mu.Lock()
			w.watched[path] = true
			w.mu.Unlock()
		}
		return nil
	})
}

// HandleNewDirectory checks if an event is a new directory and adds it to the watcher.
// Returns true if a new directory was added.
func (w *RecursiveWatcher) HandleNewDirectory(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}

	// Skip hidden directories
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	// New directory created - add it and all subdirectories to the watcher
	w.AddRecursive(event.Name)
	return true
}

// IsWatched reports whether a directory is currently watched.
func (w *RecursiveWatcher) IsWatched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watched[path]
}
