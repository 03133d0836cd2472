// Package emitter provides the sinks that emitted artifacts are
// registered with. The loader treats a sink as an opaque append-only
// target; collision policy for identical output paths belongs to the
// host, not to the sink.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Emitter registers an artifact's bytes under a forward-slash output path.
type Emitter interface {
	Emit(path string, content []byte) error
}

// FS writes artifacts into a root directory, creating parent
// directories as needed.
type FS struct {
	root string
}

// NewFS creates a filesystem sink rooted at root.
func NewFS(root string) *FS {
	return &FS{root: root}
}

// Root returns the sink's root directory.
func (f *FS) Root() string {
	return f.root
}

// Emit writes content to root/path.
func (f *FS) Emit(path string, content []byte) error {
	full := filepath.Join(f.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(full, content, 0644)
}

// Memory collects emitted artifacts in a map. Used by tests and by dry
// runs, where the build should resolve everything without touching disk.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Emit stores a copy of content under path.
func (m *Memory) Emit(path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	m.files[path] = buf
	return nil
}

// Get returns the content emitted under path.
func (m *Memory) Get(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	return content, ok
}

// Len returns the number of emitted artifacts.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// Paths returns the emitted output paths in sorted order.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
