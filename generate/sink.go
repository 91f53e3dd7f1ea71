package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sink receives generated documents. Paths are slash-separated and relative
// to the output root (e.g. "android/values-ja/strings.xml").
type Sink interface {
	Write(path string, data []byte) error
}

// DirSink writes documents under Root, creating parent directories.
type DirSink struct {
	Root string
}

// Write implements Sink.
func (s DirSink) Write(path string, data []byte) error {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", full, err)
	}
	return nil
}

// MemorySink keeps documents in memory. Used for dry runs and tests.
type MemorySink struct {
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Write implements Sink. A second write to the same path replaces the first.
func (s *MemorySink) Write(path string, data []byte) error {
	s.files[path] = append([]byte(nil), data...)
	return nil
}

// Get returns the document written to path.
func (s *MemorySink) Get(path string) ([]byte, bool) {
	data, ok := s.files[path]
	return data, ok
}

// Paths returns every written path, sorted.
func (s *MemorySink) Paths() []string {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
