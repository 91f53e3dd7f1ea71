// Package source loads Localization Maps: the per-language key → template
// string data every output format is generated from.
//
// Three on-disk encodings are supported:
//
//   - JSON: a single object whose values are strings
//     {"hello": "Hello %1$s", "bye": "Goodbye"}
//   - YAML: a flat or nested mapping; nested keys are joined with "."
//     (nav: {home: Home} → "nav.home"). A Rails-style single locale root
//     (en: {...}) is unwrapped.
//   - Java .properties: key=value lines
//
// Key order from the source document is preserved; it drives the order of
// every generated file.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Map
// ---------------------------------------------------------------------------

// Map is an ordered mapping from string key to template string.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// FromPairs builds a Map from alternating key, value arguments.
// It panics on an odd number of arguments.
func FromPairs(kv ...string) *Map {
	if len(kv)%2 != 0 {
		panic("source.FromPairs: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores value under key. A key that is already present keeps its
// original position.
func (m *Map) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns all keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	return m.Transform(func(s string) string { return s })
}

// Transform returns a copy with every value passed through fn. Key order is
// kept.
func (m *Map) Transform(fn func(string) string) *Map {
	out := &Map{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]string, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = fn(v)
	}
	return out
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadFile reads a source document, choosing the decoder by file extension
// (.json, .yaml, .yml, .properties).
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m *Map
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		m, err = ParseJSON(data)
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	case ".properties":
		m, err = ParseProperties(data)
	default:
		return nil, fmt.Errorf("%s: unsupported source extension %q (valid: .json, .yaml, .yml, .properties)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ResolvePath expands a file name pattern for lang inside dir. The pattern
// must contain the "{lang}" placeholder; suffix, when non-empty, is inserted
// before the file extension (sample_en.json + "_unified" →
// sample_en_unified.json).
func ResolvePath(dir, pattern, lang, suffix string) string {
	name := strings.ReplaceAll(pattern, "{lang}", lang)
	if suffix != "" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + suffix + ext
	}
	return filepath.Join(dir, name)
}
