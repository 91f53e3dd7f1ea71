// Package arbfile implements writing (and reading back) of Flutter ARB
// (Application Resource Bundle) files.
//
// Generated files look like:
//
//	{
//	  "@@locale": "en",
//	  "hello": "Hello {param1}",
//	  "bye": "Goodbye",
//	  "hello@parameter": {
//	    "param1": "StringParam1"
//	  }
//	}
//
//   - "@@locale" is always the first key.
//   - Messages follow in source order, with positional markers already
//     rewritten to {paramN}.
//   - Every message that uses parameters gets a "<key>@parameter" sibling
//     after all messages, mapping parameter name → type hint.
//
// File naming convention: app_LANG.arb (e.g. app_en.arb, app_pt_BR.arb)
// stored in a single directory.
package arbfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/lokitchen/orderedjson"
	"github.com/minios-linux/lokitchen/placeholder"
	"github.com/minios-linux/lokitchen/source"
)

// ---------------------------------------------------------------------------
// File model
// ---------------------------------------------------------------------------

// File represents one ARB document.
type File struct {
	// locale is the value of @@locale.
	locale string
	// messages holds translatable key → value pairs in document order.
	messages *source.Map
	// params holds the <key>@parameter siblings in document order.
	params []placeholder.ParamSet
}

// New builds an ARB file for locale from already-translated messages and
// their parameter descriptions. A "@@locale" entry inside messages is
// ignored; locale always wins.
func New(locale string, messages *source.Map, params []placeholder.ParamSet) *File {
	f := &File{locale: locale, messages: source.NewMap(), params: params}
	for _, k := range messages.Keys() {
		if k == placeholder.LocaleKey {
			continue
		}
		v, _ := messages.Get(k)
		f.messages.Set(k, v)
	}
	return f
}

// FileName returns the conventional ARB file name for lang
// (pt-BR → app_pt_BR.arb).
func FileName(lang string) string {
	return "app_" + strings.ReplaceAll(lang, "-", "_") + ".arb"
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Locale returns the @@locale value.
func (f *File) Locale() string { return f.locale }

// Keys returns all translatable (non-metadata) keys in document order.
func (f *File) Keys() []string { return f.messages.Keys() }

// Get returns the string value for a translatable key.
func (f *File) Get(key string) (string, bool) { return f.messages.Get(key) }

// Messages returns the translatable entries as a source map.
func (f *File) Messages() *source.Map {
	return f.messages.Clone()
}

// Params returns the parameter description for key, if any.
func (f *File) Params(key string) (placeholder.ParamSet, bool) {
	for _, ps := range f.params {
		if ps.Key == key {
			return ps, true
		}
	}
	return placeholder.ParamSet{}, false
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the ARB file to JSON with 2-space indentation.
// The @@locale key is always written first.
func (f *File) Marshal() []byte {
	doc := orderedjson.NewObject()
	doc.Set(placeholder.LocaleKey, f.locale)
	for _, k := range f.messages.Keys() {
		v, _ := f.messages.Get(k)
		doc.Set(k, v)
	}
	for _, ps := range f.params {
		obj := orderedjson.NewObject()
		for _, p := range ps.Params {
			obj.Set(p.Name, p.Hint)
		}
		doc.Set(ps.SiblingKey(), obj)
	}
	return append(doc.Marshal("  "), '\n')
}

// WriteFile serialises and writes to path.
func (f *File) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, f.Marshal(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses an ARB file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses ARB content. Metadata entries other than @@locale and
// <key>@parameter siblings ("@key" descriptions, "@@x-..." fields) are
// dropped.
func Parse(data []byte) (*File, error) {
	doc, err := orderedjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing ARB: %w", err)
	}

	f := &File{messages: source.NewMap()}
	for _, k := range doc.Keys() {
		v, _ := doc.Get(k)
		switch {
		case k == placeholder.LocaleKey:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("parsing ARB: %s must be a string", placeholder.LocaleKey)
			}
			f.locale = s
		case strings.HasPrefix(k, "@"):
			// description metadata
		case strings.HasSuffix(k, placeholder.ParamSuffix):
			obj, ok := v.(*orderedjson.Object)
			if !ok {
				return nil, fmt.Errorf("parsing ARB: %q must be an object", k)
			}
			ps := placeholder.ParamSet{Key: strings.TrimSuffix(k, placeholder.ParamSuffix)}
			for _, name := range obj.Keys() {
				hint, _ := obj.String(name)
				ps.Params = append(ps.Params, placeholder.Param{Name: name, Hint: hint})
			}
			f.params = append(f.params, ps)
		default:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("parsing ARB: value for %q must be a string", k)
			}
			f.messages.Set(k, s)
		}
	}
	return f, nil
}
