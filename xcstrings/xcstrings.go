// Package xcstrings builds Xcode string catalogs (.xcstrings).
//
// Unlike the other output formats a catalog holds every language at once:
//
//	{
//	  "sourceLanguage": "en",
//	  "strings": {
//	    "hello": {
//	      "localizations": {
//	        "en": {"stringUnit": {"state": "translated", "value": "Hello %@"}},
//	        "ja": {"stringUnit": {"state": "translated", "value": "こんにちは %@"}}
//	      }
//	    }
//	  },
//	  "version": "1.0"
//	}
//
// A Catalog is filled language by language with Add and serialised once
// after the last language.
package xcstrings

import (
	"github.com/minios-linux/lokitchen/orderedjson"
	"github.com/minios-linux/lokitchen/source"
)

// FileName is the conventional catalog file name.
const FileName = "Localizable.xcstrings"

// Version is the catalog format version written to every file.
const Version = "1.0"

// StateTranslated marks a string unit as final.
const StateTranslated = "translated"

// Catalog aggregates translated strings of all languages.
type Catalog struct {
	sourceLanguage string
	// strings maps key → {"localizations": {lang → unit}} in first-seen order.
	strings *orderedjson.Object
	langs   []string
}

// NewCatalog returns an empty catalog for the given source language.
func NewCatalog(sourceLanguage string) *Catalog {
	return &Catalog{sourceLanguage: sourceLanguage, strings: orderedjson.NewObject()}
}

// Add folds the (already Xcode-translated) entries of lang into the catalog.
// Keys not seen before are appended; a key only gets a localization for the
// languages that define it.
func (c *Catalog) Add(lang string, entries *source.Map) {
	c.langs = append(c.langs, lang)
	for _, k := range entries.Keys() {
		v, _ := entries.Get(k)
		unit := c.strings.Child(k).Child("localizations").Child(lang).Child("stringUnit")
		unit.Set("state", StateTranslated)
		unit.Set("value", v)
	}
}

// SourceLanguage returns the catalog's source language.
func (c *Catalog) SourceLanguage() string { return c.sourceLanguage }

// Languages returns the languages added so far, in order.
func (c *Catalog) Languages() []string { return append([]string(nil), c.langs...) }

// Keys returns every string key in first-seen order.
func (c *Catalog) Keys() []string { return c.strings.Keys() }

// Value returns the translated value of key for lang.
func (c *Catalog) Value(key, lang string) (string, bool) {
	entry, ok := c.strings.Get(key)
	if !ok {
		return "", false
	}
	locs, ok := entry.(*orderedjson.Object).Get("localizations")
	if !ok {
		return "", false
	}
	unit, ok := locs.(*orderedjson.Object).Get(lang)
	if !ok {
		return "", false
	}
	su, _ := unit.(*orderedjson.Object).Get("stringUnit")
	return su.(*orderedjson.Object).String("value")
}

// Marshal serialises the catalog with 2-space indentation.
func (c *Catalog) Marshal() []byte {
	doc := orderedjson.NewObject()
	doc.Set("sourceLanguage", c.sourceLanguage)
	doc.Set("strings", c.strings)
	doc.Set("version", Version)
	return append(doc.Marshal("  "), '\n')
}
