// Package android implements writing (and reading back) of Android
// strings.xml resource files.
//
// Output layout for a project with base language "en" and targets ja, pt-BR:
//
//	android/strings.xml                (base language)
//	android/values-ja/strings.xml
//	android/values-pt-rBR/strings.xml
//
// Android already understands positional %1$s markers, so values are written
// without placeholder rewriting. A value holding well-formed inline markup
// (<b>, <xliff:g>) is written as XML; any other value has its special
// characters escaped. Parse reads inline markup back in the same raw form.
package android

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minios-linux/lokitchen/source"
)

// FileName is the resource file name used in every values directory.
const FileName = "strings.xml"

// xliffNamespace is declared on <resources> when a value uses xliff: tags.
const xliffNamespace = "urn:oasis:names:tc:xliff:document:1.2"

const indent = "    "

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Emit serialises entries as a pretty-printed <resources> document with one
// <string name="KEY"> element per entry, in map order.
func Emit(entries *source.Map) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" ?>\n")

	keys := entries.Keys()
	if len(keys) == 0 {
		b.WriteString("<resources/>\n")
		return []byte(b.String())
	}

	var body strings.Builder
	needXliff := false
	for _, k := range keys {
		v, _ := entries.Get(k)
		body.WriteString(indent)
		if v == "" {
			body.WriteString(fmt.Sprintf("<string name=\"%s\"/>\n", escapeAttr(k)))
			continue
		}
		content := escapeText(v)
		if isMarkup(v) {
			content = v
			needXliff = needXliff || strings.Contains(v, "<xliff:")
		}
		body.WriteString(fmt.Sprintf("<string name=\"%s\">%s</string>\n", escapeAttr(k), content))
	}

	if needXliff {
		b.WriteString(fmt.Sprintf("<resources xmlns:xliff=\"%s\">\n", xliffNamespace))
	} else {
		b.WriteString("<resources>\n")
	}
	b.WriteString(body.String())
	b.WriteString("</resources>\n")
	return []byte(b.String())
}

// isMarkup reports whether s is well-formed XML content containing at least
// one element.
func isMarkup(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}
	dec := xml.NewDecoder(strings.NewReader("<x>" + s + "</x>"))
	elements := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return elements > 1
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			elements++
		}
	}
}

// escapeText escapes special XML characters in element content.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// escapeAttr escapes a value for use inside a double-quoted attribute.
func escapeAttr(s string) string {
	return strings.ReplaceAll(escapeText(s), `"`, "&quot;")
}

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

// ParseFile reads the <string> resources of a strings.xml file.
func ParseFile(path string) (*source.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse extracts translatable <string> resources in document order.
// Resources marked translatable="false" and other resource types
// (<string-array>, <plurals>) are skipped. Android-escaped apostrophes (\')
// are unescaped; inline markup such as <xliff:g> is kept as raw text.
func Parse(data []byte) (*source.Map, error) {
	m := source.NewMap()
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	inResources := false
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "resources" {
				inResources = true
				sawRoot = true
				continue
			}
			if !inResources {
				continue
			}
			if t.Name.Local != "string" {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("parsing XML: %w", err)
				}
				continue
			}
			name, translatable := parseAttrs(t)
			value, err := readElementContent(dec)
			if err != nil {
				return nil, fmt.Errorf("reading <string name=%q>: %w", name, err)
			}
			if name != "" && translatable {
				m.Set(name, value)
			}

		case xml.EndElement:
			if t.Name.Local == "resources" {
				inResources = false
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("no <resources> element found")
	}
	return m, nil
}

// parseAttrs extracts name and translatable from a start element.
func parseAttrs(elem xml.StartElement) (name string, translatable bool) {
	translatable = true // default
	for _, attr := range elem.Attr {
		switch attr.Name.Local {
		case "name":
			name = attr.Value
		case "translatable":
			if strings.EqualFold(attr.Value, "false") {
				translatable = false
			}
		}
	}
	return
}

// readElementContent reads the inner content of an element up to its
// matching close tag. Plain text comes back unescaped. Content with inline
// child elements comes back as raw XML (text escaped, tags rebuilt) so that
// Emit writes it out as markup again.
func readElementContent(dec *xml.Decoder) (string, error) {
	var plain, raw strings.Builder
	hasChild := false
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text := strings.ReplaceAll(string(t), `\'`, `'`)
			plain.WriteString(text)
			raw.WriteString(escapeText(text))
		case xml.StartElement:
			hasChild = true
			depth++
			raw.WriteString("<")
			writeName(&raw, t.Name)
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				raw.WriteString(fmt.Sprintf(` %s="%s"`, attr.Name.Local, escapeAttr(attr.Value)))
			}
			raw.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				raw.WriteString("</")
				writeName(&raw, t.Name)
				raw.WriteString(">")
			}
		}
	}
	if hasChild {
		return raw.String(), nil
	}
	return plain.String(), nil
}

func writeName(b *strings.Builder, n xml.Name) {
	if n.Space != "" {
		// The decoder resolves known prefixes to their URI; keep the
		// conventional xliff prefix readable.
		space := n.Space
		if strings.Contains(space, "xliff") {
			space = "xliff"
		}
		b.WriteString(space)
		b.WriteString(":")
	}
	b.WriteString(n.Local)
}

// ---------------------------------------------------------------------------
// Resource directory layout
// ---------------------------------------------------------------------------

// DetectLanguages scans an Android res/ directory for values-XX/ directories
// that contain strings.xml and returns the language codes.
func DetectLanguages(resDir string) []string {
	entries, err := os.ReadDir(resDir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "values-") {
			continue
		}
		lang := strings.TrimPrefix(name, "values-")
		if lang == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(resDir, name, FileName)); err == nil {
			langs = append(langs, androidLocaleToStandard(lang))
		}
	}
	sort.Strings(langs)
	return langs
}

// LocaleDirName converts a standard language code to an Android values
// directory name (e.g., "pt-BR" -> "values-pt-rBR", "ja" -> "values-ja").
func LocaleDirName(lang string) string {
	return "values-" + standardToAndroidLocale(lang)
}

// TargetPath returns the strings.xml path for a translated language,
// relative to the Android output directory.
func TargetPath(lang string) string {
	return filepath.Join(LocaleDirName(lang), FileName)
}

// LocalizedPath returns the strings.xml path of lang inside a res/ directory.
func LocalizedPath(resDir, lang string) string {
	return filepath.Join(resDir, TargetPath(lang))
}

// DefaultPath returns the path of the default (base language) strings.xml
// inside a res/ directory.
func DefaultPath(resDir string) string {
	return filepath.Join(resDir, "values", FileName)
}

// androidLocaleToStandard converts Android locale format to standard BCP-47.
// e.g., "pt-rBR" -> "pt-BR", "zh-rCN" -> "zh-CN", "ru" -> "ru"
func androidLocaleToStandard(androidLocale string) string {
	if idx := strings.Index(androidLocale, "-r"); idx >= 0 {
		return androidLocale[:idx] + "-" + androidLocale[idx+2:]
	}
	return androidLocale
}

// standardToAndroidLocale converts standard BCP-47 to Android locale format.
// e.g., "pt-BR" -> "pt-rBR", "zh_CN" -> "zh-rCN", "ru" -> "ru"
func standardToAndroidLocale(lang string) string {
	lang = strings.ReplaceAll(lang, "_", "-")
	parts := strings.SplitN(lang, "-", 2)
	if len(parts) == 2 && len(parts[1]) > 0 {
		return parts[0] + "-r" + parts[1]
	}
	return lang
}
