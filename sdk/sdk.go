// Package sdk defines the closed set of target platforms lokitchen can
// generate localization files for.
//
// Each platform selects both a placeholder dialect and an output format:
//
//	android    strings.xml resources, %1$s markers kept as-is
//	flutter    ARB files, {param1} markers
//	xcode      a single Localizable.xcstrings catalog, %@ markers
//	react      a single LocalizedStrings.js module, {0} markers
package sdk

import (
	"errors"
	"fmt"
	"strings"
)

// Platform is a target SDK tag.
type Platform string

const (
	Android Platform = "android"
	Flutter Platform = "flutter"
	Xcode   Platform = "xcode"
	React   Platform = "react"
)

// ErrUnsupported is returned by Parse for tags outside the supported set.
var ErrUnsupported = errors.New("unsupported sdk")

// All lists every supported platform in canonical order.
var All = []Platform{Android, Flutter, Xcode, React}

// aliases maps alternative spellings to canonical tags.
var aliases = map[string]Platform{
	"android_studio": Android,
	"android-studio": Android,
	"dart":           Flutter,
	"ios":            Xcode,
	"react_native":   React,
	"react-native":   React,
}

// Parse resolves a tag (case-insensitive, aliases allowed) to a Platform.
func Parse(tag string) (Platform, error) {
	s := strings.ToLower(strings.TrimSpace(tag))
	for _, p := range All {
		if s == string(p) {
			return p, nil
		}
	}
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnsupported, tag, strings.Join(Names(), ", "))
}

// ParseList resolves a list of tags, dropping duplicates while keeping order.
// The first unsupported tag aborts with an error.
func ParseList(tags []string) ([]Platform, error) {
	seen := make(map[Platform]bool, len(tags))
	var out []Platform
	for _, t := range tags {
		p, err := Parse(t)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// Names returns the canonical tag names.
func Names() []string {
	names := make([]string, len(All))
	for i, p := range All {
		names[i] = string(p)
	}
	return names
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	for _, q := range All {
		if p == q {
			return true
		}
	}
	return false
}

func (p Platform) String() string { return string(p) }
