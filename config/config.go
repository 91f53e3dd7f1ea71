// Package config loads the .lokitchen.yaml project file.
//
// The project file declares the base language, the target languages, the
// SDKs to generate for and where source maps are read from:
//
//	base_lang: en
//	languages: [ja, ar, de]
//	sdks: [android, flutter, xcode, react]
//	source:
//	  dir: sample_data
//	  pattern: "sample_{lang}.json"
//	output_dir: sample_output
//	android:
//	  source_suffix: _unified
//
// Command-line flags override individual fields. Semantic checks (known
// SDKs, known language codes) happen when the generator is built.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .lokitchen.yaml structure.
type File struct {
	// BaseLang is the source-of-truth language (default "en").
	BaseLang string `yaml:"base_lang,omitempty"`
	// Languages lists the target languages, base language excluded.
	Languages []string `yaml:"languages,omitempty"`
	// SDKs lists the platforms to generate for (default: all).
	SDKs []string `yaml:"sdks,omitempty"`
	// Source locates the per-language source maps.
	Source Source `yaml:"source"`
	// OutputDir is where generated files are written, one subdirectory
	// per SDK (default "output").
	OutputDir string `yaml:"output_dir,omitempty"`
	// Android holds android-only options.
	Android Android `yaml:"android,omitempty"`
}

// Source describes where source maps live.
type Source struct {
	// Dir is the directory containing source files (default "translations").
	Dir string `yaml:"dir,omitempty"`
	// Pattern is the file name pattern; "{lang}" is replaced by the
	// language code (default "{lang}.json").
	Pattern string `yaml:"pattern,omitempty"`
}

// Android holds options that only affect strings.xml generation.
type Android struct {
	// SourceSuffix selects an alternative source track for Android only:
	// it is inserted before the extension of every resolved source file
	// (sample_en.json → sample_en_unified.json).
	SourceSuffix string `yaml:"source_suffix,omitempty"`
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".lokitchen.yaml"

// LangPlaceholder is replaced by the language code in Source.Pattern.
const LangPlaceholder = "{lang}"

const (
	DefaultBaseLang  = "en"
	DefaultSourceDir = "translations"
	DefaultPattern   = LangPlaceholder + ".json"
	DefaultOutputDir = "output"
)

// Default returns a File with every default filled in.
func Default() *File {
	f := &File{}
	f.ApplyDefaults()
	return f
}

// ApplyDefaults fills empty fields with their defaults.
func (f *File) ApplyDefaults() {
	if f.BaseLang == "" {
		f.BaseLang = DefaultBaseLang
	}
	if f.Source.Dir == "" {
		f.Source.Dir = DefaultSourceDir
	}
	if f.Source.Pattern == "" {
		f.Source.Pattern = DefaultPattern
	}
	if f.OutputDir == "" {
		f.OutputDir = DefaultOutputDir
	}
}

// Validate checks structural constraints that do not depend on the
// language or SDK registries.
func (f *File) Validate() error {
	if !strings.Contains(f.Source.Pattern, LangPlaceholder) {
		return fmt.Errorf("source pattern %q must contain %s", f.Source.Pattern, LangPlaceholder)
	}
	if strings.ContainsAny(f.Android.SourceSuffix, `/\`) {
		return fmt.Errorf("android source_suffix %q must not contain path separators", f.Android.SourceSuffix)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads and validates .lokitchen.yaml from rootDir.
// Returns nil if no config file exists.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.ApplyDefaults()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Save writes f to rootDir/.lokitchen.yaml, refusing to overwrite an
// existing file unless force is set.
func (f *File) Save(rootDir string, force bool) (string, error) {
	path := filepath.Join(rootDir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		}
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return path, fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ---------------------------------------------------------------------------
// Path resolution
// ---------------------------------------------------------------------------

// AbsSourceDir returns the source directory resolved against rootDir.
func (f *File) AbsSourceDir(rootDir string) string {
	return resolve(rootDir, f.Source.Dir)
}

// AbsOutputDir returns the output directory resolved against rootDir.
func (f *File) AbsOutputDir(rootDir string) string {
	return resolve(rootDir, f.OutputDir)
}

func resolve(rootDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}
