// Package generate turns per-language source maps into platform
// localization files.
//
// A Generator is built from Options, which are validated up front:
//
//   - an unsupported SDK is fatal (sdk.ErrUnsupported)
//   - an unsupported base language is fatal (langmeta.ErrUnsupported)
//   - an unsupported target language is reported through OnWarn and dropped
//
// Run then processes platforms in configured order and, for each platform,
// the base language followed by the targets. Android, Flutter and React
// handle languages independently: a language whose source file is absent is
// skipped with a warning. Xcode folds every language into one catalog, so a
// missing source aborts that platform with an error.
package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/minios-linux/lokitchen/android"
	"github.com/minios-linux/lokitchen/arbfile"
	"github.com/minios-linux/lokitchen/langmeta"
	"github.com/minios-linux/lokitchen/placeholder"
	"github.com/minios-linux/lokitchen/reactnative"
	"github.com/minios-linux/lokitchen/sdk"
	"github.com/minios-linux/lokitchen/source"
	"github.com/minios-linux/lokitchen/xcstrings"
)

// ---------------------------------------------------------------------------
// Input supply
// ---------------------------------------------------------------------------

// Loader produces the source map of one language. Implementations must
// return an error wrapping fs.ErrNotExist when the language has no source.
type Loader interface {
	Load(lang string) (*source.Map, error)
}

// FileLoader reads source maps from Dir using a "{lang}" file name pattern.
// Suffix, when set, is inserted before the file extension.
type FileLoader struct {
	Dir     string
	Pattern string
	Suffix  string
}

// Path returns the source file path for lang.
func (l FileLoader) Path(lang string) string {
	return source.ResolvePath(l.Dir, l.Pattern, lang, l.Suffix)
}

// Load implements Loader.
func (l FileLoader) Load(lang string) (*source.Map, error) {
	return source.LoadFile(l.Path(lang))
}

// MapLoader serves source maps from memory.
type MapLoader map[string]*source.Map

// Load implements Loader.
func (l MapLoader) Load(lang string) (*source.Map, error) {
	m, ok := l[lang]
	if !ok {
		return nil, fmt.Errorf("source for %s: %w", lang, fs.ErrNotExist)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options configures a Generator.
type Options struct {
	// BaseLang is the source-of-truth language. Required.
	BaseLang string
	// Languages are the target languages. The base language and duplicates
	// are ignored.
	Languages []string
	// SDKs selects the platforms, by tag or alias. Empty means all.
	SDKs []string

	// Loader supplies source maps. Required.
	Loader Loader
	// AndroidLoader, when set, replaces Loader for the android platform.
	AndroidLoader Loader
	// Sink receives generated documents. Required.
	Sink Sink

	// OnLog receives progress messages.
	OnLog func(format string, args ...any)
	// OnWarn receives non-fatal problems.
	OnWarn func(format string, args ...any)
}

// Result summarises the work done for one platform.
type Result struct {
	Platform sdk.Platform
	// Files lists the written paths in write order.
	Files []string
	// Skipped lists languages that had no source file.
	Skipped []string
}

// Generator converts source maps into platform files.
type Generator struct {
	opts      Options
	base      string
	targets   []string
	platforms []sdk.Platform
}

// New validates opts and returns a ready Generator.
func New(opts Options) (*Generator, error) {
	if opts.Loader == nil {
		return nil, errors.New("generate: no source loader")
	}
	if opts.Sink == nil {
		return nil, errors.New("generate: no output sink")
	}
	if opts.OnLog == nil {
		opts.OnLog = func(string, ...any) {}
	}
	if opts.OnWarn == nil {
		opts.OnWarn = func(string, ...any) {}
	}

	platforms := sdk.All
	if len(opts.SDKs) > 0 {
		var err error
		if platforms, err = sdk.ParseList(opts.SDKs); err != nil {
			return nil, err
		}
	}

	if err := langmeta.Validate(opts.BaseLang); err != nil {
		return nil, fmt.Errorf("base language: %w", err)
	}

	g := &Generator{opts: opts, base: opts.BaseLang, platforms: platforms}
	seen := map[string]bool{opts.BaseLang: true}
	for _, lang := range opts.Languages {
		if seen[lang] {
			continue
		}
		seen[lang] = true
		if err := langmeta.Validate(lang); err != nil {
			opts.OnWarn("Skipping target language: %v", err)
			continue
		}
		g.targets = append(g.targets, lang)
	}
	return g, nil
}

// BaseLang returns the base language.
func (g *Generator) BaseLang() string { return g.base }

// Targets returns the validated target languages.
func (g *Generator) Targets() []string { return append([]string(nil), g.targets...) }

// Platforms returns the selected platforms in processing order.
func (g *Generator) Platforms() []sdk.Platform { return append([]sdk.Platform(nil), g.platforms...) }

// languages returns the base language followed by the targets.
func (g *Generator) languages() []string {
	return append([]string{g.base}, g.targets...)
}

// ---------------------------------------------------------------------------
// Running
// ---------------------------------------------------------------------------

// Run generates every selected platform. It stops at the first error and
// returns the results gathered so far.
func (g *Generator) Run() ([]Result, error) {
	var results []Result
	for _, p := range g.platforms {
		res, err := g.Generate(p)
		if err != nil {
			return results, fmt.Errorf("%s: %w", p, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Generate produces the files of a single platform.
func (g *Generator) Generate(p sdk.Platform) (Result, error) {
	switch p {
	case sdk.Android:
		return g.android()
	case sdk.Flutter:
		return g.flutter()
	case sdk.Xcode:
		return g.xcode()
	case sdk.React:
		return g.react()
	}
	return Result{Platform: p}, fmt.Errorf("%q: %w", p, sdk.ErrUnsupported)
}

// OutputDir returns the directory (relative to the output root) that holds
// files of platform p.
func OutputDir(p sdk.Platform) string { return string(p) }

// load fetches the map of lang. ok is false when the source is absent and
// the language should be skipped.
func (g *Generator) load(l Loader, p sdk.Platform, lang string, res *Result) (*source.Map, bool, error) {
	m, err := l.Load(lang)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.opts.OnWarn("%s: no source for %s, skipping (%v)", p, lang, err)
			res.Skipped = append(res.Skipped, lang)
			return nil, false, nil
		}
		return nil, false, err
	}
	return m, true, nil
}

func (g *Generator) write(res *Result, rel string, data []byte) error {
	if err := g.opts.Sink.Write(rel, data); err != nil {
		return err
	}
	res.Files = append(res.Files, rel)
	g.opts.OnLog("Wrote %s", rel)
	return nil
}

// ---------------------------------------------------------------------------
// Platforms
// ---------------------------------------------------------------------------

func (g *Generator) android() (Result, error) {
	res := Result{Platform: sdk.Android}
	loader := g.opts.Loader
	if g.opts.AndroidLoader != nil {
		loader = g.opts.AndroidLoader
	}
	dir := OutputDir(sdk.Android)

	for _, lang := range g.languages() {
		m, ok, err := g.load(loader, sdk.Android, lang, &res)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}
		rel := path.Join(dir, android.FileName)
		if lang != g.base {
			rel = path.Join(dir, android.LocaleDirName(lang), android.FileName)
		}
		if err := g.write(&res, rel, android.Emit(m)); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (g *Generator) flutter() (Result, error) {
	res := Result{Platform: sdk.Flutter}
	dir := OutputDir(sdk.Flutter)

	for _, lang := range g.languages() {
		m, ok, err := g.load(g.opts.Loader, sdk.Flutter, lang, &res)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}
		params := placeholder.Synthesize(m)
		translated := m.Transform(func(v string) string { return placeholder.Translate(v, sdk.Flutter) })
		arb := arbfile.New(lang, translated, params)
		if err := g.write(&res, path.Join(dir, arbfile.FileName(lang)), arb.Marshal()); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (g *Generator) xcode() (Result, error) {
	res := Result{Platform: sdk.Xcode}
	catalog := xcstrings.NewCatalog(g.base)

	for _, lang := range g.languages() {
		m, err := g.opts.Loader.Load(lang)
		if err != nil {
			return res, fmt.Errorf("loading %s for the string catalog: %w", lang, err)
		}
		catalog.Add(lang, m.Transform(func(v string) string { return placeholder.Translate(v, sdk.Xcode) }))
	}
	return res, g.write(&res, path.Join(OutputDir(sdk.Xcode), xcstrings.FileName), catalog.Marshal())
}

func (g *Generator) react() (Result, error) {
	res := Result{Platform: sdk.React}
	var blocks []reactnative.Block

	for _, lang := range g.languages() {
		m, ok, err := g.load(g.opts.Loader, sdk.React, lang, &res)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}
		blocks = append(blocks, reactnative.Block{
			Lang:    lang,
			Entries: m.Transform(func(v string) string { return placeholder.Translate(v, sdk.React) }),
		})
	}
	return res, g.write(&res, path.Join(OutputDir(sdk.React), reactnative.FileName), reactnative.Emit(blocks))
}
