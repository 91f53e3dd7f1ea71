package generate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minios-linux/lokitchen/langmeta"
	"github.com/minios-linux/lokitchen/sdk"
	"github.com/minios-linux/lokitchen/source"
	"github.com/minios-linux/lokitchen/xcstrings"
)

type recorder struct {
	logs  []string
	warns []string
}

func (r *recorder) log(format string, args ...any)  { r.logs = append(r.logs, format) }
func (r *recorder) warn(format string, args ...any) { r.warns = append(r.warns, format) }

func helloLoader() MapLoader {
	return MapLoader{
		"en": source.FromPairs("hello", "Hello %1$s"),
		"ja": source.FromPairs("hello", "こんにちは %1$s"),
	}
}

func mustNew(t *testing.T, opts Options) *Generator {
	t.Helper()
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func mustGet(t *testing.T, s *MemorySink, path string) string {
	t.Helper()
	data, ok := s.Get(path)
	if !ok {
		t.Fatalf("%s not written (have %v)", path, s.Paths())
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestNew_UnsupportedSDK(t *testing.T) {
	_, err := New(Options{
		BaseLang: "en", SDKs: []string{"android", "windows"},
		Loader: helloLoader(), Sink: NewMemorySink(),
	})
	if !errors.Is(err, sdk.ErrUnsupported) {
		t.Fatalf("err = %v, want sdk.ErrUnsupported", err)
	}
}

func TestNew_UnsupportedBaseLang(t *testing.T) {
	for _, base := range []string{"", "xx", "not a code"} {
		_, err := New(Options{BaseLang: base, Loader: helloLoader(), Sink: NewMemorySink()})
		if !errors.Is(err, langmeta.ErrUnsupported) {
			t.Errorf("base %q: err = %v, want langmeta.ErrUnsupported", base, err)
		}
	}
}

func TestNew_DropsUnsupportedTargets(t *testing.T) {
	rec := &recorder{}
	g := mustNew(t, Options{
		BaseLang:  "en",
		Languages: []string{"ja", "xx", "en", "ja", "de"},
		Loader:    helloLoader(),
		Sink:      NewMemorySink(),
		OnWarn:    rec.warn,
	})
	if diff := cmp.Diff([]string{"ja", "de"}, g.Targets()); diff != "" {
		t.Errorf("Targets mismatch (-want +got):\n%s", diff)
	}
	if len(rec.warns) != 1 {
		t.Errorf("warnings = %d, want 1", len(rec.warns))
	}
}

func TestNew_DefaultsToAllPlatforms(t *testing.T) {
	g := mustNew(t, Options{BaseLang: "en", Loader: helloLoader(), Sink: NewMemorySink()})
	if diff := cmp.Diff(sdk.All, g.Platforms()); diff != "" {
		t.Errorf("Platforms mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RequiresLoaderAndSink(t *testing.T) {
	if _, err := New(Options{BaseLang: "en", Sink: NewMemorySink()}); err == nil {
		t.Error("expected error without loader")
	}
	if _, err := New(Options{BaseLang: "en", Loader: helloLoader()}); err == nil {
		t.Error("expected error without sink")
	}
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

func TestRun_EnJaScenario(t *testing.T) {
	sink := NewMemorySink()
	g := mustNew(t, Options{
		BaseLang:  "en",
		Languages: []string{"ja"},
		SDKs:      []string{"android_studio", "flutter"},
		Loader:    helloLoader(),
		Sink:      sink,
	})
	if _, err := g.Run(); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"android/strings.xml",
		"android/values-ja/strings.xml",
		"flutter/app_en.arb",
		"flutter/app_ja.arb",
	}
	if diff := cmp.Diff(want, sink.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	if got := mustGet(t, sink, "android/strings.xml"); got != `<?xml version="1.0" ?>
<resources>
    <string name="hello">Hello %1$s</string>
</resources>
` {
		t.Errorf("android base:\n%s", got)
	}
	if got := mustGet(t, sink, "android/values-ja/strings.xml"); !strings.Contains(got, `<string name="hello">こんにちは %1$s</string>`) {
		t.Errorf("android ja:\n%s", got)
	}

	if got := mustGet(t, sink, "flutter/app_en.arb"); got != `{
  "@@locale": "en",
  "hello": "Hello {param1}",
  "hello@parameter": {
    "param1": "StringParam1"
  }
}
` {
		t.Errorf("flutter en:\n%s", got)
	}
	ja := mustGet(t, sink, "flutter/app_ja.arb")
	for _, frag := range []string{`"@@locale": "ja"`, `"hello": "こんにちは {param1}"`, `"param1": "StringParam1"`} {
		if !strings.Contains(ja, frag) {
			t.Errorf("flutter ja missing %s:\n%s", frag, ja)
		}
	}
}

func TestRun_XcodeAndReact(t *testing.T) {
	sink := NewMemorySink()
	g := mustNew(t, Options{
		BaseLang:  "en",
		Languages: []string{"ja"},
		SDKs:      []string{"xcode", "react_native"},
		Loader: MapLoader{
			"en": source.FromPairs("hello", "Hello %1$s", "only_en", "x"),
			"ja": source.FromPairs("hello", "こんにちは %1$s"),
		},
		Sink: sink,
	})
	results, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Platform != sdk.Xcode || results[1].Platform != sdk.React {
		t.Fatalf("results = %+v", results)
	}

	cat := mustGet(t, sink, "xcode/"+xcstrings.FileName)
	for _, frag := range []string{`"sourceLanguage": "en"`, `"value": "Hello %@"`, `"value": "こんにちは %@"`, `"only_en"`} {
		if !strings.Contains(cat, frag) {
			t.Errorf("catalog missing %s", frag)
		}
	}

	js := mustGet(t, sink, "react/LocalizedStrings.js")
	for _, frag := range []string{`"hello": "Hello {0}"`, `"hello": "こんにちは {0}"`} {
		if !strings.Contains(js, frag) {
			t.Errorf("react module missing %s:\n%s", frag, js)
		}
	}
}

// ---------------------------------------------------------------------------
// Missing sources
// ---------------------------------------------------------------------------

func TestGenerate_MissingTargetSkipped(t *testing.T) {
	for _, p := range []sdk.Platform{sdk.Android, sdk.Flutter, sdk.React} {
		t.Run(string(p), func(t *testing.T) {
			rec := &recorder{}
			g := mustNew(t, Options{
				BaseLang:  "en",
				Languages: []string{"ja", "de"},
				SDKs:      []string{string(p)},
				Loader:    helloLoader(),
				Sink:      NewMemorySink(),
				OnWarn:    rec.warn,
			})
			res, err := g.Generate(p)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if diff := cmp.Diff([]string{"de"}, res.Skipped); diff != "" {
				t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
			}
			if len(rec.warns) != 1 {
				t.Errorf("warnings = %d, want 1", len(rec.warns))
			}
		})
	}
}

func TestGenerate_MissingTargetAbortsXcode(t *testing.T) {
	sink := NewMemorySink()
	g := mustNew(t, Options{
		BaseLang:  "en",
		Languages: []string{"ja", "de"},
		Loader:    helloLoader(),
		Sink:      sink,
	})
	_, err := g.Generate(sdk.Xcode)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	if len(sink.Paths()) != 0 {
		t.Errorf("nothing should be written, got %v", sink.Paths())
	}
}

type failingLoader struct{}

func (failingLoader) Load(string) (*source.Map, error) { return nil, errors.New("broken document") }

func TestGenerate_LoadErrorIsFatal(t *testing.T) {
	g := mustNew(t, Options{BaseLang: "en", Loader: failingLoader{}, Sink: NewMemorySink()})
	if _, err := g.Generate(sdk.Android); err == nil {
		t.Fatal("expected error")
	}
}

// ---------------------------------------------------------------------------
// Files on disk
// ---------------------------------------------------------------------------

func TestRun_FileLoaderAndDirSink(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	files := map[string]string{
		"sample_en.json":         `{"hello": "Hello %1$s"}`,
		"sample_ja.json":         `{"hello": "こんにちは %1$s"}`,
		"sample_en_unified.json": `{"hello": "Hi %1$s"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := &recorder{}
	g := mustNew(t, Options{
		BaseLang:      "en",
		Languages:     []string{"ja"},
		SDKs:          []string{"android", "flutter"},
		Loader:        FileLoader{Dir: src, Pattern: "sample_{lang}.json"},
		AndroidLoader: FileLoader{Dir: src, Pattern: "sample_{lang}.json", Suffix: "_unified"},
		Sink:          DirSink{Root: out},
		OnLog:         rec.log,
		OnWarn:        rec.warn,
	})
	results, err := g.Run()
	if err != nil {
		t.Fatal(err)
	}

	// The unified track has no Japanese file.
	if diff := cmp.Diff([]string{"ja"}, results[0].Skipped); diff != "" {
		t.Errorf("android Skipped mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(filepath.Join(out, "android", "strings.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Hi %1$s") {
		t.Errorf("android should read the suffixed source:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(out, "flutter", "app_ja.arb")); err != nil {
		t.Errorf("flutter ja not written: %v", err)
	}
	if len(rec.logs) != 3 {
		t.Errorf("log lines = %d, want 3", len(rec.logs))
	}
}

func TestFileLoader_Path(t *testing.T) {
	l := FileLoader{Dir: "data", Pattern: "{lang}.yaml", Suffix: "_v2"}
	if got, want := l.Path("pt-BR"), filepath.Join("data", "pt-BR_v2.yaml"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}
