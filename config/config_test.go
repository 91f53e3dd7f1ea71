package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Missing(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil config, got %+v", f)
	}
}

func TestLoad_Full(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `base_lang: en
languages: [ja, ar, de]
sdks: [android_studio, flutter]
source:
  dir: sample_data
  pattern: "sample_{lang}.json"
output_dir: sample_output
android:
  source_suffix: _unified
`)
	f, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := &File{
		BaseLang:  "en",
		Languages: []string{"ja", "ar", "de"},
		SDKs:      []string{"android_studio", "flutter"},
		Source:    Source{Dir: "sample_data", Pattern: "sample_{lang}.json"},
		OutputDir: "sample_output",
		Android:   Android{SourceSuffix: "_unified"},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "languages: [fr]\n")
	f, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if f.BaseLang != DefaultBaseLang {
		t.Errorf("BaseLang = %q, want %q", f.BaseLang, DefaultBaseLang)
	}
	if f.Source.Dir != DefaultSourceDir || f.Source.Pattern != DefaultPattern {
		t.Errorf("Source = %+v", f.Source)
	}
	if f.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q", f.OutputDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":         "languages: [ja\n",
		"pattern no lang":  "source:\n  pattern: strings.json\n",
		"suffix separator": "android:\n  source_suffix: a/b\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), FileName) {
				t.Errorf("error should name the config file: %v", err)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := Default()
	f.Languages = []string{"ja", "de"}

	path, err := f.Save(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("path = %q", path)
	}
	if _, err := f.Save(dir, false); err == nil {
		t.Error("expected error when file exists without force")
	}
	if _, err := f.Save(dir, true); err != nil {
		t.Errorf("force save: %v", err)
	}

	back, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAbsPaths(t *testing.T) {
	f := Default()
	if got := f.AbsSourceDir("/proj"); got != filepath.Join("/proj", DefaultSourceDir) {
		t.Errorf("AbsSourceDir = %q", got)
	}
	f.OutputDir = "/abs/out"
	if got := f.AbsOutputDir("/proj"); got != "/abs/out" {
		t.Errorf("AbsOutputDir = %q", got)
	}
}
