// Command lokitchen converts one set of localized strings into Android, Flutter,
// Xcode and React Native localization files.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/lokitchen/android"
	"github.com/minios-linux/lokitchen/config"
	"github.com/minios-linux/lokitchen/generate"
	"github.com/minios-linux/lokitchen/i18n"
	"github.com/minios-linux/lokitchen/langmeta"
	"github.com/minios-linux/lokitchen/placeholder"
	"github.com/minios-linux/lokitchen/sdk"
	"github.com/minios-linux/lokitchen/source"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	uiLang  string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lokitchen",
		Short: i18n.T("Convert localized strings into mobile platform resource files"),
		Long: `lokitchen converts one source-of-truth set of localized strings into
the resource formats of four mobile SDKs. Files are written under the
output directory:

  android/strings.xml, android/values-<lang>/strings.xml
  flutter/app_<lang>.arb
  xcode/Localizable.xcstrings (one catalog for all languages)
  react/LocalizedStrings.js (react-native-localization)

Source strings use Android-style positional markers (%1$s, %2$d, %3$.2f),
which are rewritten into each platform's placeholder syntax.

Commands:
  init        Write a .lokitchen.yaml project file
  status      Show project configuration and source files
  generate    Generate resource files for the configured SDKs
  convert     Convert a single string for one SDK
  import      Import existing platform resources as source maps
  languages   List supported language codes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if uiLang != "" {
				i18n.SetLanguage(uiLang)
			}
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&uiLang, "ui-lang", "", "Language of lokitchen's own messages (default: "+i18n.EnvVar+" or the locale)")

	root.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newGenerateCmd(),
		newConvertCmd(),
		newImportCmd(),
		newLanguagesCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init()
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lokitchen version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// Project settings (config file + flag overrides)
// ---------------------------------------------------------------------------

// projectFlags holds the flags shared by commands that read the project.
type projectFlags struct {
	base          string
	langs         string
	sdks          string
	sourceDir     string
	pattern       string
	out           string
	androidSuffix string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base", "", "Base language (default: en)")
	cmd.Flags().StringVar(&f.langs, "lang", "", "Target languages (comma-separated)")
	cmd.Flags().StringVar(&f.sdks, "sdk", "", "SDKs to generate (comma-separated: "+strings.Join(sdk.Names(), ", ")+")")
	cmd.Flags().StringVar(&f.sourceDir, "source-dir", "", "Directory with source files")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Source file name pattern, {lang} is replaced by the language code")
	cmd.Flags().StringVar(&f.out, "out", "", "Output directory")
	cmd.Flags().StringVar(&f.androidSuffix, "android-suffix", "", "Suffix of the android-only source files (e.g. _unified)")
}

// loadProject reads .lokitchen.yaml from rootDir (or defaults when absent)
// and applies flag overrides on top.
func loadProject(f projectFlags) (*config.File, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if f.base != "" {
		cfg.BaseLang = f.base
	}
	if f.langs != "" {
		cfg.Languages = splitList(f.langs)
	}
	if f.sdks != "" {
		cfg.SDKs = splitList(f.sdks)
	}
	if f.sourceDir != "" {
		cfg.Source.Dir = f.sourceDir
	}
	if f.pattern != "" {
		cfg.Source.Pattern = f.pattern
	}
	if f.out != "" {
		cfg.OutputDir = f.out
	}
	if f.androidSuffix != "" {
		cfg.Android.SourceSuffix = f.androidSuffix
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// sourceLoaders returns the loader for every platform and the optional
// android-only loader.
func sourceLoaders(cfg *config.File) (generate.FileLoader, *generate.FileLoader) {
	primary := generate.FileLoader{Dir: cfg.AbsSourceDir(rootDir), Pattern: cfg.Source.Pattern}
	if cfg.Android.SourceSuffix == "" {
		return primary, nil
	}
	alt := primary
	alt.Suffix = cfg.Android.SourceSuffix
	return primary, &alt
}

// ---------------------------------------------------------------------------
// init (write .lokitchen.yaml)
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var (
		flags projectFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .lokitchen.yaml project file",
		Long: `Write a .lokitchen.yaml project file in the project root.

Values come from the flags; anything not given gets its default.
An existing file is kept unless --force is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if flags.base != "" {
				cfg.BaseLang = flags.base
			}
			cfg.Languages = splitList(flags.langs)
			cfg.SDKs = splitList(flags.sdks)
			if flags.sourceDir != "" {
				cfg.Source.Dir = flags.sourceDir
			}
			if flags.pattern != "" {
				cfg.Source.Pattern = flags.pattern
			}
			if flags.out != "" {
				cfg.OutputDir = flags.out
			}
			cfg.Android.SourceSuffix = flags.androidSuffix
			if err := cfg.Validate(); err != nil {
				return err
			}

			path, err := cfg.Save(rootDir, force)
			if err != nil {
				return err
			}
			logSuccess(i18n.T("Created %s"), path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project file")

	return cmd
}

// ---------------------------------------------------------------------------
// status (read-only: project info + source files)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project configuration and source files",
		Long: `Show the effective project configuration and, for every language,
whether its source file exists and how many keys it holds.
Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			runStatus(cfg)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func runStatus(cfg *config.File) {
	fmt.Fprintf(os.Stderr, "\n%s%s%s\n", colorBlue, i18n.T("Project"), colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	absRoot, _ := filepath.Abs(rootDir)
	fmt.Fprintf(os.Stderr, "  Root:       %s\n", absRoot)
	if fileExists(filepath.Join(rootDir, config.FileName)) {
		fmt.Fprintf(os.Stderr, "  Config:     %s\n", config.FileName)
	} else {
		fmt.Fprintf(os.Stderr, "  Config:     none (defaults)\n")
	}
	fmt.Fprintf(os.Stderr, "  Base:       %s\n", langLabel(cfg.BaseLang))
	if len(cfg.Languages) > 0 {
		fmt.Fprintf(os.Stderr, "  Languages:  %s\n", strings.Join(cfg.Languages, ", "))
	} else {
		fmt.Fprintf(os.Stderr, "  Languages:  none\n")
	}
	sdks := cfg.SDKs
	if len(sdks) == 0 {
		sdks = sdk.Names()
	}
	fmt.Fprintf(os.Stderr, "  SDKs:       %s\n", strings.Join(sdks, ", "))
	fmt.Fprintf(os.Stderr, "  Sources:    %s\n", filepath.Join(cfg.Source.Dir, cfg.Source.Pattern))
	if cfg.Android.SourceSuffix != "" {
		fmt.Fprintf(os.Stderr, "  Android:    suffix %s\n", cfg.Android.SourceSuffix)
	}
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", cfg.OutputDir)
	fmt.Fprintln(os.Stderr)

	primary, alt := sourceLoaders(cfg)
	loaders := []generate.FileLoader{primary}
	if alt != nil {
		loaders = append(loaders, *alt)
	}

	fmt.Fprintf(os.Stderr, "%s%s%s\n", colorBlue, i18n.T("Source Files"), colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-10s %-8s %s\n", "Lang", "Keys", "File")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	langs := append([]string{cfg.BaseLang}, filterOutLang(cfg.Languages, cfg.BaseLang)...)
	for _, l := range loaders {
		for _, lang := range langs {
			p := l.Path(lang)
			rel, err := filepath.Rel(rootDir, p)
			if err != nil {
				rel = p
			}
			keys := "missing"
			if m, err := l.Load(lang); err == nil {
				keys = fmt.Sprintf("%d", m.Len())
			} else if !errors.Is(err, fs.ErrNotExist) {
				keys = "invalid"
			}
			if !langmeta.Supported(lang) {
				keys += " (unsupported)"
			}
			fmt.Fprintf(os.Stderr, "%-10s %-8s %s\n", lang, keys, rel)
		}
	}
	fmt.Fprintln(os.Stderr)
}

// langLabel formats a language as "flag name (code)".
func langLabel(lang string) string {
	m := langmeta.Resolve(lang)
	if m.Flag == "" {
		return fmt.Sprintf("%s (%s)", m.Name, lang)
	}
	return fmt.Sprintf("%s %s (%s)", m.Flag, m.Name, lang)
}

// filterOutLang returns langs without exclude.
func filterOutLang(langs []string, exclude string) []string {
	var out []string
	for _, l := range langs {
		if l != exclude {
			out = append(out, l)
		}
	}
	return out
}

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func newGenerateCmd() *cobra.Command {
	var (
		flags  projectFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate resource files for the configured SDKs",
		Long: `Read the base and target language source files and write resource
files for every configured SDK under the output directory.

A target language without a source file is skipped with a warning, except
for xcode: the string catalog holds every language, so a missing source
fails the xcode build. Unsupported SDKs and an unsupported base language are
errors; unsupported target languages are skipped with a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			return runGenerate(cfg, dryRun)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing files")

	return cmd
}

func runGenerate(cfg *config.File, dryRun bool) error {
	outDir := cfg.AbsOutputDir(rootDir)

	var sink generate.Sink = generate.DirSink{Root: outDir}
	var mem *generate.MemorySink
	if dryRun {
		mem = generate.NewMemorySink()
		sink = mem
	}

	primary, alt := sourceLoaders(cfg)
	opts := generate.Options{
		BaseLang:  cfg.BaseLang,
		Languages: cfg.Languages,
		SDKs:      cfg.SDKs,
		Loader:    primary,
		Sink:      sink,
		OnLog: func(format string, args ...any) {
			if !dryRun {
				logInfo(format, args...)
			}
		},
		OnWarn: logWarning,
	}
	if alt != nil {
		opts.AndroidLoader = alt
	}

	g, err := generate.New(opts)
	if err != nil {
		return err
	}

	logInfo(i18n.T("Generating %s for %s"), joinPlatforms(g.Platforms()), strings.Join(append([]string{g.BaseLang()}, g.Targets()...), ", "))
	results, err := g.Run()
	if err != nil {
		return err
	}

	files := 0
	for _, res := range results {
		files += len(res.Files)
		if len(res.Skipped) > 0 {
			logWarning(i18n.T("%s: skipped %s (no source file)"), res.Platform, strings.Join(res.Skipped, ", "))
		}
	}

	if dryRun {
		for _, p := range mem.Paths() {
			data, _ := mem.Get(p)
			fmt.Printf("%s (%d bytes)\n", filepath.Join(outDir, filepath.FromSlash(p)), len(data))
		}
		logInfo(i18n.T("Dry run: nothing written"))
		return nil
	}

	logSuccess(i18n.N("Wrote %d file to %s", "Wrote %d files to %s", files), files, outDir)
	return nil
}

func joinPlatforms(ps []sdk.Platform) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

// ---------------------------------------------------------------------------
// convert (one string, one SDK)
// ---------------------------------------------------------------------------

func newConvertCmd() *cobra.Command {
	var (
		target string
		params bool
	)

	cmd := &cobra.Command{
		Use:   "convert TEXT",
		Short: "Convert a single string for one SDK",
		Long: `Rewrite the positional markers of TEXT into the placeholder syntax of
the given SDK and print the result.

  lokitchen convert --sdk flutter '%1$s has %2$d items'
  {param1} has {param2} items`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sdk.Parse(target)
			if err != nil {
				return err
			}
			text := args[0]
			fmt.Println(placeholder.Translate(text, p))
			if params {
				for _, name := range placeholder.Params(text) {
					fmt.Printf("  %s: %s\n", name, placeholder.TypeHint(name))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "sdk", "", "Target SDK (required): "+strings.Join(sdk.Names(), ", "))
	cmd.Flags().BoolVar(&params, "params", false, "Also list the ARB parameters of the string")
	_ = cmd.MarkFlagRequired("sdk")

	return cmd
}

// ---------------------------------------------------------------------------
// import (platform resources → source maps)
// ---------------------------------------------------------------------------

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import existing platform resources as source maps",
	}

	cmd.AddCommand(newImportAndroidCmd())

	return cmd
}

func newImportAndroidCmd() *cobra.Command {
	var (
		flags projectFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "android PATH",
		Short: "Import Android strings.xml files",
		Long: `Import Android string resources as JSON source maps.

PATH is either a single strings.xml file, printed to stdout as JSON, or a
res/ directory. For a res/ directory, values/strings.xml becomes the base
language and every values-<lang>/strings.xml a target language; each is
written to the source directory using the source pattern.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if !info.IsDir() {
				m, err := android.ParseFile(args[0])
				if err != nil {
					return err
				}
				data, err := m.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			cfg, err := loadProject(flags)
			if err != nil {
				return err
			}
			return runImportAndroid(cfg, args[0], force)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing source files")

	return cmd
}

func runImportAndroid(cfg *config.File, resDir string, force bool) error {
	primary, _ := sourceLoaders(cfg)

	type job struct{ lang, path string }
	jobs := []job{{cfg.BaseLang, android.DefaultPath(resDir)}}
	for _, lang := range android.DetectLanguages(resDir) {
		if lang == cfg.BaseLang {
			continue
		}
		if !langmeta.Supported(lang) {
			logWarning(i18n.T("Skipping unsupported language %s"), lang)
			continue
		}
		jobs = append(jobs, job{lang, android.LocalizedPath(resDir, lang)})
	}

	imported := 0
	for _, j := range jobs {
		if !fileExists(j.path) {
			logWarning(i18n.T("%s: not found"), j.path)
			continue
		}
		dest := primary.Path(j.lang)
		if fileExists(dest) && !force {
			logWarning(i18n.T("%s exists, use --force to overwrite"), dest)
			continue
		}

		m, err := android.ParseFile(j.path)
		if err != nil {
			return err
		}
		if err := writeSourceMap(dest, m); err != nil {
			return err
		}
		logInfo("%s: %d keys → %s", j.lang, m.Len(), dest)
		imported++
	}

	logSuccess(i18n.N("Imported %d language", "Imported %d languages", imported), imported)
	return nil
}

// writeSourceMap writes m as JSON, or as YAML when dest has a YAML
// extension.
func writeSourceMap(dest string, m *source.Map) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	default:
		data, err = m.MarshalJSON()
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages [CODE...]",
		Short: "List supported language codes",
		Long: `List every supported language code with its flag and native name.
With arguments, check the given codes instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, code := range langmeta.Codes() {
					m := langmeta.Resolve(code)
					fmt.Printf("%-8s %s %s\n", code, m.Flag, m.Name)
				}
				return nil
			}

			var bad []string
			for _, code := range args {
				if err := langmeta.Validate(code); err != nil {
					logWarning("%v", err)
					bad = append(bad, code)
					continue
				}
				logSuccess("%s", langLabel(code))
			}
			if len(bad) > 0 {
				return fmt.Errorf("%s: %w", strings.Join(bad, ", "), langmeta.ErrUnsupported)
			}
			return nil
		},
	}

	return cmd
}
