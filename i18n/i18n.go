// Package i18n translates lokitchen's own user-facing messages.
//
// Catalogs are gettext .po files embedded in the binary under
// locales/<lang>/LC_MESSAGES/lokitchen.po and read with gotext. The message
// language is chosen, in order, from --ui-lang (SetLanguage), the
// LOKITCHEN_LANG variable and the usual gettext locale variables. The
// request is matched against the embedded catalogs with a BCP-47 matcher,
// so "ja_JP.UTF-8" selects the "ja" catalog. Without a match messages stay
// in English.
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

//go:embed all:locales
var locales embed.FS

const (
	domain = "lokitchen"
	// fallback is the language msgids are written in.
	fallback = "en"
	// EnvVar overrides the locale variables for lokitchen only.
	EnvVar = "LOKITCHEN_LANG"
)

var (
	po     *gotext.Locale
	active = fallback
)

// Init selects the message language from the environment.
func Init() string {
	return SetLanguage(detectLanguage())
}

// SetLanguage loads the embedded catalog closest to lang and returns the
// catalog language actually used.
func SetLanguage(lang string) string {
	active = match(lang)
	po = gotext.NewLocaleFSWithPath(active, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
	return active
}

// Language returns the active catalog language.
func Language() string { return active }

// Available returns the languages with an embedded catalog.
func Available() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// T translates msgid, returning it unchanged when there is no translation.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms; n picks the form using the
// catalog's plural formula.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// match maps a requested locale onto an embedded catalog, or fallback.
func match(lang string) string {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return fallback
	}
	avail := Available()
	supported := []language.Tag{language.Make(fallback)}
	for _, a := range avail {
		supported = append(supported, language.Make(a))
	}
	_, idx, conf := language.NewMatcher(supported).Match(tag)
	if conf == language.No || idx == 0 {
		return fallback
	}
	return avail[idx-1]
}

// detectLanguage returns the first usable locale from LOKITCHEN_LANG,
// LANGUAGE, LC_ALL, LC_MESSAGES and LANG, with encoding and modifier
// suffixes removed ("sr_RS.UTF-8@latin" → "sr_RS").
func detectLanguage() string {
	for _, env := range []string{EnvVar, "LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			// colon-separated preference list
			val, _, _ = strings.Cut(val, ":")
		}
		if i := strings.IndexAny(val, ".@"); i >= 0 {
			val = val[:i]
		}
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return fallback
}
