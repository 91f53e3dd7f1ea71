package placeholder

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minios-linux/lokitchen/source"
)

// LocaleKey is the ARB metadata key holding the file's locale. It is never
// scanned for parameters.
const LocaleKey = "@@locale"

// ParamSuffix is appended to a message key to form the sibling entry that
// describes its parameters.
const ParamSuffix = "@parameter"

// Param is a named template parameter with its ARB type hint.
type Param struct {
	Name string
	Hint string
}

// ParamSet lists the parameters of one message.
type ParamSet struct {
	// Key is the message key the parameters belong to (without ParamSuffix).
	Key    string
	Params []Param
}

// SiblingKey returns the key of the generated "<key>@parameter" entry.
func (ps ParamSet) SiblingKey() string { return ps.Key + ParamSuffix }

// Params returns the parameter names used by text in order of first
// appearance. Positional markers map to param<n>, named markers keep their
// name. Duplicates are reported once.
func Params(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		var name string
		switch tok.Kind {
		case KindPositional:
			name = FlutterParamName(tok.Index)
		case KindNamed:
			name = tok.Name
		default:
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// TypeHint returns the ARB type hint for a parameter: "String" followed by
// the name with its first letter title-cased and the rest lower-cased
// (userName → StringUsername, ßtraße → StringSstraße).
func TypeHint(name string) string {
	if name == "" {
		return "String"
	}
	// Casers carry state and are not shared between calls.
	_, size := utf8.DecodeRuneInString(name)
	return "String" + cases.Title(language.Und).String(name[:size]) + cases.Lower(language.Und).String(name[size:])
}

// Synthesize computes the parameter descriptions for every entry of m that
// uses at least one marker. The LocaleKey entry is skipped. m is not
// modified; callers merge the returned sets after the original entries.
func Synthesize(m *source.Map) []ParamSet {
	var sets []ParamSet
	for _, key := range m.Keys() {
		if key == LocaleKey {
			continue
		}
		value, _ := m.Get(key)
		names := Params(value)
		if len(names) == 0 {
			continue
		}
		ps := ParamSet{Key: key, Params: make([]Param, len(names))}
		for i, n := range names {
			ps.Params[i] = Param{Name: n, Hint: TypeHint(n)}
		}
		sets = append(sets, ps)
	}
	return sets
}
