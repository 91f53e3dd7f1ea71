package reactnative

import (
	"strings"
	"testing"

	"github.com/minios-linux/lokitchen/source"
)

func TestEmit_Exact(t *testing.T) {
	got := string(Emit([]Block{
		{Lang: "en", Entries: source.FromPairs("hello", "Hello {0}", "bye", "Bye")},
		{Lang: "ja", Entries: source.FromPairs("hello", "こんにちは {0}")},
	}))
	want := `import LocalizedStrings from 'react-native-localization';

const strings = new LocalizedStrings({
  "en": {
    "hello": "Hello {0}",
    "bye": "Bye"
  },
  "ja": {
    "hello": "こんにちは {0}"
  }
});

export default strings;
`
	if got != want {
		t.Errorf("Emit mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmit_EscapesQuotes(t *testing.T) {
	got := string(Emit([]Block{
		{Lang: "en", Entries: source.FromPairs("quote", `Say "hi"`)},
	}))
	if !strings.Contains(got, `"quote": "Say \"hi\""`) {
		t.Errorf("escaped quote missing:\n%s", got)
	}
	if strings.Contains(got, ",\n  }") || strings.Contains(got, ",\n});") {
		t.Errorf("dangling trailing comma:\n%s", got)
	}
	if strings.Count(got, "{") != strings.Count(got, "}") {
		t.Errorf("unbalanced braces:\n%s", got)
	}
}

func TestEmit_EmptyInputs(t *testing.T) {
	got := string(Emit(nil))
	if !strings.Contains(got, "new LocalizedStrings({});") {
		t.Errorf("no blocks:\n%s", got)
	}
	got = string(Emit([]Block{{Lang: "en", Entries: source.NewMap()}}))
	if !strings.Contains(got, `  "en": {}`+"\n});") {
		t.Errorf("empty block:\n%s", got)
	}
}

func TestQuote(t *testing.T) {
	cases := map[string]string{
		`plain`:        `"plain"`,
		`a"b`:          `"a\"b"`,
		`back\slash`:   `"back\\slash"`,
		"line\nbreak":  `"line\nbreak"`,
		"tab\there":    `"tab\there"`,
		"sep\u2028end": `"sep\u2028end"`,
	}
	for in, want := range cases {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}
