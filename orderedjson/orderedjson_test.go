package orderedjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshal_Nested(t *testing.T) {
	o := NewObject()
	o.Set("b", "2")
	o.Child("a").Set("x", "<y>")
	o.Set("empty", NewObject())
	o.Set("b", "3")

	got := string(o.Marshal("  "))
	want := `{
  "b": "3",
  "a": {
    "x": "<y>"
  },
  "empty": {}
}`
	if got != want {
		t.Errorf("Marshal mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshal_Empty(t *testing.T) {
	if got := string(NewObject().Marshal("  ")); got != "{}" {
		t.Errorf("got %q, want {}", got)
	}
}

func TestQuote(t *testing.T) {
	cases := map[string]string{
		`plain`:          `"plain"`,
		`say "hi"`:       `"say \"hi\""`,
		"a\nb":           `"a\nb"`,
		`<b>&</b>`:       `"<b>&</b>"`,
		`back\slash`:     `"back\\slash"`,
		"日本語 %1$s": `"日本語 %1$s"`,
	}
	for in, want := range cases {
		if got := string(Quote(in)); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParse_OrderAndNesting(t *testing.T) {
	o, err := Parse([]byte(`{"z": "1", "m": {"q": "2", "p": "3"}, "a": "4"}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "m", "a"}, o.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	child, ok := o.Get("m")
	if !ok {
		t.Fatal("m missing")
	}
	if diff := cmp.Diff([]string{"q", "p"}, child.(*Object).Keys()); diff != "" {
		t.Errorf("child Keys mismatch (-want +got):\n%s", diff)
	}
	if s, ok := o.String("a"); !ok || s != "4" {
		t.Errorf("a = %q ok=%v", s, ok)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, doc := range []string{
		``,
		`[]`,
		`{"a": 1}`,
		`{"a": null}`,
		`{"a": ["x"]}`,
		`{"a": "x"`,
		`{"a": "x"} {"b": "y"}`,
		`{"a": "b"} garbage`,
		`{"a": "b"} }`,
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q): expected error", doc)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	o := NewObject()
	o.Set("k", `quote " and \ and <tag>`)
	o.Child("meta").Set("n", "v")

	back, err := Parse(o.Marshal("    "))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := back.String("k"); s != `quote " and \ and <tag>` {
		t.Errorf("k = %q", s)
	}
}

func TestSet_PanicsOnUnsupportedType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewObject().Set("n", 42)
}
