package placeholder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minios-linux/lokitchen/source"
)

func TestParams(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Hi {name}", []string{"name"}},
		{"%2$s then %1$s and %2$s", []string{"param2", "param1"}},
		{"{count} items for %1$s", []string{"count", "param1"}},
		{"no markers", nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Params(tc.text)); diff != "" {
			t.Errorf("Params(%q) mismatch (-want +got):\n%s", tc.text, diff)
		}
	}
}

func TestTypeHint(t *testing.T) {
	cases := map[string]string{
		"name":     "StringName",
		"param1":   "StringParam1",
		"userName": "StringUsername",
		"ÉTAT":     "StringÉtat",
		"ßtraße":   "StringSstraße",
		"ǆx":       "Stringǅx",
		"":         "String",
	}
	for in, want := range cases {
		if got := TypeHint(in); got != want {
			t.Errorf("TypeHint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynthesize(t *testing.T) {
	m := source.FromPairs(
		LocaleKey, "en",
		"greeting", "Hi {name}",
		"plain", "Nothing here",
		"hello", "Hello %1$s",
	)
	got := Synthesize(m)
	want := []ParamSet{
		{Key: "greeting", Params: []Param{{Name: "name", Hint: "StringName"}}},
		{Key: "hello", Params: []Param{{Name: "param1", Hint: "StringParam1"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Synthesize mismatch (-want +got):\n%s", diff)
	}
	if got[0].SiblingKey() != "greeting@parameter" {
		t.Errorf("SiblingKey = %q", got[0].SiblingKey())
	}
	if m.Len() != 4 {
		t.Errorf("input map modified: len = %d", m.Len())
	}
}
