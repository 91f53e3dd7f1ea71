package langmeta

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		got := Resolve("en-GB")
		if got.Name != "English (UK)" || got.Flag == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("normalized match", func(t *testing.T) {
		got := Resolve("pt_br")
		if got.Name != "Português (Brasil)" || got.Flag == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("base fallback", func(t *testing.T) {
		got := Resolve("fr-LU")
		if got.Name != "Français" || got.Flag != "🇫🇷" {
			t.Fatalf("unexpected fallback result: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("zz-ZZ")
		if got.Name != "zz-ZZ" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}

func TestValidate(t *testing.T) {
	for _, ok := range []string{"en", "ja", "ar", "de", "pt-BR", "pt_br", "fr-LU"} {
		if err := Validate(ok); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "xx", "english", "e!", "zz-ZZ"} {
		err := Validate(bad)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("Validate(%q) = %v, want ErrUnsupported", bad, err)
		}
		if Supported(bad) {
			t.Errorf("Supported(%q) = true", bad)
		}
	}
}

func TestCodes_Sorted(t *testing.T) {
	codes := Codes()
	if len(codes) != len(Registry) {
		t.Fatalf("len = %d, want %d", len(codes), len(Registry))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted at %d: %q > %q", i, codes[i-1], codes[i])
		}
	}
}
