// Package placeholder rewrites positional parameter markers inside template
// strings into each platform's own placeholder dialect.
//
// Source templates use the printf-style positional syntax Android accepts
// natively:
//
//	%1$s    string argument 1
//	%2$d    integer argument 2
//	%3$.2f  float argument 3 with 2 decimals
//
// Templates are first split into tokens (literal runs and markers), then a
// platform renderer walks the tokens:
//
//	android  "%1$s and %2$d" → "%1$s and %2$d"
//	flutter  "%1$s and %2$d" → "{param1} and {param2}"
//	xcode    "%1$s and %2$d" → "%@ and %@"
//	react    "%2$s then %1$s" → "{1} then {0}"
//
// Anything that only looks like a marker (%x$s, %0$s, %1$q, %1$.f) is kept
// as literal text. Rendering never fails.
package placeholder

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minios-linux/lokitchen/sdk"
)

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

// Kind identifies the type of a token.
type Kind int

const (
	// KindLiteral is plain text copied verbatim.
	KindLiteral Kind = iota
	// KindPositional is a %<n>$<type> marker.
	KindPositional
	// KindNamed is a {name} marker. Only Flutter gives it meaning; other
	// renderers copy it verbatim.
	KindNamed
)

// Token is one segment of a tokenized template.
type Token struct {
	Kind Kind
	// Raw is the exact source text of the token.
	Raw string

	// Index is the 1-based argument number (KindPositional).
	Index int
	// Verb is 's', 'd' or 'f' (KindPositional).
	Verb byte
	// Precision holds the digits of a %n$.<digits>f marker.
	Precision string

	// Name is the identifier between the braces (KindNamed).
	Name string
}

// Tokenize splits text into literal runs and markers. Joining the Raw
// fields of the result always reproduces text.
func Tokenize(text string) []Token {
	var tokens []Token
	litStart := 0

	flush := func(end int) {
		if end > litStart {
			tokens = append(tokens, Token{Kind: KindLiteral, Raw: text[litStart:end]})
		}
	}

	for i := 0; i < len(text); {
		switch text[i] {
		case '%':
			// "%%" is an escaped percent sign, never the start of a marker.
			if i+1 < len(text) && text[i+1] == '%' {
				i += 2
				continue
			}
			if tok, n, ok := scanPositional(text[i:]); ok {
				flush(i)
				tokens = append(tokens, tok)
				i += n
				litStart = i
				continue
			}
		case '{':
			if tok, n, ok := scanNamed(text[i:]); ok {
				flush(i)
				tokens = append(tokens, tok)
				i += n
				litStart = i
				continue
			}
		}
		i++
	}
	flush(len(text))
	return tokens
}

// scanPositional parses a marker at the start of s ("%12$s", "%1$.2f").
// It returns the token, the number of bytes consumed and whether s starts
// with a well-formed marker.
func scanPositional(s string) (Token, int, bool) {
	i := 1
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 1 || i >= len(s) || s[i] != '$' {
		return Token{}, 0, false
	}
	idx, err := strconv.Atoi(s[1:i])
	if err != nil || idx < 1 {
		return Token{}, 0, false
	}
	i++ // '$'
	if i >= len(s) {
		return Token{}, 0, false
	}

	tok := Token{Kind: KindPositional, Index: idx}
	switch s[i] {
	case 's', 'd':
		tok.Verb = s[i]
		i++
	case '.':
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == i+1 || j >= len(s) || s[j] != 'f' {
			return Token{}, 0, false
		}
		tok.Verb = 'f'
		tok.Precision = s[i+1 : j]
		i = j + 1
	default:
		return Token{}, 0, false
	}
	tok.Raw = s[:i]
	return tok, i, true
}

// scanNamed parses "{name}" at the start of s, where name is one or more
// letters, digits or underscores.
func scanNamed(s string) (Token, int, bool) {
	i := 1
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '}' {
			break
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return Token{}, 0, false
		}
		i += size
	}
	if i == 1 || i >= len(s) {
		return Token{}, 0, false
	}
	return Token{Kind: KindNamed, Raw: s[:i+1], Name: s[1:i]}, i + 1, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// renderers maps each platform to the replacement for a positional marker.
var renderers = map[sdk.Platform]func(Token) string{
	sdk.Flutter: func(t Token) string { return "{" + FlutterParamName(t.Index) + "}" },
	sdk.Xcode:   func(Token) string { return "%@" },
	sdk.React:   func(t Token) string { return "{" + strconv.Itoa(t.Index-1) + "}" },
}

// Translate rewrites every positional marker in text into the dialect of
// platform. Android and unknown platforms get text back unchanged.
func Translate(text string, platform sdk.Platform) string {
	render, ok := renderers[platform]
	if !ok || !strings.ContainsRune(text, '%') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, tok := range Tokenize(text) {
		if tok.Kind == KindPositional {
			b.WriteString(render(tok))
		} else {
			b.WriteString(tok.Raw)
		}
	}
	return b.String()
}

// FlutterParamName returns the ARB parameter name for argument index.
func FlutterParamName(index int) string {
	return "param" + strconv.Itoa(index)
}
