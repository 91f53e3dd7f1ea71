package source

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ParseProperties decodes a Java .properties document into a Map.
//
// Each logical line is key=value or key:value with surrounding whitespace
// stripped. Lines starting with '#' or '!' are comments. A trailing
// backslash continues the value on the next line. The escapes \n, \t, \r,
// \\, \=, \: and \uXXXX are decoded in both keys and values. A repeated
// key keeps its first position and takes the last value.
func ParseProperties(data []byte) (*Map, error) {
	m := NewMap()
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		logical := strings.TrimSpace(lines[i])
		if logical == "" || logical[0] == '#' || logical[0] == '!' {
			continue
		}
		for continued(logical) && i+1 < len(lines) {
			i++
			logical = logical[:len(logical)-1] + strings.TrimLeft(lines[i], " \t")
		}

		rawKey, rawValue := splitKeyValue(logical)
		key, err := unescapeProperty(rawKey)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if key == "" {
			return nil, fmt.Errorf("line %d: missing key", lineNo)
		}
		value, err := unescapeProperty(rawValue)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		m.Set(key, value)
	}
	return m, nil
}

// continued reports whether s ends with an odd number of backslashes.
func continued(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitKeyValue splits at the first unescaped '=' or ':'. Without a
// separator the whole line is the key and the value is empty.
func splitKeyValue(s string) (key, value string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '=', ':':
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		}
	}
	return strings.TrimSpace(s), ""
}

func unescapeProperty(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+5 > len(s) {
				return "", fmt.Errorf("truncated \\u escape in %q", s)
			}
			r, err := parseHex4(s[i+1 : i+5])
			if err != nil {
				return "", fmt.Errorf("bad \\u escape in %q", s)
			}
			i += 4
			// A high surrogate followed by a \uDCxx escape encodes one
			// non-BMP rune (how Java tools write emoji).
			if utf16.IsSurrogate(r) && i+6 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
				if lo, err := parseHex4(s[i+3 : i+7]); err == nil {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						r = pair
						i += 6
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

func parseHex4(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	return rune(v), err
}
