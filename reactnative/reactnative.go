// Package reactnative writes the LocalizedStrings.js module consumed by
// react-native-localization.
//
// All languages share one module:
//
//	import LocalizedStrings from 'react-native-localization';
//
//	const strings = new LocalizedStrings({
//	  "en": {
//	    "hello": "Hello {0}"
//	  },
//	  "ja": {
//	    "hello": "こんにちは {0}"
//	  }
//	});
//
//	export default strings;
//
// Keys and values are emitted as double-quoted JS string literals; the last
// member of every object has no trailing comma.
package reactnative

import (
	"strings"

	"github.com/minios-linux/lokitchen/source"
)

// FileName is the generated module name.
const FileName = "LocalizedStrings.js"

// Block is the translated strings of one language.
type Block struct {
	Lang    string
	Entries *source.Map
}

// Emit renders the module for blocks in the given order.
func Emit(blocks []Block) []byte {
	var b strings.Builder
	b.WriteString("import LocalizedStrings from 'react-native-localization';\n\n")

	if len(blocks) == 0 {
		b.WriteString("const strings = new LocalizedStrings({});\n")
	} else {
		b.WriteString("const strings = new LocalizedStrings({\n")
		for i, blk := range blocks {
			b.WriteString("  " + Quote(blk.Lang) + ": ")
			writeObject(&b, blk.Entries)
			if i < len(blocks)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("});\n")
	}

	b.WriteString("\nexport default strings;\n")
	return []byte(b.String())
}

func writeObject(b *strings.Builder, m *source.Map) {
	keys := m.Keys()
	if len(keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for i, k := range keys {
		v, _ := m.Get(k)
		b.WriteString("    " + Quote(k) + ": " + Quote(v))
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }")
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Quote returns s as a double-quoted JS string literal.
func Quote(s string) string {
	return `"` + jsEscaper.Replace(s) + `"`
}
