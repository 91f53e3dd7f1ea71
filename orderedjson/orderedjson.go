// Package orderedjson reads and writes JSON objects whose key order matters.
//
// Localization files are diffed and reviewed by humans, so generated
// documents keep the order keys were inserted in, and strings are written
// without HTML escaping (markup such as "<b>" is not turned into \u003c
// sequences).
//
// Values are either strings or nested *Object.
package orderedjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Object model
// ---------------------------------------------------------------------------

// Object is a JSON object with insertion-ordered keys.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set stores v (a string or *Object) under key. Existing keys keep their
// position.
func (o *Object) Set(key string, v any) {
	switch v.(type) {
	case string, *Object:
	default:
		panic(fmt.Sprintf("orderedjson: unsupported value type %T", v))
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// String returns the string stored under key, if it is one.
func (o *Object) String(key string) (string, bool) {
	s, ok := o.vals[key].(string)
	return s, ok
}

// Child returns the object stored under key, creating it when absent.
// A non-object value under key is replaced.
func (o *Object) Child(key string) *Object {
	if c, ok := o.vals[key].(*Object); ok {
		return c
	}
	c := NewObject()
	o.Set(key, c)
	return c
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal writes o as pretty-printed JSON, one member per line, each level
// indented by indent. Empty objects are written as {}. No trailing newline
// is added.
func (o *Object) Marshal(indent string) []byte {
	var buf bytes.Buffer
	o.write(&buf, indent, 0)
	return buf.Bytes()
}

func (o *Object) write(buf *bytes.Buffer, indent string, depth int) {
	if len(o.keys) == 0 {
		buf.WriteString("{}")
		return
	}
	inner := strings.Repeat(indent, depth+1)
	buf.WriteString("{")
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
		buf.WriteString(inner)
		buf.Write(Quote(k))
		buf.WriteString(": ")
		switch v := o.vals[k].(type) {
		case string:
			buf.Write(Quote(v))
		case *Object:
			v.write(buf, indent, depth+1)
		}
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat(indent, depth))
	buf.WriteString("}")
}

// Quote returns s as a JSON string literal without HTML escaping.
func Quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

// Parse decodes a JSON object, keeping key order. Only string and object
// values are accepted; numbers, booleans, null and arrays are errors.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing JSON: expected '{', got %v", tok)
	}
	o, err := parseObject(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing JSON: trailing data after object")
	}
	return o, nil
}

// parseObject reads members up to and including the closing '}'. The
// opening '{' has already been consumed.
func parseObject(dec *json.Decoder, path string) (*Object, error) {
	o := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing JSON: expected string key, got %T", keyTok)
		}
		full := key
		if path != "" {
			full = path + "." + key
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON value for %q: %w", full, err)
		}
		switch v := valTok.(type) {
		case string:
			o.Set(key, v)
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("value for %q must be a string or object, got array", full)
			}
			child, err := parseObject(dec, full)
			if err != nil {
				return nil, err
			}
			o.Set(key, child)
		default:
			return nil, fmt.Errorf("value for %q must be a string or object, got %v", full, v)
		}
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return o, nil
}
