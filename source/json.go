package source

import (
	"fmt"

	"github.com/minios-linux/lokitchen/orderedjson"
)

// ParseJSON decodes a JSON object of string values into a Map, keeping the
// document's key order.
func ParseJSON(data []byte) (*Map, error) {
	obj, err := orderedjson.Parse(data)
	if err != nil {
		return nil, err
	}
	m := NewMap()
	for _, k := range obj.Keys() {
		s, ok := obj.String(k)
		if !ok {
			return nil, fmt.Errorf("value for %q must be a string, got object", k)
		}
		m.Set(k, s)
	}
	return m, nil
}

// Object converts the map into an ordered JSON object.
func (m *Map) Object() *orderedjson.Object {
	obj := orderedjson.NewObject()
	for _, k := range m.keys {
		obj.Set(k, m.values[k])
	}
	return obj
}

// MarshalJSON writes the map as a JSON object indented by two spaces, in
// key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	return m.Object().Marshal("  "), nil
}
