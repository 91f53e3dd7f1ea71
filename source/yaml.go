package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML mapping into a Map. Nested mappings are
// flattened into dot-joined keys; a single top-level key holding a mapping
// is treated as a Rails-style locale root and unwrapped. Non-string scalars
// (bool, int, float, null) and sequences are rejected.
func ParseYAML(data []byte) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	m := NewMap()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be a mapping, got kind %d", root.Kind)
	}

	if len(root.Content) == 2 && root.Content[1].Kind == yaml.MappingNode {
		root = root.Content[1]
	}

	if err := collect(root, "", m); err != nil {
		return nil, err
	}
	return m, nil
}

func collect(node *yaml.Node, prefix string, m *Map) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		path := keyNode.Value
		if prefix != "" {
			path = prefix + "." + keyNode.Value
		}

		switch valNode.Kind {
		case yaml.MappingNode:
			if err := collect(valNode, path, m); err != nil {
				return err
			}
		case yaml.ScalarNode:
			switch valNode.Tag {
			case "!!bool", "!!int", "!!float", "!!null":
				return fmt.Errorf("line %d: value for %q must be a string, got %s", valNode.Line, path, valNode.Tag)
			}
			m.Set(path, valNode.Value)
		default:
			return fmt.Errorf("line %d: value for %q must be a string", valNode.Line, path)
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, writing the map as a flat mapping
// in key order with every value as a string scalar.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.values[k]},
		)
	}
	return node, nil
}
