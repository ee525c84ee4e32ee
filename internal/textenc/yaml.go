package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAML encodes documents as a YAML mapping or sequence of mappings.
type YAML struct {
	Indent int
}

func (YAML) Name() string { return "yaml" }

func (c YAML) Encode(doc Document) ([]byte, error) {
	var root *yaml.Node
	var err error
	if doc.Many {
		root = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(doc.List) == 0 {
			root.Style = yaml.FlowStyle
		}
		for i, m := range doc.List {
			child, err := mapNode(m)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			root.Content = append(root.Content, child)
		}
	} else {
		root, err = mapNode(doc.Map)
		if err != nil {
			return nil, err
		}
	}

	indent := c.Indent
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("write yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func mapNode(m *Map) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil || m.Len() == 0 {
		node.Style = yaml.FlowStyle
		return node, nil
	}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		value, err := valueNode(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("key '%s': %w", pair.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			value,
		)
	}
	return node, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(t, 10)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t)}, nil
	case float64:
		s, err := FormatFloat(t)
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
	case *Map:
		return mapNode(t)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, item := range t {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(t); err != nil {
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, t)
		}
		return node, nil
	}
}

func (YAML) Decode(data []byte) (Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("%w: empty yaml document", ErrMalformed)
		}
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Document{}, fmt.Errorf("%w: empty yaml document", ErrMalformed)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("%w: expected a single yaml document", ErrMalformed)
	}
	return nodeDocument(doc.Content[0])
}

// nodeDocument converts a parsed YAML node into a Document.
func nodeDocument(root *yaml.Node) (Document, error) {
	root = resolveAlias(root)
	switch root.Kind {
	case yaml.MappingNode:
		m, err := readMapNode(root)
		if err != nil {
			return Document{}, err
		}
		return Document{Map: m}, nil
	case yaml.SequenceNode:
		out := Document{Many: true, List: make([]*Map, 0, len(root.Content))}
		for i, child := range root.Content {
			child = resolveAlias(child)
			if child.Kind != yaml.MappingNode {
				return Document{}, fmt.Errorf("%w: element %d is not a mapping", ErrMalformed, i)
			}
			m, err := readMapNode(child)
			if err != nil {
				return Document{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.List = append(out.List, m)
		}
		return out, nil
	default:
		return Document{}, fmt.Errorf("%w: expected a mapping or a sequence at line %d", ErrMalformed, root.Line)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func readMapNode(n *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non scalar key at line %d", ErrMalformed, key.Line)
		}
		value, err := readNode(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("key '%s': %w", key.Value, err)
		}
		m.Set(key.Value, value)
	}
	return m, nil
}

func readNode(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return readMapNode(n)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := readNode(child)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case uint64:
			return float64(t), nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unexpected node at line %d", ErrMalformed, n.Line)
	}
}
