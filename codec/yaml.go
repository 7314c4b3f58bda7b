package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/confroute/confroute/document"
)

// aliasExpansionLimit bounds the total number of alias expansions per
// document. Expanding the node tree manually bypasses yaml.v3's own alias
// limits, so without a cap a small file of nested anchors could be amplified
// into an enormous document.
const aliasExpansionLimit = 10000

// decodeYAML parses YAML into a document. Decoding goes through yaml.Node
// rather than map[string]any so that mapping key order survives the round
// trip. An empty file decodes to null, matching an empty document.
func decodeYAML(data []byte) (document.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &SyntaxError{Codec: YAML, Err: err}
	}
	if node.Kind == 0 {
		// Empty input
		return document.Null{}, nil
	}
	conv := &yamlConverter{expanding: make(map[*yaml.Node]bool)}
	v, err := conv.node(&node)
	if err != nil {
		return nil, &SyntaxError{Codec: YAML, Err: err}
	}
	return v, nil
}

// yamlConverter tracks alias expansion while converting a node tree.
// yaml.v3 happily parses a self-referential anchor into a cyclic node graph;
// expanding marks anchor targets currently on the conversion stack so a
// cycle is reported instead of recursing forever.
type yamlConverter struct {
	expanding  map[*yaml.Node]bool
	expansions int
}

func (c *yamlConverter) node(node *yaml.Node) (document.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return document.Null{}, nil
		}
		return c.node(node.Content[0])

	case yaml.AliasNode:
		if c.expanding[node.Alias] {
			return nil, fmt.Errorf("line %d: cyclic alias *%s", node.Line, node.Value)
		}
		c.expansions++
		if c.expansions > aliasExpansionLimit {
			return nil, fmt.Errorf("line %d: alias *%s exceeds %d total expansions", node.Line, node.Value, aliasExpansionLimit)
		}
		c.expanding[node.Alias] = true
		v, err := c.node(node.Alias)
		delete(c.expanding, node.Alias)
		return v, err

	case yaml.ScalarNode:
		return fromYAMLScalar(node)

	case yaml.SequenceNode:
		seq := make(document.Sequence, len(node.Content))
		for i, elem := range node.Content {
			v, err := c.node(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = v
		}
		return seq, nil

	case yaml.MappingNode:
		m := document.NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", keyNode.Line)
			}
			v, err := c.node(valNode)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (document.Value, error) {
	switch node.Tag {
	case "!!null":
		return document.Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return document.Bool(b), nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, err
		}
		return document.Int(n), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return document.Float(f), nil
	case "!!str", "!!timestamp":
		return document.String(node.Value), nil
	default:
		// Unresolved custom tags keep their literal text
		return document.String(node.Value), nil
	}
}

// encodeYAML serializes a document as two-space-indented YAML. The document
// is converted to a yaml.Node tree so mapping keys are emitted in insertion
// order instead of yaml.v3's struct/map ordering.
func encodeYAML(v document.Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v document.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, document.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case document.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(val))}, nil
	case document.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(val), 10)}, nil
	case document.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(float64(val), 'g', -1, 64)}, nil
	case document.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}, nil
	case document.Sequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range val {
			child, err := toYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *document.Mapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.Keys() {
			elem, _ := val.Get(k)
			child, err := toYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unknown document value type %T", v)
	}
}
