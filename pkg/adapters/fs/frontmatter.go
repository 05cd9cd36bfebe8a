package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/sieve/pkg/core"
)

// maxAliasDepth bounds alias expansion while walking YAML nodes. Anything
// deeper is a pathological document, not frontmatter.
const maxAliasDepth = 64

// parseDocument extracts the property map and the document-order key list
// from a file's raw bytes. The codec follows the extension: .md expects an
// optional fenced YAML frontmatter block, .yaml/.yml treat the whole document
// as the mapping, .json expects a top-level object.
func parseDocument(data []byte, ext string) (core.Properties, []string, error) {
	switch ext {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".md":
		fallthrough
	default:
		return parseFrontmatter(data)
	}
}

// parseFrontmatter splits a --- fenced YAML block off a Markdown document.
// A document without a fence simply has no properties; a fence that never
// closes is a parse error.
func parseFrontmatter(data []byte) (core.Properties, []string, error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return core.Properties{}, nil, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, nil, errors.New("frontmatter started but no closing delimiter found")
	}

	return parseYAML(parts[0])
}

// parseYAML decodes a YAML mapping through the node API. Walking nodes
// instead of unmarshaling into a map keeps two things the plain decoder
// loses: the document order of the keys, and date-like scalars as their raw
// strings (yaml.v3 resolves unquoted timestamps into time.Time, which would
// bypass string-based shape checks).
func parseYAML(data []byte) (core.Properties, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if len(root.Content) == 0 {
		// Empty document (or comments only).
		return core.Properties{}, nil, nil
	}
	return decodeMapping(root.Content[0], 0)
}

func decodeMapping(node *yaml.Node, depth int) (core.Properties, []string, error) {
	if node.Kind == yaml.AliasNode {
		if depth >= maxAliasDepth {
			return nil, nil, errors.New("alias nesting too deep")
		}
		return decodeMapping(node.Alias, depth+1)
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("expected a mapping, got %s", nodeKindName(node.Kind))
	}

	props := make(core.Properties, len(node.Content)/2)
	keys := make([]string, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value, err := decodeValue(node.Content[i+1], depth)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := props[key]; !dup {
			keys = append(keys, key)
		}
		props[key] = value
	}
	return props, keys, nil
}

// decodeValue converts one YAML node into the domain value variant.
func decodeValue(node *yaml.Node, depth int) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return nil, errors.New("alias nesting too deep")
		}
		return decodeValue(node.Alias, depth+1)

	case yaml.ScalarNode:
		return decodeScalar(node)

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item, depth)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		nested, _, err := decodeMapping(node, depth)
		if err != nil {
			return nil, err
		}
		return map[string]any(nested), nil

	default:
		return nil, nil
	}
}

func decodeScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!str", "!!timestamp":
		// Timestamps stay raw so date shapes are judged on the string.
		return node.Value, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", node.Value, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			return u, nil
		}
		// Out-of-range integers degrade to their literal text.
		return node.Value, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", node.Value, err)
		}
		return f, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("cannot decode %s scalar: %w", node.Tag, err)
		}
		return v, nil
	}
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// parseJSON decodes a top-level JSON object. Numbers stay json.Number so
// integers survive without float conversion. JSON key order is not worth
// recovering, so Keys stays empty and reports fall back to sorted names.
func parseJSON(data []byte) (core.Properties, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("invalid json: %w", err)
	}
	return core.Properties(payload), nil, nil
}
