// Package schema loads the vault's property type declarations.
//
// A schema document is a YAML or JSON file with a top-level "types" mapping
// from property names to expected type names:
//
//	types:
//	  due: date
//	  priority: number
//	  done: checkbox
//
// Loading is forgiving: a missing file, a parse failure, or an absent "types"
// key all degrade to an empty schema so a vault without declarations still
// checks (and finds nothing).
package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// candidates are the schema file names probed by Discover, in order.
var candidates = []string{"types.yaml", "types.yml", "types.json"}

// document is the on-disk shape. Anything outside "types" is ignored, so the
// schema can live inside a larger configuration file.
type document struct {
	Types map[string]any `mapstructure:"types"`
}

// Schema maps property names to expected type names.
type Schema struct {
	types map[string]string
}

// New builds a Schema from a property-to-type mapping. The map is copied.
func New(types map[string]string) Schema {
	out := make(map[string]string, len(types))
	for k, v := range types {
		out[k] = v
	}
	return Schema{types: out}
}

// Empty returns a schema with no declarations.
func Empty() Schema {
	return Schema{}
}

// Lookup returns the expected type declared for a property.
func (s Schema) Lookup(name string) (string, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Len returns the number of declared properties.
func (s Schema) Len() int {
	return len(s.types)
}

// Types returns a copy of the declarations.
func (s Schema) Types() map[string]string {
	out := make(map[string]string, len(s.types))
	for k, v := range s.types {
		out[k] = v
	}
	return out
}

// Load reads a schema document from path. The codec follows the extension:
// .json uses encoding/json, everything else YAML. Entries under "types" whose
// values are not strings are dropped.
func Load(path string) (Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Empty(), fmt.Errorf("failed to read schema: %w", err)
	}

	var loose map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(raw, &loose); err != nil {
			return Empty(), fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &loose); err != nil {
			return Empty(), fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	}

	var doc document
	if err := mapstructure.Decode(loose, &doc); err != nil {
		return Empty(), fmt.Errorf("failed to decode schema %s: %w", path, err)
	}
	if doc.Types == nil {
		return Empty(), fmt.Errorf("schema %s has no top-level 'types' mapping", path)
	}

	types := make(map[string]string, len(doc.Types))
	for name, v := range doc.Types {
		if t, ok := v.(string); ok {
			types[name] = t
		}
	}
	return Schema{types: types}, nil
}

// LoadOrEmpty wraps Load, degrading any failure to an empty schema. The
// failure is logged at Warn so a typo in the document does not silently
// disable checking without a trace.
func LoadOrEmpty(path string, logger *slog.Logger) Schema {
	s, err := Load(path)
	if err != nil {
		if logger != nil {
			logger.Warn("schema unavailable, using empty schema", "path", path, "err", err)
		}
		return Empty()
	}
	return s
}

// Discover probes dir for a schema document, trying types.yaml, types.yml and
// types.json in order. It returns the first path that exists as a regular
// file.
func Discover(dir string) (string, bool) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
