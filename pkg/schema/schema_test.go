package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/sieve/pkg/schema"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "types.yaml", `
types:
  due: date
  priority: number
  done: checkbox
`)

	s, err := schema.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if got, ok := s.Lookup("due"); !ok || got != "date" {
		t.Errorf("Lookup(due) = %q, %v", got, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup(missing) should miss")
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "types.json", `{"types": {"due": "date"}}`)

	s, err := schema.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, _ := s.Lookup("due"); got != "date" {
		t.Errorf("Lookup(due) = %q, want %q", got, "date")
	}
}

func TestLoad_IgnoresOtherKeys(t *testing.T) {
	// The types mapping may live inside a larger configuration document.
	path := writeFile(t, t.TempDir(), "types.yaml", `
version: 2
types:
  due: date
plugins:
  - linter
`)

	s, err := schema.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestLoad_DropsNonStringValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "types.yaml", `
types:
  due: date
  weird: [not, a, type]
  worse: {nested: map}
  count: 7
`)

	s, err := schema.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 (non-string values dropped)", s.Len())
	}
	if _, ok := s.Lookup("weird"); ok {
		t.Error("non-string entry survived")
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "types: [unclosed")},
		{"malformed json", writeFile(t, dir, "bad.json", `{"types": `)},
		{"no types key", writeFile(t, dir, "other.yaml", "schema:\n  due: date\n")},
		{"scalar types key", writeFile(t, dir, "scalar.yaml", "types: 42\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := schema.Load(tt.path); err == nil {
				t.Error("expected an error")
			}
			// The forgiving wrapper degrades every failure to empty.
			if s := schema.LoadOrEmpty(tt.path, nil); s.Len() != 0 {
				t.Errorf("LoadOrEmpty returned %d entries, want 0", s.Len())
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if _, ok := schema.Discover(dir); ok {
		t.Error("Discover found a schema in an empty dir")
	}

	writeFile(t, dir, "types.json", `{"types": {}}`)
	writeFile(t, dir, "types.yaml", "types: {}\n")

	path, ok := schema.Discover(dir)
	if !ok {
		t.Fatal("Discover missed the schema")
	}
	if filepath.Base(path) != "types.yaml" {
		t.Errorf("Discover picked %s, want types.yaml first", filepath.Base(path))
	}
}

func TestTypesReturnsCopy(t *testing.T) {
	s := schema.New(map[string]string{"due": "date"})
	got := s.Types()
	got["due"] = "text"

	if v, _ := s.Lookup("due"); v != "date" {
		t.Errorf("mutating the Types copy changed the schema: %q", v)
	}
}
