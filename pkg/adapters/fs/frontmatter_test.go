package fs

import (
	"reflect"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	doc := "---\n" +
		"title: Weekly review\n" +
		"due: 2024-03-05\n" +
		"priority: 2\n" +
		"done: false\n" +
		"tags:\n" +
		"  - \"#work\"\n" +
		"  - \"#review\"\n" +
		"---\n" +
		"# Notes\n"

	props, keys, err := parseDocument([]byte(doc), ".md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	wantKeys := []string{"title", "due", "priority", "done", "tags"}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("keys = %v, want %v", keys, wantKeys)
	}

	// The unquoted date must stay a raw string, not become a time.Time.
	if due, ok := props["due"].(string); !ok || due != "2024-03-05" {
		t.Errorf("due = %v (%T), want the raw string", props["due"], props["due"])
	}
	if p, ok := props["priority"].(int64); !ok || p != 2 {
		t.Errorf("priority = %v (%T), want int64(2)", props["priority"], props["priority"])
	}
	if d, ok := props["done"].(bool); !ok || d {
		t.Errorf("done = %v (%T), want false", props["done"], props["done"])
	}
	if tags, ok := props["tags"].([]any); !ok || len(tags) != 2 || tags[0] != "#work" {
		t.Errorf("tags = %v (%T)", props["tags"], props["tags"])
	}
}

func TestParseFrontmatter_NoFence(t *testing.T) {
	props, keys, err := parseDocument([]byte("just a plain note\n"), ".md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(props) != 0 || keys != nil {
		t.Errorf("props = %v, keys = %v, want empty", props, keys)
	}
}

func TestParseFrontmatter_CRLF(t *testing.T) {
	doc := "---\r\ndue: 2024-03-05\r\n---\r\nbody\r\n"

	props, _, err := parseDocument([]byte(doc), ".md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if props["due"] != "2024-03-05" {
		t.Errorf("due = %v", props["due"])
	}
}

func TestParseFrontmatter_Unterminated(t *testing.T) {
	doc := "---\ntitle: broken\nno closing fence"

	_, _, err := parseDocument([]byte(doc), ".md")
	if err == nil {
		t.Fatal("expected an error for unterminated frontmatter")
	}
	if err.Error() != "frontmatter started but no closing delimiter found" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseFrontmatter_EmptyBlock(t *testing.T) {
	props, keys, err := parseDocument([]byte("---\n---\nbody\n"), ".md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(props) != 0 || len(keys) != 0 {
		t.Errorf("props = %v, keys = %v, want empty", props, keys)
	}
}

func TestParseYAML_WholeDocument(t *testing.T) {
	doc := "created: 2024-03-05T10:30:00Z\nnested:\n  inner: 1\nempty:\n"

	props, keys, err := parseDocument([]byte(doc), ".yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !reflect.DeepEqual(keys, []string{"created", "nested", "empty"}) {
		t.Errorf("keys = %v", keys)
	}
	if created, ok := props["created"].(string); !ok || created != "2024-03-05T10:30:00Z" {
		t.Errorf("created = %v (%T), want the raw string", props["created"], props["created"])
	}
	nested, ok := props["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested = %T, want map", props["nested"])
	}
	if nested["inner"] != int64(1) {
		t.Errorf("nested.inner = %v (%T)", nested["inner"], nested["inner"])
	}
	if props["empty"] != nil {
		t.Errorf("empty = %v, want nil", props["empty"])
	}
}

func TestParseYAML_DuplicateKeys(t *testing.T) {
	props, keys, err := parseDocument([]byte("a: 1\na: 2\n"), ".yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("keys = %v, want a single entry", keys)
	}
	if props["a"] != int64(2) {
		t.Errorf("a = %v, want the last value", props["a"])
	}
}

func TestParseYAML_Alias(t *testing.T) {
	doc := "base: &b\n  - \"#x\"\nmirror: *b\n"

	props, _, err := parseDocument([]byte(doc), ".yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	mirror, ok := props["mirror"].([]any)
	if !ok || len(mirror) != 1 || mirror[0] != "#x" {
		t.Errorf("mirror = %v (%T)", props["mirror"], props["mirror"])
	}
}

func TestParseYAML_NotAMapping(t *testing.T) {
	if _, _, err := parseDocument([]byte("- a\n- b\n"), ".yaml"); err == nil {
		t.Error("expected an error for a sequence document")
	}
	if _, _, err := parseDocument([]byte("scalar\n"), ".yaml"); err == nil {
		t.Error("expected an error for a scalar document")
	}
}

func TestParseJSON(t *testing.T) {
	props, keys, err := parseDocument([]byte(`{"count": 3, "name": "x"}`), ".json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if keys != nil {
		t.Errorf("keys = %v, want nil for JSON", keys)
	}
	// Numbers arrive as json.Number so integers survive intact.
	if n, ok := props["count"].(interface{ Int64() (int64, error) }); !ok {
		t.Errorf("count = %T, want json.Number", props["count"])
	} else if v, _ := n.Int64(); v != 3 {
		t.Errorf("count = %v", v)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, _, err := parseDocument([]byte(`{"broken": `), ".json"); err == nil {
		t.Error("expected an error for truncated JSON")
	}
	if _, _, err := parseDocument([]byte(`[1, 2]`), ".json"); err == nil {
		t.Error("expected an error for a non-object document")
	}
}
