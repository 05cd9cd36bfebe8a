package core_test

import (
	"math"
	"testing"
	"time"

	"github.com/aretw0/sieve/pkg/core"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		value    any
		expected string
		want     bool
	}{
		{"text accepts string", "hello", "text", true},
		{"text rejects number", 42, "text", false},
		{"text rejects list", []any{"a"}, "text", false},

		{"list accepts sequence", []any{"a", "b"}, "list", true},
		{"list accepts bare string", "solo", "list", true},
		{"list accepts empty sequence", []any{}, "list", true},
		{"list rejects mixed sequence", []any{"a", 1}, "list", false},
		{"multitext is list", []any{"a"}, "multitext", true},
		{"multitext accepts bare string", "solo", "multitext", true},

		{"number accepts int", 42, "number", true},
		{"number accepts float", 3.14, "number", true},
		{"number rejects string", "42", "number", false},
		{"number rejects NaN", math.NaN(), "number", false},
		{"number rejects Inf", math.Inf(-1), "number", false},

		{"checkbox accepts bool", true, "checkbox", true},
		{"checkbox rejects string", "true", "checkbox", false},
		{"boolean is checkbox", false, "boolean", true},

		{"date accepts calendar string", "2024-03-01", "date", true},
		{"date rejects datetime string", "2024-03-01T10:00:00Z", "date", false},
		{"date rejects plain text", "soon", "date", false},
		{"datetime accepts iso string", "2024-03-01T10:00:00Z", "datetime", true},
		{"datetime rejects calendar string", "2024-03-01", "datetime", false},
		{"datetime rejects plain text", "soon", "datetime", false},

		{"tags accepts hashed strings", []any{"#a", "#b"}, "tags", true},
		{"tags accepts empty sequence", []any{}, "tags", true},
		{"tags rejects unhashed", []any{"#a", "b"}, "tags", false},
		{"tags rejects bare string", "#a", "tags", false},

		{"aliases accepts strings", []any{"a", "b"}, "aliases", true},
		{"aliases accepts empty sequence", []any{}, "aliases", true},
		{"aliases rejects numbers", []any{1}, "aliases", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := core.Validate(tc.value, tc.expected); got != tc.want {
				t.Errorf("Validate(%#v, %q) = %v, want %v", tc.value, tc.expected, got, tc.want)
			}
		})
	}
}

func TestValidate_PermissiveUnknown(t *testing.T) {
	// Unknown expected type names are always valid, whatever the value.
	values := []any{nil, "x", 42, true, []any{1, "a"}, map[string]any{"k": "v"}}
	names := []string{"rating", "geo", "whatever", ""}

	for _, name := range names {
		for _, v := range values {
			if !core.Validate(v, name) {
				t.Errorf("Validate(%#v, %q) = false, want true (permissive default)", v, name)
			}
		}
	}
}

func TestValidate_DateTimePartition(t *testing.T) {
	// For any date-shaped string, exactly one of date/datetime validates,
	// decided solely by the time component.
	shaped := []string{
		"2024-03-01",
		"2024-03-01T10:00",
		"2024-03-01T10:00:00Z",
		"2024-03-01 10:00",
		"March 5, 2024",
		"2024/03/05",
	}
	for _, s := range shaped {
		asDate := core.Validate(s, "date")
		asDatetime := core.Validate(s, "datetime")
		if asDate == asDatetime {
			t.Errorf("partition violated for %q: date=%v datetime=%v", s, asDate, asDatetime)
		}
	}
}

func TestValidate_Timestamps(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !core.Validate(day, "date") {
		t.Error("midnight time.Time should validate as date")
	}
	if core.Validate(day, "datetime") {
		t.Error("midnight time.Time should not validate as datetime")
	}

	moment := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !core.Validate(moment, "datetime") {
		t.Error("clocked time.Time should validate as datetime")
	}
	if core.Validate(moment, "date") {
		t.Error("clocked time.Time should not validate as date")
	}
}
