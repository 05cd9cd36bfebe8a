package core

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"
)

// Type names produced by Infer and understood by Validate.
const (
	TypeText      = "text"
	TypeList      = "list"
	TypeMultitext = "multitext" // legacy alias for list
	TypeNumber    = "number"
	TypeCheckbox  = "checkbox"
	TypeBoolean   = "boolean" // alias for checkbox
	TypeDate      = "date"
	TypeDatetime  = "datetime"
	TypeTags      = "tags"
	TypeAliases   = "aliases"
	TypeNull      = "null"
	TypeArray     = "array"
)

// Infer classifies a raw property value into the semantic type name it most
// resembles. It is total: values outside the known variant fall back to their
// primitive kind, never a silent default.
func Infer(v any) string {
	switch val := v.(type) {
	case nil:
		return TypeNull
	case string:
		if isDateShaped(val) {
			if hasTimeComponent(val) {
				return TypeDatetime
			}
			return TypeDate
		}
		return TypeText
	case bool:
		return TypeCheckbox
	case time.Time:
		if hasClock(val) {
			return TypeDatetime
		}
		return TypeDate
	}

	if f, ok := asNumber(v); ok {
		if isFinite(f) {
			return TypeNumber
		}
		return kindOf(v)
	}

	if seq, ok := asSequence(v); ok {
		if allTagStrings(seq) {
			return TypeTags
		}
		if allStrings(seq) {
			return TypeList
		}
		return TypeArray
	}

	return kindOf(v)
}

// asNumber widens any numeric representation the YAML/JSON decoders produce
// into a float64 for shape checks.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// asSequence widens the slice shapes decoders and callers produce into []any.
func asSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// allStrings reports whether every element is a string.
// Vacuously true for an empty sequence.
func allStrings(seq []any) bool {
	for _, el := range seq {
		if _, ok := el.(string); !ok {
			return false
		}
	}
	return true
}

// allTagStrings reports whether every element is a string with a '#' prefix.
// Vacuously true for an empty sequence.
func allTagStrings(seq []any) bool {
	for _, el := range seq {
		s, ok := el.(string)
		if !ok || !strings.HasPrefix(s, "#") {
			return false
		}
	}
	return true
}

// kindOf is the explicit fallback arm: the value's primitive kind as a string.
func kindOf(v any) string {
	if v == nil {
		return TypeNull
	}
	return reflect.TypeOf(v).Kind().String()
}
