package core

import "time"

// Validate reports whether a raw property value conforms to the expected type
// name. Each type has an independent rule; the rules share the date-shape
// primitives with Infer but are never derived from its guess.
//
// Unknown type names are always valid. Schemas may carry names this engine
// does not know, and rejecting them would turn a configuration quirk into
// user-facing noise. This permissive default is a product decision.
func Validate(v any, expected string) bool {
	switch expected {
	case TypeText:
		_, ok := v.(string)
		return ok
	case TypeList, TypeMultitext:
		if _, ok := v.(string); ok {
			return true
		}
		seq, ok := asSequence(v)
		return ok && allStrings(seq)
	case TypeNumber:
		f, ok := asNumber(v)
		return ok && isFinite(f)
	case TypeCheckbox, TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeDate:
		return isDateValue(v, false)
	case TypeDatetime:
		return isDateValue(v, true)
	case TypeTags:
		seq, ok := asSequence(v)
		return ok && allTagStrings(seq)
	case TypeAliases:
		seq, ok := asSequence(v)
		return ok && allStrings(seq)
	default:
		return true
	}
}

// isDateValue applies the date/datetime partition: the value must be
// date-shaped and its clock presence must match wantClock. For a date-shaped
// string exactly one of date/datetime validates.
func isDateValue(v any, wantClock bool) bool {
	switch val := v.(type) {
	case string:
		return isDateShaped(val) && hasTimeComponent(val) == wantClock
	case time.Time:
		return hasClock(val) == wantClock
	}
	return false
}
