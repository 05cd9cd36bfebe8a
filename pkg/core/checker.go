package core

import (
	"fmt"
	"sync"
)

// ignoredProperties are never validated regardless of schema contents.
// "position" is the reserved metadata position marker; tags and aliases are
// the built-in list properties owned by the host. Hard-coded, not
// configurable.
var ignoredProperties = map[string]bool{
	"position": true,
	"tags":     true,
	"aliases":  true,
}

// Checker validates records against a schema through an explicit cache.
// The cache is a handle, not ambient state: tests and hosts construct their
// own and pass it in.
type Checker struct {
	mu     sync.RWMutex // guards schema
	schema map[string]string
	cache  *Cache
}

// NewChecker creates a Checker. A nil cache gets a fresh one; a nil schema is
// treated as empty, so every record yields zero findings.
func NewChecker(schema map[string]string, cache *Cache) *Checker {
	if cache == nil {
		cache = NewCache()
	}
	return &Checker{schema: copySchema(schema), cache: cache}
}

func copySchema(schema map[string]string) map[string]string {
	out := make(map[string]string, len(schema))
	for k, v := range schema {
		out[k] = v
	}
	return out
}

// Schema returns a copy of the current schema.
func (c *Checker) Schema() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySchema(c.schema)
}

// SetSchema replaces the schema and clears the cache: findings computed under
// the old expectations are meaningless under the new ones.
func (c *Checker) SetSchema(schema map[string]string) {
	c.mu.Lock()
	c.schema = copySchema(schema)
	c.mu.Unlock()

	c.cache.Clear()
}

// Cache exposes the underlying cache handle.
func (c *Checker) Cache() *Cache {
	return c.cache
}

// CheckRecord validates one record. Unless force is set, a cache entry whose
// marker matches the record's is returned unchanged, with no re-inference and
// no re-validation. Computed results are always written back.
func (c *Checker) CheckRecord(rec Record, force bool) Report {
	if !force {
		if findings, ok := c.cache.Get(rec.ID, rec.Modified); ok {
			return findings
		}
	}

	findings := c.checkProps(rec)
	c.cache.Set(rec.ID, rec.Modified, findings)
	return findings
}

// checkProps walks the record's properties in document order and collects a
// finding for each declared property whose value fails its expected type.
// Nothing here returns an error: malformed input degrades to "no finding for
// that property". A checker must never block the user's workflow.
func (c *Checker) checkProps(rec Record) Report {
	report := Report{}
	if len(rec.Props) == 0 {
		return report
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, name := range rec.PropertyOrder() {
		if ignoredProperties[name] {
			continue
		}
		expected, declared := c.schema[name]
		if !declared {
			continue
		}
		value, ok := rec.Props[name]
		if !ok || value == nil {
			// Declared but absent is not a mismatch.
			continue
		}
		if isNestedMap(value) {
			// Nested objects are outside the variant; assume valid.
			continue
		}
		if Validate(value, expected) {
			continue
		}
		actual := Infer(value)
		report = append(report, Finding{
			Property: name,
			Expected: expected,
			Actual:   actual,
			Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
		})
	}
	return report
}

func isNestedMap(v any) bool {
	switch v.(type) {
	case map[string]any, map[any]any, Properties:
		return true
	}
	return false
}

// CheckAll validates records in input order and returns, still in that order,
// reports only for records with at least one finding.
func (c *Checker) CheckAll(recs []Record, force bool) []RecordReport {
	var out []RecordReport
	for _, rec := range recs {
		findings := c.CheckRecord(rec, force)
		if len(findings) > 0 {
			out = append(out, RecordReport{ID: rec.ID, Findings: findings})
		}
	}
	return out
}

// ClearCache drops every cached result.
func (c *Checker) ClearCache() {
	c.cache.Clear()
}

// PruneCache drops cached results for records not in the keep set.
func (c *Checker) PruneCache(keep map[string]bool) {
	c.cache.Prune(keep)
}
