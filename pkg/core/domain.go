// Record is the central entity of the domain.
package core

import (
	"fmt"
	"sort"
)

// Properties represents the key-value pairs extracted from a record's
// frontmatter. Values are expected to stay inside the variant
// {nil, string, number, bool, sequence, nested map}; anything outside it is
// classified by its primitive kind.
type Properties map[string]any

// Record is the central entity of the domain.
// It represents one metadata-bearing unit (typically a single file),
// identified by an ID and stamped with a modification marker.
type Record struct {
	ID       string
	Modified int64 // modification marker; file sources use mtime in UnixNano
	Props    Properties
	Keys     []string // property names in document order; may be empty
}

// PropertyOrder returns the record's property names in document order.
// Records built by hand usually carry no Keys; sorted names keep reports
// deterministic in that case.
func (r Record) PropertyOrder() []string {
	if len(r.Keys) > 0 {
		return r.Keys
	}
	keys := make([]string, 0, len(r.Props))
	for k := range r.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Finding is a single type mismatch detected on one property.
type Finding struct {
	Property string `json:"property"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Message  string `json:"message"`
}

// Report is the ordered list of findings for one record.
// Order follows the record's property order.
type Report []Finding

// RecordReport pairs a record identifier with its findings.
type RecordReport struct {
	ID       string `json:"id"`
	Findings Report `json:"findings"`
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the vault.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// CheckEvent is emitted by Service.Watch after a changed record has been
// re-checked. A now-clean record produces an event with zero findings so
// consumers can clear previously reported problems.
type CheckEvent struct {
	ID       string `json:"id"`
	Findings Report `json:"findings"`
	At       int64  `json:"at"` // Unix timestamp of the triggering change
}

// String makes CheckEvent usable as a generic lifecycle event.
func (e CheckEvent) String() string {
	return fmt.Sprintf("check %s: %d finding(s)", e.ID, len(e.Findings))
}
