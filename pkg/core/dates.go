package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Strict shapes recognized without consulting the generic parser.
var (
	dateShapeRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datetimeShapeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2})?(\.\d{1,3})?Z?$`)
	timeComponentRe = regexp.MustCompile(` \d{2}:\d{2}`)
)

// isDateShaped reports whether s reads as a calendar date or datetime.
// Strict ISO shapes are matched first; everything else falls through to a
// generic parse, which accepts broad human forms ("March 5, 2024",
// "2024/03/05"). The breadth is a known tradeoff: looser positives in
// exchange for matching how people actually write dates in frontmatter.
func isDateShaped(s string) bool {
	if s == "" {
		return false
	}
	if dateShapeRe.MatchString(s) || datetimeShapeRe.MatchString(s) {
		return true
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

// hasTimeComponent reports whether a date-shaped string carries a clock:
// a literal 'T' separator, or a space followed by HH:MM.
func hasTimeComponent(s string) bool {
	return strings.Contains(s, "T") || timeComponentRe.MatchString(s)
}

// hasClock reports whether t carries a clock component. YAML decoders resolve
// unquoted timestamps to time.Time; a bare calendar date arrives as midnight.
func hasClock(t time.Time) bool {
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0
}
