package models

import (
	"math"
	"time"
)

// ISODateLayout is the canonical wire format for all dates in the
// catalog and the state file: local calendar date, no time component.
const ISODateLayout = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string. It fails soft: malformed or
// empty input yields ok=false, never an error or a panic, because
// catalog documents routinely carry blank or free-text date fields.
func ParseISODate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ISODateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISODate renders a date as canonical YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// Midnight truncates a time to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns t shifted by n calendar days, normalized to
// midnight. The input is never mutated (time.Time is a value type, but
// the normalization matters: shifted dates feed instance identifiers).
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t.AddDate(0, 0, n))
}

// DaysBetween returns the signed whole-day difference b-a, rounded.
// Callers must pass midnight-normalized times; rounding absorbs the
// odd hour a DST transition would otherwise leak into the delta.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// WindowMidpoint returns the middle of a planting window, truncated to
// a calendar day. ok=false if the window or either bound is missing or
// unparseable.
func WindowMidpoint(w *DateWindow) (time.Time, bool) {
	if w == nil {
		return time.Time{}, false
	}
	a, okA := ParseISODate(w.Start)
	b, okB := ParseISODate(w.End)
	if !okA || !okB {
		return time.Time{}, false
	}
	mid := a.Add(b.Sub(a) / 2)
	return Midnight(mid), true
}
