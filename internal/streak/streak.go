// Package streak derives daily-ritual statistics from a history of dated events.
//
// A streak is a run of consecutive calendar days with at least one event.
// Everything is recomputed from scratch on each call; history is small
// (one record a day) so there is no incremental state to keep in sync.
package streak

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format used across siptrackr.
const DateLayout = "2006-01-02"

// ErrMalformedDate is wrapped by ParseDay when a value is not a calendar date.
var ErrMalformedDate = errors.New("malformed date")

// Stats summarizes an event history as of a reference day.
type Stats struct {
	// Total is the raw number of records, duplicates and malformed ones included.
	Total int
	// Current is the length of the run that includes the reference day.
	// It is zero when the reference day itself has no event.
	Current int
	// Longest is the longest run ever observed.
	Longest int
	// LastDate is the day of the most recently inserted valid record,
	// or "" when there is none.
	LastDate string
	// Skipped counts records whose date could not be parsed.
	Skipped int
}

// accepted input layouts, tried in order. Anything with a time component is
// reduced to the calendar date exactly as written; the offset is not applied.
var layouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDay parses s into its calendar day, returned as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// DayOf returns the calendar date of t in t's own location, as YYYY-MM-DD.
func DayOf(t time.Time) string {
	return t.Format(DateLayout)
}

// dayIndex returns whole days since the Unix epoch for a calendar date.
// Working on indexes rather than durations keeps DST and zone offsets out of
// the day arithmetic.
func dayIndex(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DaysBetween returns the number of calendar days from a to b. Both are
// reduced to their calendar date first, so the result is always whole.
func DaysBetween(a, b time.Time) int {
	return int(dayIndex(b) - dayIndex(a))
}

// ComputeStats computes totals and streaks for the given event dates.
//
// dates are in insertion order; their order otherwise does not matter and
// duplicates collapse to a single day. Malformed dates are counted in
// Stats.Skipped and otherwise ignored. today is the reference day; only its
// calendar date is used. The input slice is not modified.
func ComputeStats(dates []string, today time.Time) Stats {
	st := Stats{Total: len(dates)}

	present := make(map[int64]struct{}, len(dates))
	for _, raw := range dates {
		day, err := ParseDay(raw)
		if err != nil {
			st.Skipped++
			continue
		}
		present[dayIndex(day)] = struct{}{}
		st.LastDate = day.Format(DateLayout)
	}
	if len(present) == 0 {
		return st
	}

	days := make([]int64, 0, len(present))
	for d := range present {
		days = append(days, d)
	}
	slices.Sort(days)

	run := 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
			continue
		}
		st.Longest = max(st.Longest, run)
		run = 1
	}
	// The last run never closes inside the loop.
	st.Longest = max(st.Longest, run)

	ref := dayIndex(today)
	for d := ref; ; d-- {
		if _, ok := present[d]; !ok {
			break
		}
		st.Current++
	}

	return st
}
