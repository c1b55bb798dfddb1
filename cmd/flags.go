package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/siptrackr/internal/streak"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a calendar day. It accepts
// YYYY-MM-DD, "today", "yesterday" and relative offsets like "-2".
// The zero value means "not set".
type dateValue struct {
	day string
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string { return d.day }

func (d *dateValue) Type() string { return "date" }

func (d *dateValue) Set(s string) error {
	day, err := resolveDay(s, nowFunc())
	if err != nil {
		return err
	}
	d.day = day
	return nil
}

// At returns the moment to record for this day: now's wall clock when the
// day is today or unset, noon of that day otherwise.
func (d *dateValue) At(now time.Time) time.Time {
	if d.day == "" || d.day == streak.DayOf(now) {
		return now
	}
	t, err := time.ParseInLocation(streak.DateLayout, d.day, now.Location())
	if err != nil {
		return now
	}
	return t.Add(12 * time.Hour)
}

func resolveDay(s string, now time.Time) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return streak.DayOf(now), nil
	case "yesterday":
		return streak.DayOf(now.AddDate(0, 0, -1)), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n <= 0 {
		return streak.DayOf(now.AddDate(0, 0, n)), nil
	}
	t, err := time.ParseInLocation(streak.DateLayout, s, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, yesterday or -N)", s)
	}
	if t.After(now) {
		return "", fmt.Errorf("date %s is in the future", s)
	}
	return t.Format(streak.DateLayout), nil
}
