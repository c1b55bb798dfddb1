package remind

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rnwolfe/siptrackr/internal/quotes"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/streak"
)

// lastSentKey is the kv key holding the date of the last reminder sent.
const lastSentKey = "remind.last_sent"

// SipSource is the read side of sip.Store the checker needs.
type SipSource interface {
	All() ([]sip.Entry, error)
}

// KV persists small bits of state between runs.
type KV interface {
	GetKV(key string) (string, error)
	SetKV(key, value string) error
}

// Result is what a single check did.
type Result struct {
	Sent   bool
	Reason string
	Stats  streak.Stats
}

// Checker decides whether a reminder is due and sends it.
type Checker struct {
	Sips     SipSource
	State    KV
	Notifier Notifier
	Metrics  *Metrics
	Now      func() time.Time
}

// Message builds the reminder body for now, or "" when today is covered.
// atRisk is the streak that ends yesterday and breaks unless today is logged.
func Message(dates []string, now time.Time) (text string, atRisk int) {
	if streak.ComputeStats(dates, now).Current > 0 {
		return "", 0
	}
	atRisk = streak.ComputeStats(dates, now.AddDate(0, 0, -1)).Current
	q := quotes.Daily(now)

	var lead string
	if atRisk > 0 {
		lead = fmt.Sprintf("☕ Your <b>%d-day</b> first-sip streak ends tonight. Pause, sip, and set an intention.", atRisk)
	} else {
		lead = "☕ No first sip logged yet today. A quiet minute and one word is all it takes."
	}
	return lead + "\n\n<i>" + html.EscapeString(q.Text) + "</i>", atRisk
}

// Check runs one reminder pass. At most one reminder is sent per day.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	now := c.Now()
	today := streak.DayOf(now)

	entries, err := c.Sips.All()
	if err != nil {
		return Result{}, fmt.Errorf("loading sips: %w", err)
	}
	dates := sip.Dates(entries)
	st := streak.ComputeStats(dates, now)
	c.Metrics.Observe(st)
	res := Result{Stats: st}

	text, _ := Message(dates, now)
	if text == "" {
		res.Reason = "already sipped today"
		return res, nil
	}

	if c.State != nil {
		last, err := c.State.GetKV(lastSentKey)
		if err != nil {
			return res, fmt.Errorf("reading reminder state: %w", err)
		}
		if last == today {
			res.Reason = "already reminded today"
			return res, nil
		}
	}

	if err := c.Notifier.Notify(ctx, text); err != nil {
		c.Metrics.Failed()
		return res, err
	}
	c.Metrics.Sent()
	res.Sent = true
	res.Reason = "reminder sent"

	if c.State != nil {
		if err := c.State.SetKV(lastSentKey, today); err != nil {
			return res, fmt.Errorf("saving reminder state: %w", err)
		}
	}
	return res, nil
}
