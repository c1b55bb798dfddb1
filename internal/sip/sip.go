// Package sip records the first sip of each day: a one-word intention and
// the drink it came with.
package sip

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rnwolfe/siptrackr/internal/streak"
)

// MaxIntentionLen is the longest intention accepted, in characters.
const MaxIntentionLen = 20

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Type is the kind of drink.
type Type string

const (
	Coffee Type = "coffee"
	Tea    Type = "tea"
	Water  Type = "water"
	Other  Type = "other"
)

// Types lists every valid drink type in display order.
var Types = []Type{Coffee, Tea, Water, Other}

var (
	ErrAlreadySipped    = errors.New("already logged a first sip today")
	ErrInvalidType      = errors.New("invalid sip type")
	ErrEmptyIntention   = errors.New("intention cannot be empty")
	ErrIntentionTooLong = fmt.Errorf("intention must be at most %d characters", MaxIntentionLen)
	ErrNotFound         = errors.New("sip not found")
)

// Icon returns the emoji for a drink type.
func (t Type) Icon() string {
	switch t {
	case Coffee:
		return "☕"
	case Tea:
		return "🍵"
	case Water:
		return "💧"
	default:
		return "🥤"
	}
}

// ParseType normalizes s to a Type. An empty string yields Coffee.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Coffee, nil
	}
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q (use one of: coffee, tea, water, other)", ErrInvalidType, s)
}

// Entry is one logged first sip.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Intention string    `json:"intention" yaml:"intention"`
	Type      Type      `json:"type" yaml:"type"`
}

// NewID returns a fresh sip identifier.
func NewID() string {
	return "sip-" + uuid.New().String()
}

// NormalizeIntention trims s and enforces the length limit.
func NormalizeIntention(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyIntention
	}
	if utf8.RuneCountInString(s) > MaxIntentionLen {
		return "", ErrIntentionTooLong
	}
	return s, nil
}

// Dates projects entries to their calendar dates, preserving order.
func Dates(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date
	}
	return out
}

// ImportResult reports what Import did with each record.
type ImportResult struct {
	Imported  int
	Duplicate int
	Invalid   int
}

// Store provides sip operations over a database.
type Store struct {
	db *sql.DB
}

// NewStore creates a sip store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add logs the first sip for the calendar day of at.
func (s *Store) Add(intention string, typ Type, at time.Time) (*Entry, error) {
	intention, err := NormalizeIntention(intention)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = Coffee
	}
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}

	e := &Entry{
		ID:        NewID(),
		Date:      streak.DayOf(at),
		Timestamp: at,
		Intention: intention,
		Type:      typ,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM sips WHERE date = ?`, e.Date).Scan(&n); err != nil {
		return nil, fmt.Errorf("checking today's sip: %w", err)
	}
	if n > 0 {
		return nil, ErrAlreadySipped
	}
	if err := insert(tx, e); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return e, nil
}

// Import inserts entries exported from elsewhere. Records with a malformed
// date, an invalid type, or an empty intention are counted as invalid;
// records whose ID already exists are counted as duplicates.
func (s *Store) Import(entries []Entry) (ImportResult, error) {
	var res ImportResult

	tx, err := s.db.Begin()
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	for _, e := range entries {
		day, err := streak.ParseDay(e.Date)
		if err != nil {
			res.Invalid++
			continue
		}
		e.Date = day.Format(streak.DateLayout)
		if e.Type, err = ParseType(string(e.Type)); err != nil {
			res.Invalid++
			continue
		}
		if e.Intention = strings.TrimSpace(e.Intention); e.Intention == "" {
			res.Invalid++
			continue
		}
		if e.ID == "" {
			e.ID = NewID()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = day
		}

		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM sips WHERE id = ?`, e.ID).Scan(&exists); err != nil {
			return res, err
		}
		if exists > 0 {
			res.Duplicate++
			continue
		}
		if err := insert(tx, &e); err != nil {
			return res, err
		}
		res.Imported++
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

func insert(tx *sql.Tx, e *Entry) error {
	_, err := tx.Exec(
		`INSERT INTO sips (id, date, timestamp, intention, type) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.Timestamp.UTC().Format(timestampLayout), e.Intention, string(e.Type),
	)
	if err != nil {
		return fmt.Errorf("saving sip: %w", err)
	}
	return nil
}

// Today returns the sip logged on now's calendar date, or nil.
func (s *Store) Today(now time.Time) (*Entry, error) {
	entries, err := s.query(`WHERE date = ? ORDER BY seq LIMIT 1`, streak.DayOf(now))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// HasSippedToday reports whether a sip exists for now's calendar date.
func (s *Store) HasSippedToday(now time.Time) (bool, error) {
	e, err := s.Today(now)
	return e != nil, err
}

// All returns every sip in insertion order.
func (s *Store) All() ([]Entry, error) {
	return s.query(`ORDER BY seq`)
}

// Recent returns up to n sips, newest first. n <= 0 returns all.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return s.query(`ORDER BY date DESC, seq DESC`)
	}
	return s.query(`ORDER BY date DESC, seq DESC LIMIT ?`, n)
}

// Delete removes the sip with the given ID. The "sip-" prefix is optional.
func (s *Store) Delete(id string) error {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, "sip-") {
		id = "sip-" + id
	}
	res, err := s.db.Exec(`DELETE FROM sips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Stats computes streak statistics over every sip as of now.
func (s *Store) Stats(now time.Time) (streak.Stats, error) {
	entries, err := s.All()
	if err != nil {
		return streak.Stats{}, err
	}
	return streak.ComputeStats(Dates(entries), now), nil
}

func (s *Store) query(tail string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT id, date, timestamp, intention, type FROM sips `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts, typ string
		if err := rows.Scan(&e.ID, &e.Date, &ts, &e.Intention, &typ); err != nil {
			return nil, err
		}
		e.Type = Type(typ)
		if parsed, err := time.Parse(timestampLayout, ts); err == nil {
			e.Timestamp = parsed.Local()
		} else if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = parsed.Local()
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
