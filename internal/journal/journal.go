// Package journal stores free-form daily journal entries.
package journal

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

// DefaultPreviewLength is the preview width used by Truncate callers when
// no configured value is available.
const DefaultPreviewLength = 150

// MinPrefixLen is the shortest ID prefix Get will resolve.
const MinPrefixLen = 4

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	ErrNotFound     = errors.New("journal entry not found")
	ErrEmptyContent = errors.New("journal content cannot be empty")
	ErrAmbiguousID  = errors.New("id prefix matches more than one entry")
)

// Entry is one journal entry.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ShortID is the first eight characters of the ID, enough for Get.
func (e Entry) ShortID() string {
	if len(e.ID) <= 8 {
		return e.ID
	}
	return e.ID[:8]
}

// Heading returns the title, or "Untitled" when there isn't one.
func (e Entry) Heading() string {
	if e.Title == "" {
		return "Untitled"
	}
	return e.Title
}

// Truncate shortens content to max characters, appending "...".
// Content at or under max is returned unchanged.
func Truncate(content string, max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	r := []rune(content)
	return string(r[:max]) + "..."
}

// Store provides journal operations over a database.
type Store struct {
	db *sql.DB
}

// NewStore creates a journal store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create writes a new entry. Title is optional; content is required.
func (s *Store) Create(title, content string, at time.Time) (*Entry, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	e := &Entry{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: at,
		UpdatedAt: at,
	}
	_, err := s.db.Exec(
		`INSERT INTO journal_entries (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Content, formatTime(at), formatTime(at),
	)
	if err != nil {
		return nil, fmt.Errorf("saving journal entry: %w", err)
	}
	return e, nil
}

// Import inserts entries read from an export, keeping their IDs and
// timestamps. Entries with blank content count as invalid; entries whose
// ID already exists count as duplicates.
func (s *Store) Import(entries []Entry) (imported, duplicate, invalid int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, 0, err
	}
	defer tx.Rollback()

	for _, e := range entries {
		e.Content = strings.TrimSpace(e.Content)
		if e.Content == "" || e.CreatedAt.IsZero() {
			invalid++
			continue
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = e.CreatedAt
		}
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO journal_entries (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			strings.ToLower(e.ID), strings.TrimSpace(e.Title), e.Content, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
		)
		if err != nil {
			return imported, duplicate, invalid, fmt.Errorf("importing journal entry: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			duplicate++
			continue
		}
		imported++
	}
	return imported, duplicate, invalid, tx.Commit()
}

// Update replaces the title and content of an entry. A nil field is left
// as is. id may be a unique prefix.
func (s *Store) Update(id string, title, content *string, at time.Time) (*Entry, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		e.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		c := strings.TrimSpace(*content)
		if c == "" {
			return nil, ErrEmptyContent
		}
		e.Content = c
	}
	e.UpdatedAt = at

	_, err = s.db.Exec(
		`UPDATE journal_entries SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		e.Title, e.Content, formatTime(at), e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating journal entry: %w", err)
	}
	return e, nil
}

// Delete removes an entry. id may be a unique prefix.
func (s *Store) Delete(id string) error {
	e, err := s.Get(id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = ?`, e.ID); err != nil {
		return fmt.Errorf("deleting journal entry: %w", err)
	}
	return nil
}

// Get looks up an entry by full ID or by a unique prefix of at least
// MinPrefixLen characters.
func (s *Store) Get(id string) (*Entry, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrNotFound
	}

	entries, err := s.query(`WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 1 {
		return &entries[0], nil
	}
	if len(id) < MinPrefixLen {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	// LIKE wildcards cannot appear in a uuid; strip them from the input.
	prefix := strings.NewReplacer("%", "", "_", "").Replace(id)
	entries, err = s.query(`WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2`, prefix+"%")
	if err != nil {
		return nil, err
	}
	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &entries[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	return s.query(`ORDER BY created_at DESC`)
}

// Today returns the first entry created on now's calendar date, or nil.
func (s *Store) Today(now time.Time) (*Entry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	today := streak.DayOf(now)
	var first *Entry
	for i := range entries {
		if streak.DayOf(entries[i].CreatedAt.In(now.Location())) == today {
			first = &entries[i]
		}
	}
	return first, nil
}

func (s *Store) query(tail string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT id, title, content, created_at, updated_at FROM journal_entries `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created, updated string
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &created, &updated); err != nil {
			return nil, err
		}
		e.CreatedAt = parseTime(created)
		e.UpdatedAt = parseTime(updated)
		out = append(out, e)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
