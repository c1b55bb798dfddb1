package sip

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/siptrackr/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.OpenPath(filepath.Join(t.TempDir(), "sips.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db.Conn()
}

func day(s string, hour int) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", s, time.Local)
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestAddAndToday(t *testing.T) {
	s := NewStore(setupTestDB(t))
	now := day("2024-03-10", 8)

	e, err := s.Add("  gratitude ", Tea, now)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !strings.HasPrefix(e.ID, "sip-") {
		t.Errorf("ID %q should start with sip-", e.ID)
	}
	if e.Intention != "gratitude" {
		t.Errorf("intention not trimmed: %q", e.Intention)
	}
	if e.Date != "2024-03-10" {
		t.Errorf("Date = %q", e.Date)
	}

	got, err := s.Today(now.Add(3 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != e.ID || got.Type != Tea {
		t.Fatalf("Today = %+v, want %+v", got, e)
	}
	if !got.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, now)
	}

	ok, err := s.HasSippedToday(now)
	if err != nil || !ok {
		t.Fatalf("HasSippedToday = %v, %v", ok, err)
	}
	ok, err = s.HasSippedToday(now.AddDate(0, 0, 1))
	if err != nil || ok {
		t.Fatalf("HasSippedToday(tomorrow) = %v, %v", ok, err)
	}
}

func TestAddRefusesSecondSipSameDay(t *testing.T) {
	s := NewStore(setupTestDB(t))
	now := day("2024-03-10", 7)

	if _, err := s.Add("calm", Coffee, now); err != nil {
		t.Fatal(err)
	}
	_, err := s.Add("again", Coffee, now.Add(5*time.Hour))
	if !errors.Is(err, ErrAlreadySipped) {
		t.Fatalf("expected ErrAlreadySipped, got %v", err)
	}
	if _, err := s.Add("next", Coffee, now.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("next day should be allowed: %v", err)
	}
}

func TestAddValidatesIntention(t *testing.T) {
	s := NewStore(setupTestDB(t))
	now := day("2024-03-10", 7)

	if _, err := s.Add("   ", Coffee, now); !errors.Is(err, ErrEmptyIntention) {
		t.Errorf("blank: got %v", err)
	}
	if _, err := s.Add(strings.Repeat("a", MaxIntentionLen+1), Coffee, now); !errors.Is(err, ErrIntentionTooLong) {
		t.Errorf("too long: got %v", err)
	}
	// Length counts characters, not bytes.
	if _, err := s.Add(strings.Repeat("é", MaxIntentionLen), Coffee, now); err != nil {
		t.Errorf("20 multibyte chars should pass: %v", err)
	}
}

func TestAddRejectsBadType(t *testing.T) {
	s := NewStore(setupTestDB(t))
	if _, err := s.Add("calm", Type("soda"), day("2024-03-10", 7)); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestAddDefaultsToCoffee(t *testing.T) {
	s := NewStore(setupTestDB(t))
	e, err := s.Add("calm", "", day("2024-03-10", 7))
	if err != nil {
		t.Fatal(err)
	}
	if e.Type != Coffee {
		t.Fatalf("type = %q, want coffee", e.Type)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"coffee", Coffee, false},
		{" TEA ", Tea, false},
		{"water", Water, false},
		{"other", Other, false},
		{"", Coffee, false},
		{"soda", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAllAndRecentOrdering(t *testing.T) {
	s := NewStore(setupTestDB(t))
	for i, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		if _, err := s.Add("day"+string(rune('a'+i)), Coffee, day(d, 8)); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Date != "2024-03-01" || all[2].Date != "2024-03-03" {
		t.Fatalf("All order wrong: %v", Dates(all))
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Date != "2024-03-03" || recent[1].Date != "2024-03-02" {
		t.Fatalf("Recent(2) = %v", Dates(recent))
	}

	everything, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(everything) != 3 {
		t.Fatalf("Recent(0) returned %d", len(everything))
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(setupTestDB(t))
	e, err := s.Add("calm", Coffee, day("2024-03-10", 7))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(strings.TrimPrefix(e.ID, "sip-")); err != nil {
		t.Fatalf("Delete without prefix: %v", err)
	}
	if err := s.Delete(e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestStats(t *testing.T) {
	s := NewStore(setupTestDB(t))
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-04", "2024-03-05", "2024-03-06"} {
		if _, err := s.Add("calm", Coffee, day(d, 8)); err != nil {
			t.Fatal(err)
		}
	}

	st, err := s.Stats(day("2024-03-06", 20))
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 5 || st.Current != 3 || st.Longest != 3 || st.LastDate != "2024-03-06" {
		t.Fatalf("Stats = %+v", st)
	}

	st, err = s.Stats(day("2024-03-08", 9))
	if err != nil {
		t.Fatal(err)
	}
	if st.Current != 0 || st.Longest != 3 {
		t.Fatalf("after gap: %+v", st)
	}
}

func TestImport(t *testing.T) {
	s := NewStore(setupTestDB(t))
	entries := []Entry{
		{ID: "sip-1", Date: "2024-02-01", Intention: "focus", Type: Coffee},
		{ID: "sip-2", Date: "2024-02-02T07:30:00.000Z", Intention: "rest", Type: Tea},
		{ID: "sip-1", Date: "2024-02-03", Intention: "dup", Type: Coffee},
		{ID: "sip-3", Date: "not a date", Intention: "bad", Type: Coffee},
		{ID: "sip-4", Date: "2024-02-04", Intention: "soda", Type: "soda"},
		{ID: "sip-5", Date: "2024-02-05", Intention: "  ", Type: Water},
		{Date: "2024-02-06", Intention: "noid"},
	}

	res, err := s.Import(entries)
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 3 || res.Duplicate != 1 || res.Invalid != 3 {
		t.Fatalf("Import = %+v", res)
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	got := Dates(all)
	want := []string{"2024-02-01", "2024-02-02", "2024-02-06"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("dates = %v, want %v", got, want)
	}
	if all[2].Type != Coffee || !strings.HasPrefix(all[2].ID, "sip-") {
		t.Errorf("defaults not applied: %+v", all[2])
	}

	again, err := s.Import(entries[:2])
	if err != nil {
		t.Fatal(err)
	}
	if again.Imported != 0 || again.Duplicate != 2 {
		t.Fatalf("re-import = %+v", again)
	}
}

func TestTypeIcon(t *testing.T) {
	for _, typ := range Types {
		if typ.Icon() == "" {
			t.Errorf("%s has no icon", typ)
		}
	}
}
