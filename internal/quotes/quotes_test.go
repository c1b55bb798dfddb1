package quotes

import (
	"strings"
	"testing"
	"time"
)

func TestAllNonEmpty(t *testing.T) {
	all := All()
	if len(all) < 2 {
		t.Fatalf("All() returned %d quotes", len(all))
	}
	for i, q := range all {
		if strings.TrimSpace(q.Text) == "" {
			t.Errorf("quote %d is empty", i)
		}
	}
}

func TestDailyStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 6, 15, 6, 0, 0, 0, time.UTC)
	night := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	if Daily(morning) != Daily(night) {
		t.Fatal("quote changed within a day")
	}
}

func TestDailyRotates(t *testing.T) {
	d := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	if Daily(d) == Daily(d.AddDate(0, 0, 1)) {
		t.Fatal("consecutive days returned the same quote")
	}
}

func TestString(t *testing.T) {
	q := Quote{Text: "Be here.", Author: "Someone"}
	if q.String() != "Be here. — Someone" {
		t.Errorf("String() = %q", q.String())
	}
	if (Quote{Text: "Alone."}).String() != "Alone." {
		t.Error("anonymous quote should render text only")
	}
}
