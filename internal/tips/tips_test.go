package tips

import (
	"strings"
	"testing"
	"time"
)

func TestAll_NoEmptyStrings(t *testing.T) {
	if len(All()) == 0 {
		t.Fatal("All() returned empty slice")
	}
	for i, tip := range All() {
		if tip == "" {
			t.Errorf("All()[%d] is empty string", i)
		}
	}
}

func TestAll_MentionCommands(t *testing.T) {
	for _, tip := range All() {
		if !strings.Contains(tip, "`siptrackr") {
			t.Errorf("tip does not reference a command: %q", tip)
		}
	}
}

func TestDaily_Deterministic(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	if Daily(day) != Daily(later) {
		t.Error("Daily returned different tips for the same day")
	}
	if Daily(day) == Daily(day.AddDate(0, 0, 1)) {
		t.Error("Daily returned the same tip on consecutive days")
	}
}
