package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/quotes"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/store"
	"github.com/rnwolfe/siptrackr/internal/streak"
)

var dashNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local)

// makeDashData creates a populated DashData for testing.
func makeDashData() DashData {
	return DashData{
		Now: dashNow,
		TodaySip: &sip.Entry{
			ID: "sip-1", Date: "2024-03-10", Timestamp: dashNow.Add(-time.Hour),
			Intention: "patience", Type: sip.Tea,
		},
		Stats: streak.Stats{Total: 12, Current: 5, Longest: 9, LastDate: "2024-03-10"},
		Week:  [weekDays]bool{false, false, true, true, true, true, true},
		TodayJournal: &journal.Entry{
			ID: "abcd1234", Title: "Rain", Content: "Heard the rain before the alarm.",
			CreatedAt: dashNow, UpdatedAt: dashNow,
		},
		JournalCount: 4,
		Quote:        quotes.Quote{Text: "Wherever you are, be all there.", Author: "Jim Elliot"},
	}
}

// newLoadedModel creates a DashModel with pre-loaded data (no DB needed).
func newLoadedModel(data DashData, width, height int) *DashModel {
	return &DashModel{data: data, width: width, height: height}
}

func TestRenderSipPanel(t *testing.T) {
	out := renderSipPanel(makeDashData())
	if !strings.Contains(out, "patience") || !strings.Contains(out, "08:30") {
		t.Errorf("sip panel missing intention or time:\n%s", out)
	}

	d := makeDashData()
	d.TodaySip = nil
	if out := renderSipPanel(d); !strings.Contains(out, "Not yet today") {
		t.Errorf("empty sip panel:\n%s", out)
	}
}

func TestRenderStreakPanel(t *testing.T) {
	out := renderStreakPanel(makeDashData())
	for _, want := range []string{"5 days", "9 days longest", "12 total"} {
		if !strings.Contains(out, want) {
			t.Errorf("streak panel missing %q:\n%s", want, out)
		}
	}

	d := makeDashData()
	d.Stats.Current = 0
	if out := renderStreakPanel(d); !strings.Contains(out, "No current streak") {
		t.Errorf("no-streak message missing:\n%s", out)
	}
}

func TestRenderWeek_EndsWithToday(t *testing.T) {
	// 2024-03-10 is a Sunday.
	out := renderWeek([weekDays]bool{true, false, false, false, false, false, true}, dashNow)
	cells := strings.Fields(out)
	if len(cells) != weekDays {
		t.Fatalf("got %d cells: %q", len(cells), out)
	}
	if !strings.HasSuffix(cells[6], "S") || !strings.HasSuffix(cells[0], "M") {
		t.Errorf("weekday labels wrong: %q", out)
	}
	if !strings.Contains(cells[6], "●") || !strings.Contains(cells[1], "○") {
		t.Errorf("hit markers wrong: %q", out)
	}
}

func TestRenderJournalPanel(t *testing.T) {
	d := makeDashData()
	out := renderJournalPanel(d.TodayJournal, d.JournalCount, 80)
	if !strings.Contains(out, "Rain") || !strings.Contains(out, "4 entries") {
		t.Errorf("journal panel:\n%s", out)
	}
	if out := renderJournalPanel(nil, 0, 80); !strings.Contains(out, "Nothing written today") {
		t.Errorf("empty journal panel:\n%s", out)
	}
}

func TestRenderQuotePanel(t *testing.T) {
	out := renderQuotePanel(makeDashData().Quote, 80)
	if !strings.Contains(out, "be all there") || !strings.Contains(out, "Jim Elliot") {
		t.Errorf("quote panel:\n%s", out)
	}
	if renderQuotePanel(quotes.Quote{}, 80) != "" {
		t.Error("empty quote should render nothing")
	}
}

func TestDashModel_WindowSizeMsg(t *testing.T) {
	m := newLoadedModel(makeDashData(), 80, 24)
	result, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = result.(*DashModel)
	if m.width != 160 || m.height != 50 {
		t.Fatalf("size = %dx%d", m.width, m.height)
	}
}

func TestDashModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		m := newLoadedModel(makeDashData(), 80, 24)
		result, cmd := m.Update(key)
		if result.(*DashModel).action != DashActionQuit || cmd == nil {
			t.Errorf("%s should quit", key.String())
		}
	}
}

func TestDashModel_SipKey(t *testing.T) {
	d := makeDashData()
	d.TodaySip = nil
	m := newLoadedModel(d, 80, 24)
	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if result.(*DashModel).action != DashActionSip || cmd == nil {
		t.Fatal("s should exit with DashActionSip")
	}
}

func TestDashModel_SipKeyIgnoredAfterSipping(t *testing.T) {
	m := newLoadedModel(makeDashData(), 80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd != nil || m.action != DashActionQuit {
		t.Fatal("s should do nothing once today's sip is logged")
	}
}

func TestDashModel_JournalKey(t *testing.T) {
	m := newLoadedModel(makeDashData(), 80, 24)
	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if result.(*DashModel).action != DashActionJournal || cmd == nil {
		t.Fatal("j should exit with DashActionJournal")
	}
}

func TestDashModel_KeysIgnoredWhileLoading(t *testing.T) {
	m := &DashModel{width: 80, height: 24, loading: true}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if cmd != nil || m.action != DashActionQuit {
		t.Fatal("j while loading should be ignored")
	}
}

func TestDashModel_RKeyRefreshes(t *testing.T) {
	m := newLoadedModel(makeDashData(), 80, 24)
	m.now = func() time.Time { return dashNow }
	result, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !result.(*DashModel).loading || cmd == nil {
		t.Fatal("r should start a reload")
	}
}

func TestDashModel_Views(t *testing.T) {
	for _, width := range []int{40, 80, 120, 200} {
		view := newLoadedModel(makeDashData(), width, 40).View()
		if !strings.Contains(view, "q quit") {
			t.Errorf("width %d: missing help bar:\n%s", width, view)
		}
		if !strings.Contains(view, "patience") {
			t.Errorf("width %d: missing intention", width)
		}
	}

	wide := newLoadedModel(makeDashData(), 120, 40).View()
	for _, want := range []string{"First sip", "Streak", "Journal"} {
		if !strings.Contains(wide, want) {
			t.Errorf("two-column view missing %q", want)
		}
	}
}

func TestDashModel_ViewLoadingAndError(t *testing.T) {
	m := &DashModel{width: 80, height: 24, loading: true}
	if !strings.Contains(m.View(), "Brewing") {
		t.Fatal("loading view")
	}
	m.Update(dashErrMsg{err: errTest("disk on fire")})
	if !strings.Contains(m.View(), "disk on fire") {
		t.Fatal("error view")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestLoadDashData(t *testing.T) {
	db, err := store.OpenPath(filepath.Join(t.TempDir(), "dash.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	sips := sip.NewStore(db.Conn())
	for _, offset := range []int{-3, -1, 0} {
		if _, err := sips.Add("calm", sip.Coffee, dashNow.AddDate(0, 0, offset)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := journal.NewStore(db.Conn()).Create("", "today's note", dashNow); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDashData(db.Conn(), dashNow)
	if err != nil {
		t.Fatal(err)
	}
	if d.TodaySip == nil || d.Stats.Current != 2 || d.Stats.Total != 3 {
		t.Fatalf("sip data = %+v / %+v", d.TodaySip, d.Stats)
	}
	want := [weekDays]bool{false, false, false, true, false, true, true}
	if d.Week != want {
		t.Fatalf("week = %v, want %v", d.Week, want)
	}
	if d.TodayJournal == nil || d.JournalCount != 1 {
		t.Fatalf("journal data = %+v, %d", d.TodayJournal, d.JournalCount)
	}
	if d.Quote.Text == "" {
		t.Fatal("quote missing")
	}

	msg := (&DashModel{db: db.Conn(), now: func() time.Time { return dashNow }}).loadData()()
	if _, ok := msg.(dashDataMsg); !ok {
		t.Fatalf("loadData returned %T", msg)
	}
}
