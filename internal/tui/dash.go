package tui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/quotes"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/streak"
	"github.com/rnwolfe/siptrackr/internal/ui"
)

// DashAction indicates what the user asked for when leaving the dashboard.
type DashAction int

const (
	DashActionQuit DashAction = iota
	// DashActionSip asks the caller to prompt for today's intention.
	DashActionSip
	// DashActionJournal asks the caller to prompt for a journal entry.
	DashActionJournal
)

// weekDays is the width of the recent-days strip.
const weekDays = 7

// DashData holds everything the dashboard renders.
type DashData struct {
	Now          time.Time
	TodaySip     *sip.Entry
	Stats        streak.Stats
	Week         [weekDays]bool // oldest first, last element is today
	TodayJournal *journal.Entry
	JournalCount int
	Quote        quotes.Quote
}

type dashDataMsg DashData
type dashErrMsg struct{ err error }

// DashModel is the Bubbletea model for the siptrackr dashboard.
type DashModel struct {
	data    DashData
	db      *sql.DB
	now     func() time.Time
	width   int
	height  int
	loading bool
	err     error
	action  DashAction
}

// NewDashModel creates a DashModel reading from db.
func NewDashModel(db *sql.DB, now func() time.Time) *DashModel {
	return &DashModel{
		db:      db,
		now:     now,
		width:   80,
		height:  24,
		loading: true,
	}
}

// RunDash runs the dashboard once and returns the exit action. The caller
// handles the action and relaunches if it wants to.
func RunDash(db *sql.DB, now func() time.Time) (DashAction, error) {
	result, err := tea.NewProgram(NewDashModel(db, now), tea.WithAltScreen()).Run()
	if err != nil {
		return DashActionQuit, fmt.Errorf("dashboard: %w", err)
	}
	return result.(*DashModel).action, nil
}

func (m *DashModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashDataMsg:
		m.data = DashData(msg)
		m.loading = false
		m.err = nil
	case dashErrMsg:
		m.err = msg.err
		m.loading = false
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.action = DashActionQuit
		return m, tea.Quit
	case "s":
		if !m.loading && m.data.TodaySip == nil {
			m.action = DashActionSip
			return m, tea.Quit
		}
	case "j":
		if !m.loading {
			m.action = DashActionJournal
			return m, tea.Quit
		}
	case "r":
		m.loading = true
		return m, m.loadData()
	}
	return m, nil
}

func (m *DashModel) View() string {
	if m.loading {
		return "\n  " + ui.Muted.Render("Brewing…") + "\n"
	}
	if m.err != nil {
		return "\n  " + ui.Error.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.width < 60 {
		return m.renderMinimal()
	}
	if m.width >= 110 {
		return m.renderTwoColumn()
	}
	return m.renderStacked()
}

func (m *DashModel) renderTwoColumn() string {
	leftW := m.width/2 - 2
	rightW := m.width - leftW - 4

	left := lipgloss.NewStyle().Width(leftW).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderSipPanel(m.data),
			"",
			renderStreakPanel(m.data),
		),
	)
	right := lipgloss.NewStyle().Width(rightW).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderJournalPanel(m.data.TodayJournal, m.data.JournalCount, rightW),
			"",
			renderQuotePanel(m.data.Quote, rightW),
		),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n\n" + renderHelpBar(m.data) + "\n"
}

func (m *DashModel) renderStacked() string {
	w := m.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		renderSipPanel(m.data),
		"",
		renderStreakPanel(m.data),
		"",
		renderJournalPanel(m.data.TodayJournal, m.data.JournalCount, w),
		"",
		renderQuotePanel(m.data.Quote, w),
	) + "\n\n" + renderHelpBar(m.data) + "\n"
}

func (m *DashModel) renderMinimal() string {
	var b strings.Builder
	b.WriteString("\n  " + ui.Title.Render(ui.IconCup+" siptrackr") + "\n\n")
	if s := m.data.TodaySip; s != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n", s.Type.Icon(), s.Intention))
	} else {
		b.WriteString("  " + ui.Muted.Render("no sip yet") + "\n")
	}
	if m.data.Stats.Current > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n", ui.IconFire, ui.Plural(m.data.Stats.Current, "day")))
	}
	b.WriteString("\n  " + ui.Muted.Render("q quit · s sip · j journal · r refresh") + "\n")
	return b.String()
}

func renderSipPanel(d DashData) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconCup+" First sip") + "\n\n")
	if s := d.TodaySip; s != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n", s.Type.Icon(), ui.Accent.Render(s.Intention)))
		b.WriteString("  " + ui.Muted.Render(fmt.Sprintf("%s at %s", s.Type, s.Timestamp.Format("15:04"))) + "\n")
	} else {
		b.WriteString("  " + ui.Muted.Render("Not yet today. Press 's' to set an intention.") + "\n")
	}
	return b.String()
}

func renderStreakPanel(d DashData) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconFire+" Streak") + "\n\n")
	if d.Stats.Current > 0 {
		b.WriteString(fmt.Sprintf("  %s current\n", ui.Accent.Render(ui.Plural(d.Stats.Current, "day"))))
	} else {
		b.WriteString("  " + ui.Muted.Render("No current streak. Today is a fine day to start.") + "\n")
	}
	b.WriteString(fmt.Sprintf("  %s longest · %d total\n", ui.Plural(d.Stats.Longest, "day"), d.Stats.Total))
	b.WriteString("  " + renderWeek(d.Week, d.Now) + "\n")
	return b.String()
}

// renderWeek draws one cell per day, oldest first, with weekday initials.
func renderWeek(week [weekDays]bool, now time.Time) string {
	cells := make([]string, weekDays)
	for i, hit := range week {
		label := now.AddDate(0, 0, i-(weekDays-1)).Weekday().String()[:1]
		if hit {
			cells[i] = ui.Success.Render("●" + label)
		} else {
			cells[i] = ui.Muted.Render("○" + label)
		}
	}
	return strings.Join(cells, " ")
}

func renderJournalPanel(e *journal.Entry, count, width int) string {
	var b strings.Builder
	b.WriteString("  " + ui.Title.Render(ui.IconJournal+" Journal") + ui.Muted.Render(fmt.Sprintf(" %d entries", count)) + "\n\n")
	if e == nil {
		b.WriteString("  " + ui.Muted.Render("Nothing written today. Press 'j' to write.") + "\n")
		return b.String()
	}
	b.WriteString("  " + ui.Accent.Render(e.Heading()) + "\n")
	preview := strings.Join(strings.Fields(e.Content), " ")
	b.WriteString("  " + journal.Truncate(preview, max(width-8, 20)) + "\n")
	return b.String()
}

func renderQuotePanel(q quotes.Quote, width int) string {
	if q.Text == "" {
		return ""
	}
	body := lipgloss.NewStyle().Width(max(width-4, 20)).Italic(true).Render(q.Text)
	var b strings.Builder
	b.WriteString("  " + ui.Muted.Render(ui.IconQuote) + "\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if q.Author != "" {
		b.WriteString("  " + ui.Muted.Render("— "+q.Author) + "\n")
	}
	return b.String()
}

func renderHelpBar(d DashData) string {
	keys := []string{"q quit"}
	if d.TodaySip == nil {
		keys = append(keys, "s sip")
	}
	keys = append(keys, "j journal", "r refresh")
	return ui.Muted.Render("  " + strings.Join(keys, " · "))
}

// LoadDashData gathers everything the dashboard shows as of now.
func LoadDashData(db *sql.DB, now time.Time) (DashData, error) {
	d := DashData{Now: now, Quote: quotes.Daily(now)}

	sips := sip.NewStore(db)
	entries, err := sips.All()
	if err != nil {
		return d, err
	}
	d.Stats = streak.ComputeStats(sip.Dates(entries), now)
	if d.TodaySip, err = sips.Today(now); err != nil {
		return d, err
	}
	d.Week = weekStrip(sip.Dates(entries), now)

	js := journal.NewStore(db)
	list, err := js.List()
	if err != nil {
		return d, err
	}
	d.JournalCount = len(list)
	if d.TodayJournal, err = js.Today(now); err != nil {
		return d, err
	}
	return d, nil
}

func weekStrip(dates []string, now time.Time) [weekDays]bool {
	var week [weekDays]bool
	present := make(map[string]bool, len(dates))
	for _, d := range dates {
		present[d] = true
	}
	for i := range week {
		week[i] = present[streak.DayOf(now.AddDate(0, 0, i-(weekDays-1)))]
	}
	return week
}

func (m *DashModel) loadData() tea.Cmd {
	return func() tea.Msg {
		d, err := LoadDashData(m.db, m.now())
		if err != nil {
			return dashErrMsg{err}
		}
		return dashDataMsg(d)
	}
}
