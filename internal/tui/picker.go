package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/siptrackr/internal/ui"
)

// Item is a row in the picker.
type Item interface {
	FilterValue() string
	Title() string
	Description() string
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithTitle sets the heading displayed above the list.
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// WithHeight caps the number of visible rows.
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// Picker is a fuzzy-filtered list selector.
type Picker struct {
	title  string
	height int

	items    []Item
	matches  []Item
	query    string
	cursor   int
	offset   int
	chosen   Item
	canceled bool

	termHeight int
}

// NewPicker creates a Picker over items.
func NewPicker(items []Item, opts ...PickerOption) *Picker {
	p := &Picker{
		height:     10,
		items:      items,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.filter()
	return p
}

// Pick shows a picker and returns the chosen item, or nil if canceled.
func Pick(items []Item, opts ...PickerOption) (Item, error) {
	m, err := tea.NewProgram(NewPicker(items, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	p := m.(*Picker)
	if p.canceled {
		return nil, nil
	}
	return p.chosen, nil
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termHeight = msg.Height
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		p.canceled = true
		return p, tea.Quit
	case tea.KeyEnter:
		if len(p.matches) > 0 {
			p.chosen = p.matches[p.cursor]
		}
		return p, tea.Quit
	case tea.KeyUp, tea.KeyCtrlP:
		p.move(-1)
	case tea.KeyDown, tea.KeyCtrlN:
		p.move(1)
	case tea.KeyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
			p.filter()
		}
	case tea.KeyRunes, tea.KeySpace:
		p.query += string(msg.Runes)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			p.query += " "
		}
		p.filter()
	}
	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.matches) {
		return
	}
	p.cursor = next
	vis := p.visible()
	switch {
	case p.cursor < p.offset:
		p.offset = p.cursor
	case p.cursor >= p.offset+vis:
		p.offset = p.cursor - vis + 1
	}
}

func (p *Picker) View() string {
	var b strings.Builder
	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}
	prompt := lipgloss.NewStyle().Foreground(ui.Caramel).Bold(true).Render("> ")
	b.WriteString("  " + prompt + p.query + ui.Muted.Render("▎") + "\n\n")

	if len(p.matches) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	}
	end := min(p.offset+p.visible(), len(p.matches))
	for i := p.offset; i < end; i++ {
		b.WriteString(renderPickerRow(p.matches[i], i == p.cursor) + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ move · enter select · esc cancel", len(p.matches), len(p.items))) + "\n")
	return b.String()
}

func (p *Picker) visible() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	return max(h, 3)
}

func (p *Picker) filter() {
	type hit struct {
		item  Item
		score int
	}
	var hits []hit
	for _, it := range p.items {
		if ok, sc := FuzzyMatch(p.query, it.FilterValue()); ok {
			hits = append(hits, hit{it, sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	p.matches = p.matches[:0]
	for _, h := range hits {
		p.matches = append(p.matches, h.item)
	}
	p.cursor, p.offset = 0, 0
}

func renderPickerRow(it Item, selected bool) string {
	pointer, title := "  ", it.Title()
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		title = ui.Accent.Render(title)
	}
	if d := it.Description(); d != "" {
		title += "  " + ui.Muted.Render(d)
	}
	return "  " + pointer + title
}
