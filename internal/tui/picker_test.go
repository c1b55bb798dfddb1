package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type testItem struct {
	name string
	desc string
}

func (t testItem) FilterValue() string { return t.name }
func (t testItem) Title() string       { return t.name }
func (t testItem) Description() string { return t.desc }

func items(names ...string) []Item {
	out := make([]Item, len(names))
	for i, n := range names {
		out[i] = testItem{name: n}
	}
	return out
}

func typeText(p *Picker, s string) {
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewPicker_AllItemsVisible(t *testing.T) {
	p := NewPicker(items("a", "b", "c"), WithTitle("Pick"), WithHeight(5))
	if len(p.matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(p.matches))
	}
	if p.title != "Pick" || p.height != 5 {
		t.Fatalf("options not applied: %q %d", p.title, p.height)
	}
}

func TestPicker_TypingFilters(t *testing.T) {
	p := NewPicker(items("rainy walk", "coffee with Jo", "quiet morning"))
	typeText(p, "co")
	if len(p.matches) != 1 || p.matches[0].Title() != "coffee with Jo" {
		t.Fatalf("after 'co': %v", p.matches)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if p.query != "" || len(p.matches) != 3 {
		t.Fatalf("backspace did not restore list: %q %d", p.query, len(p.matches))
	}
}

func TestPicker_BestMatchFirst(t *testing.T) {
	p := NewPicker(items("the early arrival", "tea with mum"))
	typeText(p, "tea")
	if p.matches[0].Title() != "tea with mum" {
		t.Fatalf("best match = %q", p.matches[0].Title())
	}
}

func TestPicker_NavigateAndSelect(t *testing.T) {
	p := NewPicker(items("one", "two", "three"))
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamps at the end
	p.Update(tea.KeyMsg{Type: tea.KeyUp})

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if p.chosen == nil || p.chosen.Title() != "two" {
		t.Fatalf("chosen = %v", p.chosen)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := NewPicker(items("one"))
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !p.canceled || p.chosen != nil {
		t.Fatal("esc should cancel without a choice")
	}
}

func TestPicker_EnterWithNoMatches(t *testing.T) {
	p := NewPicker(items("one"))
	typeText(p, "zzz")
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.chosen != nil {
		t.Fatal("nothing should be chosen when the list is empty")
	}
}

func TestPicker_ScrollKeepsCursorVisible(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = strings.Repeat("x", i+1)
	}
	p := NewPicker(items(names...), WithHeight(3))
	for range 5 {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if p.cursor != 5 || p.offset != 3 {
		t.Fatalf("cursor=%d offset=%d", p.cursor, p.offset)
	}
}

func TestPicker_View(t *testing.T) {
	p := NewPicker([]Item{testItem{"rainy walk", "Mon"}}, WithTitle("Journal"))
	v := p.View()
	for _, want := range []string{"Journal", "rainy walk", "Mon", "1/1"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}

	typeText(p, "zzz")
	if !strings.Contains(p.View(), "No matches") {
		t.Error("empty filter should say No matches")
	}
}
