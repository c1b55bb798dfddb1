package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// siptrackr's palette: roasted browns, steamed milk, a little green tea.
var (
	Espresso = lipgloss.Color("#4B2E20")
	Roast    = lipgloss.Color("#A0522D")
	Caramel  = lipgloss.Color("#D4A373")
	Crema    = lipgloss.Color("#F1D9A6")
	Matcha   = lipgloss.Color("#8DB255")
	Berry    = lipgloss.Color("#C8385A")
	Steam    = lipgloss.Color("#7FA7C9")
	Dim      = lipgloss.Color("#666666")
	Bright   = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Caramel)

	Subtitle = lipgloss.NewStyle().
			Foreground(Crema)

	Success = lipgloss.NewStyle().
		Foreground(Matcha)

	Error = lipgloss.NewStyle().
		Foreground(Berry)

	Warning = lipgloss.NewStyle().
		Foreground(Roast)

	Info = lipgloss.NewStyle().
		Foreground(Steam)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Caramel).
		Bold(true)

	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Caramel).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Roast).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Caramel).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

const (
	IconCup     = "☕"
	IconJournal = "📓"
	IconQuote   = "❝"
	IconFire    = "🔥"
	IconStar    = "⭐"
	IconBell    = "🔔"
	IconLock    = "🔑"
	IconSeed    = "🌱"
	IconWarn    = "⚠️ "
	IconError   = "✗ "
	IconOk      = "✓ "
	IconArrow   = "→"
	IconDot     = "·"
)

func init() {
	if NoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// NoColor reports whether NO_COLOR is set (https://no-color.org).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
