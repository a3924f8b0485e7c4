package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/gitfolio/internal/models"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 72
	MaxViewportWidth  = 160
	DefaultWidth      = 100 // Used when terminal size is unknown
	DefaultHeight     = 32
	MinViewportHeight = 20
	CardWidth         = 36 // outer width of a grid card, border included
	CardHeight        = 9  // outer height of a grid card, border included
	chromeHeight      = 14 // header, profile, controls, pills, status and help box
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height
	InnerWidth     int // ViewportWidth - 2 (EXACT width for content inside borders)
	TableWidth     int // InnerWidth - column separators
	BodyHeight     int // rows left for cards, table or README
	TableHeight    int // visible table rows
}

// NewLayout creates a Layout from the terminal size, clamping the width to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	height := terminalHeight
	if height < MinViewportHeight {
		height = MinViewportHeight
	}
	body := height - chromeHeight
	if body < CardHeight {
		body = CardHeight
	}
	return Layout{
		ViewportWidth:  width,
		ViewportHeight: height,
		InnerWidth:     width - 2,
		TableWidth:     width - 2 - 12,
		BodyHeight:     body,
		TableHeight:    body - 2,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// CardsPerRow is how many grid cards fit side by side
func (l Layout) CardsPerRow() int {
	n := l.InnerWidth / (CardWidth + 1)
	if n < 1 {
		return 1
	}
	return n
}

// CardRows is how many rows of cards fit in the body
func (l Layout) CardRows() int {
	n := l.BodyHeight / CardHeight
	if n < 1 {
		return 1
	}
	return n
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Palette is the set of colors for one theme
type Palette struct {
	Border    lipgloss.Color
	Highlight lipgloss.Color // selection background
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Badge     lipgloss.Color
	BadgeText lipgloss.Color
}

// Palettes for the two themes. Dark keeps the red/yellow look; light swaps to
// blue borders and dark text.
var (
	DarkPalette = Palette{
		Border:    lipgloss.Color("196"), // red
		Highlight: lipgloss.Color("88"),  // dark red background
		Text:      lipgloss.Color("15"),  // bright white
		TextDim:   lipgloss.Color("241"), // gray
		Accent:    lipgloss.Color("226"), // bright yellow
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("214"),
		Error:     lipgloss.Color("196"),
		Badge:     lipgloss.Color("99"),
		BadgeText: lipgloss.Color("15"),
	}
	LightPalette = Palette{
		Border:    lipgloss.Color("25"),  // blue
		Highlight: lipgloss.Color("153"), // pale blue background
		Text:      lipgloss.Color("235"), // near black
		TextDim:   lipgloss.Color("244"),
		Accent:    lipgloss.Color("130"), // brown/orange
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("166"),
		Error:     lipgloss.Color("160"),
		Badge:     lipgloss.Color("62"),
		BadgeText: lipgloss.Color("231"),
	}
)

// PaletteFor returns the palette of a theme
func PaletteFor(theme models.Theme) Palette {
	if theme == models.ThemeLight {
		return LightPalette
	}
	return DarkPalette
}

// Styles are the reusable style definitions for one theme
type Styles struct {
	Palette Palette

	// STYLE GUIDE: boxes use .Width(InnerWidth) with NO horizontal padding,
	// so the border adds exactly 2 columns.
	Border    lipgloss.Style
	HelpBox   lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Dim       lipgloss.Style
	Hint      lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Badge     lipgloss.Style
	PillOn    lipgloss.Style
	PillOff   lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	Modal     lipgloss.Style
}

// NewStyles builds the style set for a theme
func NewStyles(theme models.Theme) Styles {
	p := PaletteFor(theme)
	return Styles{
		Palette: p,
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Text).
			Foreground(p.Text),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Selected: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Highlight).
			Bold(true),
		Normal: lipgloss.NewStyle().Foreground(p.Text),
		Dim:    lipgloss.NewStyle().Foreground(p.TextDim),
		Hint: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Italic(true),
		Accent: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Success: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(p.BadgeText).
			Background(p.Badge).
			Padding(0, 1),
		PillOn: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Highlight).
			Bold(true).
			Padding(0, 1),
		PillOff: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.TextDim).
			Width(CardWidth-2).
			Height(CardHeight-2).
			Padding(0, 1),
		CardFocus: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Width(CardWidth-2).
			Height(CardHeight-2).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
	}
}

// StringWidth is the printable width of s, ignoring ANSI sequences
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

// truncateToWidth cuts s to width cells
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// ellipsize cuts s to width cells, marking the cut with "…"
func ellipsize(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return truncateToWidth(s, width)
	}
	return truncateToWidth(s, width-1) + "…"
}

// ApplyTableStyles styles a bubbles table. The Selected style is neutral;
// RenderTableWithSelection paints the visible selection.
func ApplyTableStyles(t *table.Model, st Styles) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(st.Palette.Border).
		BorderBottom(false).
		Foreground(st.Palette.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(st.Palette.Text)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
}

// NewAppSpinner returns the spinner shown while a portfolio loads
func NewAppSpinner(st Styles) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(st.Palette.Accent)
	return s
}

// NewAppTheme creates a huh theme matching the app's palette
func NewAppTheme(p Palette) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(p.TextDim)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(p.Text)
	t.Blurred.Base = t.Focused.Base

	// Selected option - highlight background
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Highlight).
		Bold(true).
		Padding(0, 1)

	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Border).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(p.Border)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(p.TextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(p.Border)

	return t
}
