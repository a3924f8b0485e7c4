package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thesavant42/gitfolio/internal/models"
)

const splashDuration = 2 * time.Second

const splashLogo = `        _ _    __       _ _
   __ _(_) |_ / _| ___ | (_) ___
  / _` + "`" + ` | | __| |_ / _ \| | |/ _ \
 | (_| | | |_|  _| (_) | | | (_) |
  \__, |_|\__|_|  \___/|_|_|\___/
  |___/`

// SplashModel is the TUI model for the splash screen
type SplashModel struct {
	layout Layout
	styles Styles
	done   bool
}

type splashTimeoutMsg struct{}

func waitForTimeout() tea.Cmd {
	return tea.Tick(splashDuration, func(time.Time) tea.Msg {
		return splashTimeoutMsg{}
	})
}

func (m SplashModel) Init() tea.Cmd {
	return waitForTimeout()
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg, splashTimeoutMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SplashModel) View() string {
	if m.done {
		return ""
	}
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Accent.Render(splashLogo))
	b.WriteString("\n\n")
	b.WriteString(st.Normal.Render("GitHub portfolios in your terminal"))
	b.WriteString("\n")
	b.WriteString(st.Hint.Render("press any key"))

	content := lipgloss.Place(m.layout.InnerWidth, m.layout.ViewportHeight-4,
		lipgloss.Center, lipgloss.Center, b.String())
	return st.Border.Width(m.layout.InnerWidth).Render(content)
}

// ShowSplash displays the splash screen briefly
func ShowSplash(theme models.Theme) error {
	model := SplashModel{
		layout: DefaultLayout(),
		styles: NewStyles(theme),
	}
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
