package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// page_state.go provides shared state for TUI pages.
// Embed PageState in page models to get consistent status and layout handling.

// StatusKind selects the color of the status toast.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// statusDuration is how long a toast stays visible.
const statusDuration = 4 * time.Second

// PageState contains common state that all pages need.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusKind   StatusKind
	StatusExpiry time.Time
	Quitting     bool
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire.
func (p *PageState) SetStatus(msg string, kind StatusKind, duration time.Duration) {
	p.StatusMsg = msg
	p.StatusKind = kind
	if duration > 0 {
		p.StatusExpiry = time.Now().Add(duration)
	} else {
		p.StatusExpiry = time.Time{} // Zero time = no expiry
	}
}

// ClearExpiredStatus clears the status message if it has expired.
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && time.Now().After(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusExpiry = time.Time{}
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// RenderStatus renders the toast in the color of its kind.
func (p *PageState) RenderStatus(st Styles) string {
	if !p.HasStatus() {
		return ""
	}
	switch p.StatusKind {
	case StatusSuccess:
		return st.Success.Render("✓ " + p.StatusMsg)
	case StatusWarning:
		return st.Warning.Render("! " + p.StatusMsg)
	case StatusError:
		return st.Error.Render("✗ " + p.StatusMsg)
	}
	return st.Accent.Render(p.StatusMsg)
}

// UpdateLayout updates the layout and returns true if it changed.
// Use this in your WindowSizeMsg handler.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}

type statusTickMsg struct{}

// statusTick wakes the model so expired toasts disappear.
func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTickMsg{} })
}
