package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceMsg is delivered when a scheduled debounce expires.
type debounceMsg struct {
	seq uint64
}

// Debouncer delays an action until input has been quiet for a while.
// Schedule returns a timer command; only the most recent schedule fires.
// Not safe for concurrent use; it lives inside a model's Update loop.
type Debouncer struct {
	delay time.Duration
	seq   uint64
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule cancels any pending run and starts a new timer.
func (d *Debouncer) Schedule() tea.Cmd {
	d.seq++
	seq := d.seq
	if d.delay <= 0 {
		return func() tea.Msg { return debounceMsg{seq: seq} }
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// Cancel drops the pending run, if any.
func (d *Debouncer) Cancel() {
	d.seq++
}

// Fire reports whether msg belongs to the latest schedule.
func (d *Debouncer) Fire(msg debounceMsg) bool {
	return msg.seq == d.seq
}
