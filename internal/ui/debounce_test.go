package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerOnlyLatestFires(t *testing.T) {
	d := NewDebouncer(0)

	first := d.Schedule()()
	second := d.Schedule()()

	require.IsType(t, debounceMsg{}, first)
	assert.False(t, d.Fire(first.(debounceMsg)), "superseded schedule must not fire")
	assert.True(t, d.Fire(second.(debounceMsg)))
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(0)

	msg := d.Schedule()()
	d.Cancel()

	assert.False(t, d.Fire(msg.(debounceMsg)))
}

func TestDebouncerWaits(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	start := time.Now()
	msg := d.Schedule()()

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.True(t, d.Fire(msg.(debounceMsg)))
}
