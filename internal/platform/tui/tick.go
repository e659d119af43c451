// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick of the loop with the given ID.
// A session can outlive several loops (one per game or playback); stale
// ticks from a finished loop must not drive the next one.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var tickLoops atomic.Int64

// nextTickID returns an ID for a new tick loop.
func nextTickID() int64 {
	return tickLoops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
