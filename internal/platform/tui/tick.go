// Package tui provides the Bubble Tea host for the showcase.
// It runs the frame loop, turns key presses into held input codes, and shows
// the catalog menu, save slots and game view, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one frame of simulation.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
// The next tick is requested only after the current frame has been handled.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
