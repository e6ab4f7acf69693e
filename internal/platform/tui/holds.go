package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

// Hold windows for terminals, which report presses and auto-repeats but
// never releases. Most terminals wait 250-500ms before the first repeat and
// then repeat every 30-50ms.
const (
	DefaultInitialHold = 550 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

type hold struct {
	last      time.Time
	repeating bool
}

// HoldTracker turns key presses into press and release edges.
// A code stays held while presses keep arriving within the hold window.
// The window is longer until the first auto-repeat is seen.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	held    map[core.Code]hold
}

// NewHoldTracker creates a tracker with the given windows.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		held:    make(map[core.Code]hold),
	}
}

// Press records a press of c at now.
// It reports true when c was not already held.
func (h *HoldTracker) Press(c core.Code, now time.Time) bool {
	_, ok := h.held[c]
	h.held[c] = hold{last: now, repeating: ok}
	return !ok
}

// Expire forgets the codes whose hold window has passed at now and returns
// them sorted.
func (h *HoldTracker) Expire(now time.Time) []core.Code {
	var released []core.Code
	for c, st := range h.held {
		window := h.initial
		if st.repeating {
			window = h.repeat
		}
		if now.Sub(st.last) > window {
			released = append(released, c)
		}
	}
	for _, c := range released {
		delete(h.held, c)
	}
	slices.Sort(released)
	return released
}

// Held reports whether c is currently held.
func (h *HoldTracker) Held(c core.Code) bool {
	_, ok := h.held[c]
	return ok
}

// Reset forgets every held code.
func (h *HoldTracker) Reset() {
	clear(h.held)
}
