package core

import "slices"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // ArrowLeft - move left
	ActionRight          // ArrowRight - move right
	ActionUp             // ArrowUp
	ActionDown           // ArrowDown
	ActionJump           // Space - jump
	ActionAction         // ControlLeft, ControlRight - secondary action
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R, F5 - restart the level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionAction:
		return "Action"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the intents held during one simulation frame.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Code identifies a physical input, named after DOM key codes so hosts
// other than the terminal can feed the sampler directly.
type Code string

const (
	CodeArrowUp      Code = "ArrowUp"
	CodeArrowDown    Code = "ArrowDown"
	CodeArrowLeft    Code = "ArrowLeft"
	CodeArrowRight   Code = "ArrowRight"
	CodeSpace        Code = "Space"
	CodeControlLeft  Code = "ControlLeft"
	CodeControlRight Code = "ControlRight"
)

// intentFor maps a code to the intent it drives. Unknown codes map to ActionNone.
func intentFor(c Code) Action {
	switch c {
	case CodeArrowUp:
		return ActionUp
	case CodeArrowDown:
		return ActionDown
	case CodeArrowLeft:
		return ActionLeft
	case CodeArrowRight:
		return ActionRight
	case CodeSpace:
		return ActionJump
	case CodeControlLeft, CodeControlRight:
		return ActionAction
	default:
		return ActionNone
	}
}

// Sampler tracks the set of currently held input codes.
// It is driven by discrete press/release edges from the host and never
// polls key state. No debouncing is applied.
type Sampler struct {
	held map[Code]bool
}

// NewSampler creates a sampler with nothing held.
func NewSampler() *Sampler {
	return &Sampler{held: make(map[Code]bool)}
}

// Press records a key-down edge. Repeated presses are harmless.
func (s *Sampler) Press(c Code) {
	s.held[c] = true
}

// Release records a key-up edge.
func (s *Sampler) Release(c Code) {
	delete(s.held, c)
}

// IsHeld reports whether the code is currently held.
func (s *Sampler) IsHeld(c Code) bool {
	return s.held[c]
}

// Held returns the held codes in sorted order.
func (s *Sampler) Held() []Code {
	codes := make([]Code, 0, len(s.held))
	for c := range s.held {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Reset releases every held code.
func (s *Sampler) Reset() {
	clear(s.held)
}

// Intents translates the held codes into an input frame.
// Codes without a mapping are ignored.
func (s *Sampler) Intents() InputFrame {
	frame := NewInputFrame()
	for c := range s.held {
		if a := intentFor(c); a != ActionNone {
			frame.Set(a)
		}
	}
	return frame
}

// Captures reports whether the host should suppress its own default
// handling of the code (scrolling, focus moves) while a game is active.
func Captures(c Code) bool {
	switch c {
	case CodeArrowUp, CodeArrowDown, CodeArrowLeft, CodeArrowRight, CodeSpace:
		return true
	default:
		return false
	}
}
