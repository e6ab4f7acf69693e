package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Host frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Status is the externally visible state of a running game.
// Returned by Game.Status() to communicate with the platform.
type Status struct {
	Level int      // Current level id
	Event string   // Last notable transition ("restart", "advance"), empty otherwise
	Info  []string // Short status lines for the host's status bar
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	Status Status
}

// Cue names a discrete sound event emitted by a game.
type Cue string

const (
	CueJump    Cue = "jump"
	CueSuccess Cue = "success"
)

// CueSink plays sound cues. Implementations must not block the frame.
type CueSink interface {
	Play(cue Cue)
}

// NopCues is a CueSink that discards every cue.
type NopCues struct{}

// Play implements CueSink.
func (NopCues) Play(Cue) {}

// SlotStore is durable storage for named save slots.
// LoadSlot reports absence with found == false and a nil error.
type SlotStore interface {
	SaveSlot(gameID, slot string, version int, data []byte) error
	LoadSlot(gameID, slot string) (data []byte, found bool, err error)
}
