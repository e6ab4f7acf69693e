package jill

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

// GameID is the catalog and save-slot identifier of the game.
const GameID = "jill"

// Transition is the state change a frame caused.
type Transition int

const (
	TransitionNone    Transition = iota // normal frame
	TransitionRestart                   // hazard: current level reloaded
	TransitionAdvance                   // exit: next level loaded
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionRestart:
		return "restart"
	case TransitionAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

// Frame is the result of AdvanceFrame.
type Frame struct {
	Transition Transition
	Events     []Event
}

// Controller owns the single live GameState of one play session.
// It is not safe for concurrent use; the host loop drives it from one goroutine.
type Controller struct {
	state  *GameState
	params Params
	logger *log.Logger
	cues   core.CueSink
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transitions and persistence.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCues sets the sound cue sink.
func WithCues(s core.CueSink) Option {
	return func(c *Controller) {
		if s != nil {
			c.cues = s
		}
	}
}

// WithParams overrides the physical constants.
func WithParams(p Params) Option {
	return func(c *Controller) {
		c.params = p
	}
}

// NewController creates a controller with the given level loaded.
func NewController(levelID int, opts ...Option) (*Controller, error) {
	c := &Controller{
		params: DefaultParams(),
		logger: log.New(io.Discard),
		cues:   core.NopCues{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.LoadLevel(levelID); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the live state. Callers must treat it as read-only.
func (c *Controller) State() *GameState {
	return c.state
}

// Params returns the constants used for the next level load.
func (c *Controller) Params() Params {
	return c.params
}

// SetParams changes the constants applied on the next level load.
func (c *Controller) SetParams(p Params) {
	c.params = p
}

// SetPlayerPosition overwrites the player position.
func (c *Controller) SetPlayerPosition(x, y float64) {
	c.state.Player.Position = Vec{X: x, Y: y}
}

// CollectItem marks a gem or key collected and bumps its counter once.
// An index out of range is a programming error and panics.
func (c *Controller) CollectItem(kind ItemKind, index int) {
	c.state.collect(kind, index)
}

// LoadLevel discards the current state and loads a fresh level.
// On error the current state is kept.
func (c *Controller) LoadLevel(id int) error {
	s, err := LoadLevel(id, c.params)
	if err != nil {
		return err
	}
	c.state = s
	c.logger.Debug("level loaded", "level", id, "gems", s.TotalGems, "keys", s.TotalKeys)
	return nil
}

// ResetLevel reloads the current level from its template.
func (c *Controller) ResetLevel() error {
	return c.LoadLevel(c.state.Level.ID)
}

// AdvanceFrame runs one frame of simulation with the held intents and
// applies its side effects.
func (c *Controller) AdvanceFrame(dt float64, intents core.InputFrame) Frame {
	s := c.state
	out := Step(StepInput{
		Player:        s.Player,
		Level:         s.Level,
		Gravity:       s.Gravity,
		Intents:       intents,
		Dt:            dt,
		Gems:          s.Gems,
		Keys:          s.Keys,
		Doors:         s.Doors,
		CollectedKeys: s.CollectedKeys,
	})

	frame := Frame{Events: out.Events}
	for _, ev := range out.Events {
		switch ev.Kind {
		case EventJump:
			c.cues.Play(core.CueJump)
		case EventCollect:
			s.collect(ev.Item, ev.Index)
		case EventDoorOpen:
			s.openDoor(ev.Index)
		case EventHazard:
			frame.Transition = TransitionRestart
			c.restart()
			return frame
		case EventExit:
			frame.Transition = TransitionAdvance
			c.cues.Play(core.CueSuccess)
			c.advance()
			return frame
		}
	}

	s.Player = out.Player
	return frame
}

// restart replaces the state with a fresh copy of the current level.
func (c *Controller) restart() {
	id := c.state.Level.ID
	c.logger.Debug("hazard touched, restarting level", "level", id)
	c.loadOrFirst(id)
}

// loadOrFirst loads the level, falling back to the first known level so a
// hazard or exit never leaves the player stuck.
func (c *Controller) loadOrFirst(id int) {
	err := c.LoadLevel(id)
	if err == nil {
		return
	}
	ids := LevelIDs()
	if len(ids) == 0 {
		c.logger.Error("level load failed", "level", id, "err", err)
		return
	}
	c.logger.Warn("level load failed, loading first level", "level", id, "err", err)
	if err := c.LoadLevel(ids[0]); err != nil {
		c.logger.Error("level load failed", "level", ids[0], "err", err)
	}
}

// advance loads the next level, wrapping to the first one after the last.
func (c *Controller) advance() {
	next := c.state.Level.ID + 1
	if !HasLevel(next) {
		ids := LevelIDs()
		if len(ids) == 0 {
			c.logger.Error("no levels to advance to")
			return
		}
		next = ids[0]
	}
	c.logger.Debug("level complete", "from", c.state.Level.ID, "to", next)
	c.loadOrFirst(next)
}

// SerializeSnapshot returns a versioned copy of the state for persistence.
func (c *Controller) SerializeSnapshot() ([]byte, error) {
	return EncodeSnapshot(c.state)
}

// RestoreSnapshot replaces the state with a decoded snapshot.
// An invalid snapshot leaves the current state untouched.
func (c *Controller) RestoreSnapshot(data []byte) error {
	s, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// Save writes the current state into a named slot.
func (c *Controller) Save(store core.SlotStore, slot string) error {
	data, err := c.SerializeSnapshot()
	if err != nil {
		return err
	}
	if err := store.SaveSlot(GameID, slot, SnapshotVersion, data); err != nil {
		return fmt.Errorf("jill: save slot %q: %w", slot, err)
	}
	c.logger.Debug("game saved", "slot", slot, "bytes", len(data))
	return nil
}

// Load restores the state from a named slot.
// It returns false with a nil error when the slot is empty.
func (c *Controller) Load(store core.SlotStore, slot string) (bool, error) {
	data, found, err := store.LoadSlot(GameID, slot)
	if err != nil {
		return false, fmt.Errorf("jill: load slot %q: %w", slot, err)
	}
	if !found {
		return false, nil
	}
	if err := c.RestoreSnapshot(data); err != nil {
		return false, err
	}
	c.logger.Debug("game loaded", "slot", slot)
	return true, nil
}
