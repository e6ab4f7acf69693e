package jill

import (
	"math"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

// EventKind classifies what happened during a physics step.
type EventKind int

const (
	EventJump     EventKind = iota // jump impulse applied
	EventHazard                    // landed on a spike; rest of the frame skipped
	EventCollect                   // touched an uncollected gem or key
	EventDoorOpen                  // touched a closed door while holding a key
	EventExit                      // touched an exit tile; rest of the frame skipped
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventHazard:
		return "hazard"
	case EventCollect:
		return "collect"
	case EventDoorOpen:
		return "door-open"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is one outcome of a physics step, in the order it was detected.
type Event struct {
	Kind  EventKind
	Item  ItemKind // EventCollect only
	Index int      // EventCollect and EventDoorOpen
}

// StepInput is everything the engine reads for one frame.
// None of the referenced state is modified.
type StepInput struct {
	Player        Player
	Level         *Level
	Gravity       float64
	Intents       core.InputFrame
	Dt            float64
	Gems          []Collectable
	Keys          []Collectable
	Doors         []Door
	CollectedKeys int
}

// StepOutput is the resolved player and the events of the frame.
// When the last event is EventHazard or EventExit the player is left as it
// was after the intent phase, since the caller replaces the whole state.
type StepOutput struct {
	Player Player
	Events []Event
}

// Terminal reports whether the step ended in a hazard or exit.
func (o StepOutput) Terminal() bool {
	if len(o.Events) == 0 {
		return false
	}
	k := o.Events[len(o.Events)-1].Kind
	return k == EventHazard || k == EventExit
}

// ApplyIntents moves the player horizontally and starts a jump.
// Right is evaluated after left and from the same starting x, so it wins
// when both are held.
func ApplyIntents(p Player, levelWidth float64, in core.InputFrame, dt float64) (Player, bool) {
	x := p.Position.X
	step := p.Speed * dt

	newX := x
	if in.Has(core.ActionLeft) {
		newX = math.Max(0, x-step)
		p.FacingRight = false
	}
	if in.Has(core.ActionRight) {
		newX = core.ClampF(x+step, 0, levelWidth-p.Width)
		p.FacingRight = true
	}
	p.Position.X = newX

	jumped := false
	if in.Has(core.ActionJump) && p.OnGround {
		p.VelocityY = -p.JumpPower
		p.OnGround = false
		jumped = true
	}
	return p, jumped
}

// Step runs the full per-frame pipeline: intents, gravity, landing scan,
// then collectable, door and exit overlaps.
func Step(in StepInput) StepOutput {
	var out StepOutput

	p, jumped := ApplyIntents(in.Player, in.Level.PixelWidth(), in.Intents, in.Dt)
	if jumped {
		out.Events = append(out.Events, Event{Kind: EventJump})
	}

	ts := in.Level.TileSize
	velocityY := p.VelocityY + in.Gravity*in.Dt
	newY := p.Position.Y + velocityY*in.Dt
	onGround := false

	// Landing scan: one row under the bottom edge, columns left to right.
	row := int(math.Floor((newY + p.Height) / ts))
	first := int(math.Floor(p.Position.X / ts))
	last := int(math.Floor((p.Position.X + p.Width) / ts))
	for col := first; col <= last; col++ {
		if !in.Level.InBounds(col, row) {
			continue
		}
		tile := in.Level.Tiles[row][col]
		if tile.Solid() {
			newY = float64(row)*ts - p.Height
			velocityY = 0
			onGround = true
			break
		}
		if tile.Hazard() {
			out.Player = p
			out.Events = append(out.Events, Event{Kind: EventHazard})
			return out
		}
	}

	// Overlap checks use the position before this frame's fall is applied.
	box := p.Box()

	for i, g := range in.Gems {
		if !g.Collected && box.Overlaps(tileBox(g.X, g.Y, ts)) {
			out.Events = append(out.Events, Event{Kind: EventCollect, Item: ItemGem, Index: i})
		}
	}
	keys := in.CollectedKeys
	for i, k := range in.Keys {
		if !k.Collected && box.Overlaps(tileBox(k.X, k.Y, ts)) {
			out.Events = append(out.Events, Event{Kind: EventCollect, Item: ItemKey, Index: i})
			keys++
		}
	}

	for i, d := range in.Doors {
		if d.Opened || !box.Overlaps(tileBox(d.X, d.Y, ts)) {
			continue
		}
		if d.KeyRequired && keys > 0 {
			out.Events = append(out.Events, Event{Kind: EventDoorOpen, Index: i})
		}
	}

	for r := range in.Level.Height {
		for c := range in.Level.Width {
			if in.Level.Tiles[r][c] != TileExit {
				continue
			}
			if box.Overlaps(tileBox(float64(c)*ts, float64(r)*ts, ts)) {
				out.Player = p
				out.Events = append(out.Events, Event{Kind: EventExit})
				return out
			}
		}
	}

	p.Position.Y = newY
	p.VelocityY = velocityY
	p.OnGround = onGround
	out.Player = p
	return out
}

func tileBox(x, y, size float64) core.Box {
	return core.NewBox(x, y, size, size)
}
