package jill

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

// Vec is a point in world pixels.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is Jill's kinematic state.
// Horizontal motion has no velocity; it is speed * dt per frame.
type Player struct {
	Position    Vec     `json:"position"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	VelocityY   float64 `json:"velocityY"`
	Speed       float64 `json:"speed"`
	JumpPower   float64 `json:"jumpPower"`
	OnGround    bool    `json:"onGround"`
	FacingRight bool    `json:"facingRight"`
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.NewBox(p.Position.X, p.Position.Y, p.Width, p.Height)
}

// Collectable is a gem or key placed on a tile.
type Collectable struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Collected bool    `json:"collected"`
}

// Door blocks a tile until opened with a key.
type Door struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Opened      bool    `json:"opened"`
	KeyRequired bool    `json:"keyRequired"`
}

// ItemKind selects the collectable list an index refers to.
type ItemKind int

const (
	ItemGem ItemKind = iota
	ItemKey
)

// String returns the item name.
func (k ItemKind) String() string {
	switch k {
	case ItemGem:
		return "gem"
	case ItemKey:
		return "key"
	default:
		return "unknown"
	}
}

// GameState is the aggregate of one level in play.
type GameState struct {
	Level         *Level        `json:"level"`
	Player        Player        `json:"player"`
	Gems          []Collectable `json:"gems"`
	Keys          []Collectable `json:"keys"`
	Doors         []Door        `json:"doors"`
	Gravity       float64       `json:"gravity"`
	CollectedGems int           `json:"collectedGems"`
	TotalGems     int           `json:"totalGems"`
	CollectedKeys int           `json:"collectedKeys"`
	TotalKeys     int           `json:"totalKeys"`
}

// Clone creates a deep copy of the state.
func (s *GameState) Clone() *GameState {
	clone := *s
	if s.Level != nil {
		clone.Level = s.Level.Clone()
	}
	clone.Gems = slices.Clone(s.Gems)
	clone.Keys = slices.Clone(s.Keys)
	clone.Doors = slices.Clone(s.Doors)
	return &clone
}

// items returns the list selected by kind.
func (s *GameState) items(kind ItemKind) []Collectable {
	switch kind {
	case ItemGem:
		return s.Gems
	case ItemKey:
		return s.Keys
	default:
		return nil
	}
}

// collect flips the collected flag of one item and bumps its counter.
// Already collected items are left alone.
func (s *GameState) collect(kind ItemKind, index int) bool {
	list := s.items(kind)
	if index < 0 || index >= len(list) {
		panic(fmt.Sprintf("jill: %s index %d out of range [0,%d)", kind, index, len(list)))
	}
	if list[index].Collected {
		return false
	}
	list[index].Collected = true
	switch kind {
	case ItemGem:
		s.CollectedGems++
	case ItemKey:
		s.CollectedKeys++
	}
	return true
}

// openDoor marks a door opened and clears its level cell.
func (s *GameState) openDoor(index int) {
	d := &s.Doors[index]
	d.Opened = true
	ts := s.Level.TileSize
	s.Level.Set(int(d.X/ts), int(d.Y/ts), TileEmpty)
}
