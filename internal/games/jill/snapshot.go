package jill

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SnapshotVersion is the schema version written into every snapshot.
// Bump it whenever GameState changes shape.
const SnapshotVersion = 1

var (
	// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
	ErrInvalidSnapshot = errors.New("jill: invalid snapshot")
	// ErrSnapshotVersion is returned for snapshots of another schema version.
	ErrSnapshotVersion = fmt.Errorf("%w: unsupported schema version", ErrInvalidSnapshot)
)

// snapshot is the persisted envelope around a GameState.
type snapshot struct {
	SchemaVersion int        `json:"schemaVersion"`
	State         *GameState `json:"state"`
}

// EncodeSnapshot serializes a state with the current schema version.
func EncodeSnapshot(s *GameState) ([]byte, error) {
	data, err := json.Marshal(snapshot{SchemaVersion: SnapshotVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("jill: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a snapshot.
func DecodeSnapshot(data []byte) (*GameState, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.SchemaVersion != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrSnapshotVersion, snap.SchemaVersion, SnapshotVersion)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("%w: missing state", ErrInvalidSnapshot)
	}
	if err := snap.State.Validate(); err != nil {
		return nil, err
	}
	return snap.State, nil
}

// Validate checks the structural invariants of a state.
func (s *GameState) Validate() error {
	l := s.Level
	if l == nil {
		return fmt.Errorf("%w: missing level", ErrInvalidSnapshot)
	}
	if !HasLevel(l.ID) {
		return fmt.Errorf("%w: unknown level %d", ErrInvalidSnapshot, l.ID)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %v", ErrInvalidSnapshot, l.TileSize)
	}
	if l.Width <= 0 || l.Height <= 0 || len(l.Tiles) != l.Height {
		return fmt.Errorf("%w: grid is %dx%d with %d rows", ErrInvalidSnapshot, l.Width, l.Height, len(l.Tiles))
	}
	for r, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidSnapshot, r, len(row), l.Width)
		}
		for c, k := range row {
			if !k.Valid() {
				return fmt.Errorf("%w: unknown tile %d at (%d,%d)", ErrInvalidSnapshot, int(k), c, r)
			}
		}
	}

	if s.TotalGems != len(s.Gems) || s.TotalKeys != len(s.Keys) {
		return fmt.Errorf("%w: totals do not match item lists", ErrInvalidSnapshot)
	}
	if got := countCollected(s.Gems); got != s.CollectedGems {
		return fmt.Errorf("%w: %d gems flagged but counter is %d", ErrInvalidSnapshot, got, s.CollectedGems)
	}
	if got := countCollected(s.Keys); got != s.CollectedKeys {
		return fmt.Errorf("%w: %d keys flagged but counter is %d", ErrInvalidSnapshot, got, s.CollectedKeys)
	}

	p := s.Player
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidSnapshot, p.Width, p.Height)
	}
	return nil
}

func countCollected(items []Collectable) int {
	n := 0
	for _, it := range items {
		if it.Collected {
			n++
		}
	}
	return n
}
