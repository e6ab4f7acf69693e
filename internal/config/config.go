// Package config provides YAML-based game configuration loading and
// hot reloading for the showcase platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// JillConfig contains all configuration for Jill of the Jungle.
type JillConfig struct {
	Physics JillPhysics `yaml:"physics"`
	Player  JillPlayer  `yaml:"player"`
	Audio   AudioConfig `yaml:"audio"`
}

// JillPhysics defines world parameters.
type JillPhysics struct {
	Gravity  float64 `yaml:"gravity"`   // px/s²
	TileSize float64 `yaml:"tile_size"` // px
}

// JillPlayer defines the player's size and movement.
type JillPlayer struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`      // px/s
	JumpPower float64 `yaml:"jump_power"` // px/s
}

// AudioConfig controls sound cue playback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// Validate reports the first setting that cannot produce a playable game.
func (c JillConfig) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"physics.gravity", c.Physics.Gravity},
		{"physics.tile_size", c.Physics.TileSize},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.speed", c.Player.Speed},
		{"player.jump_power", c.Player.JumpPower},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, ch.name, ch.value)
		}
	}
	if c.Player.Width > c.Physics.TileSize*4 || c.Player.Height > c.Physics.TileSize*4 {
		return fmt.Errorf("%w: player larger than four tiles", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0,1], got %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
