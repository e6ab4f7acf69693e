package config

import (
	_ "embed"
)

//go:embed defaults/jill.yaml
var defaultJillYAML []byte

// DefaultJillConfig returns the default Jill of the Jungle configuration.
func DefaultJillConfig() JillConfig {
	return JillConfig{
		Physics: JillPhysics{
			Gravity:  800,
			TileSize: 32,
		},
		Player: JillPlayer{
			Width:     24,
			Height:    32,
			Speed:     150,
			JumpPower: 350,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "jill":
		return defaultJillYAML
	default:
		return nil
	}
}
