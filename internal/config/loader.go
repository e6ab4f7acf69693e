package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJill loads Jill of the Jungle configuration.
// Search order: customPath -> ~/.showcase/configs/jill.yaml -> ./configs/jill.yaml -> embedded default
func LoadJill(customPath string) (JillConfig, error) {
	// Missing keys keep their defaults.
	cfg := DefaultJillConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("jill.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", "jill.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	var embedded JillConfig
	if err := yaml.Unmarshal(defaultJillYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultJillConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryFile reads an optional config file. Unreadable or invalid files are skipped.
func tryFile(path string) (JillConfig, bool) {
	cfg := DefaultJillConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".showcase", "configs", filename)
}

// DataDir returns ~/.showcase, or "." if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".showcase")
}
