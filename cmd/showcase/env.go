package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-showcase/internal/audio"
	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/config"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the root logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "showcase",
		Level:           level,
	})
}

// fileLogger logs to ~/.showcase/showcase.log so output does not tear the
// alternate screen. It falls back to discarding.
func fileLogger() (*log.Logger, func()) {
	path := filepath.Join(config.DataDir(), "showcase.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// openStore opens the saves database. Failure is not fatal: the games run
// without saves.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
		logger.Warn("saves disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// terminalConfig returns the runtime config sized to the local terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// localEnv builds the game environment for local play, with sound when the
// config enables it. The returned func releases the audio device.
func localEnv(logger *log.Logger) (catalog.Env, func()) {
	env := catalog.Env{
		Logger:     logger,
		Cues:       core.NopCues{},
		ConfigPath: flagConfig,
	}

	cfg, err := config.LoadJill(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultJillConfig()
	}
	if !cfg.Audio.Enabled {
		return env, func() {}
	}

	player := audio.NewPlayer(cfg.Audio.Volume, logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return env, func() {}
	}
	env.Cues = player
	return env, player.Close
}
