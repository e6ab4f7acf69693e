package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-showcase/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the showcase with a game picker menu",
	Long: `Start the showcase in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Pause a game and press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Save slots (Enter resumes, X deletes)
  Q            - Quit

Examples:
  showcase menu
  showcase menu --fps 30
  showcase menu --db ./saves.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := runSession(); err != nil {
		fatalf("%v", err)
	}
}

// runSession runs the menu flow and releases its resources before returning.
func runSession() error {
	logger, closeLog := fileLogger()
	defer closeLog()

	env, closeAudio := localEnv(logger)
	defer closeAudio()

	opts := tui.SessionOptions{
		Env:    env,
		Logger: logger,
	}
	store := openStore(logger)
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	return tui.RunSession(terminalConfig(), opts)
}
