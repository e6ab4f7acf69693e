package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/config"
	"github.com/vovakirdan/retro-showcase/internal/games/jill"
	"github.com/vovakirdan/retro-showcase/internal/platform/tui"
)

var (
	flagWatch  bool
	flagSlot   string
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: jill).

Controls:
  Left/Right, A/D  - Move
  Space            - Jump
  P/Esc            - Pause
  R/F5             - Restart the level
  Ctrl+S / Ctrl+O  - Save / load the session slot
  Ctrl+P           - PNG screenshot
  ?                - Help
  Q/Ctrl+C         - Quit

With --watch, the config file is reloaded whenever it is written. New
physics values apply on the next level load.

Examples:
  showcase play
  showcase play jill --slot run1 --resume
  showcase play jill --config ./jill.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when the file changes")
	playCmd.Flags().StringVar(&flagSlot, "slot", "quick", "Save slot used by Ctrl+S and Ctrl+O")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Load --slot on start")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := jill.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if err := playGame(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrNotPlayable) {
			fmt.Fprintln(os.Stderr, "Run 'showcase list' to see the catalog.")
		}
		os.Exit(1)
	}
}

// playGame runs one game until the user quits. Every resource it opens is
// released before it returns.
func playGame(gameID string) error {
	entry, err := catalog.Lookup(gameID)
	if err != nil {
		return err
	}
	if !entry.Playable {
		return fmt.Errorf("%w: %s is coming soon", catalog.ErrNotPlayable, entry.Title)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	env, closeAudio := localEnv(logger)
	defer closeAudio()

	game, err := catalog.Create(gameID, env)
	if err != nil {
		return err
	}

	opts := tui.GameOptions{
		Slot:   flagSlot,
		Resume: flagResume,
		Logger: logger,
	}

	// Open save storage
	store := openStore(logger)
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch {
		if flagConfig == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch needs --config, not watching")
		} else if w, werr := config.Watch(flagConfig); werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", flagConfig, werr)
		} else {
			defer w.Close()
			opts.Watcher = w
			logger.Info("watching config", "path", w.Path())
		}
	}

	// Run the game
	if err := tui.Run(game, terminalConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
