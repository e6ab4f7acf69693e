// showcase is a retro game showcase for the terminal, over SSH and over HTTP.
//
// Usage:
//
//	showcase list              - List the catalog
//	showcase play [game]       - Play a game (default: jill)
//	showcase menu              - Start menu to pick games interactively
//	showcase serve             - Start the SSH server and the HTTP API
//	showcase saves <game>      - Show save slots for a game
//	showcase shot              - Render a level to PNG
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.showcase/saves.db)
//	--config <path>       - Game config YAML (default: search order)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/retro-showcase/internal/games/jill"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Retro Showcase - Classic platformers in your terminal",
	Long: `Retro Showcase is a catalog of classic DOS-era platformers with a
playable remake of Jill of the Jungle.

Available commands:
  list     - Show the catalog
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server and HTTP API
  saves    - View save slots
  shot     - Render a level to a PNG file

Examples:
  showcase list
  showcase play jill
  showcase play jill --watch --config ./jill.yaml
  showcase menu
  showcase serve --ssh :2222 --http :8080
  showcase saves jill`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.showcase/saves.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(shotCmd)
}
