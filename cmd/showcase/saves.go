package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves <game>",
	Short: "Show save slots for a game",
	Long: `Display the save slots stored for the specified game, newest first.

Examples:
  showcase saves jill
  showcase saves jill --delete quick`,
	Args: cobra.ExactArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete the named slot")
}

func runSaves(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	entry, err := catalog.Lookup(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'showcase list' to see the catalog.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening saves database: %v", err)
	}
	defer store.Close()

	if flagDeleteSlot != "" {
		deleted, err := store.DeleteSlot(gameID, flagDeleteSlot)
		if err != nil {
			store.Close()
			fatalf("deleting slot: %v", err)
		}
		if deleted {
			fmt.Printf("Deleted slot %q.\n", flagDeleteSlot)
		} else {
			fmt.Printf("No slot %q.\n", flagDeleteSlot)
		}
		return
	}

	slots, err := store.ListSlots(gameID)
	if err != nil {
		store.Close()
		fatalf("retrieving saves: %v", err)
	}

	// Display slots
	fmt.Printf("Saves - %s\n", entry.Title)
	fmt.Println()

	if len(slots) == 0 {
		fmt.Println("No saves yet.")
		if entry.Playable {
			fmt.Println()
			fmt.Printf("Play 'showcase play %s' and press Ctrl+S to save.\n", gameID)
		}
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-7s  %-8s  %s\n", "Slot", "Version", "Size", "Saved")
	fmt.Printf("  %-16s  %-7s  %-8s  %s\n", "----", "-------", "----", "-----")

	for _, s := range slots {
		fmt.Printf("  %-16s  v%-6d  %-8s  %s\n",
			s.Slot, s.SchemaVersion, fmt.Sprintf("%d B", s.Size), s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
