package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	Long:  `Shows every game in the catalog, oldest first.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := catalog.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Catalog:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-4s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Year", "Status")
	fmt.Printf("  %-*s  %-*s  %-4s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "------")

	// Print games
	for _, g := range games {
		status := "playable"
		if !g.Playable {
			status = "coming soon"
		}
		fmt.Printf("  %-*s  %-*s  %-4d  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.ReleaseYear, status)
	}

	fmt.Println()
	fmt.Println("Run 'showcase play <id>' to play a game.")
}
