package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		title := g.Title
		if g.VsCPU {
			title += " (vs CPU)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
