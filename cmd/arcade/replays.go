package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var flagLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays [game]",
	Short: "List recorded rounds",
	Long: `Display the most recent recorded rounds, newest first, with a
summary of outcomes.

Examples:
  arcade replays
  arcade replays snake
  arcade replays tictactoe --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to show")
}

func runReplays(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr(nil, "opening replay database: %v", err)
	}
	defer store.Close()

	replays, err := store.RecentReplays(gameID, flagLimit)
	if err != nil {
		exitErr(nil, "retrieving replays: %v", err)
	}

	if len(replays) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play <game>' to record one!")
		return
	}

	fmt.Printf("  %-6s  %-10s  %-10s  %-8s  %s\n", "ID", "Game", "Outcome", "Length", "Date")
	fmt.Printf("  %-6s  %-10s  %-10s  %-8s  %s\n", "--", "----", "-------", "------", "----")

	for _, r := range replays {
		length := fmt.Sprintf("%ds", r.Ticks/uint64(max(flagFPS, 1)))
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-6d  %-10s  %-10s  %-8s  %s\n", r.ID, r.GameID, r.Outcome, length, dateStr)
	}

	counts, err := store.OutcomeCounts(gameID)
	if err != nil || len(counts) == 0 {
		return
	}

	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)

	fmt.Println()
	fmt.Print("Totals:")
	for _, o := range outcomes {
		fmt.Printf("  %s %d", o, counts[o])
	}
	fmt.Println()
	fmt.Println()
	fmt.Println("Run 'arcade replay <id> --watch' to watch a round.")
}
