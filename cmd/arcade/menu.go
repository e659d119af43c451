package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.
Tab opens the replay browser, where Enter watches a recorded round.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Browse replays
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger()
	if err != nil {
		exitErr(nil, "%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replays disabled", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	seed := cfg.Seed

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsReplays {
			if !browseReplays(store, logger, cfg) {
				return
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// --seed applies to the first game only
		cfg.Seed = seed
		seed = 0

		backToMenu, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !backToMenu {
			return
		}
	}
}

// browseReplays runs the replay browser and playback until the user goes
// back to the menu. It returns false if the user quit instead.
func browseReplays(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) bool {
	if store == nil {
		fmt.Fprintln(os.Stderr, "Replays are unavailable without a database.")
		return true
	}

	for {
		result, err := tui.RunReplayBrowser(store, logger, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		switch {
		case result.Quit:
			return false
		case result.Back, result.ReplayID == 0:
			return true
		}

		rec, err := store.Replay(result.ReplayID)
		if err != nil {
			logger.Warn("cannot load replay", "id", result.ReplayID, "error", err)
			continue
		}
		back, err := tui.RunWatch(rec, cfg.TickRate)
		if err != nil {
			logger.Warn("cannot play replay", "id", result.ReplayID, "error", err)
			continue
		}
		if !back {
			return false
		}
	}
}
