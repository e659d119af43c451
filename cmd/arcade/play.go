package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/games/snake"
	"github.com/vovakirdan/arcade-classics/internal/games/tictactoe"
	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Snake controls:
  Arrows/WASD/HJKL  - Steer
  P                 - Pause

Tic-Tac-Toe controls:
  Arrows/WASD/HJKL  - Move cursor
  Enter/Space       - Place X
  1-9               - Place X on a cell (row by row)
  Mouse click       - Place X on the clicked cell

Common:
  R          - Restart (after game over)
  Esc/B      - Leave the game
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot to ~/.arcade/screenshots

Examples:
  arcade play snake
  arcade play snake --seed 42
  arcade play tictactoe --fps 30
  arcade play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// applyConfigPath validates a custom config file and hands it to the game.
func applyConfigPath(gameID, path string) error {
	if path == "" {
		return nil
	}

	switch gameID {
	case "snake":
		if _, err := config.LoadSnake(path); err != nil {
			return err
		}
		snake.SetConfigPath(path)
	case "tictactoe":
		if _, err := config.LoadTicTacToe(path); err != nil {
			return err
		}
		tictactoe.SetConfigPath(path)
	default:
		return fmt.Errorf("game %q has no config file", gameID)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if err := applyConfigPath(gameID, flagConfig); err != nil {
		exitErr(nil, "%v", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		exitErr(nil, "%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		exitErr(closeLog, "creating game: %v", err)
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replays disabled", "error", err)
		store = nil
	}

	_, runErr := tui.Run(game, store, logger, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr(closeLog, "running game: %v", runErr)
	}
	closeLog()
}
