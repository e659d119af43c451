// arcade plays classic games in the terminal and records every round so it
// can be replayed later.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade replays [game]    - List recorded rounds
//	arcade replay <id>       - Re-simulate or watch a recorded round
//	arcade config <game>     - Print the default config of a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/replays.db)
//	--log-file <path>    - Write logs to a file (the TUI owns the terminal)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-classics/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-classics/internal/games/snake"
	_ "github.com/vovakirdan/arcade-classics/internal/games/tictactoe"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Classics - Snake and Tic-Tac-Toe in your terminal",
	Long: `Arcade Classics is a terminal arcade with Snake and Tic-Tac-Toe.
Every round is recorded and can be replayed tick for tick.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  replays  - List recorded rounds
  replay   - Re-simulate or watch a recorded round
  config   - Print the default config of a game

Examples:
  arcade list
  arcade play snake
  arcade play tictactoe
  arcade menu
  arcade serve --ssh :2222
  arcade replays snake
  arcade replay 12 --watch`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger for terminal commands. Without --log-file logs
// are discarded, since stderr would corrupt the alt screen.
// The returned close func must be called before exiting.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig returns the config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// exitErr prints an error and exits, running cleanup first.
func exitErr(cleanup func(), format string, args ...any) {
	if cleanup != nil {
		cleanup()
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
