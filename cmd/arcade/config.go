package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print the default config of a game",
	Long: `Print the built-in YAML config of a game, ready to be copied to
~/.arcade/configs/<game>.yaml or passed to 'arcade play --config'.

Examples:
  arcade config snake > ~/.arcade/configs/snake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		exitErr(nil, "game %q has no config file", gameID)
	}
	os.Stdout.Write(data)
}
