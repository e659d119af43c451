package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/tictactoe.yaml
var defaultTicTacToeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			Width:  30,
			Height: 20,
		},
		Speed: SnakeSpeed{
			MoveEveryTicks: 7, // ~8.5 moves per second at 60 FPS
		},
	}
}

// DefaultTicTacToeConfig returns the default Tic-Tac-Toe configuration.
func DefaultTicTacToeConfig() TicTacToeConfig {
	return TicTacToeConfig{
		CPU: TicTacToeCPU{
			DelayTicks: 30, // half a second at 60 FPS
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "tictactoe":
		return defaultTicTacToeYAML
	default:
		return nil
	}
}
