// Package config provides YAML-based game configuration loading for the
// arcade platform.
package config

import (
	"errors"
	"fmt"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board SnakeBoard `yaml:"board"`
	Speed SnakeSpeed `yaml:"speed"`
}

// SnakeBoard defines the playing field in cells.
type SnakeBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeSpeed defines how often the snake moves.
type SnakeSpeed struct {
	MoveEveryTicks int `yaml:"move_every_ticks"` // Platform ticks per snake move
}

// Validate reports every invalid field.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Board.Width < 2 || c.Board.Width > 200 {
		errs = append(errs, fmt.Errorf("board.width must be in [2, 200], got %d", c.Board.Width))
	}
	if c.Board.Height < 2 || c.Board.Height > 200 {
		errs = append(errs, fmt.Errorf("board.height must be in [2, 200], got %d", c.Board.Height))
	}
	if c.Speed.MoveEveryTicks < 1 {
		errs = append(errs, fmt.Errorf("speed.move_every_ticks must be positive, got %d", c.Speed.MoveEveryTicks))
	}
	return errors.Join(errs...)
}

// TicTacToeConfig contains all configuration for the Tic-Tac-Toe game.
type TicTacToeConfig struct {
	CPU TicTacToeCPU `yaml:"cpu"`
}

// TicTacToeCPU defines how the computer player is presented.
type TicTacToeCPU struct {
	// DelayTicks is the pause before the computer moves. Cosmetic only.
	DelayTicks int `yaml:"delay_ticks"`
}

// Validate reports invalid fields.
func (c TicTacToeConfig) Validate() error {
	if c.CPU.DelayTicks < 0 {
		return fmt.Errorf("cpu.delay_ticks must not be negative, got %d", c.CPU.DelayTicks)
	}
	return nil
}
