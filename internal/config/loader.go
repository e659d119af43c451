package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Search locations, overridable in tests.
var (
	userConfigDir  = defaultUserConfigDir
	localConfigDir = "configs"
)

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// LoadTicTacToe loads Tic-Tac-Toe configuration.
// Search order: customPath -> ~/.arcade/configs/tictactoe.yaml -> ./configs/tictactoe.yaml -> embedded default
func LoadTicTacToe(customPath string) (TicTacToeConfig, error) {
	return load("tictactoe.yaml", customPath, defaultTicTacToeYAML, DefaultTicTacToeConfig)
}

// ParseSnake decodes a Snake config on top of the defaults and validates it.
func ParseSnake(data []byte) (SnakeConfig, error) {
	cfg, err := decode(data, DefaultSnakeConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: invalid snake config: %w", err)
	}
	return cfg, nil
}

// ParseTicTacToe decodes a Tic-Tac-Toe config on top of the defaults and validates it.
func ParseTicTacToe(data []byte) (TicTacToeConfig, error) {
	cfg, err := decode(data, DefaultTicTacToeConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: invalid tictactoe config: %w", err)
	}
	return cfg, nil
}

type validator interface {
	Validate() error
}

// load decodes the first config found on top of the hardcoded defaults, so a
// file only needs to list the fields it changes.
func load[T validator](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	// Try custom path first; errors here are reported, not skipped
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, defaults)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join(localConfigDir, filename)}
	if dir := userConfigDir(); dir != "" {
		candidates = append([]string{filepath.Join(dir, filename)}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, defaults); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decode(embedded, defaults); err == nil {
		return cfg, nil
	}
	return defaults(), nil
}

func decode[T validator](data []byte, defaults func() T) (T, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// defaultUserConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func defaultUserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}
