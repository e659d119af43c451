package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the search path at empty temp dirs for the duration of a test.
func isolate(t *testing.T) (userDir, localDir string) {
	t.Helper()
	userDir = t.TempDir()
	localDir = t.TempDir()

	oldUser, oldLocal := userConfigDir, localConfigDir
	userConfigDir = func() string { return userDir }
	localConfigDir = localDir
	t.Cleanup(func() {
		userConfigDir = oldUser
		localConfigDir = oldLocal
	})
	return userDir, localDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}

func TestLoadSnakeEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultSnakeConfig())
	}
}

func TestLoadTicTacToeEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadTicTacToe("")
	if err != nil {
		t.Fatalf("LoadTicTacToe() failed: %v", err)
	}
	if cfg != DefaultTicTacToeConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultTicTacToeConfig())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	userDir, localDir := isolate(t)

	writeFile(t, filepath.Join(localDir, "snake.yaml"), "speed:\n  move_every_ticks: 3\n")
	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Speed.MoveEveryTicks != 3 {
		t.Errorf("local config not used, move_every_ticks = %d", cfg.Speed.MoveEveryTicks)
	}
	// Fields absent from the file keep their defaults
	if cfg.Board.Width != 30 || cfg.Board.Height != 20 {
		t.Errorf("partial config should keep default board, got %+v", cfg.Board)
	}

	writeFile(t, filepath.Join(userDir, "snake.yaml"), "speed:\n  move_every_ticks: 5\n")
	cfg, err = LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Speed.MoveEveryTicks != 5 {
		t.Errorf("user config should win over local, move_every_ticks = %d", cfg.Speed.MoveEveryTicks)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "board:\n  width: 12\n  height: 8\n")
	cfg, err = LoadSnake(custom)
	if err != nil {
		t.Fatalf("LoadSnake(custom) failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 8 {
		t.Errorf("custom config not used, board = %+v", cfg.Board)
	}
}

func TestLoadSkipsInvalidSearchFiles(t *testing.T) {
	userDir, _ := isolate(t)

	writeFile(t, filepath.Join(userDir, "tictactoe.yaml"), "cpu:\n  delay_ticks: -4\n")
	cfg, err := LoadTicTacToe("")
	if err != nil {
		t.Fatalf("LoadTicTacToe() failed: %v", err)
	}
	if cfg.CPU.DelayTicks != 30 {
		t.Errorf("invalid user config should be skipped, delay_ticks = %d", cfg.CPU.DelayTicks)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "board: [not, a, map]\n")
	if _, err := LoadSnake(bad); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "board:\n  width: 1\n")
	_, err := LoadSnake(invalid)
	if err == nil || !strings.Contains(err.Error(), "board.width") {
		t.Errorf("expected board.width validation error, got %v", err)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("snake")) == 0 || len(GetDefaultYAML("tictactoe")) == 0 {
		t.Error("embedded defaults should not be empty")
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestParseSnake(t *testing.T) {
	cfg, err := ParseSnake([]byte("speed:\n  move_every_ticks: 3\n"))
	if err != nil {
		t.Fatalf("ParseSnake failed: %v", err)
	}
	if cfg.Speed.MoveEveryTicks != 3 || cfg.Board != DefaultSnakeConfig().Board {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := ParseSnake([]byte("board:\n  width: 1\n")); err == nil {
		t.Error("expected validation error for width 1")
	}
}

func TestParseTicTacToe(t *testing.T) {
	if _, err := ParseTicTacToe([]byte("cpu:\n  delay_ticks: -1\n")); err == nil {
		t.Error("expected validation error for negative delay")
	}
	if _, err := ParseTicTacToe([]byte("cpu: [")); err == nil {
		t.Error("expected parse error")
	}
}
