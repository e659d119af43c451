package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic simulation; screen size is only a hint,
// layout is recomputed from the screen passed to Render.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the round has ended
	Paused   bool   // Whether the game is paused
	Result   string // Short description of how the round ended, empty while playing
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
