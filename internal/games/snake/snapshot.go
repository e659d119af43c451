package snake

// Snapshot captures the game state for determinism testing and replay checks.
type Snapshot struct {
	Tick     uint64
	Moves    uint64
	Score    int
	SnakeLen int
	Head     Point
	Dir      Direction
	Food     Point
	Alive    bool
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Moves:    g.engine.Ticks(),
		Score:    g.engine.Score(),
		SnakeLen: g.engine.Len(),
		Head:     g.engine.Head(),
		Dir:      g.engine.Direction(),
		Food:     g.engine.Food(),
		Alive:    g.engine.Alive(),
		Paused:   g.paused,
	}
}
