package tictactoe

// Snapshot captures the game state for determinism testing and replay checks.
type Snapshot struct {
	Tick    uint64
	Board   Board
	Turn    Mark
	Outcome Outcome
	Cursor  Pos
	AIWait  int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Board:   g.engine.Board(),
		Turn:    g.engine.Turn(),
		Outcome: g.engine.Outcome(),
		Cursor:  g.cursor,
		AIWait:  g.aiWait,
	}
}
