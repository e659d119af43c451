package tictactoe

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

// play applies alternating moves starting with X, placing O directly so the
// sequence does not depend on the random picker.
func play(t *testing.T, e *Engine, moves []Pos) {
	t.Helper()
	for i, p := range moves {
		if i%2 == 0 {
			if err := e.ApplyMove(p.Row, p.Col); err != nil {
				t.Fatalf("move %d (%+v) failed: %v", i, p, err)
			}
			continue
		}
		if err := e.checkTurn(O); err != nil {
			t.Fatalf("move %d (%+v): %v", i, p, err)
		}
		if e.board[p.Row][p.Col] != Empty {
			t.Fatalf("move %d (%+v): cell taken", i, p)
		}
		e.place(p, O)
	}
}

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine(1)

	if e.Turn() != X {
		t.Errorf("initial turn = %s, expected X", e.Turn())
	}
	if e.Outcome().Status != InProgress {
		t.Errorf("initial status = %v, expected InProgress", e.Outcome().Status)
	}
	if e.Board() != (Board{}) {
		t.Error("initial board should be empty")
	}
	if len(e.EmptyCells()) != Size*Size {
		t.Errorf("expected %d empty cells, got %d", Size*Size, len(e.EmptyCells()))
	}
}

func TestCheckWinTopRow(t *testing.T) {
	e := newTestEngine(2)
	e.board = Board{
		{X, X, X},
		{O, O, Empty},
		{Empty, Empty, Empty},
	}

	line, ok := e.CheckWin(X)
	if !ok {
		t.Fatal("X should win")
	}
	if line != (Line{Kind: LineRow, Index: 0}) {
		t.Errorf("winning line = %s, expected row 0", line)
	}
	if _, ok := e.CheckWin(O); ok {
		t.Error("O should not win")
	}
}

func TestCheckWinAllLines(t *testing.T) {
	for _, l := range lines {
		t.Run(l.String(), func(t *testing.T) {
			e := newTestEngine(3)
			for _, p := range l.Cells() {
				e.board[p.Row][p.Col] = O
			}
			got, ok := e.CheckWin(O)
			if !ok || got != l {
				t.Errorf("CheckWin(O) = %s, %v; expected %s", got, ok, l)
			}
		})
	}
}

func TestCheckWinOrder(t *testing.T) {
	// Row 2 and column 0 are both complete; rows are checked first
	e := newTestEngine(4)
	e.board = Board{
		{X, Empty, Empty},
		{X, Empty, Empty},
		{X, X, X},
	}
	line, _ := e.CheckWin(X)
	if line != (Line{Kind: LineRow, Index: 2}) {
		t.Errorf("winning line = %s, expected row 2", line)
	}

	// Column beats diagonal
	e.board = Board{
		{X, Empty, Empty},
		{X, X, Empty},
		{X, Empty, X},
	}
	line, _ = e.CheckWin(X)
	if line != (Line{Kind: LineColumn, Index: 0}) {
		t.Errorf("winning line = %s, expected column 0", line)
	}
}

func TestApplyMoveTurnAlternation(t *testing.T) {
	e := newTestEngine(5)

	if err := e.ApplyMove(1, 1); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	if e.At(1, 1) != X {
		t.Error("X not placed")
	}
	if e.Turn() != O {
		t.Errorf("turn = %s, expected O", e.Turn())
	}

	// Human cannot move twice
	err := e.ApplyMove(0, 0)
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("second human move: expected ErrInvalidMove, got %v", err)
	}

	p, err := e.AIMove()
	if err != nil {
		t.Fatalf("AIMove failed: %v", err)
	}
	if e.At(p.Row, p.Col) != O || p == (Pos{Row: 1, Col: 1}) {
		t.Errorf("AI placed at %+v", p)
	}
	if e.Turn() != X {
		t.Errorf("turn = %s, expected X", e.Turn())
	}
}

func TestApplyMoveOccupiedCell(t *testing.T) {
	e := newTestEngine(6)
	play(t, e, []Pos{{Row: 0, Col: 0}, {Row: 1, Col: 1}})

	before := e.Board()
	err := e.ApplyMove(1, 1)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if e.Board() != before || e.Turn() != X || e.Moves() != 2 {
		t.Error("rejected move changed the state")
	}
}

func TestApplyMoveOutOfBounds(t *testing.T) {
	e := newTestEngine(7)
	cases := []Pos{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 3, Col: 0}, {Row: 0, Col: 3}, {Row: 5, Col: 5}}

	for _, p := range cases {
		if err := e.ApplyMove(p.Row, p.Col); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ApplyMove(%d, %d): expected ErrInvalidMove, got %v", p.Row, p.Col, err)
		}
	}
	if e.Board() != (Board{}) || e.Turn() != X {
		t.Error("out-of-bounds moves changed the state")
	}
}

func TestAIMoveRequiresItsTurn(t *testing.T) {
	e := newTestEngine(8)
	if _, err := e.AIMove(); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("AI moving first: expected ErrInvalidMove, got %v", err)
	}
}

func TestAIMoveNoMovesAvailable(t *testing.T) {
	e := newTestEngine(9)
	// Unreachable through play: a full board still in progress
	e.board = Board{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}
	e.turn = O

	if _, err := e.AIMove(); !errors.Is(err, ErrNoMovesAvailable) {
		t.Errorf("expected ErrNoMovesAvailable, got %v", err)
	}
}

func TestAIMoveIsUniform(t *testing.T) {
	e := newTestEngine(15)
	base := Board{
		{X, O, Empty},
		{Empty, X, O},
		{O, Empty, Empty},
	}
	empty := []Pos{{Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}
	counts := map[Pos]int{}

	const rounds = 4000
	for range rounds {
		e.board = base
		e.turn = O
		e.outcome = Outcome{Status: InProgress}

		p, err := e.AIMove()
		if err != nil {
			t.Fatalf("AIMove failed: %v", err)
		}
		counts[p]++
	}

	if len(counts) != len(empty) {
		t.Fatalf("AI used %d distinct cells, expected %d: %v", len(counts), len(empty), counts)
	}
	for _, p := range empty {
		if share := float64(counts[p]) / rounds; share < 0.2 || share > 0.3 {
			t.Errorf("share at %+v = %.3f, expected about 0.25", p, share)
		}
	}
}

func TestHumanWinIsTerminal(t *testing.T) {
	e := newTestEngine(10)
	play(t, e, []Pos{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 0, Col: 2},
	})

	out := e.Outcome()
	if out.Status != Win || out.Winner != X || out.Line != (Line{Kind: LineRow, Index: 0}) {
		t.Fatalf("outcome = %+v, expected X win on row 0", out)
	}

	if err := e.ApplyMove(2, 2); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("move after win: expected ErrInvalidMove, got %v", err)
	}
	if _, err := e.AIMove(); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("AI move after win: expected ErrInvalidMove, got %v", err)
	}
	if e.Outcome() != out {
		t.Error("outcome changed after the game ended")
	}
}

func TestComputerWin(t *testing.T) {
	e := newTestEngine(11)
	play(t, e, []Pos{
		{Row: 0, Col: 0}, {Row: 0, Col: 2},
		{Row: 1, Col: 0}, {Row: 1, Col: 1},
		{Row: 2, Col: 2}, {Row: 2, Col: 0},
	})

	out := e.Outcome()
	if out.Status != Win || out.Winner != O || out.Line.Kind != LineAntiDiagonal {
		t.Errorf("outcome = %+v, expected O win on the anti-diagonal", out)
	}
}

func TestFullBoardWithoutLineIsDraw(t *testing.T) {
	e := newTestEngine(12)
	// X O X
	// X O O
	// O X X
	play(t, e, []Pos{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
		{Row: 0, Col: 2}, {Row: 1, Col: 1},
		{Row: 1, Col: 0}, {Row: 2, Col: 0},
		{Row: 2, Col: 1}, {Row: 1, Col: 2},
		{Row: 2, Col: 2},
	})

	if e.Outcome().Status != Draw {
		t.Fatalf("status = %v, expected Draw", e.Outcome().Status)
	}
	if e.Moves() != 9 {
		t.Errorf("moves = %d, expected 9", e.Moves())
	}
	if err := e.ApplyMove(0, 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("move after draw: expected ErrInvalidMove, got %v", err)
	}
	if e.Outcome().Status != Draw {
		t.Error("draw reverted")
	}
}

func TestFullBoardWinIsNotDraw(t *testing.T) {
	e := newTestEngine(13)
	// Ninth move completes a line and fills the board
	// X X O
	// O O X
	// X O X
	play(t, e, []Pos{
		{Row: 0, Col: 0}, {Row: 0, Col: 2},
		{Row: 0, Col: 1}, {Row: 1, Col: 0},
		{Row: 1, Col: 2}, {Row: 1, Col: 1},
		{Row: 2, Col: 0}, {Row: 2, Col: 1},
		{Row: 2, Col: 2},
	})

	out := e.Outcome()
	if out.Status != Win || out.Winner != X || out.Line != (Line{Kind: LineColumn, Index: 2}) {
		t.Errorf("outcome = %+v, expected X win on column 2", out)
	}
}

// TestRandomGamesInvariants plays random games to the end with the real
// computer player and checks the board invariants after every move.
func TestRandomGamesInvariants(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		e := newTestEngine(seed)
		human := rand.New(rand.NewSource(seed + 1000))

		for !e.Outcome().Over() {
			before := e.Board()
			if e.Turn() == X {
				empty := e.EmptyCells()
				p := empty[human.Intn(len(empty))]
				if err := e.ApplyMove(p.Row, p.Col); err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
			} else if _, err := e.AIMove(); err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}

			xs, os := 0, 0
			board := e.Board()
			for r := range Size {
				for c := range Size {
					if before[r][c] != Empty && board[r][c] != before[r][c] {
						t.Fatalf("seed %d: cell (%d, %d) overwritten", seed, r, c)
					}
					switch board[r][c] {
					case X:
						xs++
					case O:
						os++
					}
				}
			}
			if d := xs - os; d < 0 || d > 1 {
				t.Fatalf("seed %d: X=%d O=%d breaks alternation", seed, xs, os)
			}
		}

		if e.Moves() > Size*Size {
			t.Fatalf("seed %d: %d moves", seed, e.Moves())
		}
		if out := e.Outcome(); out.Status == Draw && !e.Board().Full() {
			t.Fatalf("seed %d: draw on a board with empty cells", seed)
		}
	}
}

func TestResetAfterGame(t *testing.T) {
	e := newTestEngine(14)
	play(t, e, []Pos{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 0, Col: 2},
	})

	e.Reset()

	if e.Outcome().Status != InProgress || e.Turn() != X || e.Board() != (Board{}) || e.Moves() != 0 {
		t.Error("Reset should restore the initial state")
	}
}
