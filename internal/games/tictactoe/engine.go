package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
)

// Size is the board edge length.
const Size = 3

// Mark is the content of a board cell.
type Mark int

const (
	Empty Mark = iota
	X          // human
	O          // computer
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

var (
	// ErrInvalidMove is returned (wrapped) for any rejected move: out of
	// bounds, occupied cell, wrong turn or finished game.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNoMovesAvailable is returned when the computer is asked to move on a
	// full board. Unreachable when the draw check runs after every move.
	ErrNoMovesAvailable = errors.New("no moves available")
)

// Pos addresses a cell by row and column.
type Pos struct {
	Row, Col int
}

// LineKind tells which family of lines a Line belongs to.
type LineKind int

const (
	LineRow LineKind = iota
	LineColumn
	LineDiagonal     // top-left to bottom-right
	LineAntiDiagonal // top-right to bottom-left
)

// Line is one of the eight three-in-a-row lines.
// Index selects the row or column and is zero for diagonals.
type Line struct {
	Kind  LineKind
	Index int
}

// Cells returns the positions the line covers.
func (l Line) Cells() [Size]Pos {
	var cells [Size]Pos
	for i := range Size {
		switch l.Kind {
		case LineRow:
			cells[i] = Pos{Row: l.Index, Col: i}
		case LineColumn:
			cells[i] = Pos{Row: i, Col: l.Index}
		case LineDiagonal:
			cells[i] = Pos{Row: i, Col: i}
		case LineAntiDiagonal:
			cells[i] = Pos{Row: i, Col: Size - 1 - i}
		}
	}
	return cells
}

func (l Line) String() string {
	switch l.Kind {
	case LineRow:
		return fmt.Sprintf("row %d", l.Index)
	case LineColumn:
		return fmt.Sprintf("column %d", l.Index)
	case LineDiagonal:
		return "diagonal"
	default:
		return "anti-diagonal"
	}
}

// lines lists every line in evaluation order: rows top to bottom, columns
// left to right, then the two diagonals.
var lines = func() []Line {
	ls := make([]Line, 0, 2*Size+2)
	for i := range Size {
		ls = append(ls, Line{Kind: LineRow, Index: i})
	}
	for i := range Size {
		ls = append(ls, Line{Kind: LineColumn, Index: i})
	}
	return append(ls, Line{Kind: LineDiagonal}, Line{Kind: LineAntiDiagonal})
}()

// Status is the phase of a game.
type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

// Outcome describes the result of a game. Winner and Line are only set for Win.
type Outcome struct {
	Status Status
	Winner Mark
	Line   Line
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o.Status != InProgress
}

// Board is the 3×3 grid indexed [row][col].
type Board [Size][Size]Mark

// Full reports whether no cell is empty.
func (b Board) Full() bool {
	for _, row := range b {
		for _, m := range row {
			if m == Empty {
				return false
			}
		}
	}
	return true
}

// Engine holds the rules state of one Tic-Tac-Toe game: X is the human
// player and moves first, O is the computer.
// It is not safe for concurrent use.
type Engine struct {
	rng     *rand.Rand
	board   Board
	turn    Mark
	outcome Outcome
	moves   int
}

// NewEngine creates an engine with an empty board.
func NewEngine(rng *rand.Rand) *Engine {
	e := &Engine{rng: rng}
	e.Reset()
	return e
}

// Reset clears the board and gives the first turn to X.
func (e *Engine) Reset() {
	e.board = Board{}
	e.turn = X
	e.outcome = Outcome{Status: InProgress}
	e.moves = 0
}

// ApplyMove places the human's X at (row, col).
func (e *Engine) ApplyMove(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: (%d, %d) is off the board", ErrInvalidMove, row, col)
	}
	if err := e.checkTurn(X); err != nil {
		return err
	}
	if e.board[row][col] != Empty {
		return fmt.Errorf("%w: cell (%d, %d) is taken", ErrInvalidMove, row, col)
	}

	e.place(Pos{Row: row, Col: col}, X)
	return nil
}

// AIMove places the computer's O on an empty cell chosen uniformly at random.
func (e *Engine) AIMove() (Pos, error) {
	if err := e.checkTurn(O); err != nil {
		return Pos{}, err
	}

	empty := e.EmptyCells()
	if len(empty) == 0 {
		return Pos{}, ErrNoMovesAvailable
	}

	p := empty[e.rng.Intn(len(empty))]
	e.place(p, O)
	return p, nil
}

func (e *Engine) checkTurn(m Mark) error {
	if e.outcome.Over() {
		return fmt.Errorf("%w: game is over", ErrInvalidMove)
	}
	if e.turn != m {
		return fmt.Errorf("%w: it is %s's turn", ErrInvalidMove, e.turn)
	}
	return nil
}

// place sets the mark and evaluates the board.
func (e *Engine) place(p Pos, m Mark) {
	e.board[p.Row][p.Col] = m
	e.moves++

	if line, ok := e.CheckWin(m); ok {
		e.outcome = Outcome{Status: Win, Winner: m, Line: line}
		return
	}
	if e.board.Full() {
		e.outcome = Outcome{Status: Draw}
		return
	}
	e.turn = m.Other()
}

// CheckWin returns the first line held entirely by m.
func (e *Engine) CheckWin(m Mark) (Line, bool) {
	for _, l := range lines {
		won := true
		for _, p := range l.Cells() {
			if e.board[p.Row][p.Col] != m {
				won = false
				break
			}
		}
		if won {
			return l, true
		}
	}
	return Line{}, false
}

// EmptyCells lists the free cells in row-major order.
func (e *Engine) EmptyCells() []Pos {
	var cells []Pos
	for r := range Size {
		for c := range Size {
			if e.board[r][c] == Empty {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Board returns a copy of the grid.
func (e *Engine) Board() Board {
	return e.board
}

// At returns the mark at (row, col), or Empty off the board.
func (e *Engine) At(row, col int) Mark {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Empty
	}
	return e.board[row][col]
}

// Turn returns whose move it is. After the game ends it keeps the last mover.
func (e *Engine) Turn() Mark {
	return e.turn
}

// Outcome returns the current result.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Moves returns the number of marks placed since Reset.
func (e *Engine) Moves() int {
	return e.moves
}
