// Package tictactoe implements Tic-Tac-Toe against a computer player that
// picks a random empty cell. The human plays X and always moves first.
package tictactoe

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Layout constants, in terminal cells
const (
	hudHeight = 2
	cellW     = 7
	cellH     = 3
	gridW     = Size*cellW + (Size - 1) + 2 // cells, separators, frame
	gridH     = Size*cellH + (Size - 1) + 2
	footerH   = 3 // gap, status line, key hints
)

var configPath string

// SetConfigPath sets a custom config file for games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// Game hosts an Engine inside the arcade platform.
type Game struct {
	cfg    config.TicTacToeConfig
	pinned bool // cfg came from UseConfigYAML
	engine *Engine
	tick   uint64

	cursor Pos
	aiWait int    // ticks left before the computer moves
	status string // last rejection message, cleared by the next valid move

	// Screen size of the last render, used to map mouse clicks to cells.
	screenW, screenH int
}

// New creates a new Tic-Tac-Toe game.
func New() *Game {
	return &Game{
		cfg:    config.DefaultTicTacToeConfig(),
		engine: NewEngine(rand.New(rand.NewSource(0))),
		cursor: Pos{Row: 1, Col: 1},
	}
}

func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tictactoe"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tic-Tac-Toe"
}

// HasCPUOpponent marks the game as played against the computer.
func (g *Game) HasCPUOpponent() bool {
	return true
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.pinned {
		if loaded, err := config.LoadTicTacToe(configPath); err == nil {
			g.cfg = loaded
		}
	}

	g.engine = NewEngine(rand.New(rand.NewSource(cfg.Seed)))
	g.tick = 0
	g.cursor = Pos{Row: 1, Col: 1}
	g.aiWait = 0
	g.status = ""
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
}

// ConfigYAML returns the config the current round runs with.
func (g *Game) ConfigYAML() ([]byte, error) {
	return yaml.Marshal(g.cfg)
}

// UseConfigYAML pins the config for every following Reset.
func (g *Game) UseConfigYAML(data []byte) error {
	cfg, err := config.ParseTicTacToe(data)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.pinned = true
	return nil
}

// Engine exposes the rules engine for inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine.Outcome().Over() {
		return core.StepResult{State: g.State()}
	}

	if g.engine.Turn() == X {
		g.processInput(in)
	}

	if g.engine.Turn() == O && !g.engine.Outcome().Over() {
		if g.aiWait > 0 {
			g.aiWait--
		} else if _, err := g.engine.AIMove(); err != nil {
			g.status = err.Error()
		}
	}

	return core.StepResult{State: g.State()}
}

// processInput moves the cursor and places X from keys, digits or clicks.
func (g *Game) processInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = (g.cursor.Row + Size - 1) % Size
	case in.Has(core.ActionDown):
		g.cursor.Row = (g.cursor.Row + 1) % Size
	case in.Has(core.ActionLeft):
		g.cursor.Col = (g.cursor.Col + Size - 1) % Size
	case in.Has(core.ActionRight):
		g.cursor.Col = (g.cursor.Col + 1) % Size
	}

	switch {
	case in.Click != nil:
		if p, ok := g.cellAt(*in.Click); ok {
			g.cursor = p
			g.move(p)
		}
	case in.Digit >= 1 && in.Digit <= Size*Size:
		p := Pos{Row: (in.Digit - 1) / Size, Col: (in.Digit - 1) % Size}
		g.cursor = p
		g.move(p)
	case in.Has(core.ActionConfirm):
		g.move(g.cursor)
	}
}

func (g *Game) move(p Pos) {
	if err := g.engine.ApplyMove(p.Row, p.Col); err != nil {
		// Only occupied cells can be rejected while it is X's turn
		g.status = fmt.Sprintf("Cell %d is taken, pick another", p.Row*Size+p.Col+1)
		return
	}
	g.status = ""
	g.aiWait = g.cfg.CPU.DelayTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	out := g.engine.Outcome()
	state := core.GameState{GameOver: out.Over()}

	switch {
	case out.Status == Draw:
		state.Result = "draw"
	case out.Status == Win && out.Winner == X:
		state.Score = 1
		state.Result = "you win"
	case out.Status == Win:
		state.Result = "cpu wins"
	}
	return state
}

// boardRect returns the framed grid centered below the HUD for a w×h screen.
func boardRect(w, h int) core.Rect {
	return core.NewRect((w-gridW)/2, hudHeight+1, gridW, gridH)
}

// cellRect returns the interior of the cell at p.
func cellRect(board core.Rect, p Pos) core.Rect {
	return core.NewRect(
		board.X+1+p.Col*(cellW+1),
		board.Y+1+p.Row*(cellH+1),
		cellW, cellH)
}

// cellAt maps a screen position to the cell drawn there.
func (g *Game) cellAt(pt core.Point) (Pos, bool) {
	board := boardRect(g.screenW, g.screenH)
	for r := range Size {
		for c := range Size {
			p := Pos{Row: r, Col: c}
			if cellRect(board, p).Contains(pt.X, pt.Y) {
				return p, true
			}
		}
	}
	return Pos{}, false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.screenW, g.screenH = dst.Width(), dst.Height()

	dst.Clear()
	g.renderHUD(dst)

	board := boardRect(dst.Width(), dst.Height())
	if board.X < 0 || board.Bottom()+footerH > dst.Height() {
		dst.DrawOverlay(core.ColorYellow, "Window too small",
			fmt.Sprintf("Need %dx%d", board.W, board.Bottom()+footerH))
		return
	}

	g.renderGrid(dst, board)

	out := g.engine.Outcome()
	winning := map[Pos]bool{}
	if out.Status == Win {
		for _, p := range out.Line.Cells() {
			winning[p] = true
		}
	}

	for r := range Size {
		for c := range Size {
			p := Pos{Row: r, Col: c}
			g.renderCell(dst, cellRect(board, p), p, winning[p])
		}
	}

	g.renderFooter(dst, board.Bottom()+1)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(0, 0, " Tic-Tac-Toe - You: X  CPU: O", core.ColorBrightWhite)
	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderGrid draws the frame and the separators between cells.
func (g *Game) renderGrid(dst *core.Screen, board core.Rect) {
	dst.DrawBox(board, core.ColorGray)

	for i := 1; i < Size; i++ {
		sx := board.X + i*(cellW+1)
		for y := board.Y + 1; y < board.Bottom()-1; y++ {
			dst.SetColor(sx, y, '│', core.ColorGray)
		}
		dst.SetColor(sx, board.Y, '┬', core.ColorGray)
		dst.SetColor(sx, board.Bottom()-1, '┴', core.ColorGray)

		sy := board.Y + i*(cellH+1)
		for x := board.X + 1; x < board.Right()-1; x++ {
			dst.SetColor(x, sy, '─', core.ColorGray)
		}
		dst.SetColor(board.X, sy, '├', core.ColorGray)
		dst.SetColor(board.Right()-1, sy, '┤', core.ColorGray)
	}

	for i := 1; i < Size; i++ {
		for j := 1; j < Size; j++ {
			dst.SetColor(board.X+i*(cellW+1), board.Y+j*(cellH+1), '┼', core.ColorGray)
		}
	}
}

func (g *Game) renderCell(dst *core.Screen, rect core.Rect, p Pos, winning bool) {
	if winning {
		dst.DrawRect(rect, '░', core.ColorYellow)
	}

	cx, cy := rect.Center()
	switch g.engine.At(p.Row, p.Col) {
	case X:
		color := core.ColorBrightBlue
		if winning {
			color = core.ColorBrightYellow
		}
		dst.SetColor(cx, cy, 'X', color)
	case O:
		color := core.ColorBrightRed
		if winning {
			color = core.ColorBrightYellow
		}
		dst.SetColor(cx, cy, 'O', color)
	default:
		// Digit shortcut hint
		dst.SetColor(rect.X, rect.Y, rune('1'+p.Row*Size+p.Col), core.ColorGray)
	}

	if p == g.cursor && g.humanToMove() {
		dst.SetColor(cx-2, cy, '[', core.ColorBrightYellow)
		dst.SetColor(cx+2, cy, ']', core.ColorBrightYellow)
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	out := g.engine.Outcome()

	switch {
	case out.Status == Win && out.Winner == X:
		dst.DrawTextCentered(y+1, "You Win!", core.ColorBrightGreen)
	case out.Status == Win:
		dst.DrawTextCentered(y+1, "CPU Wins!", core.ColorBrightRed)
	case out.Status == Draw:
		dst.DrawTextCentered(y+1, "Draw!", core.ColorBrightYellow)
	case g.status != "":
		dst.DrawTextCentered(y+1, g.status, core.ColorOrange)
	case g.humanToMove():
		dst.DrawTextCentered(y+1, "Your move", core.ColorBrightWhite)
	default:
		dst.DrawTextCentered(y+1, "CPU is thinking...", core.ColorGray)
	}

	if out.Over() {
		dst.DrawTextCentered(y+2, "R: restart  Q: quit", core.ColorGray)
	} else {
		dst.DrawTextCentered(y+2, "Arrows: move  Enter: place  1-9: cell", core.ColorGray)
	}
}

func (g *Game) humanToMove() bool {
	return !g.engine.Outcome().Over() && g.engine.Turn() == X
}
