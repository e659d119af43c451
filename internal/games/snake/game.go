// Package snake implements the classic Snake game: steer a growing snake
// around a walled board, eat food, avoid walls and your own tail.
package snake

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Visual characters for rendering
const (
	HeadChar = '@'
	BodyChar = 'o'
	FoodChar = '*'
)

const (
	hudHeight = 2 // Score line plus separator
	cellWidth = 2 // Terminal cells are roughly twice as tall as wide
)

var configPath string

// SetConfigPath sets a custom config file for games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// Game hosts an Engine inside the arcade platform.
type Game struct {
	cfg        config.SnakeConfig
	pinned     bool // cfg came from UseConfigYAML
	engine     *Engine
	tick       uint64
	moveTicker int
	paused     bool
}

// New creates a new Snake game.
func New() *Game {
	cfg := config.DefaultSnakeConfig()
	return &Game{
		cfg:    cfg,
		engine: NewEngine(cfg.Board.Width, cfg.Board.Height, rand.New(rand.NewSource(0))),
	}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	// A broken custom config keeps the defaults; the CLI validates it up front.
	if !g.pinned {
		if loaded, err := config.LoadSnake(configPath); err == nil {
			g.cfg = loaded
		}
	}

	g.engine = NewEngine(g.cfg.Board.Width, g.cfg.Board.Height, rand.New(rand.NewSource(cfg.Seed)))
	g.tick = 0
	g.moveTicker = 0
	g.paused = false
}

// ConfigYAML returns the config the current round runs with.
func (g *Game) ConfigYAML() ([]byte, error) {
	return yaml.Marshal(g.cfg)
}

// UseConfigYAML pins the config for every following Reset.
func (g *Game) UseConfigYAML(data []byte) error {
	cfg, err := config.ParseSnake(data)
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

	if in.Has(core.ActionPause) && g.engine.Alive() {
		g.paused = !g.paused
	}
	if g.paused || !g.engine.Alive() {
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)

	g.moveTicker++
	if g.moveTicker >= g.cfg.Speed.MoveEveryTicks {
		g.moveTicker = 0
		g.engine.Step()
	}

	return core.StepResult{State: g.State()}
}

// directions maps steering actions to snake directions.
var directions = map[core.Action]Direction{
	core.ActionUp:    DirUp,
	core.ActionDown:  DirDown,
	core.ActionLeft:  DirLeft,
	core.ActionRight: DirRight,
}

// processInput forwards direction keys to the engine in press order, so the
// last accepted press of a frame wins.
func (g *Game) processInput(in core.InputFrame) {
	for _, a := range in.Order {
		if d, ok := directions[a]; ok {
			g.engine.SetDirection(d)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: !g.engine.Alive(),
		Paused:   g.paused,
		Result:   g.engine.Cause().String(),
	}
}

// boardRect returns the framed board area centered below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w := g.engine.Width()*cellWidth + 2
	h := g.engine.Height() + 2
	return core.NewRect((dst.Width()-w)/2, hudHeight, w, h)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	board := g.boardRect(dst)
	if board.X < 0 || board.Bottom() > dst.Height() {
		dst.DrawOverlay(core.ColorYellow, "Window too small",
			fmt.Sprintf("Need %dx%d", board.W, board.Bottom()))
		return
	}

	dst.DrawBox(board, core.ColorGray)

	if g.engine.HasFood() {
		g.drawCell(dst, board, g.engine.Food(), FoodChar, core.ColorBrightRed)
	}

	// Body first so a colliding head stays visible
	body := g.engine.Snake()
	for i := len(body) - 1; i >= 1; i-- {
		g.drawCell(dst, board, body[i], BodyChar, core.ColorGreen)
	}
	headColor := core.ColorBrightGreen
	if !g.engine.Alive() {
		headColor = core.ColorRed
	}
	g.drawCell(dst, board, body[0], HeadChar, headColor)

	switch {
	case !g.engine.Alive():
		dst.DrawOverlay(core.ColorBrightYellow,
			"Game Over!",
			fmt.Sprintf("Score: %d (%s)", g.engine.Score(), g.engine.Cause()),
			"R: restart  Q: quit")
	case g.paused:
		dst.DrawOverlay(core.ColorCyan, "Paused", "Press P to continue")
	}
}

// drawCell draws a board cell, clipped to the inside of the frame.
func (g *Game) drawCell(dst *core.Screen, board core.Rect, p Point, r rune, c core.Color) {
	if p.X < 0 || p.X >= g.engine.Width() || p.Y < 0 || p.Y >= g.engine.Height() {
		return
	}
	x := board.X + 1 + p.X*cellWidth
	y := board.Y + 1 + p.Y
	dst.SetColor(x, y, r, c)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake - Score: %d  Length: %d  Heading: %s",
		g.engine.Score(), g.engine.Len(), g.engine.Direction())
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}
