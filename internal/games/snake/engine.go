package snake

import (
	"math/rand"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// Default board size in cells.
const (
	DefaultWidth  = 30
	DefaultHeight = 20
)

// Point is a cell coordinate on the board.
type Point = core.Point

// NoFood marks the food position when the board has no free cell left.
var NoFood = Point{X: -1, Y: -1}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vector returns the one-cell step for the direction.
func (d Direction) Vector() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DeathCause tells why the snake died.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseWall
	CauseSelf
)

func (c DeathCause) String() string {
	switch c {
	case CauseWall:
		return "hit wall"
	case CauseSelf:
		return "hit itself"
	default:
		return ""
	}
}

// Engine holds the rules state of one Snake board.
// It is not safe for concurrent use.
type Engine struct {
	width  int
	height int
	rng    *rand.Rand

	snake   []Point // head at index 0
	dir     Direction
	heading Direction // direction of the last completed move
	food    Point
	score   int
	alive   bool
	cause   DeathCause
	ticks   uint64
}

// NewEngine creates an engine for a width×height board and resets it.
func NewEngine(width, height int, rng *rand.Rand) *Engine {
	e := &Engine{
		width:  max(width, 1),
		height: max(height, 1),
		rng:    rng,
	}
	e.Reset()
	return e
}

// Reset puts a one-segment snake in the middle of the board heading up,
// places food and clears the score.
func (e *Engine) Reset() {
	e.snake = []Point{{X: e.width / 2, Y: e.height / 2}}
	e.dir = DirUp
	e.heading = DirUp
	e.score = 0
	e.alive = true
	e.cause = CauseNone
	e.ticks = 0
	e.placeFood()
}

// SetDirection changes the direction used by the next Step.
// Reversals are dropped silently: d is ignored if it is the opposite of the
// pending direction or of the direction the snake last moved in. The second
// check is stricter than "not opposite of the current direction": it stops
// two turns between moves (Left then Down while heading Up) from folding the
// snake back onto its neck.
func (e *Engine) SetDirection(d Direction) {
	if !e.alive {
		return
	}
	if d == e.dir.Opposite() || d == e.heading.Opposite() {
		return
	}
	e.dir = d
}

// Step advances the board by one tick.
func (e *Engine) Step() {
	if !e.alive {
		return
	}
	e.ticks++

	head := e.snake[0].Add(e.dir.Vector())
	e.heading = e.dir
	e.snake = append([]Point{head}, e.snake...)

	if head == e.food {
		e.score++
		e.placeFood()
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	switch {
	case !e.inBounds(head):
		e.die(CauseWall)
	case e.hitsBody(head):
		e.die(CauseSelf)
	}
}

func (e *Engine) die(cause DeathCause) {
	e.alive = false
	e.cause = cause
}

func (e *Engine) inBounds(p Point) bool {
	return p.X >= 0 && p.X < e.width && p.Y >= 0 && p.Y < e.height
}

// hitsBody reports whether p overlaps any segment except the head.
func (e *Engine) hitsBody(p Point) bool {
	for _, seg := range e.snake[1:] {
		if seg == p {
			return true
		}
	}
	return false
}

// placeFood samples the food cell uniformly from the free cells.
func (e *Engine) placeFood() {
	occupied := make(map[Point]bool, len(e.snake))
	for _, seg := range e.snake {
		occupied[seg] = true
	}

	free := make([]Point, 0, e.width*e.height-len(occupied))
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			p := Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		e.food = NoFood
		return
	}
	e.food = free[e.rng.Intn(len(free))]
}

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []Point {
	out := make([]Point, len(e.snake))
	copy(out, e.snake)
	return out
}

// Head returns the head segment.
func (e *Engine) Head() Point {
	return e.snake[0]
}

// Len returns the number of segments.
func (e *Engine) Len() int {
	return len(e.snake)
}

// Occupies reports whether any segment is on p.
func (e *Engine) Occupies(p Point) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Food returns the food position, or NoFood.
func (e *Engine) Food() Point {
	return e.food
}

// HasFood reports whether food is on the board.
func (e *Engine) HasFood() bool {
	return e.food != NoFood
}

// Score returns the number of food items eaten.
func (e *Engine) Score() int {
	return e.score
}

// Alive reports whether the snake is still playing.
func (e *Engine) Alive() bool {
	return e.alive
}

// Cause returns why the snake died, or CauseNone while alive.
func (e *Engine) Cause() DeathCause {
	return e.cause
}

// Direction returns the direction the next Step will use.
func (e *Engine) Direction() Direction {
	return e.dir
}

// Ticks returns the number of moves made since Reset.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Width returns the board width in cells.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the board height in cells.
func (e *Engine) Height() int {
	return e.height
}
