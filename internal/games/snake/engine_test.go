package snake

import (
	"math/rand"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))
}

func TestEngineInitialState(t *testing.T) {
	e := newTestEngine(1)

	if e.Head() != (Point{X: 15, Y: 10}) {
		t.Errorf("initial head = %+v, expected (15, 10)", e.Head())
	}
	if e.Len() != 1 {
		t.Errorf("initial length = %d, expected 1", e.Len())
	}
	if e.Direction() != DirUp {
		t.Errorf("initial direction = %s, expected up", e.Direction())
	}
	if e.Score() != 0 || !e.Alive() || e.Cause() != CauseNone {
		t.Errorf("unexpected initial state: score=%d alive=%v cause=%v", e.Score(), e.Alive(), e.Cause())
	}
	if e.Occupies(e.Food()) {
		t.Error("food placed on the snake")
	}
	if !e.inBounds(e.Food()) {
		t.Errorf("food out of bounds: %+v", e.Food())
	}
}

func TestStepMovesUpWithoutGrowing(t *testing.T) {
	e := newTestEngine(2)
	e.food = Point{X: 0, Y: 0}

	e.Step()

	if e.Head() != (Point{X: 15, Y: 9}) {
		t.Errorf("head after step = %+v, expected (15, 9)", e.Head())
	}
	if e.Len() != 1 {
		t.Errorf("length after step = %d, expected 1", e.Len())
	}
	if !e.Alive() {
		t.Error("snake should be alive")
	}
}

func TestReverseDirectionIgnored(t *testing.T) {
	e := newTestEngine(3)

	e.SetDirection(DirDown)
	if e.Direction() != DirUp {
		t.Errorf("reversal accepted: direction = %s", e.Direction())
	}

	e.SetDirection(DirLeft)
	if e.Direction() != DirLeft {
		t.Fatalf("valid turn rejected: direction = %s", e.Direction())
	}

	// Right reverses the pending direction, Down reverses the last move
	e.SetDirection(DirRight)
	if e.Direction() != DirLeft {
		t.Errorf("reversal of pending direction accepted: direction = %s", e.Direction())
	}
	e.SetDirection(DirDown)
	if e.Direction() != DirLeft {
		t.Errorf("reversal of last move accepted: direction = %s", e.Direction())
	}

	e.food = Point{X: 0, Y: 0}
	e.Step()
	e.SetDirection(DirDown)
	if e.Direction() != DirDown {
		t.Errorf("turn after move rejected: direction = %s", e.Direction())
	}
}

func TestTwoTurnsBetweenMovesCannotFold(t *testing.T) {
	e := newTestEngine(4)
	e.food = Point{X: 0, Y: 0}
	e.snake = []Point{{X: 5, Y: 5}, {X: 5, Y: 6}}

	// Down is not opposite of the pending Left, but the snake still faces up
	e.SetDirection(DirLeft)
	e.SetDirection(DirDown)
	if e.Direction() != DirLeft {
		t.Fatalf("direction = %s, expected left", e.Direction())
	}

	e.Step()
	if !e.Alive() || e.Head() != (Point{X: 4, Y: 5}) {
		t.Errorf("snake should have turned left: alive=%v head=%+v", e.Alive(), e.Head())
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	e := newTestEngine(4)
	head := e.Head()
	e.food = Point{X: head.X, Y: head.Y - 1}

	e.Step()

	if e.Len() != 2 {
		t.Errorf("length after eating = %d, expected 2", e.Len())
	}
	if e.Score() != 1 {
		t.Errorf("score after eating = %d, expected 1", e.Score())
	}
	if e.Occupies(e.Food()) {
		t.Errorf("relocated food %+v lies on the snake", e.Food())
	}
	if !e.HasFood() || !e.inBounds(e.Food()) {
		t.Errorf("relocated food invalid: %+v", e.Food())
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		start Point
		dir   Direction
	}{
		{"top", Point{X: 5, Y: 0}, DirUp},
		{"bottom", Point{X: 5, Y: DefaultHeight - 1}, DirDown},
		{"left", Point{X: 0, Y: 5}, DirLeft},
		{"right", Point{X: DefaultWidth - 1, Y: 5}, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(5)
			e.snake = []Point{tc.start}
			e.dir, e.heading = tc.dir, tc.dir
			e.food = Point{X: 10, Y: 10}

			e.Step()

			if e.Alive() {
				t.Fatal("snake should die at the wall")
			}
			if e.Cause() != CauseWall {
				t.Errorf("cause = %v, expected wall", e.Cause())
			}
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine(6)
	e.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	e.dir, e.heading = DirRight, DirRight
	e.food = Point{X: 0, Y: 0}

	e.Step()

	if e.Alive() {
		t.Fatal("snake should die when running into its body")
	}
	if e.Cause() != CauseSelf {
		t.Errorf("cause = %v, expected self", e.Cause())
	}
}

func TestMovingIntoVacatedTailIsSafe(t *testing.T) {
	e := newTestEngine(7)
	e.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5}, // Tail, leaves this tick
	}
	e.dir, e.heading = DirRight, DirRight
	e.food = Point{X: 0, Y: 0}

	e.Step()

	if !e.Alive() {
		t.Fatal("chasing the tail should not kill the snake")
	}
	if e.Head() != (Point{X: 6, Y: 5}) || e.Len() != 4 {
		t.Errorf("head = %+v len = %d", e.Head(), e.Len())
	}
}

func TestDeadEngineIsTerminal(t *testing.T) {
	e := newTestEngine(8)
	e.snake = []Point{{X: 0, Y: 0}}
	e.dir, e.heading = DirUp, DirUp
	e.food = Point{X: 10, Y: 10}
	e.Step()

	before := e.Snake()
	e.SetDirection(DirLeft)
	e.Step()

	if e.Direction() != DirUp {
		t.Error("dead engine accepted a direction change")
	}
	if e.Ticks() != 1 || len(e.Snake()) != len(before) || e.Snake()[0] != before[0] {
		t.Error("dead engine kept moving")
	}

	e.Reset()
	if !e.Alive() || e.Head() != (Point{X: 15, Y: 10}) || e.Score() != 0 {
		t.Error("Reset should restore the initial state")
	}
}

func TestFillingTheBoardLeavesNoFood(t *testing.T) {
	e := NewEngine(2, 1, rand.New(rand.NewSource(9)))
	if e.Head() != (Point{X: 1, Y: 0}) || e.Food() != (Point{X: 0, Y: 0}) {
		t.Fatalf("unexpected start: head %+v food %+v", e.Head(), e.Food())
	}

	e.SetDirection(DirLeft)
	e.Step()

	if !e.Alive() || e.Score() != 1 || e.Len() != 2 {
		t.Fatalf("expected to eat: alive=%v score=%d len=%d", e.Alive(), e.Score(), e.Len())
	}
	if e.HasFood() || e.Food() != NoFood {
		t.Errorf("full board should have no food, got %+v", e.Food())
	}
}

func TestFoodPlacementIsUniform(t *testing.T) {
	e := NewEngine(3, 1, rand.New(rand.NewSource(10)))
	counts := map[Point]int{}

	const rounds = 2000
	for range rounds {
		e.Reset()
		counts[e.Food()]++
	}

	if counts[e.Head()] != 0 {
		t.Error("food placed under the head")
	}
	for _, p := range []Point{{X: 0, Y: 0}, {X: 2, Y: 0}} {
		if share := float64(counts[p]) / rounds; share < 0.4 || share > 0.6 {
			t.Errorf("food share at %+v = %.2f, expected about 0.5", p, share)
		}
	}
}

// TestRandomPlayInvariants drives the engine with random turns and checks the
// invariants after every move.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		e := NewEngine(12, 8, rand.New(rand.NewSource(seed)))
		moves := rand.New(rand.NewSource(seed + 100))

		for range 500 {
			if !e.Alive() {
				e.Reset()
			}
			e.SetDirection(Direction(moves.Intn(4)))

			lenBefore, scoreBefore := e.Len(), e.Score()
			ate := e.Head().Add(e.Direction().Vector()) == e.Food()
			e.Step()

			if ate {
				if e.Len() != lenBefore+1 || e.Score() != scoreBefore+1 {
					t.Fatalf("seed %d: eating should grow by one and score one", seed)
				}
			} else if e.Len() != lenBefore || e.Score() != scoreBefore {
				t.Fatalf("seed %d: length or score changed without food", seed)
			}

			if !e.Alive() {
				continue
			}
			seen := map[Point]bool{}
			for _, seg := range e.Snake() {
				if seen[seg] {
					t.Fatalf("seed %d: duplicate segment %+v", seed, seg)
				}
				seen[seg] = true
			}
			if e.HasFood() && seen[e.Food()] {
				t.Fatalf("seed %d: food %+v on the snake", seed, e.Food())
			}
		}
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite is not an involution for %s", d)
		}
		sum := d.Vector().Add(d.Opposite().Vector())
		if sum != (Point{}) {
			t.Errorf("%s and its opposite do not cancel: %+v", d, sum)
		}
	}
}
