package replay

import (
	"fmt"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Player re-simulates a recording one tick at a time.
// It renders after every step, like the live runner, so clicks resolve
// against the same layout they were made on.
type Player struct {
	rec    Recording
	game   registry.Game
	screen *core.Screen
	state  core.GameState
	tick   uint64
	next   int // index of the next unapplied event
}

// NewPlayer creates a fresh game instance for the recording.
func NewPlayer(rec Recording) (*Player, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	game, err := registry.Create(rec.GameID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if len(rec.Config) > 0 {
		c, ok := game.(registry.Configurable)
		if !ok {
			return nil, fmt.Errorf("replay: game %q does not take a config", rec.GameID)
		}
		if err := c.UseConfigYAML(rec.Config); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
	}

	game.Reset(core.RuntimeConfig{
		ScreenW:  rec.ScreenW,
		ScreenH:  rec.ScreenH,
		TickRate: core.DefaultConfig().TickRate,
		Seed:     rec.Seed,
	})
	screen := core.NewScreen(rec.ScreenW, rec.ScreenH)
	game.Render(screen)

	return &Player{
		rec:    rec,
		game:   game,
		screen: screen,
		state:  game.State(),
	}, nil
}

// Advance runs one step. It returns false once the recording is exhausted.
func (p *Player) Advance() bool {
	if p.Done() {
		return false
	}

	in := core.NewInputFrame()
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].Tick == p.tick {
		ev := p.rec.Events[p.next]
		p.next++
		if ev.Resize != nil {
			p.screen.Resize(ev.Resize.W, ev.Resize.H)
			p.game.Render(p.screen)
			continue
		}
		// Validated in NewPlayer
		_ = ev.applyTo(&in)
	}

	p.state = p.game.Step(in).State
	p.game.Render(p.screen)
	p.tick++
	return true
}

// Done reports whether every recorded step has been replayed.
func (p *Player) Done() bool {
	return p.tick >= p.rec.Ticks
}

// Tick returns the number of steps replayed so far.
func (p *Player) Tick() uint64 {
	return p.tick
}

// Screen returns the frame after the last step.
func (p *Player) Screen() *core.Screen {
	return p.screen
}

// State returns the game state after the last step.
func (p *Player) State() core.GameState {
	return p.state
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// Result is the end state of a re-simulated round.
type Result struct {
	State  core.GameState
	Screen *core.Screen
	Ticks  uint64
}

// Outcome returns the outcome text in the form recordings store it.
func (r Result) Outcome() string {
	if !r.State.GameOver {
		return OutcomeAbandoned
	}
	return r.State.Result
}

// Run re-simulates the whole recording headlessly.
func Run(rec Recording) (Result, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return Result{}, err
	}
	for p.Advance() {
	}
	return Result{State: p.State(), Screen: p.Screen(), Ticks: p.Tick()}, nil
}
