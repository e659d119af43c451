package replay

import (
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// Recorder collects the input of one round as it is played.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game that has just been Reset with cfg.
func NewRecorder(game registry.Game, cfg core.RuntimeConfig) *Recorder {
	rec := Recording{
		GameID:  game.ID(),
		Seed:    cfg.Seed,
		ScreenW: cfg.ScreenW,
		ScreenH: cfg.ScreenH,
	}
	if c, ok := game.(registry.Configurable); ok {
		if data, err := c.ConfigYAML(); err == nil {
			rec.Config = data
		}
	}
	return &Recorder{rec: rec}
}

// Record stores the frame about to be passed to Step. Call it once per tick.
func (r *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		r.rec.Events = append(r.rec.Events, frameEvent(r.rec.Ticks, in))
	}
	r.rec.Ticks++
}

// Resize stores a change of the screen the game renders into.
func (r *Recorder) Resize(w, h int) {
	r.rec.Events = append(r.rec.Events, Event{Tick: r.rec.Ticks, Resize: &Size{W: w, H: h}})
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() uint64 {
	return r.rec.Ticks
}

// Finish closes the recording with the final game state.
func (r *Recorder) Finish(state core.GameState) Recording {
	rec := r.rec
	rec.Events = append([]Event(nil), r.rec.Events...)
	rec.Outcome = OutcomeAbandoned
	if state.GameOver {
		rec.Outcome = state.Result
	}
	return rec
}
