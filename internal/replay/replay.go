// Package replay records the input of a round and re-simulates it.
//
// Games are deterministic given their seed, config and input frames, so a
// recording only keeps those plus terminal resizes, which change where mouse
// clicks land.
package replay

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// OutcomeAbandoned is stored for rounds that ended before game over.
const OutcomeAbandoned = "abandoned"

// Size is a terminal size in cells.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Event is something that happened before the simulation step numbered Tick.
// Either Resize is set, or the event carries the input frame of that step.
type Event struct {
	Tick    uint64      `yaml:"tick"`
	Actions []string    `yaml:"actions,omitempty,flow"`
	Digit   int         `yaml:"digit,omitempty"`
	Click   *core.Point `yaml:"click,omitempty,flow"`
	Resize  *Size       `yaml:"resize,omitempty,flow"`
}

// frameEvent converts an input frame to an event. Actions keep press order,
// which decides the last direction of a frame.
func frameEvent(tick uint64, in core.InputFrame) Event {
	ev := Event{Tick: tick, Digit: in.Digit}
	for _, a := range in.Order {
		ev.Actions = append(ev.Actions, a.String())
	}
	if in.Click != nil {
		c := *in.Click
		ev.Click = &c
	}
	return ev
}

// applyTo merges the event's input into a frame.
func (e Event) applyTo(in *core.InputFrame) error {
	for _, name := range e.Actions {
		a, ok := core.ParseAction(name)
		if !ok {
			return fmt.Errorf("replay: unknown action %q at tick %d", name, e.Tick)
		}
		in.Set(a)
	}
	if e.Digit != 0 {
		in.Digit = e.Digit
	}
	if e.Click != nil {
		in.SetClick(e.Click.X, e.Click.Y)
	}
	return nil
}

// Recording is everything needed to re-simulate one round.
type Recording struct {
	ID        int64
	GameID    string
	Seed      int64
	ScreenW   int
	ScreenH   int
	Ticks     uint64 // Simulation steps in the round
	Config    []byte // Effective game config as YAML, empty if the game has none
	Events    []Event
	Outcome   string // core.GameState.Result at the end, or OutcomeAbandoned
	CreatedAt time.Time
}

// Validate checks that the recording can be played back.
func (r Recording) Validate() error {
	if r.GameID == "" {
		return fmt.Errorf("replay: missing game id")
	}
	if r.ScreenW <= 0 || r.ScreenH <= 0 {
		return fmt.Errorf("replay: invalid screen size %dx%d", r.ScreenW, r.ScreenH)
	}

	var last uint64
	for i, ev := range r.Events {
		if ev.Tick < last {
			return fmt.Errorf("replay: event %d out of order (tick %d after %d)", i, ev.Tick, last)
		}
		if ev.Tick >= r.Ticks && ev.Resize == nil {
			return fmt.Errorf("replay: event %d at tick %d is past the end (%d ticks)", i, ev.Tick, r.Ticks)
		}
		if ev.Resize != nil && (ev.Resize.W <= 0 || ev.Resize.H <= 0) {
			return fmt.Errorf("replay: event %d has invalid size %dx%d", i, ev.Resize.W, ev.Resize.H)
		}
		var scratch core.InputFrame
		if err := ev.applyTo(&scratch); err != nil {
			return err
		}
		last = ev.Tick
	}
	return nil
}

// EncodeEvents serializes events for storage.
func EncodeEvents(events []Event) ([]byte, error) {
	if len(events) == 0 {
		return []byte{}, nil
	}
	data, err := yaml.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode events: %w", err)
	}
	return data, nil
}

// DecodeEvents is the inverse of EncodeEvents.
func DecodeEvents(data []byte) ([]Event, error) {
	var events []Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("replay: cannot decode events: %w", err)
	}
	return events, nil
}
