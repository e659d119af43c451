package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter, Space - place a mark / select
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

// String returns the stable lowercase name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame represents the input of the local player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Order lists the triggered actions in press order, each once.
	Order []Action

	// Digit is the last digit key pressed this frame (1-9), or 0.
	Digit int

	// Click is the screen position of a mouse click this frame, if any.
	Click *Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if !f.Actions[a] {
		f.Order = append(f.Order, a)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetClick records a mouse click at screen coordinates (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Point{X: x, Y: y}
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Digit == 0 && f.Click == nil
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Order = f.Order[:0]
	f.Digit = 0
	f.Click = nil
}
