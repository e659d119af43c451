package core

// Phase is the platform-level state of a game session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseRestarting
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseRestarting:
		return "restarting"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Event drives transitions between phases.
type Event int

const (
	EventGameEnded Event = iota // the game reported a terminal state
	EventRestart                // the player asked for a new round
	EventRestarted              // the platform finished resetting the game
	EventQuit                   // the player asked to leave
)

// Transition returns the phase that follows p when ev occurs.
// Events that make no sense in the current phase leave it unchanged.
// PhaseExiting is absorbing.
func Transition(p Phase, ev Event) Phase {
	if p == PhaseExiting {
		return p
	}
	if ev == EventQuit {
		return PhaseExiting
	}

	switch p {
	case PhasePlaying:
		if ev == EventGameEnded {
			return PhaseGameOver
		}
	case PhaseGameOver:
		if ev == EventRestart {
			return PhaseRestarting
		}
	case PhaseRestarting:
		if ev == EventRestarted {
			return PhasePlaying
		}
	}
	return p
}
