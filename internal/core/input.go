package core

// Action represents a semantic game action, abstracted from physical input.
// Drivers translate keys, mouse clicks or bot decisions into actions.
type Action uint8

const (
	ActionNone    Action = iota
	ActionFlap           // Space, Up, W, left click - the single trigger event
	ActionPause          // P - pause/unpause while playing
	ActionRestart        // R - reset the world
	ActionConfirm        // Enter - confirm selection or submit name
	ActionBack           // B, Esc - back to menu
	ActionQuit           // Q, Ctrl+C - exit
	ActionUp             // Up, K - menu navigation
	ActionDown           // Down, J - menu navigation
	ActionScores         // L, Tab - open leaderboard

	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionScores:
		return "Scores"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
// It is a small value type so drivers can buffer and copy it freely.
type InputFrame struct {
	actions uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// InputOf creates a frame with the given actions set.
func InputOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.actions |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return f.actions&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.actions == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
