package core

// Action represents a semantic scene action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionForward          // W, Up arrow - walk forward
	ActionBackward         // S, Down arrow - walk backward
	ActionTurnLeft         // A, Left arrow - rotate counter-clockwise
	ActionTurnRight        // D, Right arrow - rotate clockwise
	ActionLight            // L - place or pick up a light under the viewer
	ActionBoost            // F - consume a vision boost
	ActionReveal           // M - toggle map reveal
	ActionResetMap         // X - forget explored cells
	ActionGhost            // G - toggle wall pass-through vision
	ActionPause            // P - pause/unpause
	ActionRestart          // R - restart the run
	ActionBack             // B, Escape - back to menu
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionLight:
		return "Light"
	case ActionBoost:
		return "Boost"
	case ActionReveal:
		return "Reveal"
	case ActionResetMap:
		return "ResetMap"
	case ActionGhost:
		return "Ghost"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
