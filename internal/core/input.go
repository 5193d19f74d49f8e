package core

// Action is a logical intent, abstracted from physical key presses and
// pointer gestures.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Up, W, swipe up
	ActionDash           // Space, D, tap
	ActionStart          // Enter on the title screen
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
	ActionConfirm        // Enter in menus
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDash:
		return "Dash"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one frame. Live play
// applies intents immediately; frames are used for scripted replays.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
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
