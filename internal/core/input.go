package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveW            // a, Left
	ActionMoveE            // d, Right
	ActionMoveSW           // z
	ActionMoveSE           // x, Down
	ActionRotateCW         // e
	ActionRotateCCW        // w, Up
	ActionUndo             // u, ctrl+z
	ActionRedo             // ctrl+r, ctrl+y
	ActionUndoAll          // Home
	ActionConfirm          // Enter
	ActionBack             // b, Escape
	ActionRestart          // r
	ActionPause            // p, Space during playback
	ActionQuit             // q, ctrl+c
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveW:
		return "MoveW"
	case ActionMoveE:
		return "MoveE"
	case ActionMoveSW:
		return "MoveSW"
	case ActionMoveSE:
		return "MoveSE"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionUndoAll:
		return "UndoAll"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether a is one of the six unit commands.
func (a Action) IsMove() bool {
	return a >= ActionMoveW && a <= ActionRotateCCW
}

// InputFrame holds the actions triggered since the previous step, in the
// order they arrived. Moves are order-sensitive so a set would lose
// information.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to the frame. ActionNone is dropped.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether nothing was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next step.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	if f.Actions == nil {
		return InputFrame{}
	}
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
