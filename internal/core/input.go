package core

// Action is a semantic command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionJump // the tap that makes Santa ascend
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Tap",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions pressed since the previous tick. It is a
// small value type, so copies are independent snapshots.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns a frame with no actions.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records a. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was pressed during the frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the recorded actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f *InputFrame) Clear() {
	f.bits = 0
}
