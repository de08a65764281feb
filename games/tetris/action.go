package tetris

// Action names an engine command. Drivers translate their own input events
// (key presses, WebSocket messages) into actions.
type Action string

const (
	ActionLeft   Action = "left"
	ActionRight  Action = "right"
	ActionDown   Action = "down"
	ActionDrop   Action = "drop"
	ActionRotate Action = "rotate"
	ActionPause  Action = "pause"
	ActionReset  Action = "reset"

	// ActionQuit ends a session. Drivers handle it; the engine ignores it.
	ActionQuit Action = "quit"
)

// Apply runs the command named by a and reports whether the name was known.
// Whether the command itself succeeded is not reported.
func (t *Tetris) Apply(a Action) bool {
	switch a {
	case ActionLeft:
		t.MoveLeft()
	case ActionRight:
		t.MoveRight()
	case ActionDown:
		t.SoftDrop()
	case ActionDrop:
		t.HardDrop()
	case ActionRotate:
		t.Rotate()
	case ActionPause:
		t.TogglePause()
	case ActionReset:
		t.Reset()
	default:
		return false
	}
	return true
}
