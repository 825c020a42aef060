// internal/input/action.go
package input

// Action is an operation requested by a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit

	// --- Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveTop
	ActionMoveBottom

	// --- Panes ---
	ActionSwitchPane

	// --- Breakpoint pane ---
	ActionToggleBreakpoint
	ActionSelectBreakpoint
	ActionRemoveBreakpoint
	ActionCycleExceptionMode
	ActionSetExceptionMode // Rune '1'..'3' picks the mode
	ActionYankLocation

	// --- Source pane ---
	ActionAddBreakpoint // at the cursor line

	// --- Command mode ---
	ActionEnterCommandMode
	ActionExecuteCommand
	ActionCancelCommand
	ActionAppendCommand
	ActionDeleteCommandChar
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune
}
