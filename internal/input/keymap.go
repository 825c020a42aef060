// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveTop
	p.keymap[tcell.KeyEnd] = ActionMoveBottom
	p.keymap[tcell.KeyTab] = ActionSwitchPane
	p.keymap[tcell.KeyEnter] = ActionSelectBreakpoint
	p.keymap[tcell.KeyDelete] = ActionRemoveBreakpoint
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit

	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['g'] = ActionMoveTop
	p.runeKeymap['G'] = ActionMoveBottom
	p.runeKeymap[' '] = ActionToggleBreakpoint
	p.runeKeymap['x'] = ActionRemoveBreakpoint
	p.runeKeymap['e'] = ActionCycleExceptionMode
	p.runeKeymap['1'] = ActionSetExceptionMode
	p.runeKeymap['2'] = ActionSetExceptionMode
	p.runeKeymap['3'] = ActionSetExceptionMode
	p.runeKeymap['y'] = ActionYankLocation
	p.runeKeymap['b'] = ActionAddBreakpoint
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap[':'] = ActionEnterCommandMode
}

// ProcessEvent maps a key event in normal mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	if key == tcell.KeyRune {
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action, Rune: ev.Rune()}
		}
		return ActionEvent{Action: ActionUnknown, Rune: ev.Rune()}
	}
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}
	return ActionEvent{Action: ActionUnknown}
}

// ProcessCommandEvent maps a key event while the command line is open.
func (p *InputProcessor) ProcessCommandEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionExecuteCommand}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionCancelCommand}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteCommandChar}
	case tcell.KeyRune:
		return ActionEvent{Action: ActionAppendCommand, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}
