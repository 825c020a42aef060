package modehandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/tidebug/internal/input"
	"github.com/bethropolis/tidebug/internal/logger"
)

// CommandFunc runs a ':' command with its whitespace-separated arguments.
type CommandFunc = func(args []string) error

// RegisterCommand adds a ':' command.
func (mh *ModeHandler) RegisterCommand(name string, fn CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("invalid command registration for %q", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	mh.commands[name] = fn
	return nil
}

// Commands returns the sorted registered command names.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteCommand runs a command line such as "break app.js:12".
func (mh *ModeHandler) ExecuteCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	fn, ok := mh.commands[fields[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", fields[0])
	}
	logger.DebugTagf("input", "Executing command %q", line)
	return fn(fields[1:])
}

func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionAppendCommand:
		mh.cmdBuffer += string(actionEvent.Rune)
	case input.ActionDeleteCommandChar:
		if mh.cmdBuffer == "" {
			mh.setMode(ModeNormal)
			return true
		}
		runes := []rune(mh.cmdBuffer)
		mh.cmdBuffer = string(runes[:len(runes)-1])
	case input.ActionCancelCommand:
		mh.setMode(ModeNormal)
		return true
	case input.ActionExecuteCommand:
		line := mh.cmdBuffer
		mh.setMode(ModeNormal)
		if err := mh.ExecuteCommand(line); err != nil {
			mh.statusBar.SetTemporaryMessage("Error: %v", err)
		}
		return true
	default:
		return false
	}
	mh.statusBar.SetCommandLine(true, mh.cmdBuffer)
	return true
}
