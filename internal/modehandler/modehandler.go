// internal/modehandler/modehandler.go
package modehandler

import (
	"sync"

	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/input"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

// NormalHandler runs a normal-mode action and reports whether a redraw is needed.
type NormalHandler func(input.ActionEvent) bool

// ModeHandler routes key events by input mode and runs ':' commands.
type ModeHandler struct {
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	normal         NormalHandler

	currentMode InputMode
	cmdBuffer   string
	commands    map[string]CommandFunc
	quitOnce    sync.Once
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
	Normal         NormalHandler
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil || cfg.Normal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	mh := &ModeHandler{
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		normal:         cfg.Normal,
		currentMode:    ModeNormal,
		commands:       make(map[string]CommandFunc),
	}
	mh.statusBar.SetEditorMode(ModeNormal.String())
	return mh
}

// CurrentMode returns the active input mode.
func (mh *ModeHandler) CurrentMode() InputMode { return mh.currentMode }

// Quit signals the application to stop. Safe to call more than once.
func (mh *ModeHandler) Quit() {
	mh.quitOnce.Do(func() {
		mh.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
		close(mh.quitSignal)
	})
}

// HandleKeyEvent processes a key and reports whether a redraw is needed.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(mh.inputProcessor.ProcessEvent(ev))
	case ModeCommand:
		return mh.handleActionCommand(mh.inputProcessor.ProcessCommandEvent(ev))
	}
	logger.Warnf("Unknown input mode: %v", mh.currentMode)
	return false
}

func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.setMode(ModeCommand)
		return true
	case input.ActionQuit, input.ActionForceQuit:
		mh.Quit()
		return false
	case input.ActionUnknown:
		return false
	}
	return mh.normal(actionEvent)
}

func (mh *ModeHandler) setMode(mode InputMode) {
	mh.currentMode = mode
	mh.cmdBuffer = ""
	mh.statusBar.SetEditorMode(mode.String())
	mh.statusBar.SetCommandLine(mode == ModeCommand, "")
	logger.DebugTagf("input", "ModeHandler: entering %s mode", mode)
}
