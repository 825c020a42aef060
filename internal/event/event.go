// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Debugger store
	TypeStateChanged // A new debugger state snapshot was published

	// Source view lifecycle
	TypeEditorAttached // A source editor became the live editor
	TypeEditorDetached // The live source editor was torn down

	// Input
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

// String returns a readable name for log output.
func (t Type) String() string {
	switch t {
	case TypeStateChanged:
		return "StateChanged"
	case TypeEditorAttached:
		return "EditorAttached"
	case TypeEditorDetached:
		return "EditorDetached"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// StateChangedData carries the revision of the snapshot that was published.
// Subscribers read the snapshot itself from the store.
type StateChangedData struct {
	Revision uint64
}

// EditorAttachedData names the source shown by the newly attached editor.
type EditorAttachedData struct {
	SourceID string
}

// EditorDetachedData names the source whose editor went away.
type EditorDetachedData struct {
	SourceID string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

type AppQuitData struct{}

type AppReadyData struct{}
