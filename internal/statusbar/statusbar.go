// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidebug/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StylePaused    tcell.Style
	StyleMessage   tcell.Style
	StyleCommand   tcell.Style
	MessageTimeout time.Duration
}

// ConfigFromTheme builds a Config from the theme's status bar styles.
func ConfigFromTheme(t *theme.Theme, timeout time.Duration) Config {
	return Config{
		StyleDefault:   t.GetStyle(theme.StyleStatusBar),
		StylePaused:    t.GetStyle(theme.StyleStatusBarPaused),
		StyleMessage:   t.GetStyle(theme.StyleStatusBarMessage),
		StyleCommand:   t.GetStyle(theme.StyleStatusBarCommand),
		MessageTimeout: timeout,
	}
}

// StatusBar is the bottom line: the shown source, the pause state and the
// exception mode, or a temporary message or the command line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	source      string
	line        int // 1-based, 0 when unknown
	pausedAt    string
	isPaused    bool
	modeLabel   string
	editorMode  string
	commandLine string
	commandMode bool

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig replaces the styles, for example after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetSourceInfo updates the shown source label and cursor line.
func (sb *StatusBar) SetSourceInfo(source string, line int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.source = source
	sb.line = line
}

// SetPauseInfo updates the pause indicator. where is a location label.
func (sb *StatusBar) SetPauseInfo(paused bool, where string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.isPaused = paused
	sb.pausedAt = where
}

// SetExceptionMode updates the exception mode label ("None", "Uncaught", "All").
func (sb *StatusBar) SetExceptionMode(label string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.modeLabel = label
}

// SetEditorMode updates the displayed input mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetCommandLine shows ":"+text instead of the normal content while active.
func (sb *StatusBar) SetCommandLine(active bool, text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandMode = active
	sb.commandLine = text
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) defaultText() string {
	src := sb.source
	if src == "" {
		src = "[No Source]"
	}
	text := src
	if sb.line > 0 {
		text += fmt.Sprintf(":%d", sb.line)
	}

	if sb.isPaused {
		text += " -- PAUSED"
		if sb.pausedAt != "" {
			text += " at " + sb.pausedAt
		}
	} else {
		text += " -- running"
	}
	if sb.modeLabel != "" {
		text += " -- Exceptions: " + sb.modeLabel
	}
	if sb.editorMode != "" {
		text += " -- " + sb.editorMode
	}
	return text
}

// Text returns the line that Draw would render and its style.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.commandMode {
		return ":" + sb.commandLine, sb.config.StyleCommand
	}

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		return sb.tempMessage, sb.config.StyleMessage
	}
	if sb.isPaused {
		return sb.defaultText(), sb.config.StylePaused
	}
	return sb.defaultText(), sb.config.StyleDefault
}

// Draw renders the status bar on row y.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 || y < 0 {
		return
	}
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
