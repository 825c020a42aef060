// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// UI style names used by the panes.
const (
	StyleDefault               = "Default"
	StyleGutter                = "Gutter"
	StyleCursorLine            = "CursorLine"
	StyleHighlightLines        = "HighlightLines"
	StyleBreakpoint            = "Breakpoint"
	StyleBreakpointPaused      = "BreakpointPaused"
	StyleBreakpointDisabled    = "BreakpointDisabled"
	StyleBreakpointConditional = "BreakpointConditional"
	StylePaneHeader            = "PaneHeader"
	StylePaneInfo              = "PaneInfo"
	StylePaneBorder            = "PaneBorder"
	StyleStatusBar             = "StatusBar"
	StyleStatusBarPaused       = "StatusBarPaused"
	StyleStatusBarMessage      = "StatusBarMessage"
	StyleStatusBarCommand      = "StatusBarCommand"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// DevComfortDark is the built-in theme.
var DevComfortDark = newDevComfortDark()

func newDevComfortDark() Theme {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcOrange := tcell.NewHexColor(0xd19a66)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcMagenta := tcell.NewHexColor(0xc678dd)
	dcRed := tcell.NewHexColor(0xe06c75)
	dcHighlight := tcell.NewHexColor(0x3e4451)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	return Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			StyleDefault:    baseStyle,
			StyleGutter:     baseStyle.Foreground(dcComment),
			StyleCursorLine: baseStyle.Bold(true),
			// The debugger's highlighted line range
			StyleHighlightLines: baseStyle.Background(dcHighlight),

			StyleBreakpoint:            baseStyle.Foreground(dcBlue),
			StyleBreakpointPaused:      baseStyle.Background(dcYellow).Foreground(tcell.ColorBlack).Bold(true),
			StyleBreakpointDisabled:    baseStyle.Foreground(dcComment),
			StyleBreakpointConditional: baseStyle.Foreground(dcOrange),
			StylePaneHeader:            baseStyle.Foreground(dcCyan).Bold(true),
			StylePaneInfo:              baseStyle.Foreground(dcComment).Italic(true),
			StylePaneBorder:            baseStyle.Foreground(dcComment),

			StyleStatusBar:        tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			StyleStatusBarPaused:  tcell.StyleDefault.Background(dcBackground).Foreground(dcRed).Bold(true),
			StyleStatusBarMessage: tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
			StyleStatusBarCommand: tcell.StyleDefault.Background(dcBackground).Foreground(dcGreen).Bold(true),

			// --- Syntax Highlighting ---
			"keyword":  baseStyle.Foreground(dcBlue).Bold(true),
			"string":   baseStyle.Foreground(dcGreen),
			"comment":  baseStyle.Foreground(dcComment).Italic(true),
			"number":   baseStyle.Foreground(dcOrange),
			"type":     baseStyle.Foreground(dcCyan),
			"function": baseStyle.Foreground(dcYellow),
			"constant": baseStyle.Foreground(dcOrange),

			"string.special":   baseStyle.Foreground(dcMagenta),
			"type.builtin":     baseStyle.Foreground(dcCyan).Bold(true),
			"function.call":    baseStyle.Foreground(dcYellow),
			"function.method":  baseStyle.Foreground(dcYellow),
			"constant.builtin": baseStyle.Foreground(dcOrange).Bold(true),
		},
	}
}
