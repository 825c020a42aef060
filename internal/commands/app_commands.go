package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/types"
)

// RegisterAppCommands registers the built-in ':' commands.
func RegisterAppCommands(api plugin.DebuggerAPI, themeAPI ThemeAPI) {
	RegisterDebuggerCommands(api)
	RegisterThemeCommands(api, themeAPI)
}

// RegisterDebuggerCommands registers the breakpoint, pause and highlight
// commands.
func RegisterDebuggerCommands(api plugin.DebuggerAPI) {
	store := api.Store()
	cmds := []struct {
		name string
		fn   plugin.CommandFunc
	}{
		{"break", func(args []string) error { return cmdBreak(api, args) }},
		{"delete", locationCommand(api, store.RemoveBreakpoint, "Removed")},
		{"enable", locationCommand(api, store.EnableBreakpoint, "Enabled")},
		{"disable", locationCommand(api, store.DisableBreakpoint, "Disabled")},
		{"exceptions", func(args []string) error { return cmdExceptions(api, args) }},
		{"pause", func(args []string) error { return cmdPause(api, args) }},
		{"resume", func(args []string) error { return store.Resume() }},
		{"highlight", func(args []string) error { return cmdHighlight(api, args) }},
		{"nohighlight", func(args []string) error { return store.ClearHighlight() }},
		{"open", func(args []string) error { return cmdOpen(api, args) }},
		{"source", func(args []string) error { return cmdSource(api, args) }},
		{"write", func(args []string) error { return cmdWrite(api, args) }},
		{"q", quit(api)},
		{"quit", quit(api)},
	}
	for _, c := range cmds {
		if err := api.RegisterCommand(c.name, c.fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", c.name, err)
		}
	}
}

// cmdBreak handles ":break <source:line[:col]> [condition...]".
func cmdBreak(api plugin.DebuggerAPI, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <source:line[:column]> [condition]")
	}
	loc, err := types.ParseLocation(args[0])
	if err != nil {
		return err
	}
	var condition *string
	if len(args) > 1 {
		c := strings.Join(args[1:], " ")
		condition = &c
	}
	if err := api.Store().AddBreakpoint(loc, condition); err != nil {
		return err
	}
	api.SetStatusMessage("Breakpoint set at %s", loc)
	return nil
}

// locationCommand builds a command that applies op to the location given as
// its argument, or to the selected breakpoint when called without one.
func locationCommand(api plugin.DebuggerAPI, op func(types.Location) error, verb string) plugin.CommandFunc {
	return func(args []string) error {
		var loc types.Location
		if len(args) > 0 {
			parsed, err := types.ParseLocation(args[0])
			if err != nil {
				return err
			}
			loc = parsed
		} else {
			bp, ok := api.SelectedBreakpoint()
			if !ok {
				return fmt.Errorf("no breakpoint selected")
			}
			loc = bp.Location
		}
		if err := op(loc); err != nil {
			return err
		}
		api.SetStatusMessage("%s %s", verb, loc)
		return nil
	}
}

// cmdExceptions shows or sets the pause-on-exceptions mode.
func cmdExceptions(api plugin.DebuggerAPI, args []string) error {
	if len(args) == 0 {
		mode := api.CurrentMode()
		api.SetStatusMessage("%s (%s)", breakpoints.HeaderText(mode), mode.Mode)
		return nil
	}
	mode, err := breakpoints.ParseMode(args[0])
	if err != nil {
		return err
	}
	return breakpoints.SetPauseMode(api.Store(), mode)
}

// cmdPause handles ":pause <source:line[:col]> [interrupted]".
func cmdPause(api plugin.DebuggerAPI, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pause <source:line[:column]> [interrupted]")
	}
	loc, err := types.ParseLocation(args[0])
	if err != nil {
		return err
	}
	interrupted := len(args) > 1 && args[1] == "interrupted"
	return api.Store().Pause(loc, interrupted)
}

// cmdHighlight handles ":highlight <start> [end]". A single line highlights
// start..start+1.
func cmdHighlight(api plugin.DebuggerAPI, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: highlight <start> [end]")
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid start line %q", args[0])
	}
	end := start + 1
	if len(args) == 2 {
		if end, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid end line %q", args[1])
		}
	}
	return api.Store().HighlightLineRange(types.LineRange{Start: start, End: end})
}

// cmdOpen handles ":open <source> [line]".
func cmdOpen(api plugin.DebuggerAPI, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: open <source> [line]")
	}
	line := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid line %q", args[1])
		}
		line = n
	}
	return api.Store().SelectSource(args[0], line)
}

// cmdSource handles ":source <id> <path> [url]". Without a url the file's
// absolute path is used as a file:// url.
func cmdSource(api plugin.DebuggerAPI, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: source <id> <path> [url]")
	}
	src := debugger.Source{ID: args[0], Path: args[1]}
	if len(args) == 3 {
		src.URL = args[2]
	} else {
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.ID, err)
		}
		src.URL = "file://" + filepath.ToSlash(abs)
	}
	if err := api.Store().AddSource(src); err != nil {
		return err
	}
	api.SetStatusMessage("Source %s loaded", src.ID)
	return nil
}

// cmdWrite saves the session to the given path or the loaded session file.
func cmdWrite(api plugin.DebuggerAPI, args []string) error {
	path := api.SessionPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no session file; use :write <path>")
	}
	if err := debugger.SaveSession(path, api.State()); err != nil {
		return err
	}
	api.SetSessionPath(path)
	api.SetStatusMessage("Session written to %s", path)
	return nil
}

func quit(api plugin.DebuggerAPI) plugin.CommandFunc {
	return func(args []string) error {
		api.Quit()
		return nil
	}
}
