package app

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/clipboard"
	"github.com/bethropolis/tidebug/internal/commands"
	"github.com/bethropolis/tidebug/internal/config"
	"github.com/bethropolis/tidebug/internal/core"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/highlight"
	"github.com/bethropolis/tidebug/internal/highlighter"
	"github.com/bethropolis/tidebug/internal/input"
	"github.com/bethropolis/tidebug/internal/linehighlight"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/modehandler"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/statusbar"
	"github.com/bethropolis/tidebug/internal/theme"
	"github.com/bethropolis/tidebug/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Pane identifies which side of the screen receives movement keys.
type Pane int

const (
	PaneSource Pane = iota
	PaneBreakpoints
)

// Options configures a new App.
type Options struct {
	Config *config.Config
	Store  *debugger.Store
	Events *event.Manager
	Themes *theme.Manager
	// Screen overrides the terminal screen, e.g. with a SimulationScreen.
	Screen tcell.Screen
	// SessionPath is where ":write" saves the session by default.
	SessionPath string
	// StrictHighlight makes highlight pairing errors panic.
	StrictHighlight bool
}

// App ties the debugger store to the terminal UI.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	eventManager *event.Manager
	store        *debugger.Store
	themeManager *theme.Manager
	statusBar    *statusbar.StatusBar
	modeHandler  *modehandler.ModeHandler
	clipboard    *clipboard.Manager
	highlighting *highlight.Manager
	plugins      *plugin.Manager
	api          *appDebuggerAPI

	// mu guards the UI state below. Store commands must not be issued while
	// holding it: the store dispatches StateChanged synchronously.
	mu            sync.Mutex
	highlightSync *linehighlight.Synchronizer
	view          breakpoints.View
	editors       map[string]*core.Editor
	editor        *core.Editor
	selectedLoc   string
	sourceName    string
	focus         Pane
	selected      int
	selectedID    string
	markers       map[int]tui.LineMarker
	sessionPath   string

	quit          chan struct{}
	redrawRequest chan struct{}
	closeOnce     sync.Once
}

// NewApp creates the application and subscribes it to store updates.
func NewApp(opts Options) (*App, error) {
	if opts.Store == nil || opts.Events == nil {
		return nil, fmt.Errorf("app: store and event manager are required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager("")
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, themes.Current())
	} else {
		tuiManager, err = tui.New(themes.Current())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize TUI: %w", err)
	}

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		eventManager:  opts.Events,
		store:         opts.Store,
		themeManager:  themes,
		clipboard:     clipboard.NewManager(cfg.Editor.SystemClipboard),
		sessionPath:   opts.SessionPath,
		highlightSync: linehighlight.NewSynchronizer(),
		editors:       make(map[string]*core.Editor),
		selected:      -1,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	a.highlightSync.Strict = opts.StrictHighlight
	a.highlightSync.OnViolation = func(err error) {
		logger.Errorf("Line highlight: %v", err)
	}

	highlighter.RegisterLanguages()
	a.highlighting = highlight.NewManager(highlighter.NewHighlighter(), a.requestRedraw)

	a.statusBar = statusbar.New(statusbar.ConfigFromTheme(themes.Current(), config.MessageTimeout))
	a.modeHandler = modehandler.New(modehandler.Config{
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
		Normal:         a.handleNormalAction,
	})
	a.api = newDebuggerAPI(a)
	commands.RegisterAppCommands(a.api, a.api)

	a.eventManager.Subscribe(event.TypeStateChanged, a.handleStateChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)

	a.plugins = plugin.NewManager()
	if err := registerPlugins(a.plugins); err != nil {
		logger.Warnf("Plugin registration: %v", err)
	}
	if err := a.plugins.InitializePlugins(a.api); err != nil {
		logger.Warnf("Plugin initialization: %v", err)
	}

	a.refresh()
	return a, nil
}

// Run starts the event loop and redraws until quit. The terminal is
// released before Run returns.
func (a *App) Run() error {
	defer a.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// Close detaches the source view and releases the terminal. Safe to call
// more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.plugins.ShutdownPlugins()
		a.highlighting.Shutdown()

		a.mu.Lock()
		a.highlightSync.Detach()
		detached := ""
		if a.editor != nil {
			detached = a.editor.SourceID()
			a.editor = nil
		}
		a.mu.Unlock()

		if detached != "" {
			a.eventManager.Dispatch(event.TypeEditorDetached, event.EditorDetachedData{SourceID: detached})
		}
		a.tuiManager.Close()
	})
}

// eventLoop handles terminal events, delegating keys to the mode handler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestRedraw sends a redraw signal without blocking.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// ModeHandler exposes the input router, mainly for tests.
func (a *App) ModeHandler() *modehandler.ModeHandler { return a.modeHandler }

// StatusBar exposes the status bar.
func (a *App) StatusBar() *statusbar.StatusBar { return a.statusBar }

// Editor returns the live source editor, nil when no source is shown.
func (a *App) Editor() *core.Editor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editor
}

// View returns the current breakpoint projection.
func (a *App) View() breakpoints.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Focus returns the focused pane.
func (a *App) Focus() Pane {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.focus
}

// Selected returns the selected breakpoint row, -1 for none.
func (a *App) Selected() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// editorFor returns the cached editor for a source, loading its text on
// first use. Sources without a readable file get an empty buffer.
// Called with a.mu held.
func (a *App) editorFor(src debugger.Source) *core.Editor {
	if ed, ok := a.editors[src.ID]; ok {
		return ed
	}

	buf := buffer.NewSliceBuffer()
	if src.Path != "" {
		if err := buf.Load(src.Path); err != nil {
			logger.Warnf("Failed to load source '%s': %v", src.Path, err)
		}
	}
	ed := core.NewEditor(src.ID, buf)
	ed.ScrollOff = a.cfg.Editor.ScrollOff
	ed.OnChange(a.requestRedraw)
	a.editors[src.ID] = ed

	if src.Path != "" {
		a.highlighting.Highlight(ed, src.Path)
	} else if src.URL != "" {
		a.highlighting.Highlight(ed, src.URL)
	}
	return ed
}
