// cmd/tidebug/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // Standard log for failures before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/tidebug/internal/app"
	"github.com/bethropolis/tidebug/internal/config"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/theme"
	"github.com/bethropolis/tidebug/internal/types"
)

var version = "dev"

func main() {
	flags := config.NewFlags(flag.CommandLine)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		stlog.Fatalf("Invalid arguments: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	logOutput, closeLog, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, version)

	sessionPath := *flags.SessionFilePath
	state, err := initialState(sessionPath, args)
	if err != nil {
		logger.Errorf("Error loading session: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	events := event.NewManager()
	tidebugApp, err := app.NewApp(app.Options{
		Config:          cfg,
		Store:           debugger.NewStore(state, events),
		Events:          events,
		Themes:          theme.NewManager(config.ThemesDir()),
		SessionPath:     sessionPath,
		StrictHighlight: *flags.StrictHighlight,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := tidebugApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// initialState loads the session file, or builds a session with one source
// per file argument and the first one selected.
func initialState(sessionPath string, files []string) (debugger.State, error) {
	if sessionPath != "" {
		return debugger.LoadSession(sessionPath)
	}

	sources := make([]debugger.Source, 0, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return debugger.State{}, fmt.Errorf("resolve %s: %w", file, err)
		}
		sources = append(sources, debugger.Source{
			ID:   filepath.Base(file),
			URL:  "file://" + abs,
			Path: abs,
		})
	}

	st := debugger.NewState(sources, nil)
	if len(sources) > 0 {
		loc := types.Location{SourceID: sources[0].ID, Line: 1}
		st = st.WithSelection(&loc)
	}
	return st, nil
}
