package debugger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

// SessionFile is the TOML layout of a saved debugger session.
type SessionFile struct {
	PauseOnExceptions      bool                `toml:"pause_on_exceptions"`
	IgnoreCaughtExceptions bool                `toml:"ignore_caught_exceptions"`
	Sources                []SessionSource     `toml:"sources"`
	Breakpoints            []SessionBreakpoint `toml:"breakpoints"`
	Pause                  *SessionPause       `toml:"pause"`
	Highlight              *SessionRange       `toml:"highlight"`
	Select                 *SessionLocation    `toml:"select"`
}

// SessionSource is one [[sources]] entry. Path is resolved relative to the
// session file.
type SessionSource struct {
	ID   string `toml:"id"`
	URL  string `toml:"url"`
	Path string `toml:"path"`
}

// SessionBreakpoint is one [[breakpoints]] entry.
type SessionBreakpoint struct {
	Source    string  `toml:"source"`
	Line      int     `toml:"line"`
	Column    int     `toml:"column"`
	Disabled  bool    `toml:"disabled"`
	Condition *string `toml:"condition"`
	Text      *string `toml:"text"`
}

// SessionPause is the optional [pause] table.
type SessionPause struct {
	Source      string `toml:"source"`
	Line        int    `toml:"line"`
	Column      int    `toml:"column"`
	Interrupted bool   `toml:"interrupted"`
}

// SessionRange is the optional [highlight] table.
type SessionRange struct {
	Start int `toml:"start"`
	End   int `toml:"end"`
}

// SessionLocation is the optional [select] table.
type SessionLocation struct {
	Source string `toml:"source"`
	Line   int    `toml:"line"`
}

// LoadSession decodes a session file into a state snapshot.
func LoadSession(path string) (State, error) {
	var sf SessionFile
	meta, err := toml.DecodeFile(path, &sf)
	if err != nil {
		return State{}, fmt.Errorf("failed to parse session file '%s': %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Session file '%s': unrecognized keys: %v", path, undecoded)
	}
	return sf.State(filepath.Dir(path))
}

// State converts the decoded file into a snapshot. baseDir resolves
// relative source paths. Breakpoints without text get the source line at
// their location when the source file is readable.
func (sf SessionFile) State(baseDir string) (State, error) {
	sources := make([]Source, 0, len(sf.Sources))
	buffers := make(map[string]*buffer.SliceBuffer)
	for i, s := range sf.Sources {
		if s.ID == "" {
			return State{}, fmt.Errorf("sources[%d]: %w: empty id", i, ErrInvalidLocation)
		}
		src := Source{ID: s.ID, URL: s.URL, Path: s.Path}
		if src.Path != "" && !filepath.IsAbs(src.Path) {
			src.Path = filepath.Join(baseDir, src.Path)
		}
		if src.Path != "" {
			buf := buffer.NewSliceBuffer()
			if err := buf.Load(src.Path); err != nil {
				logger.Warnf("Session: source '%s' text unavailable: %v", src.ID, err)
			} else {
				buffers[src.ID] = buf
			}
		}
		sources = append(sources, src)
	}

	bps := make([]Breakpoint, 0, len(sf.Breakpoints))
	for i, b := range sf.Breakpoints {
		loc := types.Location{SourceID: b.Source, Line: b.Line, Column: b.Column}
		if err := validateLocation(loc); err != nil {
			return State{}, fmt.Errorf("breakpoints[%d]: %w", i, err)
		}
		bp := Breakpoint{Location: loc, Disabled: b.Disabled, Condition: b.Condition, Text: b.Text}
		if bp.Text == nil {
			if buf, ok := buffers[b.Source]; ok {
				if line, err := buf.Line(b.Line - 1); err == nil {
					text := string(line)
					bp.Text = &text
				}
			}
		}
		bps = append(bps, bp)
	}

	st := NewState(sources, bps).WithExceptionFlags(sf.PauseOnExceptions, sf.IgnoreCaughtExceptions)

	if p := sf.Pause; p != nil {
		loc := types.Location{SourceID: p.Source, Line: p.Line, Column: p.Column}
		if err := validateLocation(loc); err != nil {
			return State{}, fmt.Errorf("pause: %w", err)
		}
		st = st.WithPause(&Pause{IsInterrupted: p.Interrupted, Frame: &Frame{Location: loc}})
	}
	if h := sf.Highlight; h != nil {
		if h.Start > 0 && h.Start == h.End {
			logger.Warnf("Session '%s': highlight %d-%d paints no line; use end = %d to mark line %d", baseDir, h.Start, h.End, h.Start+1, h.Start)
		}
		st = st.WithHighlight(types.LineRange{Start: h.Start, End: h.End})
	}
	if sel := sf.Select; sel != nil {
		if _, ok := st.Source(sel.Source); !ok {
			return State{}, fmt.Errorf("select %q: %w", sel.Source, ErrSourceNotFound)
		}
		loc := types.Location{SourceID: sel.Source, Line: sel.Line}
		st = st.WithSelection(&loc)
	}
	return st, nil
}

// SaveSession writes the breakpoints, sources and exception flags of st.
func SaveSession(path string, st State) error {
	sf := SessionFile{
		PauseOnExceptions:      st.ShouldPauseOnExceptions,
		IgnoreCaughtExceptions: st.ShouldIgnoreCaughtExceptions,
	}
	for _, src := range st.Sources() {
		sf.Sources = append(sf.Sources, SessionSource{ID: src.ID, URL: src.URL, Path: src.Path})
	}
	for _, bp := range st.Breakpoints() {
		sf.Breakpoints = append(sf.Breakpoints, SessionBreakpoint{
			Source:    bp.Location.SourceID,
			Line:      bp.Location.Line,
			Column:    bp.Location.Column,
			Disabled:  bp.Disabled,
			Condition: bp.Condition,
			Text:      bp.Text,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create session file '%s': %w", path, err)
	}

	if err := toml.NewEncoder(f).Encode(sf); err != nil {
		f.Close()
		return fmt.Errorf("failed to write session file '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close session file '%s': %w", path, err)
	}
	return nil
}
