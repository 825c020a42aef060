package highlight

import (
	"context"
	"sync"

	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/highlighter"
	"github.com/bethropolis/tidebug/internal/logger"
)

// EditorInterface is what the manager needs from a source view.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	UpdateSyntaxHighlights(highlights highlighter.HighlightResult)
}

// job is a running highlight pass. seq tells a finished job apart from a
// newer one started for the same editor.
type job struct {
	seq    uint64
	cancel context.CancelFunc
}

// Manager runs syntax highlighting for source views in the background.
// Starting a new job for an editor cancels that editor's previous job only.
type Manager struct {
	highlighter *highlighter.Highlighter
	appRedraw   func()

	mu   sync.Mutex
	jobs map[EditorInterface]job
	seq  uint64
	wg   sync.WaitGroup
}

// NewManager creates a highlighting manager. redrawFunc is called after
// results are stored; it must be safe to call from any goroutine.
func NewManager(h *highlighter.Highlighter, redrawFunc func()) *Manager {
	return &Manager{
		highlighter: h,
		appRedraw:   redrawFunc,
		jobs:        make(map[EditorInterface]job),
	}
}

// Highlight starts highlighting ed's buffer as the language of path.
func (m *Manager) Highlight(ed EditorInterface, path string) {
	language := m.highlighter.GetLanguage(path)
	if language == nil {
		logger.DebugTagf("highlight", "No language for %s, skipping", path)
		return
	}

	m.mu.Lock()
	if prev, ok := m.jobs[ed]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.seq++
	seq := m.seq
	m.jobs[ed] = job{seq: seq, cancel: cancel}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer m.finish(ed, seq)
		result, err := m.highlighter.HighlightBuffer(ctx, ed.GetBuffer(), language)
		if err != nil {
			if ctx.Err() == nil {
				logger.Warnf("Highlighting %s failed: %v", path, err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		ed.UpdateSyntaxHighlights(result)
		if m.appRedraw != nil {
			m.appRedraw()
		}
	}()
}

// finish drops ed's job entry unless a newer job replaced it.
func (m *Manager) finish(ed EditorInterface, seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[ed]; ok && j.seq == seq {
		j.cancel()
		delete(m.jobs, ed)
	}
}

// Wait blocks until running jobs finish.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Shutdown cancels all running jobs and waits for them.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for ed, j := range m.jobs {
		j.cancel()
		delete(m.jobs, ed)
	}
	m.mu.Unlock()
	m.Wait()
}
