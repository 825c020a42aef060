package highlighter

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/highlighter/lang"
	"github.com/bethropolis/tidebug/internal/highlighter/utils"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// HighlightResult maps a 0-based line number to the styled ranges on it.
type HighlightResult map[int][]types.StyledRange

// Highlighter parses buffers and runs highlight queries. It is safe for
// concurrent use; parses are serialized.
type Highlighter struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// GetLanguage returns the registered language for a file path or URL.
func (h *Highlighter) GetLanguage(filePath string) *lang.Language {
	return lang.GetForFile(filePath)
}

func (h *Highlighter) query(language *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[language]; ok {
		return q, nil
	}
	src, err := language.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, language.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("query parse failed for %s: %w", language.Name, err)
	}
	h.queries[language] = q
	return q, nil
}

// HighlightBuffer parses buf as language and returns its styled ranges.
// Captures spanning several lines are split into one range per line.
func (h *Highlighter) HighlightBuffer(ctx context.Context, buf buffer.Buffer, language *lang.Language) (HighlightResult, error) {
	if language == nil || language.TreeSitterLang == nil {
		return nil, fmt.Errorf("no language provided for highlighting")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	query, err := h.query(language)
	if err != nil {
		return nil, err
	}

	h.parser.SetLanguage(language.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, nil, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	highlights := make(HighlightResult)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			styleName := utils.CaptureNameToStyleName(query.CaptureNameForId(capture.Index))
			addCapture(highlights, buf, capture.Node, styleName)
		}
	}

	logger.DebugTagf("highlight", "HighlightBuffer: %s highlights on %d lines", language.Name, len(highlights))
	return highlights, nil
}

func addCapture(highlights HighlightResult, buf buffer.Buffer, node *sitter.Node, styleName string) {
	start, end := node.StartPoint(), node.EndPoint()
	for row := int(start.Row); row <= int(end.Row); row++ {
		lineBytes, err := buf.Line(row)
		if err != nil {
			return
		}
		startCol := 0
		if row == int(start.Row) {
			startCol = utils.ByteOffsetToRuneIndex(lineBytes, int(start.Column))
		}
		endCol := utf8.RuneCount(lineBytes)
		if row == int(end.Row) {
			endCol = utils.ByteOffsetToRuneIndex(lineBytes, int(end.Column))
		}
		if endCol <= startCol {
			continue
		}
		highlights[row] = append(highlights[row], types.StyledRange{
			StartCol:  startCol,
			EndCol:    endCol,
			StyleName: styleName,
		})
	}
}
