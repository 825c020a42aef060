package breakpoints

import (
	"fmt"
	"path"
	"strings"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/rivo/uniseg"
)

// MaxLabelWidth is the display width a source basename is cut to.
const MaxLabelWidth = 30

const ellipsis = "…"

// SourceLabel renders "<basename>: <line>" for a breakpoint row, or "" when
// the source has no URL.
func SourceLabel(src *debugger.Source, line int) string {
	if src == nil || src.URL == "" {
		return ""
	}
	return fmt.Sprintf("%s: %d", EndTruncate(Basename(src.URL), MaxLabelWidth), line)
}

// Basename returns the last path segment of a URL, ignoring any query or
// fragment.
func Basename(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	url = strings.TrimRight(url, "/")
	return path.Base(url)
}

// EndTruncate keeps the last width display cells of s and prefixes an
// ellipsis when anything was dropped.
func EndTruncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ellipsis
	}

	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	budget := width
	used := 0
	start := len(clusters)
	for start > 0 {
		w := uniseg.StringWidth(clusters[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + strings.Join(clusters[start:], "")
}

// Snippet is the source text shown next to a breakpoint, trimmed.
func Snippet(bp Breakpoint) string {
	if bp.Text == nil {
		return ""
	}
	return strings.TrimSpace(*bp.Text)
}

// HeaderText is the summary line of the inline exception mode list.
func HeaderText(mode PauseMode) string {
	return "Exceptions - Pausing on: " + mode.HeaderLabel
}
