package breakpoints

import (
	"strings"
	"testing"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/rivo/uniseg"
)

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name string
		src  *debugger.Source
		line int
		want string
	}{
		{"url basename", &debugger.Source{ID: "1", URL: "http://localhost:8000/js/app.js"}, 12, "app.js: 12"},
		{"query stripped", &debugger.Source{ID: "1", URL: "http://x/app.js?v=3"}, 1, "app.js: 1"},
		{"no url", &debugger.Source{ID: "1"}, 3, ""},
		{"nil source", nil, 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceLabel(tt.src, tt.line); got != tt.want {
				t.Errorf("SourceLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceLabel_Truncates(t *testing.T) {
	long := strings.Repeat("x", 40) + ".js"
	got := SourceLabel(&debugger.Source{URL: "http://x/" + long}, 5)

	name := strings.TrimSuffix(got, ": 5")
	if !strings.HasPrefix(name, ellipsis) {
		t.Errorf("expected leading ellipsis, got %q", got)
	}
	if !strings.HasSuffix(name, ".js") {
		t.Errorf("expected the end of the name kept, got %q", got)
	}
	if w := uniseg.StringWidth(strings.TrimPrefix(name, ellipsis)); w != MaxLabelWidth {
		t.Errorf("expected %d cells kept, got %d", MaxLabelWidth, w)
	}
}

func TestEndTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, ellipsis + "def"},
		{"abc", 0, ellipsis},
		{"日本語ファイル", 4, ellipsis + "イル"},
	}
	for _, tt := range tests {
		if got := EndTruncate(tt.in, tt.width); got != tt.want {
			t.Errorf("EndTruncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestSnippetAndHeader(t *testing.T) {
	text := "   return x;  "
	bp := Breakpoint{Breakpoint: debugger.Breakpoint{Text: &text}}
	if Snippet(bp) != "return x;" {
		t.Errorf("unexpected snippet %q", Snippet(bp))
	}
	if Snippet(Breakpoint{}) != "" {
		t.Error("nil text should give empty snippet")
	}

	if got := HeaderText(Resolve(true, true)); got != "Exceptions - Pausing on: Uncaught" {
		t.Errorf("unexpected header %q", got)
	}
}
