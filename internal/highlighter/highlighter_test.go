package highlighter

import (
	"context"
	"testing"

	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/types"
)

func hasStyle(ranges []types.StyledRange, start, end int, style string) bool {
	for _, r := range ranges {
		if r.StartCol == start && r.EndCol == end && r.StyleName == style {
			return true
		}
	}
	return false
}

func TestGetLanguage(t *testing.T) {
	RegisterLanguages()
	h := NewHighlighter()

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"http://localhost/js/app.js?v=2", "JavaScript"},
		{"script.PY", "Python"},
		{"lib.rs", "Rust"},
	}
	for _, tt := range tests {
		l := h.GetLanguage(tt.path)
		if l == nil || l.Name != tt.want {
			t.Errorf("GetLanguage(%q) = %v, want %s", tt.path, l, tt.want)
		}
	}
	if h.GetLanguage("notes.txt") != nil {
		t.Error("unknown extension should have no language")
	}
}

func TestHighlightBuffer_Go(t *testing.T) {
	RegisterLanguages()
	h := NewHighlighter()
	buf := buffer.FromBytes([]byte("package main\n\n// hi\nfunc main() {\n\treturn\n}\n"))

	res, err := h.HighlightBuffer(context.Background(), buf, h.GetLanguage("x.go"))
	if err != nil {
		t.Fatalf("HighlightBuffer failed: %v", err)
	}

	if !hasStyle(res[0], 0, 7, "keyword") {
		t.Errorf("expected 'package' keyword, got %v", res[0])
	}
	if !hasStyle(res[2], 0, 5, "comment") {
		t.Errorf("expected comment, got %v", res[2])
	}
	if !hasStyle(res[3], 5, 9, "function") {
		t.Errorf("expected function name, got %v", res[3])
	}
}

func TestHighlightBuffer_JavaScriptMultilineString(t *testing.T) {
	RegisterLanguages()
	h := NewHighlighter()
	buf := buffer.FromBytes([]byte("const s = `a\nbc`;\n"))

	res, err := h.HighlightBuffer(context.Background(), buf, h.GetLanguage("a.js"))
	if err != nil {
		t.Fatalf("HighlightBuffer failed: %v", err)
	}
	if !hasStyle(res[0], 10, 12, "string") {
		t.Errorf("expected string start on line 0, got %v", res[0])
	}
	if !hasStyle(res[1], 0, 3, "string") {
		t.Errorf("expected string end on line 1, got %v", res[1])
	}
}

func TestHighlightBuffer_NoLanguage(t *testing.T) {
	h := NewHighlighter()
	if _, err := h.HighlightBuffer(context.Background(), buffer.NewSliceBuffer(), nil); err == nil {
		t.Error("expected error without a language")
	}
}

func TestHighlightBuffer_Cancelled(t *testing.T) {
	RegisterLanguages()
	h := NewHighlighter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := buffer.FromBytes([]byte("package main\n"))
	if _, err := h.HighlightBuffer(ctx, buf, h.GetLanguage("x.go")); err == nil {
		t.Error("expected error for cancelled context")
	}
}
