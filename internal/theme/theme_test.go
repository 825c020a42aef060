package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyle_Fallbacks(t *testing.T) {
	th := newDevComfortDark()

	if th.GetStyle("function.call") != th.Styles["function.call"] {
		t.Error("exact style should win")
	}
	if th.GetStyle("keyword.control") != th.Styles["keyword"] {
		t.Error("expected base name fallback")
	}
	if th.GetStyle("nonexistent") != th.Styles[StyleDefault] {
		t.Error("expected Default fallback")
	}

	empty := &Theme{Name: "empty"}
	if empty.GetStyle("x") != tcell.StyleDefault {
		t.Error("expected tcell default without a Default style")
	}
}

func TestDevComfortDark_HasPaneStyles(t *testing.T) {
	th := newDevComfortDark()
	for _, name := range []string{
		StyleHighlightLines, StyleBreakpoint, StyleBreakpointPaused,
		StyleBreakpointDisabled, StyleBreakpointConditional, StylePaneHeader, StylePaneInfo,
	} {
		if _, ok := th.Styles[name]; !ok {
			t.Errorf("missing style %s", name)
		}
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solar.toml")
	content := `
name = "Solar"
is_dark = false

[styles.Default]
fg = "#112233"
bg = "reset"

[styles.HighlightLines]
bg = "yellow"

[styles.keyword]
bold = true

[styles.broken]
fg = "#12"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if th.Name != "Solar" || th.IsDark {
		t.Errorf("unexpected theme header %q dark=%v", th.Name, th.IsDark)
	}

	fg, _, _ := th.Styles["keyword"].Decompose()
	if fg != tcell.NewHexColor(0x112233) {
		t.Errorf("keyword should inherit Default fg, got %v", fg)
	}
	_, bg, _ := th.Styles[StyleHighlightLines].Decompose()
	if bg != tcell.ColorYellow {
		t.Errorf("expected yellow background, got %v", bg)
	}
	if _, ok := th.Styles["broken"]; ok {
		t.Error("invalid style should be skipped")
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.toml"), []byte("name = \"Mono\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	if got := m.ListThemes(); !reflect.DeepEqual(got, []string{"DevComfort Dark", "Mono"}) {
		t.Errorf("ListThemes() = %v", got)
	}
	if m.Current().Name != "DevComfort Dark" {
		t.Errorf("unexpected initial theme %s", m.Current().Name)
	}
	if err := m.SetTheme("MONO"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if m.Current().Name != "Mono" {
		t.Errorf("expected Mono, got %s", m.Current().Name)
	}
	if err := m.SetTheme("nope"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent"))
	if len(m.ListThemes()) != 1 {
		t.Errorf("expected only the built-in theme, got %v", m.ListThemes())
	}
}
