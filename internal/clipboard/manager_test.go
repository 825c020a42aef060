package clipboard

import (
	"errors"
	"testing"
)

func TestManager_InternalRegister(t *testing.T) {
	m := NewManager(false)
	if m.UsesSystem() {
		t.Fatal("system clipboard should be off")
	}
	if err := m.Yank("app.js:12"); err != nil {
		t.Fatalf("Yank failed: %v", err)
	}
	if m.Get() != "app.js:12" {
		t.Errorf("Get() = %q", m.Get())
	}
}

func TestManager_SystemClipboard(t *testing.T) {
	var written []string
	m := &Manager{system: true, writeSystem: func(s string) error {
		written = append(written, s)
		return nil
	}}

	if err := m.Yank("a.js:1"); err != nil {
		t.Fatalf("Yank failed: %v", err)
	}
	if len(written) != 1 || written[0] != "a.js:1" {
		t.Errorf("system writes = %v", written)
	}
}

func TestManager_SystemFailureKeepsRegister(t *testing.T) {
	m := &Manager{system: true, writeSystem: func(string) error { return errors.New("no xclip") }}

	if err := m.Yank("b.js:2"); err == nil {
		t.Error("expected error from system clipboard")
	}
	if m.Get() != "b.js:2" {
		t.Errorf("register should still hold the text, got %q", m.Get())
	}
}
