package keymap

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.bindings == nil {
		t.Error("bindings map not initialized")
	}
	if r.userOverrides == nil {
		t.Error("userOverrides map not initialized")
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, ctx := range []Context{ContextGlobal, ContextMain, ContextForm, ContextHelp} {
		if len(r.bindings[ctx]) == 0 {
			t.Errorf("no %s bindings registered", ctx)
		}
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name    string
		key     tea.KeyMsg
		context Context
		want    Command
	}{
		{"remove", runeKey("x"), ContextMain, CmdRemove},
		{"undo", runeKey("u"), ContextMain, CmdUndo},
		{"numbered undo", runeKey("3"), ContextMain, UndoCommand(3)},
		{"next page bracket", runeKey("]"), ContextMain, CmdNextPage},
		{"prev page arrow", tea.KeyMsg{Type: tea.KeyLeft}, ContextMain, CmdPrevPage},
		{"edit with enter", tea.KeyMsg{Type: tea.KeyEnter}, ContextMain, CmdEditRecord},
		{"global fallback", runeKey("q"), ContextMain, CmdQuit},
		{"help closes with esc", tea.KeyMsg{Type: tea.KeyEsc}, ContextHelp, CmdToggleHelp},
		{"form submit", tea.KeyMsg{Type: tea.KeyCtrlS}, ContextForm, CmdFormSubmit},
		{"form clear description", tea.KeyMsg{Type: tea.KeyCtrlD}, ContextForm, CmdFormClearDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Lookup(tt.key, tt.context)
			if !found || got != tt.want {
				t.Errorf("Lookup(%q, %s) = %q, %v, want %q", KeyToString(tt.key), tt.context, got, found, tt.want)
			}
		})
	}
}

func TestLookupSequence(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, found := r.Lookup(runeKey("g"), ContextMain); found {
		t.Fatal("first g should wait for the sequence")
	}
	if r.PendingKey() != "g" {
		t.Errorf("PendingKey() = %q, want g", r.PendingKey())
	}
	cmd, found := r.Lookup(runeKey("g"), ContextMain)
	if !found || cmd != CmdFirstPage {
		t.Errorf("g g = %q, %v, want %q", cmd, found, CmdFirstPage)
	}

	// A broken sequence falls back to the second key alone
	r.Lookup(runeKey("g"), ContextMain)
	cmd, found = r.Lookup(runeKey("x"), ContextMain)
	if !found || cmd != CmdRemove {
		t.Errorf("g x = %q, %v, want %q", cmd, found, CmdRemove)
	}
}

func TestLookupExactIgnoresGlobal(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if cmd, found := r.LookupExact(runeKey("q"), ContextForm); found {
		t.Errorf("typing q in the form resolved to %q", cmd)
	}
	if cmd, found := r.LookupExact(tea.KeyMsg{Type: tea.KeyCtrlT}, ContextForm); !found || cmd != CmdFormClearTitle {
		t.Errorf("LookupExact(ctrl+t) = %q, %v", cmd, found)
	}
}

func TestUserOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextMain, "x", CmdRefresh)

	cmd, found := r.Lookup(runeKey("x"), ContextMain)
	if !found || cmd != CmdRefresh {
		t.Errorf("override lookup = %q, %v, want %q", cmd, found, CmdRefresh)
	}
}

func TestUndoSlot(t *testing.T) {
	tests := []struct {
		cmd    Command
		want   int
		wantOK bool
	}{
		{UndoCommand(1), 1, true},
		{UndoCommand(9), 9, true},
		{"undo-10", 0, false},
		{"undo-0", 0, false},
		{CmdUndo, 0, false},
		{"undo-x", 0, false},
	}
	for _, tt := range tests {
		got, ok := UndoSlot(tt.cmd)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("UndoSlot(%q) = %d, %v, want %d, %v", tt.cmd, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runeKey("x"), "x"},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyRight}, "right"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "pgdown"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGenerateHelp(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextMain, "d", CmdRemove)

	help := r.GenerateHelp()
	for _, want := range []string{"LIST:", "FORM:", "GLOBAL:", "Remove the selected record", "Ctrl+s", "PgDn", "Restore notification #1"} {
		if !strings.Contains(help, want) {
			t.Errorf("GenerateHelp() missing %q", want)
		}
	}

	var removeLine string
	for _, line := range strings.Split(help, "\n") {
		if strings.Contains(line, "Remove the selected record") {
			removeLine = line
		}
	}
	if !strings.Contains(removeLine, "d / x") {
		t.Errorf("remove line = %q, want override listed first", removeLine)
	}
}

func TestFormatKey(t *testing.T) {
	tests := []struct {
		key, want string
	}{
		{"ctrl+s", "Ctrl+s"},
		{"down", "↓"},
		{"pgup", "PgUp"},
		{"enter", "Enter"},
		{"g g", "g g"},
		{"d", "d"},
		{"e", "e"},
	}
	for _, tt := range tests {
		if got := formatKey(tt.key); got != tt.want {
			t.Errorf("formatKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestExportBindings(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextMain, "x", CmdRefresh)

	exported := r.ExportBindings()
	if len(exported) != len(DefaultBindings())+1 {
		t.Fatalf("ExportBindings() returned %d, want %d", len(exported), len(DefaultBindings())+1)
	}
	for i := 1; i < len(exported); i++ {
		if exported[i-1].Context > exported[i].Context {
			t.Fatalf("bindings not sorted by context at %d", i)
		}
	}

	var sawOverride bool
	for i, b := range exported {
		if b.Context == "main" && b.Key == "x" {
			if !b.Override {
				t.Errorf("override should sort before the default binding, got %+v at %d", b, i)
			}
			sawOverride = true
			break
		}
	}
	if !sawOverride {
		t.Error("override missing from export")
	}
}
