package keymap

import (
	"strings"
	"testing"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in      string
		wantCtx Context
		wantKey string
	}{
		{"main:x", ContextMain, "x"},
		{"form:ctrl+s", ContextForm, "ctrl+s"},
		{"q", ContextGlobal, "q"},
		{"main:", ContextMain, ""},
	}
	for _, tt := range tests {
		ctx, key := parseBinding(tt.in)
		if ctx != tt.wantCtx || key != tt.wantKey {
			t.Errorf("parseBinding(%q) = %q, %q, want %q, %q", tt.in, ctx, key, tt.wantCtx, tt.wantKey)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if err := ApplyConfig(r, ExampleConfig()); err != nil {
		t.Fatalf("ApplyConfig(example) error = %v", err)
	}
	if cmd, found := r.Lookup(runeKey("d"), ContextMain); !found || cmd != CmdRemove {
		t.Errorf("main:d = %q, %v, want remove", cmd, found)
	}
	if cmd, found := r.Lookup(runeKey("a"), ContextMain); !found || cmd != CmdNewRecord {
		t.Errorf("main:a = %q, %v, want new-record", cmd, found)
	}
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	err := ApplyConfig(r, map[string]string{
		"main:z":    "explode",
		"sidebar:x": "remove",
		"main:":     "remove",
		"main:y":    "refresh",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{`unknown command "explode"`, `unknown context "sidebar"`, "missing key"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	// Nothing is applied when any entry is invalid
	if _, found := r.Lookup(runeKey("y"), ContextMain); found {
		t.Error("valid entry applied despite errors")
	}
}

func TestApplyConfigSuggestsCommand(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	err := ApplyConfig(r, map[string]string{"main:d": "remvoe"})
	if err == nil || !strings.Contains(err.Error(), "did you mean remove?") {
		t.Errorf("err = %v", err)
	}
}
