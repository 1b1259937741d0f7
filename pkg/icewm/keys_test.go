// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitCommandWords(t *testing.T) {
	words := SplitCommandWords(`key "Alt+Ctrl+t" xterm -rv`)
	if len(words) != 4 || words[0] != "key" || words[1] != "Alt+Ctrl+t" || words[2] != "xterm" || words[3] != "-rv" {
		t.Errorf("SplitCommandWords = %v", words)
	}
	words = SplitCommandWords(`key "Super+e" xdg-open "My Documents"`)
	if len(words) != 4 || words[3] != "My Documents" {
		t.Errorf("SplitCommandWords = %v", words)
	}
	if words = SplitCommandWords("   "); len(words) != 0 {
		t.Errorf("blank input should give no words, got %v", words)
	}
}

func TestParseKeysText(t *testing.T) {
	text := `# IceWM custom keyboard shortcuts
# Generated by IceWMCP

key "Alt+Ctrl+t"		xterm -rv
key "Super+w"		firefox
this line is garbage
key "BadLine"
`
	bindings := ParseKeysText(text)
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d: %v", len(bindings), bindings)
	}
	if bindings[0].Combo != "Alt+Ctrl+t" || bindings[0].Command != "xterm -rv" {
		t.Errorf("binding[0] = %+v", bindings[0])
	}
	if bindings[1].Combo != "Super+w" || bindings[1].Command != "firefox" {
		t.Errorf("binding[1] = %+v", bindings[1])
	}
}

func TestRenderKeysText(t *testing.T) {
	bindings := []KeyBinding{
		{Combo: "Super+w", Command: "firefox"},
		{Combo: "Alt+Ctrl+t", Command: "xterm -rv"},
	}
	text := RenderKeysText(bindings)
	if !strings.HasPrefix(text, "# IceWM custom keyboard shortcuts\n# Generated by IceWMCP\n\n") {
		t.Errorf("header missing:\n%s", text)
	}
	// sorted by combo
	altIdx := strings.Index(text, `key "Alt+Ctrl+t"`)
	superIdx := strings.Index(text, `key "Super+w"`)
	if altIdx == -1 || superIdx == -1 || altIdx > superIdx {
		t.Errorf("bindings not sorted:\n%s", text)
	}
	// round trip
	reparsed := ParseKeysText(text)
	if len(reparsed) != 2 || reparsed[0].Combo != "Alt+Ctrl+t" || reparsed[1].Command != "firefox" {
		t.Errorf("round trip failed: %v", reparsed)
	}
}

func TestKeysFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys")
	bindings := []KeyBinding{{Combo: "Alt+F2", Command: "icewmcp run"}}
	if err := SaveKeysFile(path, bindings); err != nil {
		t.Fatalf("SaveKeysFile error: %v", err)
	}
	loaded, err := LoadKeysFile(path)
	if err != nil {
		t.Fatalf("LoadKeysFile error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != bindings[0] {
		t.Errorf("loaded = %v", loaded)
	}
	// missing file is not an error
	loaded, err = LoadKeysFile(filepath.Join(t.TempDir(), "keys"))
	if err != nil || loaded != nil {
		t.Errorf("missing keys file: %v, %v", loaded, err)
	}
}

func TestValidateKeyCombo(t *testing.T) {
	if err := ValidateKeyCombo("Alt+Ctrl+t"); err != nil {
		t.Errorf("valid combo rejected: %v", err)
	}
	for _, bad := range []string{"", "Alt+", "Alt Ctrl", `Alt+"t"`} {
		if err := ValidateKeyCombo(bad); err == nil {
			t.Errorf("combo %q should be rejected", bad)
		}
	}
}

func TestFindBinding(t *testing.T) {
	bindings := []KeyBinding{{Combo: "Alt+F2", Command: "run"}, {Combo: "Super+l", Command: "lock"}}
	if idx := FindBinding(bindings, "Super+l"); idx != 1 {
		t.Errorf("FindBinding = %d", idx)
	}
	if idx := FindBinding(bindings, "Super+x"); idx != -1 {
		t.Errorf("FindBinding missing = %d", idx)
	}
	// modifier order and casing are ignored
	bindings = []KeyBinding{{Combo: "Alt+Ctrl+t", Command: "xterm"}}
	if idx := FindBinding(bindings, "ctrl+alt+t"); idx != 0 {
		t.Errorf("FindBinding normalized = %d", idx)
	}
}

func TestNormalizeKeyCombo(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"shift+CTRL+t", "Ctrl+Shift+t"},
		{"Alt+Ctrl+t", "Ctrl+Alt+t"},
		{"super+alt+F4", "Alt+Super+F4"},
		{"Ctrl+Ctrl+c", "Ctrl+c"},
		{"Ctrl+Shift+T", "Ctrl+Shift+T"},
		{"F12", "F12"},
		{"Mod4+p", "Mod4+p"},
		{"Alt+", "Alt+"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeKeyCombo(c.in); got != c.want {
			t.Errorf("NormalizeKeyCombo(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
