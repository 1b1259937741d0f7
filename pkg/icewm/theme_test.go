// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"os"
	"path/filepath"
	"testing"
)

func makeThemeDir(t *testing.T, base string, name string, variants ...string) {
	t.Helper()
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	for _, v := range variants {
		if err := os.WriteFile(filepath.Join(dir, v), []byte("ThemeAuthor=\"test\"\n"), 0644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
	}
}

func TestScanThemesDir(t *testing.T) {
	base := t.TempDir()
	makeThemeDir(t, base, "IceClearlooks", "default.theme")
	makeThemeDir(t, base, "win95", "default.theme", "blue.theme")
	// a dir without .theme files is not a theme
	if err := os.MkdirAll(filepath.Join(base, "not-a-theme"), 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	themes := scanThemesDir(base, "system")
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %d: %v", len(themes), themes)
	}
	byName := make(map[string]ThemeInfo)
	for _, th := range themes {
		byName[th.Name] = th
	}
	win95 := byName["win95"]
	if win95.Source != "system" || len(win95.Variants) != 2 || win95.Variants[0] != "blue.theme" {
		t.Errorf("win95 = %+v", win95)
	}
}

func TestThemeSelectionDoc(t *testing.T) {
	// the theme file is a prefs-style doc with a single Theme option; older
	// selections stay behind as comments
	path := filepath.Join(t.TempDir(), "theme")
	doc, err := LoadPrefsFile(path)
	if err != nil {
		t.Fatalf("LoadPrefsFile error: %v", err)
	}
	doc.Append("Theme", QuoteValue("win95/default.theme"))
	if err = doc.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	doc, err = LoadPrefsFile(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	doc.Unset("Theme")
	doc.Append("Theme", QuoteValue("IceClearlooks/default.theme"))
	if err = doc.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	doc, err = LoadPrefsFile(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	value, commented, found := doc.Get("Theme")
	if !found || commented || UnquoteValue(value) != "IceClearlooks/default.theme" {
		t.Errorf("Theme = %q commented=%v found=%v", value, commented, found)
	}
	// the old selection is still there, commented
	sawOld := false
	for _, line := range doc.Lines {
		if line.Kind == LineCommentedOption && line.Key == "Theme" && UnquoteValue(line.Value) == "win95/default.theme" {
			sawOld = true
		}
	}
	if !sawOld {
		t.Errorf("previous theme selection should stay as a comment:\n%s", doc.Render())
	}
}
