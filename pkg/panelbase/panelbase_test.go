// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelbase

import (
	"path/filepath"
	"testing"
)

func TestExpandHomeDir(t *testing.T) {
	home := GetHomeDir()
	path, err := ExpandHomeDir("~")
	if err != nil {
		t.Fatalf("ExpandHomeDir(~) error: %v", err)
	}
	if path != home {
		t.Errorf("ExpandHomeDir(~) = %q, want %q", path, home)
	}
	path, err = ExpandHomeDir("~/.icewm/preferences")
	if err != nil {
		t.Fatalf("ExpandHomeDir error: %v", err)
	}
	want := filepath.Join(home, ".icewm", "preferences")
	if path != want {
		t.Errorf("ExpandHomeDir = %q, want %q", path, want)
	}
	if _, err = ExpandHomeDir("~/../../etc/passwd"); err == nil {
		t.Errorf("ExpandHomeDir should reject traversal outside home")
	}
	path, err = ExpandHomeDir("/etc/icewm/preferences")
	if err != nil || path != "/etc/icewm/preferences" {
		t.Errorf("ExpandHomeDir(abs) = %q, %v", path, err)
	}
}

func TestReplaceHomeDir(t *testing.T) {
	home := GetHomeDir()
	if got := ReplaceHomeDir(home); got != "~" {
		t.Errorf("ReplaceHomeDir(home) = %q, want ~", got)
	}
	if got := ReplaceHomeDir(filepath.Join(home, ".icewm")); got != "~/.icewm" {
		t.Errorf("ReplaceHomeDir = %q, want ~/.icewm", got)
	}
	if got := ReplaceHomeDir("/usr/share/icewm"); got != "/usr/share/icewm" {
		t.Errorf("ReplaceHomeDir should leave foreign paths alone, got %q", got)
	}
}

func TestTryMkdirs(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b", "c")
	if err := TryMkdirs(dir, 0700, "test directory"); err != nil {
		t.Fatalf("TryMkdirs error: %v", err)
	}
	// second call must be a no-op
	if err := TryMkdirs(dir, 0700, "test directory"); err != nil {
		t.Fatalf("TryMkdirs (existing) error: %v", err)
	}
}
