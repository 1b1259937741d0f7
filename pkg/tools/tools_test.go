// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestListToolsAvailability(t *testing.T) {
	reg := &Registry{
		LookPath: func(file string) (string, error) {
			if file == "xterm" {
				return "/usr/bin/xterm", nil
			}
			return "", fmt.Errorf("not found")
		},
	}
	infos := reg.ListTools()
	if len(infos) == 0 {
		t.Fatalf("expected known tools")
	}
	var sawXterm, sawIcesh bool
	for _, info := range infos {
		switch info.Name {
		case "xterm":
			sawXterm = true
			if !info.Available || info.Path != "/usr/bin/xterm" {
				t.Errorf("xterm availability wrong: %+v", info)
			}
		case "icesh":
			sawIcesh = true
			if info.Available {
				t.Errorf("icesh should be unavailable: %+v", info)
			}
		}
	}
	if !sawXterm || !sawIcesh {
		t.Errorf("expected xterm and icesh in tool list")
	}
}

func TestFindToolCaseInsensitive(t *testing.T) {
	reg := &Registry{}
	info, err := reg.FindTool("XTerm")
	if err != nil {
		t.Fatalf("FindTool: %v", err)
	}
	if info.Command != "xterm" {
		t.Errorf("wrong command: %q", info.Command)
	}
	if _, err := reg.FindTool("nosuchtool"); err == nil {
		t.Errorf("expected error for unknown tool")
	}
}

func TestDesktopEntryEnrichment(t *testing.T) {
	dir := t.TempDir()
	entry := "[Desktop Entry]\nType=Application\nName=UXTerm\nComment=Unicode terminal\nExec=xterm -class UXTerm\nTerminal=false\n"
	if err := os.WriteFile(filepath.Join(dir, "xterm.desktop"), []byte(entry), 0644); err != nil {
		t.Fatalf("write desktop file: %v", err)
	}
	reg := &Registry{
		LookPath:    func(file string) (string, error) { return "/usr/bin/" + file, nil },
		DesktopDirs: []string{dir},
	}
	info, err := reg.FindTool("xterm")
	if err != nil {
		t.Fatalf("FindTool: %v", err)
	}
	if info.Title != "UXTerm" {
		t.Errorf("title not enriched: %q", info.Title)
	}
	if info.Description != "Unicode terminal" {
		t.Errorf("description not enriched: %q", info.Description)
	}
}

func TestLoadDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.desktop")
	content := "[Desktop Entry]\nName=Some App\nComment=Does things\nExec=someapp %u\nIcon=someapp\nTerminal=true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entry, err := loadDesktopEntry(path)
	if err != nil {
		t.Fatalf("loadDesktopEntry: %v", err)
	}
	if entry.Name != "Some App" || entry.Comment != "Does things" || !entry.Terminal {
		t.Errorf("bad entry: %+v", entry)
	}
}

func TestLaunchToolNotInstalled(t *testing.T) {
	reg := &Registry{
		LookPath: func(file string) (string, error) { return "", fmt.Errorf("not found") },
	}
	if _, err := reg.LaunchTool("xterm", nil); err == nil {
		t.Errorf("expected error launching unavailable tool")
	}
	if _, err := reg.LaunchTool("bogus", nil); err == nil {
		t.Errorf("expected error launching unknown tool")
	}
}

func TestRunCommandEmpty(t *testing.T) {
	if _, err := RunCommand("   "); err == nil {
		t.Errorf("expected error for empty command line")
	}
}

func TestDocURL(t *testing.T) {
	url, err := DocURL("faq")
	if err != nil {
		t.Fatalf("DocURL: %v", err)
	}
	if url != "https://ice-wm.org/FAQ/" {
		t.Errorf("wrong faq url: %q", url)
	}
	if _, err := DocURL("nope"); err == nil {
		t.Errorf("expected error for unknown target")
	}
	targets := DocTargets()
	if len(targets) != 4 {
		t.Errorf("expected 4 doc targets, got %v", targets)
	}
}
