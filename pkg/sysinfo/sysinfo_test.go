// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const sampleLpstatV = `device for PDF: cups-pdf:/
device for HP_LaserJet_1020: usb://HP/LaserJet%201020?serial=XY123
`

const sampleLpstatD = "system default destination: HP_LaserJet_1020\n"

func TestParseLpstatDevices(t *testing.T) {
	printers := parseLpstatDevices(sampleLpstatV)
	if len(printers) != 2 {
		t.Fatalf("expected 2 printers, got %d", len(printers))
	}
	if printers[0].Name != "PDF" || printers[0].Device != "cups-pdf:/" {
		t.Errorf("bad first printer: %+v", printers[0])
	}
	if printers[1].Name != "HP_LaserJet_1020" {
		t.Errorf("bad second printer: %+v", printers[1])
	}
}

func TestParseLpstatDefault(t *testing.T) {
	if def := parseLpstatDefault(sampleLpstatD); def != "HP_LaserJet_1020" {
		t.Errorf("wrong default: %q", def)
	}
	if def := parseLpstatDefault("no system default destination\n"); def != "" {
		t.Errorf("expected no default, got %q", def)
	}
}

func TestPrintersWithFakeRunner(t *testing.T) {
	c := &Collector{
		Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			if len(args) > 0 && args[0] == "-v" {
				return []byte(sampleLpstatV), nil
			}
			return []byte(sampleLpstatD), nil
		},
		LookPath: func(file string) (string, error) { return "/usr/bin/lpstat", nil },
	}
	printers, err := c.Printers(context.Background())
	if err != nil {
		t.Fatalf("Printers: %v", err)
	}
	if len(printers) != 2 {
		t.Fatalf("expected 2 printers, got %d", len(printers))
	}
	if printers[0].Default {
		t.Errorf("PDF should not be default")
	}
	if !printers[1].Default {
		t.Errorf("HP_LaserJet_1020 should be default")
	}
}

func TestPrintersNoLpstat(t *testing.T) {
	c := &Collector{
		Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			t.Fatalf("runner should not be called when lpstat is missing")
			return nil, nil
		},
		LookPath: func(file string) (string, error) { return "", fmt.Errorf("not found") },
	}
	printers, err := c.Printers(context.Background())
	if err != nil {
		t.Fatalf("Printers: %v", err)
	}
	if printers != nil {
		t.Errorf("expected nil printers, got %+v", printers)
	}
}

func TestOSPrettyName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	content := "NAME=\"Debian GNU/Linux\"\nID=debian\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := &Collector{OSReleasePath: path}
	if name := c.osPrettyName(); name != "Debian GNU/Linux 12 (bookworm)" {
		t.Errorf("wrong pretty name: %q", name)
	}
	c.OSReleasePath = filepath.Join(dir, "missing")
	if name := c.osPrettyName(); name != "" {
		t.Errorf("expected empty name for missing file, got %q", name)
	}
}

func TestSessionReadsEnv(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("XDG_CURRENT_DESKTOP", "ICEWM")
	sess := Session()
	if sess.Display != ":0" || sess.SessionType != "x11" || sess.CurrentDesktop != "ICEWM" {
		t.Errorf("bad session info: %+v", sess)
	}
}
