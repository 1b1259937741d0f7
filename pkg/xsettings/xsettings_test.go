// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package xsettings

import (
	"context"
	"strings"
	"testing"
)

// output of "xset q" on a stock Xorg server
const sampleXSetOutput = `Keyboard Control:
  auto repeat:  on    key click percent:  0    LED mask:  00000000
  XKB indicators:
    00: Caps Lock:   off    01: Num Lock:    off    02: Scroll Lock: off
  auto repeat delay:  660    repeat rate:  25
  auto repeating keys:  00ffffffdffffbbf
                        fadfffefffedffff
  bell percent:  50    bell pitch:  400    bell duration:  100
Pointer Control:
  acceleration:  2/1    threshold:  4
Screen Saver:
  prefer blanking:  yes    allow exposures:  yes
  timeout:  600    cycle:  600
Colors:
  default colormap:  0x22    BlackPixel:  0x0    WhitePixel:  0xffffff
DPMS (Energy Star):
  Standby: 600    Suspend: 1200    Off: 1800
  DPMS is Enabled
  Monitor is On
`

func TestParseXSetOutput(t *testing.T) {
	settings := parseXSetOutput(sampleXSetOutput)
	if !settings.Keyboard.Enabled {
		t.Errorf("keyboard repeat should be on")
	}
	if settings.Keyboard.DelayMs != 660 || settings.Keyboard.RateCps != 25 {
		t.Errorf("keyboard = %+v", settings.Keyboard)
	}
	if settings.Sound.ClickVolume != 0 {
		t.Errorf("click volume = %d", settings.Sound.ClickVolume)
	}
	if settings.Sound.BellVolume != 50 || settings.Sound.BellPitchHz != 400 || settings.Sound.BellDurationMs != 100 {
		t.Errorf("sound = %+v", settings.Sound)
	}
	if settings.Mouse.Accel != 2 || settings.Mouse.Threshold != 4 {
		t.Errorf("mouse = %+v", settings.Mouse)
	}
	if !settings.DPMS.Enabled || settings.DPMS.StandbySec != 600 || settings.DPMS.SuspendSec != 1200 || settings.DPMS.OffSec != 1800 {
		t.Errorf("dpms = %+v", settings.DPMS)
	}
}

func TestParseXSetOutputDisabled(t *testing.T) {
	out := strings.ReplaceAll(sampleXSetOutput, "auto repeat:  on", "auto repeat:  off")
	out = strings.ReplaceAll(out, "DPMS is Enabled", "DPMS is Disabled")
	settings := parseXSetOutput(out)
	if settings.Keyboard.Enabled {
		t.Errorf("keyboard repeat should be off")
	}
	if settings.DPMS.Enabled {
		t.Errorf("dpms should be off")
	}
}

type fakeRunner struct {
	commands []string
	output   string
}

func (fr *fakeRunner) run(ctx context.Context, name string, args ...string) (string, error) {
	fr.commands = append(fr.commands, name+" "+strings.Join(args, " "))
	return fr.output, nil
}

func testXSet(output string) (*XSet, *fakeRunner) {
	fr := &fakeRunner{output: output}
	return &XSet{Run: fr.run}, fr
}

func TestApplyKeyboard(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	xs, fr := testXSet("")
	err := xs.ApplyKeyboard(context.Background(), KeyboardRepeat{Enabled: true, DelayMs: 500, RateCps: 30})
	if err != nil {
		t.Fatalf("ApplyKeyboard error: %v", err)
	}
	if len(fr.commands) != 1 || fr.commands[0] != "xset r rate 500 30" {
		t.Errorf("commands = %v", fr.commands)
	}
	fr.commands = nil
	if err = xs.ApplyKeyboard(context.Background(), KeyboardRepeat{Enabled: false}); err != nil {
		t.Fatalf("ApplyKeyboard(off) error: %v", err)
	}
	if len(fr.commands) != 1 || fr.commands[0] != "xset -r" {
		t.Errorf("commands = %v", fr.commands)
	}
	// out of range
	if err = xs.ApplyKeyboard(context.Background(), KeyboardRepeat{Enabled: true, DelayMs: 100, RateCps: 30}); err == nil {
		t.Errorf("delay 100 should be rejected")
	}
}

func TestApplySound(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	xs, fr := testXSet("")
	ss := SoundSettings{ClickVolume: 50, BellVolume: 60, BellPitchHz: 440, BellDurationMs: 100}
	if err := xs.ApplySound(context.Background(), ss); err != nil {
		t.Fatalf("ApplySound error: %v", err)
	}
	want := []string{"xset c 50", "xset b 60 440 100"}
	if len(fr.commands) != 2 || fr.commands[0] != want[0] || fr.commands[1] != want[1] {
		t.Errorf("commands = %v, want %v", fr.commands, want)
	}
	fr.commands = nil
	ss = SoundSettings{ClickVolume: 0, BellVolume: 0, BellPitchHz: 400, BellDurationMs: 100}
	if err := xs.ApplySound(context.Background(), ss); err != nil {
		t.Fatalf("ApplySound(mute) error: %v", err)
	}
	want = []string{"xset -c", "xset b off"}
	if len(fr.commands) != 2 || fr.commands[0] != want[0] || fr.commands[1] != want[1] {
		t.Errorf("commands = %v, want %v", fr.commands, want)
	}
}

func TestApplyMouse(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	xs, fr := testXSet("")
	if err := xs.ApplyMouse(context.Background(), MouseSpeed{Accel: 8, Threshold: 2}); err != nil {
		t.Fatalf("ApplyMouse error: %v", err)
	}
	if len(fr.commands) != 1 || fr.commands[0] != "xset m 8 2" {
		t.Errorf("commands = %v", fr.commands)
	}
	if err := xs.ApplyMouse(context.Background(), MouseSpeed{Accel: 25, Threshold: 2}); err == nil {
		t.Errorf("accel 25 should be rejected")
	}
}

func TestApplyDPMS(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	xs, fr := testXSet("")
	ds := DPMSSettings{Enabled: true, StandbySec: 1800, SuspendSec: 600, OffSec: 1200}
	if err := xs.ApplyDPMS(context.Background(), ds); err != nil {
		t.Fatalf("ApplyDPMS error: %v", err)
	}
	// standby clamps down to suspend, then both respect off
	want := []string{"xset +dpms", "xset dpms 600 600 1200"}
	if len(fr.commands) != 2 || fr.commands[0] != want[0] || fr.commands[1] != want[1] {
		t.Errorf("commands = %v, want %v", fr.commands, want)
	}
	fr.commands = nil
	if err := xs.ApplyDPMS(context.Background(), DPMSSettings{Enabled: false}); err != nil {
		t.Fatalf("ApplyDPMS(off) error: %v", err)
	}
	if len(fr.commands) != 1 || fr.commands[0] != "xset -dpms" {
		t.Errorf("commands = %v", fr.commands)
	}
}

func TestWaylandUnavailable(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	xs, _ := testXSet("")
	_, err := xs.Query(context.Background())
	if err == nil || !strings.Contains(err.Error(), "wayland") {
		t.Errorf("Query under wayland should fail, got %v", err)
	}
}
