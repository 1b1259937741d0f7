// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package xsettings controls the X server settings the panel exposes:
// keyboard autorepeat, console click and bell, pointer speed, and DPMS power
// saving. Everything goes through xset(1), so none of it works on Wayland.
package xsettings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var ErrXSetUnavailable = errors.New("xset is not available in this session")

type KeyboardRepeat struct {
	Enabled bool `json:"enabled"`
	DelayMs int  `json:"delayms"`
	RateCps int  `json:"ratecps"`
}

type SoundSettings struct {
	ClickVolume    int `json:"clickvolume"`
	BellVolume     int `json:"bellvolume"`
	BellPitchHz    int `json:"bellpitchhz"`
	BellDurationMs int `json:"belldurationms"`
}

type MouseSpeed struct {
	Accel     int `json:"accel"`
	Threshold int `json:"threshold"`
}

type DPMSSettings struct {
	Enabled    bool `json:"enabled"`
	StandbySec int  `json:"standbysec"`
	SuspendSec int  `json:"suspendsec"`
	OffSec     int  `json:"offsec"`
}

type XSettings struct {
	Keyboard KeyboardRepeat `json:"keyboard"`
	Sound    SoundSettings  `json:"sound"`
	Mouse    MouseSpeed     `json:"mouse"`
	DPMS     DPMSSettings   `json:"dpms"`
}

func DefaultKeyboardRepeat() KeyboardRepeat {
	return KeyboardRepeat{Enabled: true, DelayMs: 500, RateCps: 30}
}

func DefaultSoundSettings() SoundSettings {
	return SoundSettings{ClickVolume: 50, BellVolume: 50, BellPitchHz: 400, BellDurationMs: 100}
}

func DefaultMouseSpeed() MouseSpeed {
	return MouseSpeed{Accel: 4, Threshold: 4}
}

func (kr KeyboardRepeat) Validate() error {
	if kr.RateCps < 5 || kr.RateCps > 100 {
		return fmt.Errorf("repeat rate %d out of range (5-100)", kr.RateCps)
	}
	if kr.DelayMs < 200 || kr.DelayMs > 1000 {
		return fmt.Errorf("repeat delay %d out of range (200-1000)", kr.DelayMs)
	}
	return nil
}

func (ss SoundSettings) Validate() error {
	if ss.ClickVolume < 0 || ss.ClickVolume > 100 {
		return fmt.Errorf("click volume %d out of range (0-100)", ss.ClickVolume)
	}
	if ss.BellVolume < 0 || ss.BellVolume > 100 {
		return fmt.Errorf("bell volume %d out of range (0-100)", ss.BellVolume)
	}
	if ss.BellPitchHz < 50 || ss.BellPitchHz > 2000 {
		return fmt.Errorf("bell pitch %d out of range (50-2000)", ss.BellPitchHz)
	}
	if ss.BellDurationMs < 10 || ss.BellDurationMs > 800 {
		return fmt.Errorf("bell duration %d out of range (10-800)", ss.BellDurationMs)
	}
	return nil
}

func (ms MouseSpeed) Validate() error {
	if ms.Accel < 1 || ms.Accel > 20 {
		return fmt.Errorf("acceleration %d out of range (1-20)", ms.Accel)
	}
	if ms.Threshold < 1 || ms.Threshold > 10 {
		return fmt.Errorf("threshold %d out of range (1-10)", ms.Threshold)
	}
	return nil
}

// CmdRunner runs a command and returns combined output. Injectable for tests.
type CmdRunner func(ctx context.Context, name string, args ...string) (string, error)

type XSet struct {
	Run CmdRunner
	// LookPath locates the xset binary; nil skips the check (tests inject Run)
	LookPath func(file string) (string, error)
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

func NewXSet() *XSet {
	return &XSet{Run: execRunner, LookPath: exec.LookPath}
}

// IsWaylandSession reports whether we run under Wayland, where xset has
// nothing to talk to.
func IsWaylandSession() bool {
	return os.Getenv("XDG_SESSION_TYPE") == "wayland"
}

// CheckAvailable fails fast when xset cannot work in this session.
func (xs *XSet) CheckAvailable(ctx context.Context) error {
	if IsWaylandSession() {
		return fmt.Errorf("%w: running under wayland", ErrXSetUnavailable)
	}
	if xs.LookPath != nil {
		if _, err := xs.LookPath("xset"); err != nil {
			return fmt.Errorf("%w: %v", ErrXSetUnavailable, err)
		}
	}
	return nil
}

// xset q output, as real servers print it
var autoRepeatRe = regexp.MustCompile(`auto repeat:\s+(on|off)`)
var repeatDelayRateRe = regexp.MustCompile(`auto repeat delay:\s+(\d+)\s+repeat rate:\s+(\d+)`)
var keyClickRe = regexp.MustCompile(`key click percent:\s+(\d+)`)
var bellRe = regexp.MustCompile(`bell percent:\s+(\d+)\s+bell pitch:\s+(\d+)\s+bell duration:\s+(\d+)`)
var accelThresholdRe = regexp.MustCompile(`acceleration:\s+(\d+)/(\d+)\s+threshold:\s+(\d+)`)
var dpmsTimesRe = regexp.MustCompile(`Standby:\s+(\d+)\s+Suspend:\s+(\d+)\s+Off:\s+(\d+)`)

// Query runs "xset q" and parses the current server settings. Fields that do
// not appear in the output keep their defaults.
func (xs *XSet) Query(ctx context.Context) (*XSettings, error) {
	if err := xs.CheckAvailable(ctx); err != nil {
		return nil, err
	}
	out, err := xs.Run(ctx, "xset", "q")
	if err != nil {
		return nil, fmt.Errorf("cannot query x server settings: %w", err)
	}
	return parseXSetOutput(out), nil
}

func parseXSetOutput(out string) *XSettings {
	settings := &XSettings{
		Keyboard: DefaultKeyboardRepeat(),
		Sound:    DefaultSoundSettings(),
		Mouse:    DefaultMouseSpeed(),
	}
	if m := autoRepeatRe.FindStringSubmatch(out); m != nil {
		settings.Keyboard.Enabled = m[1] == "on"
	}
	if m := repeatDelayRateRe.FindStringSubmatch(out); m != nil {
		settings.Keyboard.DelayMs, _ = strconv.Atoi(m[1])
		settings.Keyboard.RateCps, _ = strconv.Atoi(m[2])
	}
	if m := keyClickRe.FindStringSubmatch(out); m != nil {
		settings.Sound.ClickVolume, _ = strconv.Atoi(m[1])
	}
	if m := bellRe.FindStringSubmatch(out); m != nil {
		settings.Sound.BellVolume, _ = strconv.Atoi(m[1])
		settings.Sound.BellPitchHz, _ = strconv.Atoi(m[2])
		settings.Sound.BellDurationMs, _ = strconv.Atoi(m[3])
	}
	if m := accelThresholdRe.FindStringSubmatch(out); m != nil {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den < 1 {
			den = 1
		}
		accel := num / den
		if accel < 1 {
			accel = 1
		}
		settings.Mouse.Accel = accel
		settings.Mouse.Threshold, _ = strconv.Atoi(m[3])
	}
	settings.DPMS.Enabled = strings.Contains(out, "DPMS is Enabled")
	if m := dpmsTimesRe.FindStringSubmatch(out); m != nil {
		settings.DPMS.StandbySec, _ = strconv.Atoi(m[1])
		settings.DPMS.SuspendSec, _ = strconv.Atoi(m[2])
		settings.DPMS.OffSec, _ = strconv.Atoi(m[3])
	}
	return settings
}

func (xs *XSet) ApplyKeyboard(ctx context.Context, kr KeyboardRepeat) error {
	if err := xs.CheckAvailable(ctx); err != nil {
		return err
	}
	if !kr.Enabled {
		_, err := xs.Run(ctx, "xset", "-r")
		return err
	}
	if err := kr.Validate(); err != nil {
		return err
	}
	_, err := xs.Run(ctx, "xset", "r", "rate", strconv.Itoa(kr.DelayMs), strconv.Itoa(kr.RateCps))
	return err
}

func (xs *XSet) ApplySound(ctx context.Context, ss SoundSettings) error {
	if err := xs.CheckAvailable(ctx); err != nil {
		return err
	}
	if err := ss.Validate(); err != nil {
		return err
	}
	if ss.ClickVolume > 0 {
		if _, err := xs.Run(ctx, "xset", "c", strconv.Itoa(ss.ClickVolume)); err != nil {
			return err
		}
	} else {
		if _, err := xs.Run(ctx, "xset", "-c"); err != nil {
			return err
		}
	}
	if ss.BellVolume > 0 {
		_, err := xs.Run(ctx, "xset", "b", strconv.Itoa(ss.BellVolume),
			strconv.Itoa(ss.BellPitchHz), strconv.Itoa(ss.BellDurationMs))
		return err
	}
	_, err := xs.Run(ctx, "xset", "b", "off")
	return err
}

func (xs *XSet) ApplyMouse(ctx context.Context, ms MouseSpeed) error {
	if err := xs.CheckAvailable(ctx); err != nil {
		return err
	}
	if err := ms.Validate(); err != nil {
		return err
	}
	_, err := xs.Run(ctx, "xset", "m", strconv.Itoa(ms.Accel), strconv.Itoa(ms.Threshold))
	return err
}

func (xs *XSet) ApplyDPMS(ctx context.Context, ds DPMSSettings) error {
	if err := xs.CheckAvailable(ctx); err != nil {
		return err
	}
	if !ds.Enabled {
		_, err := xs.Run(ctx, "xset", "-dpms")
		return err
	}
	ds = ClampDPMS(ds)
	if _, err := xs.Run(ctx, "xset", "+dpms"); err != nil {
		return err
	}
	_, err := xs.Run(ctx, "xset", "dpms", strconv.Itoa(ds.StandbySec),
		strconv.Itoa(ds.SuspendSec), strconv.Itoa(ds.OffSec))
	return err
}
