// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package timezone wraps system clock administration: listing the zoneinfo
// database, reading the current zone, and driving timedatectl for changes.
package timezone

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// zone database locations, searched in order; TZDIR wins when set
var zoneDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/lib/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/local/share/zoneinfo/",
	"/usr/local/share/lib/zoneinfo/",
	"/etc/zoneinfo/",
}

// non-zone entries that live inside the zoneinfo tree
var skipZoneNames = map[string]bool{
	"posix":      true,
	"right":      true,
	"posixrules": true,
	"leapseconds": true,
	"localtime":  true,
	"SECURITY":   true,
}

type CmdRunner func(ctx context.Context, name string, args ...string) (string, error)

type Clock struct {
	Run CmdRunner
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

func NewClock() *Clock {
	return &Clock{Run: execRunner}
}

// ZoneDir returns the first existing zoneinfo directory.
func ZoneDir() (string, error) {
	dirs := zoneDirs
	if tzdir := os.Getenv("TZDIR"); tzdir != "" {
		dirs = append([]string{tzdir}, dirs...)
	}
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return filepath.Clean(dir), nil
		}
	}
	return "", fmt.Errorf("no zoneinfo directory found")
}

// ListZones walks the zone database and returns zone names like
// "Europe/Berlin", sorted.
func ListZones() ([]string, error) {
	zoneDir, err := ZoneDir()
	if err != nil {
		return nil, err
	}
	return listZonesIn(zoneDir)
}

func listZonesIn(zoneDir string) ([]string, error) {
	var zones []string
	err := filepath.WalkDir(zoneDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != zoneDir && skipZoneNames[name] {
				return filepath.SkipDir
			}
			return nil
		}
		// tab files, tzdata.zi, .ics calendars and friends all carry a dot
		if skipZoneNames[name] || strings.Contains(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(zoneDir, path)
		if err != nil {
			return nil
		}
		zones = append(zones, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk zone database: %w", err)
	}
	sort.Strings(zones)
	return zones, nil
}

// CurrentZone resolves the system timezone from the /etc/localtime symlink,
// falling back to /etc/timezone.
func CurrentZone() (string, error) {
	target, err := os.Readlink("/etc/localtime")
	if err == nil {
		if idx := strings.Index(target, "zoneinfo/"); idx != -1 {
			return target[idx+len("zoneinfo/"):], nil
		}
	}
	data, err := os.ReadFile("/etc/timezone")
	if err == nil {
		zone := strings.TrimSpace(string(data))
		if zone != "" {
			return zone, nil
		}
	}
	return "", fmt.Errorf("cannot determine current timezone")
}

type ClockStatus struct {
	Zone         string `json:"zone"`
	LocalTime    string `json:"localtime"`
	NTPActive    bool   `json:"ntpactive"`
	Synchronized bool   `json:"synchronized"`
}

var tdZoneRe = regexp.MustCompile(`Time zone:\s+(\S+)`)
var tdLocalRe = regexp.MustCompile(`Local time:\s+(.*)`)

// Status parses "timedatectl" output.
func (c *Clock) Status(ctx context.Context) (*ClockStatus, error) {
	out, err := c.Run(ctx, "timedatectl")
	if err != nil {
		return nil, fmt.Errorf("cannot query timedatectl: %w", err)
	}
	status := &ClockStatus{
		NTPActive:    strings.Contains(out, "NTP service: active"),
		Synchronized: strings.Contains(out, "System clock synchronized: yes"),
	}
	if m := tdZoneRe.FindStringSubmatch(out); m != nil {
		status.Zone = m[1]
	}
	if m := tdLocalRe.FindStringSubmatch(out); m != nil {
		status.LocalTime = strings.TrimSpace(m[1])
	}
	return status, nil
}

// ValidateZone checks that zone names a file in the zone database.
func ValidateZone(zone string) error {
	if zone == "" || strings.Contains(zone, "..") || strings.HasPrefix(zone, "/") {
		return fmt.Errorf("invalid timezone %q", zone)
	}
	zoneDir, err := ZoneDir()
	if err != nil {
		return err
	}
	info, err := os.Stat(filepath.Join(zoneDir, zone))
	if err != nil || info.IsDir() {
		return fmt.Errorf("unknown timezone %q", zone)
	}
	return nil
}

func (c *Clock) SetZone(ctx context.Context, zone string) error {
	if err := ValidateZone(zone); err != nil {
		return err
	}
	_, err := c.Run(ctx, "timedatectl", "set-timezone", zone)
	return err
}

func (c *Clock) SetNTP(ctx context.Context, enabled bool) error {
	arg := "false"
	if enabled {
		arg = "true"
	}
	_, err := c.Run(ctx, "timedatectl", "set-ntp", arg)
	return err
}

// SetTime sets the system clock; timeStr must be "2006-01-02 15:04:05".
func (c *Clock) SetTime(ctx context.Context, timeStr string) error {
	if _, err := time.Parse("2006-01-02 15:04:05", timeStr); err != nil {
		return fmt.Errorf("invalid time %q (want YYYY-MM-DD HH:MM:SS): %w", timeStr, err)
	}
	_, err := c.Run(ctx, "timedatectl", "set-time", timeStr)
	return err
}
