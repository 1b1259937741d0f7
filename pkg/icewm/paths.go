// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package icewm reads and writes IceWM's own configuration files: the
// preferences file, the keys file, and the theme selection file. All writes
// preserve unknown lines and comments so hand-edited files survive the panel.
package icewm

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/icewmcp/icewmcp/pkg/panelbase"
)

const IceWMPrivCfgEnvVar = "ICEWM_PRVCFG"

const (
	PrefsFileName  = "preferences"
	KeysFileName   = "keys"
	ThemeFileName  = "theme"
	ThemesDirName  = "themes"
	CursorsDirName = "cursors"
)

// system config dirs, searched in order
var systemConfigDirs = []string{
	"/usr/X11R6/lib/X11/icewm/",
	"/usr/local/lib/X11/icewm/",
	"/etc/X11/icewm/",
	"/etc/icewm/",
	"/usr/local/share/icewm/",
	"/usr/local/lib/icewm/",
	"/usr/share/icewm/",
	"/usr/X11R6/share/icewm/",
	"/usr/lib/icewm/",
}

var userDirOnce sync.Once
var userDirCached string

var systemDirOnce sync.Once
var systemDirCached string

// UserConfigDir returns IceWM's per-user config dir, honoring ICEWM_PRVCFG.
func UserConfigDir() string {
	userDirOnce.Do(func() {
		if dir := os.Getenv(IceWMPrivCfgEnvVar); dir != "" {
			userDirCached = panelbase.ExpandHomeDirSafe(dir)
			return
		}
		userDirCached = filepath.Join(panelbase.GetHomeDir(), ".icewm")
	})
	return userDirCached
}

// SystemConfigDir returns the first existing system config dir.
func SystemConfigDir() string {
	systemDirOnce.Do(func() {
		for _, dir := range systemConfigDirs {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				systemDirCached = filepath.Clean(dir)
				return
			}
		}
		systemDirCached = filepath.Clean(systemConfigDirs[0])
	})
	return systemDirCached
}

func EnsureUserConfigDir() error {
	return panelbase.TryMkdirs(UserConfigDir(), 0755, "icewm user config directory")
}

func UserPrefsFile() string {
	return filepath.Join(UserConfigDir(), PrefsFileName)
}

func SystemPrefsFile() string {
	return filepath.Join(SystemConfigDir(), PrefsFileName)
}

func UserKeysFile() string {
	return filepath.Join(UserConfigDir(), KeysFileName)
}

func SystemKeysFile() string {
	return filepath.Join(SystemConfigDir(), KeysFileName)
}

func UserThemeFile() string {
	return filepath.Join(UserConfigDir(), ThemeFileName)
}

func UserThemesDir() string {
	return filepath.Join(UserConfigDir(), ThemesDirName)
}

func SystemThemesDir() string {
	return filepath.Join(SystemConfigDir(), ThemesDirName)
}

func UserCursorsDir() string {
	return filepath.Join(UserConfigDir(), CursorsDirName)
}
