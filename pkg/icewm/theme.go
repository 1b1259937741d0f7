// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// The theme selection lives in the user theme file as a prefs-style option:
//
//	Theme="IceClearlooks/default.theme"
//
// IceWM keeps previously selected themes as commented lines, and so do we.

const DefaultThemeEntry = "default.theme"

type ThemeInfo struct {
	Name     string   `json:"name"`
	Source   string   `json:"source"` // "user" or "system"
	Dir      string   `json:"dir"`
	Variants []string `json:"variants,omitempty"`
}

func scanThemesDir(dir string, source string) []ThemeInfo {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var rtn []ThemeInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		themeDir := filepath.Join(dir, entry.Name())
		var variants []string
		themeFiles, err := os.ReadDir(themeDir)
		if err != nil {
			continue
		}
		for _, tf := range themeFiles {
			if !tf.IsDir() && strings.HasSuffix(tf.Name(), ".theme") {
				variants = append(variants, tf.Name())
			}
		}
		if len(variants) == 0 {
			continue
		}
		sort.Strings(variants)
		rtn = append(rtn, ThemeInfo{
			Name:     entry.Name(),
			Source:   source,
			Dir:      themeDir,
			Variants: variants,
		})
	}
	return rtn
}

// ListThemes returns user themes first, then system themes the user does not
// shadow, sorted by name within each group.
func ListThemes() []ThemeInfo {
	userThemes := scanThemesDir(UserThemesDir(), "user")
	seen := make(map[string]bool)
	for _, th := range userThemes {
		seen[th.Name] = true
	}
	systemThemes := scanThemesDir(SystemThemesDir(), "system")
	var rtn []ThemeInfo
	rtn = append(rtn, userThemes...)
	for _, th := range systemThemes {
		if !seen[th.Name] {
			rtn = append(rtn, th)
		}
	}
	sort.SliceStable(rtn, func(i, j int) bool {
		if rtn[i].Source != rtn[j].Source {
			return rtn[i].Source == "user"
		}
		return rtn[i].Name < rtn[j].Name
	})
	return rtn
}

// CurrentTheme returns the selected theme as "name/variant.theme".
func CurrentTheme() (string, error) {
	doc, err := LoadPrefsFile(UserThemeFile())
	if err != nil {
		return "", err
	}
	value, commented, found := doc.Get("Theme")
	if !found || commented {
		return "", nil
	}
	return UnquoteValue(value), nil
}

// SetCurrentTheme selects a theme. Accepts "name" or "name/variant.theme".
// The previous selection is kept as a commented line.
func SetCurrentTheme(theme string) error {
	if theme == "" {
		return fmt.Errorf("theme name is empty")
	}
	if !strings.Contains(theme, "/") {
		theme = theme + "/" + DefaultThemeEntry
	}
	err := EnsureUserConfigDir()
	if err != nil {
		return err
	}
	doc, err := LoadPrefsFile(UserThemeFile())
	if err != nil {
		return err
	}
	current, commented, found := doc.Get("Theme")
	if found && !commented && UnquoteValue(current) == theme {
		return nil
	}
	doc.Unset("Theme")
	doc.Append("Theme", QuoteValue(theme))
	return doc.Save()
}

// ThemeExists reports whether a theme directory with that name is installed.
func ThemeExists(name string) bool {
	name = strings.SplitN(name, "/", 2)[0]
	for _, th := range ListThemes() {
		if th.Name == name {
			return true
		}
	}
	return false
}
