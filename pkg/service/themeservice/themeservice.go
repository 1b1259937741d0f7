// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package themeservice switches IceWM themes.  The theme file keeps old
// selections as commented lines, which double as the selection history.
package themeservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/service/restartutil"
)

type ThemeService struct{}

// ListThemes returns the installed themes, user themes first.
func (ts *ThemeService) ListThemes() []icewm.ThemeInfo {
	return icewm.ListThemes()
}

// GetCurrentTheme returns the active selection as "name/variant.theme", or
// an empty string when the user file does not select a theme.
func (ts *ThemeService) GetCurrentTheme() (string, error) {
	return icewm.CurrentTheme()
}

// SetTheme selects a theme.  The previous selection stays in the file as a
// commented line so it shows up in the history.
func (ts *ThemeService) SetTheme(ctx context.Context, theme string) error {
	if !icewm.ThemeExists(theme) {
		return fmt.Errorf("theme %q is not installed", theme)
	}
	if err := icewm.SetCurrentTheme(theme); err != nil {
		return err
	}
	if err := history.RecordChange(ctx, "theme", fmt.Sprintf("theme set to %s", theme), nil); err != nil {
		log.Printf("error recording theme change: %v\n", err)
	}
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_ThemeChanged,
		Data:  map[string]any{"theme": theme},
	})
	restartutil.MaybeRestartIceWM(ctx)
	return nil
}

// GetThemeHistory returns previously selected themes, most recent first.
// The active selection is not included.
func (ts *ThemeService) GetThemeHistory() ([]string, error) {
	doc, err := icewm.LoadPrefsFile(icewm.UserThemeFile())
	if err != nil {
		return nil, err
	}
	current, _, _ := doc.Get("Theme")
	currentTheme := icewm.UnquoteValue(current)
	seen := make(map[string]bool)
	var past []string
	for _, line := range doc.Lines {
		if line.Kind != icewm.LineCommentedOption || line.Key != "Theme" {
			continue
		}
		theme := icewm.UnquoteValue(line.Value)
		if theme == "" || theme == currentTheme || seen[theme] {
			continue
		}
		seen[theme] = true
		past = append(past, theme)
	}
	// selections append at the end of the file, so reverse for newest first
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return past, nil
}
