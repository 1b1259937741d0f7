// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package cursorservice installs and removes per-role XPM cursor overrides.
// Cursor changes only show up after IceWM restarts, so writes go through
// the shared auto-restart helper.
package cursorservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/cursors"
	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/service/restartutil"
)

type CursorService struct{}

// GetStatus lists every cursor role with its override state.
func (cs *CursorService) GetStatus() []cursors.CursorStatus {
	return cursors.Status()
}

// InstallCursor copies the XPM file at sourcePath over the named role.
func (cs *CursorService) InstallCursor(ctx context.Context, role string, sourcePath string) error {
	if err := cursors.Install(role, sourcePath); err != nil {
		return err
	}
	summary := fmt.Sprintf("installed cursor %q from %s", role, sourcePath)
	if err := history.RecordChange(ctx, "cursors", summary, nil); err != nil {
		log.Printf("error recording cursor change: %v\n", err)
	}
	restartutil.MaybeRestartIceWM(ctx)
	return nil
}

// RemoveCursor deletes the override for role, restoring IceWM's built-in.
func (cs *CursorService) RemoveCursor(ctx context.Context, role string) error {
	if err := cursors.Remove(role); err != nil {
		return err
	}
	summary := fmt.Sprintf("removed cursor override %q", role)
	if err := history.RecordChange(ctx, "cursors", summary, nil); err != nil {
		log.Printf("error recording cursor change: %v\n", err)
	}
	restartutil.MaybeRestartIceWM(ctx)
	return nil
}
