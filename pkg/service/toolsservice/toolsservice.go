// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package toolsservice launches the bundled IceWM helper tools, runs
// arbitrary user commands with run history, and opens the documentation
// links in a browser.
package toolsservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/tools"
)

type ToolsService struct {
	registry *tools.Registry
}

var ToolsServiceInstance = &ToolsService{
	registry: tools.NewRegistry(),
}

// ListTools returns the helper tools with availability and desktop entry
// metadata.
func (ts *ToolsService) ListTools() []tools.ToolInfo {
	return ts.registry.ListTools()
}

// LaunchTool starts a helper tool detached from the daemon and returns its
// pid.
func (ts *ToolsService) LaunchTool(ctx context.Context, name string) (int, error) {
	pid, err := ts.registry.LaunchTool(name, nil)
	if err != nil {
		return 0, err
	}
	publishHistoryNote(fmt.Sprintf("launched %s", name))
	return pid, nil
}

// RunCommand runs a shell command line detached, recording it in the run
// history for the run dialog's recent list.
func (ts *ToolsService) RunCommand(ctx context.Context, cmdline string) (int, error) {
	pid, err := tools.RunCommand(cmdline)
	if err != nil {
		return 0, err
	}
	if err := history.RecordRun(ctx, cmdline, historyLimit()); err != nil {
		log.Printf("error recording run history: %v\n", err)
	}
	return pid, nil
}

// GetRecentCommands returns the run history, most recent first.
func (ts *ToolsService) GetRecentCommands(ctx context.Context) ([]history.RunEntry, error) {
	return history.GetRecentCommands(ctx, historyLimit())
}

// RemoveRecentCommand drops one command from the run history.
func (ts *ToolsService) RemoveRecentCommand(ctx context.Context, cmd string) error {
	return history.RemoveCommand(ctx, cmd)
}

// ClearRecentCommands empties the run history.
func (ts *ToolsService) ClearRecentCommands(ctx context.Context) error {
	return history.ClearRunHistory(ctx)
}

// GetDocTargets lists the documentation link names OpenDoc accepts.
func (ts *ToolsService) GetDocTargets() []string {
	return tools.DocTargets()
}

// OpenDoc opens one of the documentation links in the user's browser and
// returns the URL it opened.
func (ts *ToolsService) OpenDoc(ctx context.Context, target string) (string, error) {
	return tools.OpenDoc(target)
}

func historyLimit() int {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	if settings.PanelHistoryLimit > 0 {
		return settings.PanelHistoryLimit
	}
	return history.DefaultRunHistoryLimit
}

func publishHistoryNote(note string) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_HistoryUpdated,
		Data:  map[string]any{"kind": "run", "note": note},
	})
}
