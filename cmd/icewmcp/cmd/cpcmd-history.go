// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "show the run history or the change log",
	RunE:    historyRun,
	PreRunE: preRunSetupClient,
}

var historyChanges bool
var historyModule string
var historyLimit int
var historyClear bool
var historyRm string

func init() {
	historyCmd.Flags().BoolVar(&historyChanges, "changes", false, "show the settings change log instead of the run history")
	historyCmd.Flags().StringVar(&historyModule, "module", "", "with --changes, only entries for one module (prefs, keys, theme, ...)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "with --changes, maximum entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear the run history")
	historyCmd.Flags().StringVar(&historyRm, "rm", "", "remove one command from the run history")
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	if historyClear {
		err := callService(nil, "tools", "ClearRecentCommands")
		if err != nil {
			return err
		}
		WriteStdout("run history cleared\n")
		return nil
	}
	if historyRm != "" {
		err := callService(nil, "tools", "RemoveRecentCommand", historyRm)
		if err != nil {
			return err
		}
		WriteStdout("removed %q from the run history\n", historyRm)
		return nil
	}
	if historyChanges {
		return showChangeLog()
	}
	var entries []history.RunEntry
	err := callService(&entries, "tools", "GetRecentCommands")
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		WriteStdout("no run history\n")
		return nil
	}
	for _, entry := range entries {
		lastRun := time.UnixMilli(entry.LastRunTs).Format("2006-01-02 15:04")
		WriteStdout("%s  %3dx  %s\n", lastRun, entry.RunCount, utilfn.EllipsisStr(entry.Cmd, 80))
	}
	return nil
}

func showChangeLog() error {
	var entries []history.ChangeEntry
	err := callService(&entries, "history", "GetChanges", historyModule, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		WriteStdout("no recorded changes\n")
		return nil
	}
	for _, entry := range entries {
		ts := time.UnixMilli(entry.Ts).Format("2006-01-02 15:04")
		WriteStdout("%s  %-8s %s\n", ts, entry.Module, entry.Summary)
	}
	return nil
}
