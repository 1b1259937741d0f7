// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/buildinfo"
)

var updateCheckCmd = &cobra.Command{
	Use:     "update-check",
	Short:   "check whether a newer icewmcp release exists",
	RunE:    updateCheckRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(updateCheckCmd)
}

func updateCheckRun(cmd *cobra.Command, args []string) error {
	var result buildinfo.UpdateCheckResult
	err := callService(&result, "panel", "CheckUpdate")
	if err != nil {
		return err
	}
	if !result.Newer {
		WriteStdout("icewmcp v%s is up to date\n", result.Current)
		return nil
	}
	WriteStdout("icewmcp v%s is available (running v%s)\n", result.Latest, result.Current)
	if result.DownloadURL != "" {
		WriteStdout("download: %s\n", result.DownloadURL)
	}
	return nil
}
