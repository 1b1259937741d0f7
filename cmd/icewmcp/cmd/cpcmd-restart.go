// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:     "restart",
	Short:   "restart icewm so config changes take effect",
	RunE:    restartRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func restartRun(cmd *cobra.Command, args []string) error {
	err := callService(nil, "panel", "RestartIceWM")
	if err != nil {
		return err
	}
	WriteStdout("icewm restarted\n")
	return nil
}
