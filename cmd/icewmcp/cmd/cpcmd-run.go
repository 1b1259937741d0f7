// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "run a command detached, recording it in the run history",
	Args:  cobra.MinimumNArgs(1),
	Example: `  icewmcp run xterm
  icewmcp run firefox https://ice-wm.org`,
	RunE:    runRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cmdline := strings.TrimSpace(strings.Join(args, " "))
	if cmdline == "" {
		return fmt.Errorf("empty command")
	}
	var pid int
	err := callService(&pid, "tools", "RunCommand", cmdline)
	if err != nil {
		return err
	}
	WriteStdout("started %s (pid %d)\n", cmdline, pid)
	return nil
}
