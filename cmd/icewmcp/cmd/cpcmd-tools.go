// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "launch companion configuration tools",
}

var toolsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "list the known tools and whether they are installed",
	RunE:    toolsListRun,
	PreRunE: preRunSetupClient,
}

var toolsLaunchCmd = &cobra.Command{
	Use:     "launch <name>",
	Short:   "start a tool detached from the terminal",
	Args:    cobra.ExactArgs(1),
	RunE:    toolsLaunchRun,
	PreRunE: preRunSetupClient,
}

func init() {
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsLaunchCmd)
	rootCmd.AddCommand(toolsCmd)
}

func toolsListRun(cmd *cobra.Command, args []string) error {
	var infos []tools.ToolInfo
	err := callService(&infos, "tools", "ListTools")
	if err != nil {
		return err
	}
	for _, info := range infos {
		state := "not installed"
		if info.Available {
			state = info.Path
		}
		WriteStdout("%-16s %-28s %s\n", info.Name, info.Title, state)
	}
	return nil
}

func toolsLaunchRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	var pid int
	err := callService(&pid, "tools", "LaunchTool", name)
	if err != nil {
		return err
	}
	WriteStdout("started %s (pid %d)\n", name, pid)
	return nil
}
