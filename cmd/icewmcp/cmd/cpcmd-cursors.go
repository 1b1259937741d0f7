// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/cursors"
)

var cursorsCmd = &cobra.Command{
	Use:   "cursors",
	Short: "install custom X cursor files",
	Long: `Manage the cursor files icewm loads from ~/.icewm/cursors.
icewm picks them up on restart.`,
}

var cursorsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "list the cursor roles and their install state",
	RunE:    cursorsListRun,
	PreRunE: preRunSetupClientOrLocal,
}

var cursorsInstallCmd = &cobra.Command{
	Use:     "install <role> <file>",
	Short:   "install a cursor file for a role",
	Args:    cobra.ExactArgs(2),
	RunE:    cursorsInstallRun,
	PreRunE: preRunSetupClientOrLocal,
}

var cursorsRmCmd = &cobra.Command{
	Use:     "rm <role>",
	Short:   "remove an installed cursor so the theme default applies",
	Args:    cobra.ExactArgs(1),
	RunE:    cursorsRmRun,
	PreRunE: preRunSetupClientOrLocal,
}

func init() {
	cursorsCmd.AddCommand(cursorsListCmd)
	cursorsCmd.AddCommand(cursorsInstallCmd)
	cursorsCmd.AddCommand(cursorsRmCmd)
	rootCmd.AddCommand(cursorsCmd)
}

func cursorsListRun(cmd *cobra.Command, args []string) error {
	var statuses []cursors.CursorStatus
	if localMode {
		statuses = cursors.Status()
	} else {
		err := callService(&statuses, "cursors", "GetStatus")
		if err != nil {
			return err
		}
	}
	for _, status := range statuses {
		state := "not installed"
		if status.Installed {
			state = status.Path
		}
		WriteStdout("%-14s %s\n", status.Role, state)
	}
	return nil
}

func cursorsInstallRun(cmd *cobra.Command, args []string) error {
	role, sourcePath := args[0], args[1]
	if localMode {
		if err := cursors.Install(role, sourcePath); err != nil {
			return err
		}
	} else {
		err := callService(nil, "cursors", "InstallCursor", role, sourcePath)
		if err != nil {
			return err
		}
	}
	WriteStdout("installed %s cursor (takes effect after icewm restart)\n", role)
	return nil
}

func cursorsRmRun(cmd *cobra.Command, args []string) error {
	role := args[0]
	if localMode {
		if err := cursors.Remove(role); err != nil {
			return err
		}
	} else {
		err := callService(nil, "cursors", "RemoveCursor", role)
		if err != nil {
			return err
		}
	}
	WriteStdout("removed %s cursor\n", role)
	return nil
}
