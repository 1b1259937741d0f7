// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/service/panelservice"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "show daemon and icewm status",
	RunE:    statusRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(cmd *cobra.Command, args []string) error {
	var info panelservice.VersionInfo
	err := callService(&info, "panel", "GetVersion")
	if err != nil {
		return err
	}
	WriteStdout("icewmcpd:  v%s, web %s, ws %s\n", info.Version, PanelClient.WebAddr(), PanelClient.WsAddr())
	var status panelservice.IceWMStatus
	err = callService(&status, "panel", "GetIceWMStatus")
	if err != nil {
		return err
	}
	if !status.InSession {
		WriteStdout("session:   not an X session (icewm control disabled)\n")
	}
	if status.Running {
		if status.Version != "" {
			WriteStdout("icewm:     running, pid %d, %s\n", status.Pid, status.Version)
		} else {
			WriteStdout("icewm:     running, pid %d\n", status.Pid)
		}
	} else {
		WriteStdout("icewm:     not running\n")
	}
	return nil
}
