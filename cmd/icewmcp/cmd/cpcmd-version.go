// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/buildinfo"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/service/panelservice"
)

var versionVerbose bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version [-v]",
	Short: "print the version number of icewmcp",
	RunE:  runVersionCmd,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "display full version information from the daemon")
	rootCmd.AddCommand(versionCmd)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	if !versionVerbose {
		WriteStdout("icewmcp v%s\n", buildinfo.PanelVersion)
		return nil
	}
	err := preRunSetupClient(cmd, args)
	if err != nil {
		return err
	}
	var info panelservice.VersionInfo
	err = callService(&info, "panel", "GetVersion")
	if err != nil {
		return err
	}
	WriteStdout("icewmcpd v%s (%s)\n", info.Version, info.BuildTime)
	WriteStdout("license:   %s\n", info.License)
	WriteStdout("authors:   %s\n", strings.Join(info.Authors, ", "))
	WriteStdout("datadir:   %s\n", panelbase.GetPanelDataDir())
	WriteStdout("configdir: %s\n", panelbase.GetPanelConfigDir())
	return nil
}
