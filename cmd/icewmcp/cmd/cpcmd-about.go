// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/service/panelservice"
	"github.com/icewmcp/icewmcp/pkg/sysinfo"
)

var aboutCmd = &cobra.Command{
	Use:     "about",
	Short:   "show the system overview the panel's about page shows",
	RunE:    aboutRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func aboutRun(cmd *cobra.Command, args []string) error {
	var info panelservice.VersionInfo
	err := callService(&info, "panel", "GetVersion")
	if err != nil {
		return err
	}
	WriteStdout("icewmcp v%s, %s\n", info.Version, info.License)
	WriteStdout("by %s\n\n", strings.Join(info.Authors, ", "))
	var report sysinfo.SystemReport
	err = callService(&report, "panel", "GetSystemReport")
	if err != nil {
		return err
	}
	osName := report.Host.PrettyName
	if osName == "" {
		osName = report.Host.Platform
	}
	WriteStdout("host:    %s (%s)\n", report.Host.Hostname, osName)
	WriteStdout("kernel:  %s %s\n", report.Host.KernelVersion, report.Host.KernelArch)
	if report.CPU.ModelName != "" {
		WriteStdout("cpu:     %s, %d cores, %.0f%% used\n", report.CPU.ModelName, report.CPU.Cores, report.CPU.UsedPercent)
	} else {
		WriteStdout("cpu:     %d cores\n", report.CPU.Cores)
	}
	WriteStdout("memory:  %.1f GB used of %.1f GB (%.0f%%)\n", report.Memory.UsedGB, report.Memory.TotalGB, report.Memory.UsedPercent)
	if report.Session.Display != "" {
		WriteStdout("session: display %s (%s)\n", report.Session.Display, report.Session.SessionType)
	}
	for _, printer := range report.Printers {
		def := ""
		if printer.Default {
			def = " (default)"
		}
		WriteStdout("printer: %s%s\n", printer.Name, def)
	}
	return nil
}
