// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

var dpmsCmd = &cobra.Command{
	Use:   "dpms",
	Short: "monitor power saving settings (xset)",
}

var dpmsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "show the current power saving settings",
	RunE:    dpmsShowRun,
	PreRunE: preRunSetupClient,
}

var dpmsApplyCmd = &cobra.Command{
	Use:   "apply [--standby t] [--suspend t] [--off-after t] [--disable]",
	Short: "apply power saving settings",
	Long: `Apply DPMS power saving settings. Times accept a menu label like
30m, 1h, or never, or a raw number of seconds. Stages are reordered so
standby <= suspend <= off, which is what the X server requires.
Use "icewmcp dpms show" to list the available labels.`,
	RunE:    dpmsApplyRun,
	PreRunE: preRunSetupClient,
}

var dpmsStandby string
var dpmsSuspend string
var dpmsOffAfter string
var dpmsDisable bool

func init() {
	dpmsApplyCmd.Flags().StringVar(&dpmsStandby, "standby", "", "standby time (label or seconds)")
	dpmsApplyCmd.Flags().StringVar(&dpmsSuspend, "suspend", "", "suspend time (label or seconds)")
	dpmsApplyCmd.Flags().StringVar(&dpmsOffAfter, "off-after", "", "power off time (label or seconds)")
	dpmsApplyCmd.Flags().BoolVar(&dpmsDisable, "disable", false, "disable power saving")
	dpmsCmd.AddCommand(dpmsShowCmd)
	dpmsCmd.AddCommand(dpmsApplyCmd)
	rootCmd.AddCommand(dpmsCmd)
}

func dpmsTimeLabel(seconds int) string {
	for _, choice := range xsettings.DPMSChoices {
		if choice.Seconds == seconds {
			return choice.Label
		}
	}
	return ""
}

func printDPMSTime(name string, seconds int) {
	label := dpmsTimeLabel(seconds)
	if label == "" {
		WriteStdout("%-9s %ds\n", name+":", seconds)
	} else {
		WriteStdout("%-9s %s\n", name+":", label)
	}
}

func dpmsShowRun(cmd *cobra.Command, args []string) error {
	var settings xsettings.DPMSSettings
	err := callService(&settings, "display", "GetDPMS")
	if err != nil {
		return err
	}
	if !settings.Enabled {
		WriteStdout("power saving: disabled\n")
	} else {
		WriteStdout("power saving: enabled\n")
		printDPMSTime("standby", settings.StandbySec)
		printDPMSTime("suspend", settings.SuspendSec)
		printDPMSTime("off", settings.OffSec)
	}
	var labels []string
	for _, choice := range xsettings.DPMSChoices {
		labels = append(labels, choice.Label)
	}
	WriteStdout("times: %s\n", strings.Join(labels, " "))
	return nil
}

func dpmsApplyRun(cmd *cobra.Command, args []string) error {
	if dpmsDisable {
		err := callService(nil, "display", "ApplyDPMS", xsettings.DPMSSettings{Enabled: false})
		if err != nil {
			return err
		}
		WriteStdout("power saving disabled\n")
		return nil
	}
	var settings xsettings.DPMSSettings
	err := callService(&settings, "display", "GetDPMS")
	if err != nil {
		return err
	}
	settings.Enabled = true
	if dpmsStandby != "" {
		if settings.StandbySec, err = xsettings.ParseDPMSTime(dpmsStandby); err != nil {
			return err
		}
	}
	if dpmsSuspend != "" {
		if settings.SuspendSec, err = xsettings.ParseDPMSTime(dpmsSuspend); err != nil {
			return err
		}
	}
	if dpmsOffAfter != "" {
		if settings.OffSec, err = xsettings.ParseDPMSTime(dpmsOffAfter); err != nil {
			return err
		}
	}
	settings = xsettings.ClampDPMS(settings)
	err = callService(nil, "display", "ApplyDPMS", settings)
	if err != nil {
		return err
	}
	printDPMSTime("standby", settings.StandbySec)
	printDPMSTime("suspend", settings.SuspendSec)
	printDPMSTime("off", settings.OffSec)
	return nil
}
