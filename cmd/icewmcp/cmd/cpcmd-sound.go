// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "console click and bell settings (xset)",
}

var soundShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "show the current click and bell settings",
	RunE:    soundShowRun,
	PreRunE: preRunSetupClient,
}

var soundApplyCmd = &cobra.Command{
	Use:     "apply [--click pct] [--bell pct] [--pitch hz] [--duration ms]",
	Short:   "apply click and bell settings",
	RunE:    soundApplyRun,
	PreRunE: preRunSetupClient,
}

var soundClick int
var soundBell int
var soundPitch int
var soundDuration int

func init() {
	soundApplyCmd.Flags().IntVar(&soundClick, "click", 0, "key click volume percent (0 disables)")
	soundApplyCmd.Flags().IntVar(&soundBell, "bell", 0, "bell volume percent (0 disables)")
	soundApplyCmd.Flags().IntVar(&soundPitch, "pitch", 0, "bell pitch in hz (50-2000)")
	soundApplyCmd.Flags().IntVar(&soundDuration, "duration", 0, "bell duration in milliseconds (10-800)")
	soundCmd.AddCommand(soundShowCmd)
	soundCmd.AddCommand(soundApplyCmd)
	rootCmd.AddCommand(soundCmd)
}

func printSound(ss xsettings.SoundSettings) {
	WriteStdout("key click: %d%%\n", ss.ClickVolume)
	if ss.BellVolume == 0 {
		WriteStdout("bell:      off\n")
		return
	}
	WriteStdout("bell:      %d%%, %dhz, %dms\n", ss.BellVolume, ss.BellPitchHz, ss.BellDurationMs)
}

func soundShowRun(cmd *cobra.Command, args []string) error {
	settings, err := getServerSettings()
	if err != nil {
		return err
	}
	printSound(settings.Sound)
	return nil
}

func soundApplyRun(cmd *cobra.Command, args []string) error {
	settings, err := getServerSettings()
	if err != nil {
		return err
	}
	ss := settings.Sound
	if cmd.Flags().Changed("click") {
		ss.ClickVolume = soundClick
	}
	if cmd.Flags().Changed("bell") {
		ss.BellVolume = soundBell
	}
	if cmd.Flags().Changed("pitch") {
		ss.BellPitchHz = soundPitch
	}
	if cmd.Flags().Changed("duration") {
		ss.BellDurationMs = soundDuration
	}
	err = callService(nil, "input", "ApplySound", ss)
	if err != nil {
		return err
	}
	printSound(ss)
	return nil
}
