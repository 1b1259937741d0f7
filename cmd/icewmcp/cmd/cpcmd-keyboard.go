// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

var keyboardCmd = &cobra.Command{
	Use:   "keyboard",
	Short: "keyboard autorepeat settings (xset)",
}

var keyboardShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "show the current autorepeat settings",
	RunE:    keyboardShowRun,
	PreRunE: preRunSetupClient,
}

var keyboardApplyCmd = &cobra.Command{
	Use:     "apply [--delay ms] [--rate cps] [--off]",
	Short:   "apply autorepeat settings",
	RunE:    keyboardApplyRun,
	PreRunE: preRunSetupClient,
}

var keyboardDelay int
var keyboardRate int
var keyboardOff bool

func init() {
	keyboardApplyCmd.Flags().IntVar(&keyboardDelay, "delay", 0, "repeat delay in milliseconds (200-1000)")
	keyboardApplyCmd.Flags().IntVar(&keyboardRate, "rate", 0, "repeat rate in characters per second (5-100)")
	keyboardApplyCmd.Flags().BoolVar(&keyboardOff, "off", false, "disable keyboard autorepeat")
	keyboardCmd.AddCommand(keyboardShowCmd)
	keyboardCmd.AddCommand(keyboardApplyCmd)
	rootCmd.AddCommand(keyboardCmd)
}

func getServerSettings() (*xsettings.XSettings, error) {
	var settings xsettings.XSettings
	err := callService(&settings, "input", "GetSettings")
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func printKeyboard(kr xsettings.KeyboardRepeat) {
	if !kr.Enabled {
		WriteStdout("autorepeat: off\n")
		return
	}
	WriteStdout("autorepeat: on, delay %dms, rate %d chars/sec\n", kr.DelayMs, kr.RateCps)
}

func keyboardShowRun(cmd *cobra.Command, args []string) error {
	settings, err := getServerSettings()
	if err != nil {
		return err
	}
	printKeyboard(settings.Keyboard)
	return nil
}

func keyboardApplyRun(cmd *cobra.Command, args []string) error {
	settings, err := getServerSettings()
	if err != nil {
		return err
	}
	kr := settings.Keyboard
	kr.Enabled = !keyboardOff
	if cmd.Flags().Changed("delay") {
		kr.DelayMs = keyboardDelay
	}
	if cmd.Flags().Changed("rate") {
		kr.RateCps = keyboardRate
	}
	err = callService(nil, "input", "ApplyKeyboard", kr)
	if err != nil {
		return err
	}
	printKeyboard(kr)
	return nil
}
