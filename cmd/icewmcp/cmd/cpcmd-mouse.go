// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

var mouseCmd = &cobra.Command{
	Use:   "mouse",
	Short: "pointer speed settings (xset)",
}

var mouseShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "show the current pointer speed",
	RunE:    mouseShowRun,
	PreRunE: preRunSetupClient,
}

var mouseApplyCmd = &cobra.Command{
	Use:   "apply [-a accel] [-t threshold] [--yes]",
	Short: "try new pointer speed settings",
	Long: `Apply pointer speed settings as a trial: the daemon reverts them
automatically after the countdown unless you confirm. A runaway pointer
fixes itself. --yes skips the trial and applies directly.`,
	RunE:    mouseApplyRun,
	PreRunE: preRunSetupClient,
}

var mouseAccel int
var mouseThreshold int
var mouseYes bool

func init() {
	mouseApplyCmd.Flags().IntVarP(&mouseAccel, "accel", "a", 0, "pointer acceleration (1-20)")
	mouseApplyCmd.Flags().IntVarP(&mouseThreshold, "threshold", "t", 0, "acceleration threshold in pixels (1-10)")
	mouseApplyCmd.Flags().BoolVarP(&mouseYes, "yes", "y", false, "apply directly without the revert countdown")
	mouseCmd.AddCommand(mouseShowCmd)
	mouseCmd.AddCommand(mouseApplyCmd)
	rootCmd.AddCommand(mouseCmd)
}

func printMouse(speed xsettings.MouseSpeed) {
	WriteStdout("pointer: acceleration %dx, threshold %dpx\n", speed.Accel, speed.Threshold)
}

func mouseShowRun(cmd *cobra.Command, args []string) error {
	var speed xsettings.MouseSpeed
	err := callService(&speed, "mouse", "GetMouse")
	if err != nil {
		return err
	}
	printMouse(speed)
	return nil
}

func trialSeconds() int {
	var config panelconfig.FullConfigType
	err := callService(&config, "panel", "GetFullConfig")
	if err == nil && config.Settings.PanelTrialSeconds > 0 {
		return config.Settings.PanelTrialSeconds
	}
	return xsettings.DefaultTrialSeconds
}

func mouseApplyRun(cmd *cobra.Command, args []string) error {
	var current xsettings.MouseSpeed
	err := callService(&current, "mouse", "GetMouse")
	if err != nil {
		return err
	}
	speed := current
	if cmd.Flags().Changed("accel") {
		speed.Accel = mouseAccel
	}
	if cmd.Flags().Changed("threshold") {
		speed.Threshold = mouseThreshold
	}
	if mouseYes {
		err = callService(nil, "mouse", "ApplyMouse", speed)
		if err != nil {
			return err
		}
		printMouse(speed)
		return nil
	}
	seconds := trialSeconds()
	var trialId string
	err = callService(&trialId, "mouse", "BeginMouseTrial", speed)
	if err != nil {
		return err
	}
	printMouse(speed)
	if !getIsTty() {
		// no way to prompt, let the daemon revert on its own
		WriteStdout("no terminal for the keep/revert prompt; reverting in %ds (use --yes to apply directly)\n", seconds)
		time.Sleep(time.Duration(seconds)*time.Second + 500*time.Millisecond)
		WriteStdout("reverted to acceleration %dx, threshold %dpx\n", current.Accel, current.Threshold)
		return nil
	}
	keep, timedOut, err := promptKeepRevert(seconds)
	if err != nil {
		return err
	}
	if timedOut {
		WriteStdout("timed out, reverted to acceleration %dx, threshold %dpx\n", current.Accel, current.Threshold)
		return nil
	}
	if keep {
		err = callService(nil, "mouse", "KeepTrial", trialId)
		if err != nil {
			return err
		}
		WriteStdout("kept\n")
		return nil
	}
	err = callService(nil, "mouse", "RevertTrial", trialId)
	if err != nil {
		return err
	}
	WriteStdout("reverted to acceleration %dx, threshold %dpx\n", current.Accel, current.Threshold)
	return nil
}

// promptKeepRevert reads a single key in raw mode while counting down.
// Returns keep=true for y/Y; any other key reverts; running out the clock
// reports timedOut (the daemon has already reverted by then).
func promptKeepRevert(seconds int) (keep bool, timedOut bool, err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, false, err
	}
	defer term.Restore(fd, oldState)
	keyCh := make(chan byte, 1)
	go func() {
		var buf [1]byte
		_, readErr := os.Stdin.Read(buf[:])
		if readErr != nil {
			return
		}
		keyCh <- buf[0]
	}()
	deadline := time.NewTimer(time.Duration(seconds) * time.Second)
	defer deadline.Stop()
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	remaining := seconds
	WriteStdout("keep these settings? [y/n] reverting in %2ds", remaining)
	for {
		select {
		case key := <-keyCh:
			WriteStdout("\r\n")
			return key == 'y' || key == 'Y', false, nil
		case <-ticker.C:
			if remaining > 0 {
				remaining--
			}
			WriteStdout("\rkeep these settings? [y/n] reverting in %2ds", remaining)
		case <-deadline.C:
			WriteStdout("\r\n")
			return false, true, nil
		}
	}
}
