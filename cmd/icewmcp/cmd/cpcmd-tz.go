// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/timezone"
)

var tzCmd = &cobra.Command{
	Use:   "tz",
	Short: "clock and timezone settings",
}

var tzListCmd = &cobra.Command{
	Use:     "list [prefix]",
	Short:   "list the available timezones, optionally under a prefix",
	Args:    cobra.MaximumNArgs(1),
	RunE:    tzListRun,
	PreRunE: preRunSetupClientOrLocal,
}

var tzStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "show the current zone, local time, and NTP state",
	RunE:    tzStatusRun,
	PreRunE: preRunSetupClient,
}

var tzSetCmd = &cobra.Command{
	Use:     "set <zone>",
	Short:   "set the system timezone (needs timedatectl privileges)",
	Args:    cobra.ExactArgs(1),
	RunE:    tzSetRun,
	PreRunE: preRunSetupClient,
}

var tzSetTimeCmd = &cobra.Command{
	Use:     "set-time <YYYY-MM-DD HH:MM:SS>",
	Short:   "set the clock manually (NTP sync must be off)",
	Args:    cobra.MinimumNArgs(1),
	RunE:    tzSetTimeRun,
	PreRunE: preRunSetupClient,
}

var tzNTP string

func init() {
	tzSetCmd.Flags().StringVar(&tzNTP, "ntp", "", "also switch NTP sync on or off (on|off)")
	tzCmd.AddCommand(tzListCmd)
	tzCmd.AddCommand(tzStatusCmd)
	tzCmd.AddCommand(tzSetCmd)
	tzCmd.AddCommand(tzSetTimeCmd)
	rootCmd.AddCommand(tzCmd)
}

func tzListRun(cmd *cobra.Command, args []string) error {
	var zones []string
	if localMode {
		localZones, err := timezone.ListZones()
		if err != nil {
			return err
		}
		zones = localZones
	} else {
		err := callService(&zones, "clock", "ListZones")
		if err != nil {
			return err
		}
	}
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	for _, zone := range zones {
		if prefix != "" && !strings.HasPrefix(zone, prefix) {
			continue
		}
		WriteStdout("%s\n", zone)
	}
	return nil
}

func tzStatusRun(cmd *cobra.Command, args []string) error {
	var status timezone.ClockStatus
	err := callService(&status, "clock", "GetStatus")
	if err != nil {
		return err
	}
	WriteStdout("zone:       %s\n", status.Zone)
	WriteStdout("local time: %s\n", status.LocalTime)
	ntp := "off"
	if status.NTPActive {
		ntp = "on"
		if status.Synchronized {
			ntp = "on, synchronized"
		}
	}
	WriteStdout("ntp:        %s\n", ntp)
	return nil
}

func tzSetRun(cmd *cobra.Command, args []string) error {
	zone := args[0]
	if tzNTP != "" && tzNTP != "on" && tzNTP != "off" {
		return fmt.Errorf("--ntp takes on or off, not %q", tzNTP)
	}
	err := callService(nil, "clock", "SetZone", zone)
	if err != nil {
		return err
	}
	WriteStdout("timezone set to %s\n", zone)
	if tzNTP != "" {
		enabled := tzNTP == "on"
		err = callService(nil, "clock", "SetNTP", enabled)
		if err != nil {
			return err
		}
		WriteStdout("ntp sync %s\n", tzNTP)
	}
	return nil
}

func tzSetTimeRun(cmd *cobra.Command, args []string) error {
	timeStr := strings.Join(args, " ")
	err := callService(nil, "clock", "SetTime", timeStr)
	if err != nil {
		return err
	}
	WriteStdout("clock set to %s\n", timeStr)
	return nil
}
