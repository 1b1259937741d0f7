// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/icewm"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "select the icewm window theme",
}

var themeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "list the installed themes",
	RunE:    themeListRun,
	PreRunE: preRunSetupClient,
}

var themeSetCmd = &cobra.Command{
	Use:     "set <name>",
	Short:   "switch to a theme",
	Args:    cobra.ExactArgs(1),
	RunE:    themeSetRun,
	PreRunE: preRunSetupClient,
}

var themeHistoryCmd = &cobra.Command{
	Use:     "history",
	Short:   "list previously selected themes, newest first",
	RunE:    themeHistoryRun,
	PreRunE: preRunSetupClient,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeHistoryCmd)
	rootCmd.AddCommand(themeCmd)
}

func themeListRun(cmd *cobra.Command, args []string) error {
	var themes []icewm.ThemeInfo
	err := callService(&themes, "theme", "ListThemes")
	if err != nil {
		return err
	}
	var current string
	err = callService(&current, "theme", "GetCurrentTheme")
	if err != nil {
		return err
	}
	if len(themes) == 0 {
		WriteStdout("no themes installed\n")
		return nil
	}
	for _, theme := range themes {
		marker := " "
		if theme.Name == current {
			marker = "*"
		}
		WriteStdout("%s %-24s %s\n", marker, theme.Name, theme.Source)
	}
	return nil
}

func themeSetRun(cmd *cobra.Command, args []string) error {
	theme := args[0]
	err := callService(nil, "theme", "SetTheme", theme)
	if err != nil {
		return err
	}
	WriteStdout("theme set to %s\n", theme)
	return nil
}

func themeHistoryRun(cmd *cobra.Command, args []string) error {
	var past []string
	err := callService(&past, "theme", "GetThemeHistory")
	if err != nil {
		return err
	}
	if len(past) == 0 {
		WriteStdout("no theme history\n")
		return nil
	}
	for _, name := range past {
		WriteStdout("%s\n", name)
	}
	return nil
}
