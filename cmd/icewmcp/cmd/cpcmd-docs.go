// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:     "docs [target]",
	Short:   "open icewm documentation in the browser",
	Long:    `Open one of the icewm documentation links in the browser. Without a target the available links are listed.`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    docsRun,
	PreRunE: preRunSetupClient,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func docsRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		var targets []string
		err := callService(&targets, "tools", "GetDocTargets")
		if err != nil {
			return err
		}
		for _, target := range targets {
			WriteStdout("%s\n", target)
		}
		return nil
	}
	var url string
	err := callService(&url, "tools", "OpenDoc", args[0])
	if err != nil {
		return err
	}
	WriteStdout("opened %s\n", url)
	return nil
}
