// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/fontspec"
	"github.com/icewmcp/icewmcp/pkg/service/fontservice"
)

var fontCmd = &cobra.Command{
	Use:   "font",
	Short: "convert between Pango and XLFD font strings",
	Long: `Convert font descriptions between the Pango form icewm themes use
("DejaVu Sans Bold 11") and the XLFD form older options expect. Through
the daemon the font:charset setting fills the charset fields; with
--local the default charset (*-*) is used.`,
}

var fontToXLFDCmd = &cobra.Command{
	Use:     "to-xlfd <pango description>",
	Short:   "convert a Pango description to XLFD",
	Args:    cobra.MinimumNArgs(1),
	RunE:    fontToXLFDRun,
	PreRunE: preRunSetupClientOrLocal,
}

var fontToPangoCmd = &cobra.Command{
	Use:     "to-pango <xlfd>",
	Short:   "convert an XLFD string to a Pango description",
	Args:    cobra.ExactArgs(1),
	RunE:    fontToPangoRun,
	PreRunE: preRunSetupClientOrLocal,
}

func init() {
	fontCmd.AddCommand(fontToXLFDCmd)
	fontCmd.AddCommand(fontToPangoCmd)
	rootCmd.AddCommand(fontCmd)
}

func fontToXLFDRun(cmd *cobra.Command, args []string) error {
	desc := strings.Join(args, " ")
	if localMode {
		WriteStdout("%s\n", fontspec.PangoToXLFD(desc))
		return nil
	}
	var conv fontservice.FontConversion
	err := callService(&conv, "font", "PangoToXLFD", desc)
	if err != nil {
		return err
	}
	WriteStdout("%s\n", conv.XLFD)
	return nil
}

func fontToPangoRun(cmd *cobra.Command, args []string) error {
	xlfd := args[0]
	if localMode {
		WriteStdout("%s\n", fontspec.XLFDToPango(xlfd))
		return nil
	}
	var conv fontservice.FontConversion
	err := callService(&conv, "font", "XLFDToPango", xlfd)
	if err != nil {
		return err
	}
	WriteStdout("%s\n", conv.Pango)
	return nil
}
