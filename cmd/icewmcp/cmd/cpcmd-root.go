// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/client"
)

var rootCmd = &cobra.Command{
	Use:          "icewmcp",
	Short:        "control panel for the IceWM window manager",
	Long:         `icewmcp drives the IceWM control panel from the command line: preferences, keyboard shortcuts, X server settings, window themes, cursors, fonts, and the clock.`,
	SilenceUsage: true,
}

// PanelClient talks to icewmcpd; nil when running with --local.
var PanelClient *client.Client
var localMode bool

const serviceCallTimeout = 25 * time.Second

func WriteStderr(fmtStr string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, fmtStr, args...)
}

func WriteStdout(fmtStr string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, fmtStr, args...)
}

func OutputHelpMessage(cmd *cobra.Command) {
	cmd.SetOutput(os.Stderr)
	cmd.Help()
	WriteStderr("\n")
}

// preRunSetupClient connects to icewmcpd through the connect file.  Used by
// commands that cannot work without the daemon.
func preRunSetupClient(cmd *cobra.Command, args []string) error {
	if localMode {
		return fmt.Errorf("%s requires icewmcpd and cannot run with --local", cmd.CommandPath())
	}
	c, err := client.MakeClient()
	if err != nil {
		return err
	}
	PanelClient = c
	return nil
}

// preRunSetupClientOrLocal is preRunSetupClient for commands that also have
// a --local path; with --local no connection is made.
func preRunSetupClientOrLocal(cmd *cobra.Command, args []string) error {
	if localMode {
		return nil
	}
	return preRunSetupClient(cmd, args)
}

func serviceContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), serviceCallTimeout)
}

// callService calls a daemon service method and decodes the result into out
// (out may be nil for calls with no return data).
func callService(out any, service string, method string, args ...any) error {
	ctx, cancelFn := serviceContext()
	defer cancelFn()
	return PanelClient.CallServiceInto(ctx, out, service, method, args...)
}

func getIsTty() bool {
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// Execute executes the root command.
func Execute() {
	defer func() {
		r := recover()
		if r != nil {
			WriteStderr("[panic] %v\n", r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "operate directly on config files without contacting icewmcpd")
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
