// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/panelconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "panel settings (ports, trial countdown, history limit, ...)",
	Long: `View and edit the panel's own settings file. Keys look like
panel:trialseconds or icewm:autorestart; "icewmcp config keys" lists them.`,
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "print the effective settings as json",
	RunE:    configShowRun,
	PreRunE: preRunSetupClient,
}

var configKeysCmd = &cobra.Command{
	Use:     "keys",
	Short:   "list the known setting keys",
	RunE:    configKeysRun,
	PreRunE: preRunSetupClient,
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "set a panel setting",
	Args:    cobra.ExactArgs(2),
	RunE:    configSetRun,
	PreRunE: preRunSetupClient,
}

var configUnsetCmd = &cobra.Command{
	Use:     "unset <key>",
	Short:   "remove a panel setting so its default applies",
	Args:    cobra.ExactArgs(1),
	RunE:    configUnsetRun,
	PreRunE: preRunSetupClient,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShowRun(cmd *cobra.Command, args []string) error {
	var config panelconfig.FullConfigType
	err := callService(&config, "panel", "GetFullConfig")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config.Settings, "", "  ")
	if err != nil {
		return err
	}
	WriteStdout("%s\n", string(data))
	for _, configErr := range config.ConfigErrors {
		WriteStderr("[config error] %s: %s\n", configErr.File, configErr.Err)
	}
	return nil
}

func configKeysRun(cmd *cobra.Command, args []string) error {
	var keys []string
	err := callService(&keys, "panel", "GetConfigKeys")
	if err != nil {
		return err
	}
	for _, key := range keys {
		WriteStdout("%s\n", key)
	}
	return nil
}

func configSetRun(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	err := callService(nil, "panel", "SetConfigValue", key, value)
	if err != nil {
		return err
	}
	WriteStdout("set %s=%s\n", key, value)
	return nil
}

func configUnsetRun(cmd *cobra.Command, args []string) error {
	key := args[0]
	err := callService(nil, "panel", "UnsetConfigValue", key)
	if err != nil {
		return err
	}
	WriteStdout("unset %s\n", key)
	return nil
}
