// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/tools"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "edit icewm keyboard shortcuts",
	Long: `Edit the icewm keys file (~/.icewm/keys). icewm only rereads the
file on restart, so changes take effect after the next restart.`,
}

var keysListCmd = &cobra.Command{
	Use:     "list",
	Short:   "list the custom shortcuts",
	RunE:    keysListRun,
	PreRunE: preRunSetupClientOrLocal,
}

var keysAddCmd = &cobra.Command{
	Use:     "add <combo> <command...>",
	Short:   "bind a new shortcut",
	Args:    cobra.MinimumNArgs(2),
	RunE:    keysAddRun,
	PreRunE: preRunSetupClientOrLocal,
}

var keysUpdateCmd = &cobra.Command{
	Use:     "update <combo> <command...>",
	Short:   "change the command of an existing shortcut",
	Args:    cobra.MinimumNArgs(2),
	RunE:    keysUpdateRun,
	PreRunE: preRunSetupClientOrLocal,
}

var keysRmCmd = &cobra.Command{
	Use:     "rm <combo>",
	Short:   "remove a shortcut",
	Args:    cobra.ExactArgs(1),
	RunE:    keysRmRun,
	PreRunE: preRunSetupClientOrLocal,
}

var keysRunCmd = &cobra.Command{
	Use:     "run <combo>",
	Short:   "run the command bound to a shortcut",
	Args:    cobra.ExactArgs(1),
	RunE:    keysRunRun,
	PreRunE: preRunSetupClientOrLocal,
}

func init() {
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysUpdateCmd)
	keysCmd.AddCommand(keysRmCmd)
	keysCmd.AddCommand(keysRunCmd)
	rootCmd.AddCommand(keysCmd)
}

func loadBindings() ([]icewm.KeyBinding, error) {
	if localMode {
		return icewm.LoadKeysFile(icewm.UserKeysFile())
	}
	var bindings []icewm.KeyBinding
	err := callService(&bindings, "keys", "ListBindings")
	return bindings, err
}

func keysListRun(cmd *cobra.Command, args []string) error {
	bindings, err := loadBindings()
	if err != nil {
		return err
	}
	if len(bindings) == 0 {
		WriteStdout("no custom shortcuts\n")
		return nil
	}
	for _, binding := range bindings {
		WriteStdout("%-28s %s\n", binding.Combo, binding.Command)
	}
	return nil
}

func setBinding(combo string, command string) error {
	if localMode {
		if err := icewm.ValidateKeyCombo(combo); err != nil {
			return err
		}
		combo = icewm.NormalizeKeyCombo(combo)
		bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
		if err != nil {
			return err
		}
		idx := icewm.FindBinding(bindings, combo)
		if idx >= 0 {
			bindings[idx].Combo = combo
			bindings[idx].Command = command
		} else {
			bindings = append(bindings, icewm.KeyBinding{Combo: combo, Command: command})
		}
		return icewm.SaveKeysFile(icewm.UserKeysFile(), bindings)
	}
	return callService(nil, "keys", "SetBinding", combo, command)
}

func keysAddRun(cmd *cobra.Command, args []string) error {
	combo := args[0]
	command := strings.Join(args[1:], " ")
	bindings, err := loadBindings()
	if err != nil {
		return err
	}
	if icewm.FindBinding(bindings, combo) >= 0 {
		return fmt.Errorf("%q is already bound (use keys update)", combo)
	}
	if err := setBinding(combo, command); err != nil {
		return err
	}
	WriteStdout("bound %s to %s (takes effect after icewm restart)\n", combo, command)
	return nil
}

func keysUpdateRun(cmd *cobra.Command, args []string) error {
	combo := args[0]
	command := strings.Join(args[1:], " ")
	bindings, err := loadBindings()
	if err != nil {
		return err
	}
	if icewm.FindBinding(bindings, combo) < 0 {
		return fmt.Errorf("no binding for %q (use keys add)", combo)
	}
	if err := setBinding(combo, command); err != nil {
		return err
	}
	WriteStdout("updated %s to %s (takes effect after icewm restart)\n", combo, command)
	return nil
}

func keysRmRun(cmd *cobra.Command, args []string) error {
	combo := args[0]
	if localMode {
		bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
		if err != nil {
			return err
		}
		idx := icewm.FindBinding(bindings, combo)
		if idx < 0 {
			return fmt.Errorf("no binding for %q", combo)
		}
		bindings = append(bindings[:idx], bindings[idx+1:]...)
		if err := icewm.SaveKeysFile(icewm.UserKeysFile(), bindings); err != nil {
			return err
		}
	} else {
		err := callService(nil, "keys", "RemoveBinding", combo)
		if err != nil {
			return err
		}
	}
	WriteStdout("removed binding %s\n", combo)
	return nil
}

func keysRunRun(cmd *cobra.Command, args []string) error {
	combo := args[0]
	var pid int
	if localMode {
		bindings, err := icewm.LoadKeysFile(icewm.UserKeysFile())
		if err != nil {
			return err
		}
		idx := icewm.FindBinding(bindings, combo)
		if idx < 0 {
			return fmt.Errorf("no binding for %q", combo)
		}
		pid, err = tools.RunCommand(bindings[idx].Command)
		if err != nil {
			return err
		}
	} else {
		err := callService(&pid, "keys", "RunBinding", combo)
		if err != nil {
			return err
		}
	}
	WriteStdout("started (pid %d)\n", pid)
	return nil
}
