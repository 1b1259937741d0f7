// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/service/prefsservice"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "view and edit icewm preferences",
	Long: `View and edit the icewm preferences file. Reads merge the system
defaults with ~/.icewm/preferences; writes only touch the user file.
With --local the files are edited directly and no change history is kept.`,
}

var prefsGetCmd = &cobra.Command{
	Use:     "get <key>",
	Short:   "print one option with its effective value",
	Args:    cobra.ExactArgs(1),
	RunE:    prefsGetRun,
	PreRunE: preRunSetupClientOrLocal,
}

var prefsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "set an option in the user preferences file",
	Args:    cobra.ExactArgs(2),
	RunE:    prefsSetRun,
	PreRunE: preRunSetupClientOrLocal,
}

var prefsUnsetCmd = &cobra.Command{
	Use:     "unset <key>",
	Short:   "comment an option out so the icewm default applies again",
	Args:    cobra.ExactArgs(1),
	RunE:    prefsUnsetRun,
	PreRunE: preRunSetupClientOrLocal,
}

var prefsSearchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "fuzzy-search option keys (substring match with --local)",
	Args:    cobra.ExactArgs(1),
	RunE:    prefsSearchRun,
	PreRunE: preRunSetupClientOrLocal,
}

var prefsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "list the known options",
	RunE:    prefsShowRun,
	PreRunE: preRunSetupClientOrLocal,
}

var prefsShowAll bool

func init() {
	prefsShowCmd.Flags().BoolVarP(&prefsShowAll, "all", "a", false, "include commented (defaulted) options")
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsUnsetCmd)
	prefsCmd.AddCommand(prefsSearchCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	rootCmd.AddCommand(prefsCmd)
}

func localMergedOptions() ([]prefsservice.PrefOption, error) {
	systemDoc, err := icewm.LoadPrefsFile(icewm.SystemPrefsFile())
	if err != nil {
		return nil, fmt.Errorf("error loading system preferences: %w", err)
	}
	userDoc, err := icewm.LoadPrefsFile(icewm.UserPrefsFile())
	if err != nil {
		return nil, fmt.Errorf("error loading user preferences: %w", err)
	}
	merged := icewm.MergedOptions(systemDoc, userDoc)
	rtn := make([]prefsservice.PrefOption, 0, len(merged))
	for _, opt := range merged {
		rtn = append(rtn, prefsservice.PrefOption{OptionInfo: opt, Type: string(icewm.ClassifyOption(opt.Key, opt.Value))})
	}
	return rtn, nil
}

func printOption(opt prefsservice.PrefOption) {
	state := ""
	if opt.Commented {
		state = " (default)"
	}
	WriteStdout("%-32s %-10s %s%s\n", opt.Key, opt.Type, opt.Value, state)
}

func printOptions(options []prefsservice.PrefOption, includeCommented bool) {
	for _, opt := range options {
		if opt.Commented && !includeCommented {
			continue
		}
		printOption(opt)
	}
}

func prefsGetRun(cmd *cobra.Command, args []string) error {
	key := args[0]
	var opt prefsservice.PrefOption
	if localMode {
		options, err := localMergedOptions()
		if err != nil {
			return err
		}
		found := false
		for _, o := range options {
			if o.Key == key {
				opt = o
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown option %q", key)
		}
	} else {
		err := callService(&opt, "prefs", "GetOption", key)
		if err != nil {
			return err
		}
	}
	printOption(opt)
	if opt.Source != "" {
		WriteStdout("source: %s\n", opt.Source)
	}
	return nil
}

func prefsSetRun(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if localMode {
		doc, err := icewm.LoadPrefsFile(icewm.UserPrefsFile())
		if err != nil {
			return fmt.Errorf("error loading user preferences: %w", err)
		}
		if doc.Set(key, value) {
			if err := doc.Save(); err != nil {
				return err
			}
		}
	} else {
		err := callService(nil, "prefs", "SetOption", key, value)
		if err != nil {
			return err
		}
	}
	WriteStdout("set %s=%s\n", key, value)
	return nil
}

func prefsUnsetRun(cmd *cobra.Command, args []string) error {
	key := args[0]
	if localMode {
		doc, err := icewm.LoadPrefsFile(icewm.UserPrefsFile())
		if err != nil {
			return fmt.Errorf("error loading user preferences: %w", err)
		}
		if !doc.Unset(key) {
			return fmt.Errorf("option %q is not set in the user preferences", key)
		}
		if err := doc.Save(); err != nil {
			return err
		}
	} else {
		err := callService(nil, "prefs", "UnsetOption", key)
		if err != nil {
			return err
		}
	}
	WriteStdout("unset %s (icewm default applies)\n", key)
	return nil
}

func prefsSearchRun(cmd *cobra.Command, args []string) error {
	query := args[0]
	var options []prefsservice.PrefOption
	if localMode {
		allOptions, err := localMergedOptions()
		if err != nil {
			return err
		}
		lowered := strings.ToLower(query)
		for _, opt := range allOptions {
			if strings.Contains(strings.ToLower(opt.Key), lowered) {
				options = append(options, opt)
			}
		}
	} else {
		err := callService(&options, "prefs", "SearchOptions", query)
		if err != nil {
			return err
		}
	}
	if len(options) == 0 {
		WriteStdout("no options match %q\n", query)
		return nil
	}
	printOptions(options, true)
	return nil
}

func prefsShowRun(cmd *cobra.Command, args []string) error {
	var options []prefsservice.PrefOption
	if localMode {
		allOptions, err := localMergedOptions()
		if err != nil {
			return err
		}
		printOptions(allOptions, prefsShowAll)
		return nil
	}
	// ListOptions honors the panel:showcommented setting; an empty search
	// returns everything
	method := "ListOptions"
	var methodArgs []any
	if prefsShowAll {
		method = "SearchOptions"
		methodArgs = []any{""}
	}
	err := callService(&options, "prefs", method, methodArgs...)
	if err != nil {
		return err
	}
	printOptions(options, true)
	return nil
}
