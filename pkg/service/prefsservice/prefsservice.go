// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package prefsservice edits the IceWM preferences file.  Reads see the
// system defaults overlaid with the user file; writes only ever touch the
// user file.
package prefsservice

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	fzfutil "github.com/junegunn/fzf/src/util"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/service/restartutil"
)

func init() {
	algo.Init("default")
}

type PrefsService struct{}

// PrefOption is an OptionInfo plus the editor type the panel groups it
// under.
type PrefOption struct {
	icewm.OptionInfo
	Type string `json:"type"`
}

func loadMergedOptions() ([]icewm.OptionInfo, error) {
	systemDoc, err := icewm.LoadPrefsFile(icewm.SystemPrefsFile())
	if err != nil {
		return nil, fmt.Errorf("error loading system preferences: %w", err)
	}
	userDoc, err := icewm.LoadPrefsFile(icewm.UserPrefsFile())
	if err != nil {
		return nil, fmt.Errorf("error loading user preferences: %w", err)
	}
	return icewm.MergedOptions(systemDoc, userDoc), nil
}

func decorateOptions(opts []icewm.OptionInfo, includeCommented bool) []PrefOption {
	rtn := make([]PrefOption, 0, len(opts))
	for _, opt := range opts {
		if opt.Commented && !includeCommented {
			continue
		}
		rtn = append(rtn, PrefOption{OptionInfo: opt, Type: string(icewm.ClassifyOption(opt.Key, opt.Value))})
	}
	return rtn
}

// ListOptions returns every known option.  Commented (defaulted) options
// are included when the panel:showcommented setting is on.
func (ps *PrefsService) ListOptions(ctx context.Context) ([]PrefOption, error) {
	merged, err := loadMergedOptions()
	if err != nil {
		return nil, err
	}
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	return decorateOptions(merged, settings.PanelShowCommented), nil
}

// GetOption returns one option with its effective value and source.
func (ps *PrefsService) GetOption(ctx context.Context, key string) (*PrefOption, error) {
	merged, err := loadMergedOptions()
	if err != nil {
		return nil, err
	}
	for _, opt := range merged {
		if opt.Key == key {
			decorated := PrefOption{OptionInfo: opt, Type: string(icewm.ClassifyOption(opt.Key, opt.Value))}
			return &decorated, nil
		}
	}
	return nil, fmt.Errorf("unknown option %q", key)
}

// SetOption writes key=value into the user preferences file.
func (ps *PrefsService) SetOption(ctx context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("empty option key")
	}
	doc, err := icewm.LoadPrefsFile(icewm.UserPrefsFile())
	if err != nil {
		return fmt.Errorf("error loading user preferences: %w", err)
	}
	if !doc.Set(key, value) {
		return nil
	}
	if err := doc.Save(); err != nil {
		return err
	}
	if err := history.RecordChange(ctx, "prefs", fmt.Sprintf("set %s=%s", key, value), nil); err != nil {
		log.Printf("error recording prefs change: %v\n", err)
	}
	publishPrefsUpdated([]string{key})
	restartutil.MaybeRestartIceWM(ctx)
	return nil
}

// UnsetOption comments the option out of the user file so the IceWM
// default applies again.
func (ps *PrefsService) UnsetOption(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("empty option key")
	}
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
	if err := history.RecordChange(ctx, "prefs", fmt.Sprintf("unset %s", key), nil); err != nil {
		log.Printf("error recording prefs change: %v\n", err)
	}
	publishPrefsUpdated([]string{key})
	restartutil.MaybeRestartIceWM(ctx)
	return nil
}

type scoredOption struct {
	option PrefOption
	score  int
}

// SearchOptions fuzzy-matches the query against option keys and returns
// the matches best first.
func (ps *PrefsService) SearchOptions(ctx context.Context, query string) ([]PrefOption, error) {
	merged, err := loadMergedOptions()
	if err != nil {
		return nil, err
	}
	options := decorateOptions(merged, true)
	query = strings.TrimSpace(query)
	if query == "" {
		return options, nil
	}
	pattern := []rune(strings.ToLower(query))
	var scored []scoredOption
	for _, opt := range options {
		chars := fzfutil.ToChars([]byte(opt.Key))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, nil)
		if result.Score <= 0 {
			continue
		}
		scored = append(scored, scoredOption{option: opt, score: result.Score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].option.Key < scored[j].option.Key
	})
	rtn := make([]PrefOption, 0, len(scored))
	for _, entry := range scored {
		rtn = append(rtn, entry.option)
	}
	return rtn, nil
}

func publishPrefsUpdated(keys []string) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_PrefsUpdated,
		Data:  panelps.PrefsEventData{FileName: icewm.PrefsFileName, Keys: keys},
	})
}
