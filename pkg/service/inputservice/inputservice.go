// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package inputservice applies keyboard repeat and console sound settings
// to the running X server.  These take effect immediately and are safe to
// apply directly, unlike mouse acceleration which goes through a trial.
package inputservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

type InputService struct{}

// GetSettings queries the X server for the current keyboard, sound, mouse,
// and DPMS state.
func (is *InputService) GetSettings(ctx context.Context) (*xsettings.XSettings, error) {
	return xsettings.NewXSet().Query(ctx)
}

// GetDefaults returns the stock values the panel offers as a reset point.
func (is *InputService) GetDefaults() *xsettings.XSettings {
	return &xsettings.XSettings{
		Keyboard: xsettings.DefaultKeyboardRepeat(),
		Sound:    xsettings.DefaultSoundSettings(),
		Mouse:    xsettings.DefaultMouseSpeed(),
	}
}

// ApplyKeyboard sets the keyboard autorepeat delay and rate.
func (is *InputService) ApplyKeyboard(ctx context.Context, kr xsettings.KeyboardRepeat) error {
	if kr.Enabled {
		if err := kr.Validate(); err != nil {
			return err
		}
	}
	if err := xsettings.NewXSet().ApplyKeyboard(ctx, kr); err != nil {
		return err
	}
	summary := fmt.Sprintf("keyboard repeat delay=%dms rate=%dcps", kr.DelayMs, kr.RateCps)
	if !kr.Enabled {
		summary = "keyboard autorepeat disabled"
	}
	if err := history.RecordChange(ctx, "input", summary, kr); err != nil {
		log.Printf("error recording input change: %v\n", err)
	}
	publishXSetApplied("keyboard")
	return nil
}

// ApplySound sets the key click and bell volumes.
func (is *InputService) ApplySound(ctx context.Context, ss xsettings.SoundSettings) error {
	if err := ss.Validate(); err != nil {
		return err
	}
	if err := xsettings.NewXSet().ApplySound(ctx, ss); err != nil {
		return err
	}
	summary := fmt.Sprintf("sound click=%d%% bell=%d%% pitch=%dhz", ss.ClickVolume, ss.BellVolume, ss.BellPitchHz)
	if err := history.RecordChange(ctx, "input", summary, ss); err != nil {
		log.Printf("error recording input change: %v\n", err)
	}
	publishXSetApplied("sound")
	return nil
}

func publishXSetApplied(group string) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_XSetApplied,
		Data:  panelps.XSetEventData{Group: group},
	})
}
