// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package mouseservice manages pointer acceleration.  A bad acceleration
// value can make the pointer unusable, so changes go through a timed trial
// that reverts automatically unless the user confirms.
package mouseservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

const DefaultTrialSeconds = 7

type MouseService struct {
	trials *xsettings.TrialManager
}

var MouseServiceInstance = &MouseService{
	trials: xsettings.MakeTrialManager(),
}

// GetMouse returns the current pointer acceleration and threshold.
func (ms *MouseService) GetMouse(ctx context.Context) (*xsettings.MouseSpeed, error) {
	settings, err := xsettings.NewXSet().Query(ctx)
	if err != nil {
		return nil, err
	}
	return &settings.Mouse, nil
}

// ApplyMouse sets the pointer speed without a trial.  Callers that cannot
// guarantee a usable pointer afterwards should use BeginMouseTrial instead.
func (ms *MouseService) ApplyMouse(ctx context.Context, speed xsettings.MouseSpeed) error {
	if err := speed.Validate(); err != nil {
		return err
	}
	if err := xsettings.NewXSet().ApplyMouse(ctx, speed); err != nil {
		return err
	}
	ms.recordApply(ctx, speed)
	publishXSetApplied()
	return nil
}

// BeginMouseTrial applies the new speed and starts a countdown.  If the
// trial is not kept before the countdown runs out the previous speed is
// restored.  Returns the trial id used with KeepTrial and RevertTrial.
func (ms *MouseService) BeginMouseTrial(ctx context.Context, speed xsettings.MouseSpeed) (string, error) {
	if err := speed.Validate(); err != nil {
		return "", err
	}
	xset := xsettings.NewXSet()
	current, err := xset.Query(ctx)
	if err != nil {
		return "", fmt.Errorf("error reading current mouse settings: %w", err)
	}
	oldSpeed := current.Mouse
	apply := func(actx context.Context) error {
		return xset.ApplyMouse(actx, speed)
	}
	revert := func(rctx context.Context) error {
		return xset.ApplyMouse(rctx, oldSpeed)
	}
	trialId, err := ms.trials.BeginTrial(ctx, "mouse", trialSeconds(), apply, revert)
	if err != nil {
		return "", err
	}
	return trialId, nil
}

// KeepTrial confirms a pending trial so the new speed becomes permanent.
func (ms *MouseService) KeepTrial(ctx context.Context, trialId string) error {
	if err := ms.trials.Keep(trialId); err != nil {
		return err
	}
	speed, err := ms.GetMouse(ctx)
	if err == nil {
		ms.recordApply(ctx, *speed)
	}
	publishXSetApplied()
	return nil
}

// RevertTrial restores the speed from before the trial started.
func (ms *MouseService) RevertTrial(ctx context.Context, trialId string) error {
	return ms.trials.Revert(ctx, trialId)
}

// PendingTrial returns the id of the in-flight mouse trial, if any.
func (ms *MouseService) PendingTrial() (string, bool) {
	return ms.trials.PendingTrial("mouse")
}

func (ms *MouseService) recordApply(ctx context.Context, speed xsettings.MouseSpeed) {
	summary := fmt.Sprintf("mouse accel=%d threshold=%d", speed.Accel, speed.Threshold)
	if err := history.RecordChange(ctx, "mouse", summary, speed); err != nil {
		log.Printf("error recording mouse change: %v\n", err)
	}
}

func trialSeconds() int {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	if settings.PanelTrialSeconds > 0 {
		return settings.PanelTrialSeconds
	}
	return DefaultTrialSeconds
}

func publishXSetApplied() {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_XSetApplied,
		Data:  panelps.XSetEventData{Group: "mouse"},
	})
}
