// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package displayservice controls display power management (DPMS).
package displayservice

import (
	"context"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/xsettings"
)

type DisplayService struct{}

// GetDPMS returns the current DPMS state and stage timeouts.
func (ds *DisplayService) GetDPMS(ctx context.Context) (*xsettings.DPMSSettings, error) {
	settings, err := xsettings.NewXSet().Query(ctx)
	if err != nil {
		return nil, err
	}
	return &settings.DPMS, nil
}

// GetDPMSChoices returns the timeout menu offered for each stage.
func (ds *DisplayService) GetDPMSChoices() []xsettings.DPMSChoice {
	return xsettings.DPMSChoices
}

// ApplyDPMS sets the DPMS stage timeouts.  Out-of-order stage times are
// clamped rather than rejected since the menu makes them easy to produce.
func (ds *DisplayService) ApplyDPMS(ctx context.Context, settings xsettings.DPMSSettings) error {
	settings = xsettings.ClampDPMS(settings)
	if err := xsettings.NewXSet().ApplyDPMS(ctx, settings); err != nil {
		return err
	}
	summary := "dpms disabled"
	if settings.Enabled {
		summary = fmt.Sprintf("dpms standby=%ds suspend=%ds off=%ds",
			settings.StandbySec, settings.SuspendSec, settings.OffSec)
	}
	if err := history.RecordChange(ctx, "display", summary, settings); err != nil {
		log.Printf("error recording display change: %v\n", err)
	}
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_XSetApplied,
		Data:  panelps.XSetEventData{Group: "dpms"},
	})
	return nil
}
