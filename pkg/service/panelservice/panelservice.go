// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package panelservice handles the panel's own configuration plus the
// about/status operations that do not belong to a single editor.
package panelservice

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/icewmcp/icewmcp/pkg/buildinfo"
	"github.com/icewmcp/icewmcp/pkg/history"
	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panelmeta"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/service/restartutil"
	"github.com/icewmcp/icewmcp/pkg/sysinfo"
)

type PanelService struct{}

// GetFullConfig returns the effective panel settings plus any config file
// errors.
func (ps *PanelService) GetFullConfig() *panelconfig.FullConfigType {
	fullConfig := panelconfig.GetWatcher().GetFullConfig()
	return &fullConfig
}

// GetConfigKeys lists the valid settings keys.
func (ps *PanelService) GetConfigKeys() []string {
	return panelconfig.ConfigKeys()
}

// SetConfigValue sets one panel setting from its string form, e.g.
// ("panel:trialseconds", "10").
func (ps *PanelService) SetConfigValue(ctx context.Context, configKey string, valueStr string) error {
	value, err := panelconfig.ParseConfigValue(configKey, valueStr)
	if err != nil {
		return err
	}
	err = panelconfig.SetBaseConfigValue(panelmeta.MetaMapType{configKey: value})
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("setting %s=%s", configKey, valueStr)
	if err := history.RecordChange(ctx, "panel", summary, nil); err != nil {
		log.Printf("error recording panel change: %v\n", err)
	}
	return nil
}

// UnsetConfigValue removes a setting so the built-in default applies again.
func (ps *PanelService) UnsetConfigValue(ctx context.Context, configKey string) error {
	err := panelconfig.SetBaseConfigValue(panelmeta.MetaMapType{configKey: nil})
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("setting %s reset to default", configKey)
	if err := history.RecordChange(ctx, "panel", summary, nil); err != nil {
		log.Printf("error recording panel change: %v\n", err)
	}
	return nil
}

// GetSystemReport collects host, cpu, memory, session, and printer facts
// for the about page.
func (ps *PanelService) GetSystemReport(ctx context.Context) *sysinfo.SystemReport {
	report := sysinfo.NewCollector().Report(ctx)
	return &report
}

type VersionInfo struct {
	Version   string   `json:"version"`
	BuildTime string   `json:"buildtime"`
	License   string   `json:"license"`
	Authors   []string `json:"authors"`
}

// GetVersion returns the running panel version and attribution.
func (ps *PanelService) GetVersion() VersionInfo {
	return VersionInfo{
		Version:   buildinfo.PanelVersion,
		BuildTime: buildinfo.BuildTime,
		License:   buildinfo.License,
		Authors:   buildinfo.Authors,
	}
}

type IceWMStatus struct {
	Running   bool   `json:"running"`
	Pid       int32  `json:"pid,omitempty"`
	Version   string `json:"version,omitempty"`
	InSession bool   `json:"insession"`
}

// GetIceWMStatus reports whether icewm is running, its pid and version.
func (ps *PanelService) GetIceWMStatus(ctx context.Context) (*IceWMStatus, error) {
	status := &IceWMStatus{InSession: icewm.InSession(ctx)}
	proc, err := icewm.FindProcess(ctx)
	if err == nil {
		status.Running = true
		status.Pid = proc.Pid
	} else if !errors.Is(err, icewm.ErrNotRunning) {
		return nil, err
	}
	if version, err := icewm.Version(ctx); err == nil {
		status.Version = version
	}
	return status, nil
}

// RestartIceWM restarts the window manager right now, regardless of the
// icewm:autorestart setting.
func (ps *PanelService) RestartIceWM(ctx context.Context) error {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	err := restartutil.Restart(ctx, settings.IceWMRestartCommand)
	if err != nil {
		return err
	}
	panelps.Broker.Publish(panelps.PanelEvent{Event: panelps.Event_IceWMRestarted})
	return nil
}

// CheckUpdate compares the running version against the published feed,
// honoring the panel:updatefeed override.
func (ps *PanelService) CheckUpdate(ctx context.Context) (*buildinfo.UpdateCheckResult, error) {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	return buildinfo.CheckUpdate(ctx, settings.PanelUpdateFeed)
}
