// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package restartutil holds the restart hook shared by the services that
// write IceWM configuration files.
package restartutil

import (
	"context"
	"errors"
	"log"

	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/panelps"
	"github.com/icewmcp/icewmcp/pkg/tools"
)

// Restart restarts IceWM.  With an empty restartCmd it signals the running
// icewm with SIGHUP, otherwise it runs the command line.
func Restart(ctx context.Context, restartCmd string) error {
	if restartCmd != "" {
		_, err := tools.RunCommand(restartCmd)
		return err
	}
	return icewm.Restart(ctx)
}

// MaybeRestartIceWM restarts IceWM after a config write when the
// icewm:autorestart setting is on.  Errors are logged, not returned, since
// the config write itself already succeeded.
func MaybeRestartIceWM(ctx context.Context) {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	if !settings.IceWMAutoRestart {
		return
	}
	err := Restart(ctx, settings.IceWMRestartCommand)
	if err != nil {
		if !errors.Is(err, icewm.ErrNotRunning) {
			log.Printf("error restarting icewm: %v\n", err)
		}
		return
	}
	panelps.Broker.Publish(panelps.PanelEvent{Event: panelps.Event_IceWMRestarted})
}
