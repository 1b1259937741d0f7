// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Generated Code. DO NOT EDIT.

package panelconfig

const (
	ConfigKey_PanelClear                     = "panel:*"
	ConfigKey_PanelWebPort                   = "panel:webport"
	ConfigKey_PanelWsPort                    = "panel:wsport"
	ConfigKey_PanelTrialSeconds              = "panel:trialseconds"
	ConfigKey_PanelHistoryLimit              = "panel:historylimit"
	ConfigKey_PanelShowCommented             = "panel:showcommented"
	ConfigKey_PanelUpdateFeed                = "panel:updatefeed"

	ConfigKey_IceWMClear                     = "icewm:*"
	ConfigKey_IceWMAutoRestart               = "icewm:autorestart"
	ConfigKey_IceWMRestartCommand            = "icewm:restartcommand"

	ConfigKey_FontClear                      = "font:*"
	ConfigKey_FontCharset                    = "font:charset"
)
