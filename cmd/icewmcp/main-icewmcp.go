// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/icewmcp/icewmcp/cmd/icewmcp/cmd"
	"github.com/icewmcp/icewmcp/pkg/buildinfo"
)

// these are set at build time
var PanelVersion = "0.0.0"
var BuildTime = "0"

func main() {
	buildinfo.PanelVersion = PanelVersion
	buildinfo.BuildTime = BuildTime
	cmd.Execute()
}
