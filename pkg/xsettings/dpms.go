// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package xsettings

import "fmt"

// DPMSChoice is one entry of the fixed timeout menu.
type DPMSChoice struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

// DPMSChoices holds the selectable DPMS timeouts, shortest first. Zero means
// the stage never triggers.
var DPMSChoices = []DPMSChoice{
	{"never", 0},
	{"5m", 300},
	{"10m", 600},
	{"15m", 900},
	{"20m", 1200},
	{"30m", 1800},
	{"45m", 2700},
	{"1h", 3600},
	{"1.5h", 5400},
	{"2h", 7200},
	{"3h", 10800},
	{"4h", 14400},
	{"5h", 18000},
	{"6h", 21600},
	{"9h", 32400},
	{"12h", 43200},
	{"18h", 64800},
	{"24h", 86400},
}

// ParseDPMSTime accepts a menu label ("30m", "never") or a raw seconds value.
func ParseDPMSTime(s string) (int, error) {
	for _, choice := range DPMSChoices {
		if choice.Label == s {
			return choice.Seconds, nil
		}
	}
	var secs int
	if _, err := fmt.Sscanf(s, "%d", &secs); err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid dpms time %q", s)
	}
	return secs, nil
}

// ClampDPMS orders the stages so that standby <= suspend <= off among the
// stages that are set at all. The X server rejects out-of-order times.
func ClampDPMS(ds DPMSSettings) DPMSSettings {
	if ds.SuspendSec > 0 && ds.StandbySec > ds.SuspendSec {
		ds.StandbySec = ds.SuspendSec
	}
	if ds.OffSec > 0 {
		if ds.SuspendSec > ds.OffSec {
			ds.SuspendSec = ds.OffSec
		}
		if ds.StandbySec > ds.OffSec {
			ds.StandbySec = ds.OffSec
		}
	}
	return ds
}
