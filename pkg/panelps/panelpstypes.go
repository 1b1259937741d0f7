// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelps

// IMPORTANT: when adding a new event constant, also add it to AllEvents below
const (
	Event_ConfigUpdated  = "config:updated"  // type: panelconfig.WatcherUpdate
	Event_PrefsUpdated   = "prefs:updated"   // type: PrefsEventData
	Event_KeysUpdated    = "keys:updated"    // type: PrefsEventData
	Event_ThemeChanged   = "theme:changed"   // type: string (theme name)
	Event_XSetApplied    = "xset:applied"    // type: XSetEventData
	Event_TrialCountdown = "trial:countdown" // type: TrialCountdownData
	Event_TrialResolved  = "trial:resolved"  // type: TrialResolvedData
	Event_IceWMRestarted = "icewm:restarted" // type: none
	Event_HistoryUpdated = "history:updated" // type: string (history kind)
)

var AllEvents = []string{
	Event_ConfigUpdated,
	Event_PrefsUpdated,
	Event_KeysUpdated,
	Event_ThemeChanged,
	Event_XSetApplied,
	Event_TrialCountdown,
	Event_TrialResolved,
	Event_IceWMRestarted,
	Event_HistoryUpdated,
}

// PrefsEventData describes a preference-file change.
type PrefsEventData struct {
	FileName string   `json:"filename"`
	Keys     []string `json:"keys,omitempty"`
}

// XSetEventData describes an applied X server setting group.
type XSetEventData struct {
	Group string `json:"group"` // keyboard, sound, mouse, dpms
}

// TrialCountdownData is sent once per second while a trial is pending.
type TrialCountdownData struct {
	TrialId   string `json:"trialid"`
	Group     string `json:"group"`
	SecondsLeft int  `json:"secondsleft"`
}

// TrialResolvedData is sent when a trial is kept, reverted, or times out.
type TrialResolvedData struct {
	TrialId string `json:"trialid"`
	Group   string `json:"group"`
	Kept    bool   `json:"kept"`
	TimedOut bool  `json:"timedout,omitempty"`
}
