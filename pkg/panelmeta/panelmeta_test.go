// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelmeta

import "testing"

func TestGetters(t *testing.T) {
	m := MetaMapType{
		"panel:port":    float64(2420),
		"panel:devmode": true,
		"panel:name":    "icewmcp",
		"trial:ratio":   1.5,
		"sub":           map[string]any{"a": "b"},
		"arr":           []any{"x", "y", float64(3)},
	}
	if got := m.GetInt("panel:port", 0); got != 2420 {
		t.Errorf("GetInt = %d, want 2420", got)
	}
	if got := m.GetInt("panel:missing", 7); got != 7 {
		t.Errorf("GetInt default = %d, want 7", got)
	}
	if !m.GetBool("panel:devmode", false) {
		t.Errorf("GetBool should be true")
	}
	if got := m.GetString("panel:name", ""); got != "icewmcp" {
		t.Errorf("GetString = %q", got)
	}
	if got := m.GetFloat("trial:ratio", 0); got != 1.5 {
		t.Errorf("GetFloat = %v", got)
	}
	if sub := m.GetMap("sub"); sub.GetString("a", "") != "b" {
		t.Errorf("GetMap did not round trip")
	}
	if got := m.GetStringArray("arr"); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("GetStringArray = %v", got)
	}
	if !m.HasKey("sub") || m.HasKey("nope") {
		t.Errorf("HasKey mismatch")
	}
}

func TestMergeMeta(t *testing.T) {
	meta := MetaMapType{
		"sound": true,
		"sound:bellvolume": float64(50),
		"sound:bellpitch":  float64(400),
		"mouse:accel":      float64(4),
	}
	update := MetaMapType{
		"sound:*":     true,
		"mouse:accel": nil,
		"dpms:off":    float64(3600),
	}
	rtn := MergeMeta(meta, update)
	if rtn.HasKey("sound") || rtn.HasKey("sound:bellvolume") || rtn.HasKey("sound:bellpitch") {
		t.Errorf("sound:* should clear the whole sound section, got %v", rtn)
	}
	if rtn.HasKey("mouse:accel") {
		t.Errorf("nil value should delete mouse:accel")
	}
	if got := rtn.GetInt("dpms:off", 0); got != 3600 {
		t.Errorf("dpms:off = %d, want 3600", got)
	}
	if rtn.HasKey("sound:*") {
		t.Errorf("wildcard key must not be stored")
	}
	// original map must be untouched
	if !meta.HasKey("sound:bellvolume") {
		t.Errorf("MergeMeta must not mutate its input")
	}
}

func TestMergeMetaSetAndOverwrite(t *testing.T) {
	meta := MetaMapType{"kbd:rate": float64(30)}
	rtn := MergeMeta(meta, MetaMapType{"kbd:rate": float64(55), "kbd:delay": float64(500)})
	if got := rtn.GetInt("kbd:rate", 0); got != 55 {
		t.Errorf("kbd:rate = %d, want 55", got)
	}
	if got := rtn.GetInt("kbd:delay", 0); got != 500 {
		t.Errorf("kbd:delay = %d, want 500", got)
	}
}
