// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePrefs = `#  IceWM preferences
#  Whether the taskbar shows a clock
# TaskBarShowClock=1 # 0/1
TaskBarShowAPMStatus=0
WorkspaceNames=" 1 ", " 2 ", " 3 "
#  Focus mode
FocusMode=1

ColorActiveTitleBar="rgb:68/8A/AF"
`

func TestParseRenderRoundTrip(t *testing.T) {
	doc := ParsePrefs(samplePrefs)
	if got := doc.Render(); got != samplePrefs {
		t.Errorf("Render changed untouched document:\nwant %q\ngot  %q", samplePrefs, got)
	}
}

func TestGetEffectiveValue(t *testing.T) {
	doc := ParsePrefs(samplePrefs)
	value, commented, found := doc.Get("TaskBarShowClock")
	if !found || !commented || value != "1" {
		t.Errorf("TaskBarShowClock = %q commented=%v found=%v", value, commented, found)
	}
	value, commented, found = doc.Get("TaskBarShowAPMStatus")
	if !found || commented || value != "0" {
		t.Errorf("TaskBarShowAPMStatus = %q commented=%v found=%v", value, commented, found)
	}
	value, _, found = doc.Get("WorkspaceNames")
	if !found || value != `" 1 ", " 2 ", " 3 "` {
		t.Errorf("WorkspaceNames = %q found=%v", value, found)
	}
	if _, _, found = doc.Get("NoSuchOption"); found {
		t.Errorf("NoSuchOption should not be found")
	}
}

func TestSetUncommentsDefault(t *testing.T) {
	doc := ParsePrefs(samplePrefs)
	if !doc.Set("TaskBarShowClock", "0") {
		t.Fatalf("Set should report a change")
	}
	value, commented, found := doc.Get("TaskBarShowClock")
	if !found || commented || value != "0" {
		t.Errorf("after Set: value=%q commented=%v found=%v", value, commented, found)
	}
	// the trailing "# 0/1" doc comment stays on the line
	rendered := doc.Render()
	if !strings.Contains(rendered, "TaskBarShowClock=0 # 0/1") {
		t.Errorf("trailer lost on uncomment:\n%s", rendered)
	}
	// the descriptive comment above it is untouched
	if !strings.Contains(rendered, "#  Whether the taskbar shows a clock") {
		t.Errorf("descriptive comment lost:\n%s", rendered)
	}
}

func TestSetExistingAndAppend(t *testing.T) {
	doc := ParsePrefs(samplePrefs)
	if doc.Set("TaskBarShowAPMStatus", "0") {
		t.Errorf("setting same value should report no change")
	}
	if !doc.Set("TaskBarShowAPMStatus", "1") {
		t.Errorf("Set should report a change")
	}
	if !doc.Set("BrandNewOption", "42") {
		t.Errorf("Set of new key should report a change")
	}
	value, commented, found := doc.Get("BrandNewOption")
	if !found || commented || value != "42" {
		t.Errorf("BrandNewOption = %q commented=%v found=%v", value, commented, found)
	}
	if !strings.HasSuffix(doc.Render(), "BrandNewOption=42\n") {
		t.Errorf("new option should be appended at the end:\n%s", doc.Render())
	}
}

func TestUnsetCommentsOut(t *testing.T) {
	doc := ParsePrefs(samplePrefs)
	if !doc.Unset("FocusMode") {
		t.Fatalf("Unset should report a change")
	}
	value, commented, found := doc.Get("FocusMode")
	if !found || !commented || value != "1" {
		t.Errorf("after Unset: value=%q commented=%v found=%v", value, commented, found)
	}
	if doc.Unset("FocusMode") {
		t.Errorf("second Unset should report no change")
	}
	if !strings.Contains(doc.Render(), "# FocusMode=1") {
		t.Errorf("Unset should keep the value in a comment:\n%s", doc.Render())
	}
}

func TestQuotedValueWithHash(t *testing.T) {
	doc := ParsePrefs("TitleFont=\"sans#bold\" # hash inside quotes\n")
	value, _, found := doc.Get("TitleFont")
	if !found || value != `"sans#bold"` {
		t.Errorf("TitleFont = %q found=%v", value, found)
	}
	line := doc.Lines[0]
	if line.Trailer != "# hash inside quotes" {
		t.Errorf("Trailer = %q", line.Trailer)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preferences")
	if err := os.WriteFile(path, []byte(samplePrefs), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	doc, err := LoadPrefsFile(path)
	if err != nil {
		t.Fatalf("LoadPrefsFile error: %v", err)
	}
	doc.Set("FocusMode", "2")
	if err = doc.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	// backup holds the pre-save contents
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(bak) != samplePrefs {
		t.Errorf("backup contents wrong")
	}
	reloaded, err := LoadPrefsFile(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	value, _, _ := reloaded.Get("FocusMode")
	if value != "2" {
		t.Errorf("FocusMode after reload = %q", value)
	}
}

func TestLoadMissingFile(t *testing.T) {
	doc, err := LoadPrefsFile(filepath.Join(t.TempDir(), "preferences"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("missing file should parse to empty doc")
	}
	doc.Set("TaskBarShowClock", "1")
	if err = doc.Save(); err != nil {
		t.Fatalf("Save of fresh doc error: %v", err)
	}
}

func TestMergedOptions(t *testing.T) {
	system := ParsePrefs("# TaskBarShowClock=1\nFocusMode=1\nColorNormalBorder=\"rgb:C0/C0/C0\"\n")
	user := ParsePrefs("TaskBarShowClock=0\n# FocusMode=2\n")
	merged := MergedOptions(system, user)
	byKey := make(map[string]OptionInfo)
	for _, opt := range merged {
		byKey[opt.Key] = opt
	}
	if opt := byKey["TaskBarShowClock"]; opt.Value != "0" || opt.Commented || opt.Source != "user" {
		t.Errorf("TaskBarShowClock = %+v", opt)
	}
	// user's commented entry must not shadow the system's active one
	if opt := byKey["FocusMode"]; opt.Value != "1" || opt.Commented || opt.Source != "system" {
		t.Errorf("FocusMode = %+v", opt)
	}
	if opt := byKey["ColorNormalBorder"]; opt.Source != "system" {
		t.Errorf("ColorNormalBorder = %+v", opt)
	}
}

func TestClassifyOption(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  OptionType
	}{
		{"TaskBarShowClock", "1", OptionTypeBool},
		{"DesktopBackgroundScaled", "0", OptionTypeBool},
		{"ClickMotionDistance", "5", OptionTypeNumber},
		{"ColorActiveTitleBar", `"rgb:68/8A/AF"`, OptionTypeColor},
		{"ColorNormalBorder", `"#C0C0C0"`, OptionTypeColor},
		{"QuickSwitchKey", `"Alt+Tab"`, OptionTypeKey},
		{"WorkspaceNames", `" 1 ", " 2 "`, OptionTypeList},
		{"TitleFontName", `"-*-sans-medium-r-*-*-*-*-*-*-*-*-*-*"`, OptionTypeString},
	}
	for _, tc := range tests {
		if got := ClassifyOption(tc.key, tc.value); got != tc.want {
			t.Errorf("ClassifyOption(%s, %s) = %s, want %s", tc.key, tc.value, got, tc.want)
		}
	}
}

func TestQuoteHelpers(t *testing.T) {
	if !IsQuoted(`"xterm"`) || IsQuoted("xterm") {
		t.Errorf("IsQuoted mismatch")
	}
	if got := UnquoteValue(`"xterm"`); got != "xterm" {
		t.Errorf("UnquoteValue = %q", got)
	}
	if got := QuoteValue("xterm"); got != `"xterm"` {
		t.Errorf("QuoteValue = %q", got)
	}
}
