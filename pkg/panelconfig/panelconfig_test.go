// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/icewmcp/icewmcp/pkg/panelmeta"
)

func TestReadDefaultSettings(t *testing.T) {
	defaults := ReadDefaultSettings()
	if defaults.GetInt(ConfigKey_PanelWebPort, 0) != 2420 {
		t.Errorf("wrong default webport: %v", defaults[ConfigKey_PanelWebPort])
	}
	if defaults.GetString(ConfigKey_FontCharset, "") != "*-*" {
		t.Errorf("wrong default charset: %v", defaults[ConfigKey_FontCharset])
	}
}

func TestReadFullConfigDefaultsOnly(t *testing.T) {
	t.Setenv("ICEWMCP_CONFIG_HOME", t.TempDir())
	fullConfig := ReadFullConfig()
	if len(fullConfig.ConfigErrors) != 0 {
		t.Fatalf("unexpected config errors: %+v", fullConfig.ConfigErrors)
	}
	if fullConfig.Settings.PanelWebPort != 2420 || fullConfig.Settings.PanelWsPort != 2421 {
		t.Errorf("wrong default ports: %+v", fullConfig.Settings)
	}
	if fullConfig.Settings.PanelHistoryLimit != 20 {
		t.Errorf("wrong default history limit: %d", fullConfig.Settings.PanelHistoryLimit)
	}
	if !fullConfig.Settings.PanelShowCommented {
		t.Errorf("showcommented should default true")
	}
}

func TestReadFullConfigUserOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ICEWMCP_CONFIG_HOME", dir)
	content := "{\"panel:webport\": 9000, \"icewm:autorestart\": true}\n"
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(content), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	fullConfig := ReadFullConfig()
	if fullConfig.Settings.PanelWebPort != 9000 {
		t.Errorf("user webport not applied: %d", fullConfig.Settings.PanelWebPort)
	}
	if fullConfig.Settings.PanelWsPort != 2421 {
		t.Errorf("default wsport lost: %d", fullConfig.Settings.PanelWsPort)
	}
	if !fullConfig.Settings.IceWMAutoRestart {
		t.Errorf("autorestart not applied")
	}
}

func TestReadFullConfigBadJson(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ICEWMCP_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	fullConfig := ReadFullConfig()
	if len(fullConfig.ConfigErrors) != 1 {
		t.Fatalf("expected 1 config error, got %+v", fullConfig.ConfigErrors)
	}
	// defaults still apply
	if fullConfig.Settings.PanelWebPort != 2420 {
		t.Errorf("defaults lost on parse error: %+v", fullConfig.Settings)
	}
}

func TestSetBaseConfigValue(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ICEWMCP_CONFIG_HOME", dir)
	err := SetBaseConfigValue(panelmeta.MetaMapType{ConfigKey_PanelTrialSeconds: 15})
	if err != nil {
		t.Fatalf("SetBaseConfigValue: %v", err)
	}
	fullConfig := ReadFullConfig()
	if fullConfig.Settings.PanelTrialSeconds != 15 {
		t.Errorf("trialseconds not set: %d", fullConfig.Settings.PanelTrialSeconds)
	}

	// nil deletes the key, falling back to the default
	err = SetBaseConfigValue(panelmeta.MetaMapType{ConfigKey_PanelTrialSeconds: nil})
	if err != nil {
		t.Fatalf("SetBaseConfigValue delete: %v", err)
	}
	fullConfig = ReadFullConfig()
	if fullConfig.Settings.PanelTrialSeconds != 7 {
		t.Errorf("delete did not restore default: %d", fullConfig.Settings.PanelTrialSeconds)
	}
}

func TestSetBaseConfigValueSectionClear(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ICEWMCP_CONFIG_HOME", dir)
	err := SetBaseConfigValue(panelmeta.MetaMapType{
		ConfigKey_IceWMAutoRestart:    true,
		ConfigKey_IceWMRestartCommand: "icewm --replace",
	})
	if err != nil {
		t.Fatalf("SetBaseConfigValue: %v", err)
	}
	err = SetBaseConfigValue(panelmeta.MetaMapType{ConfigKey_IceWMClear: true})
	if err != nil {
		t.Fatalf("SetBaseConfigValue clear: %v", err)
	}
	fullConfig := ReadFullConfig()
	if fullConfig.Settings.IceWMAutoRestart || fullConfig.Settings.IceWMRestartCommand != "" {
		t.Errorf("section clear did not remove keys: %+v", fullConfig.Settings)
	}
}

func TestSetBaseConfigValueValidation(t *testing.T) {
	t.Setenv("ICEWMCP_CONFIG_HOME", t.TempDir())
	if err := SetBaseConfigValue(panelmeta.MetaMapType{"bogus:key": 1}); err == nil {
		t.Errorf("expected error for invalid key")
	}
	if err := SetBaseConfigValue(panelmeta.MetaMapType{ConfigKey_PanelWebPort: "not-a-number"}); err == nil {
		t.Errorf("expected type error for string webport")
	}
	if err := SetBaseConfigValue(panelmeta.MetaMapType{}); err == nil {
		t.Errorf("expected error for empty merge")
	}
}

func TestParseConfigValue(t *testing.T) {
	val, err := ParseConfigValue(ConfigKey_PanelWebPort, "8080")
	if err != nil || val != 8080 {
		t.Errorf("ParseConfigValue webport: val=%v err=%v", val, err)
	}
	val, err = ParseConfigValue(ConfigKey_IceWMAutoRestart, "true")
	if err != nil || val != true {
		t.Errorf("ParseConfigValue autorestart: val=%v err=%v", val, err)
	}
	val, err = ParseConfigValue(ConfigKey_FontCharset, "iso8859-1")
	if err != nil || val != "iso8859-1" {
		t.Errorf("ParseConfigValue charset: val=%v err=%v", val, err)
	}
	if _, err = ParseConfigValue(ConfigKey_PanelWebPort, "abc"); err == nil {
		t.Errorf("expected error for non-numeric port")
	}
	if _, err = ParseConfigValue("nope:key", "1"); err == nil {
		t.Errorf("expected error for unknown key")
	}
}

func TestConfigKeysContainsAllSections(t *testing.T) {
	keys := ConfigKeys()
	want := map[string]bool{
		ConfigKey_PanelWebPort:     false,
		ConfigKey_IceWMAutoRestart: false,
		ConfigKey_FontCharset:      false,
	}
	for _, key := range keys {
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("key %s missing from ConfigKeys", key)
		}
	}
}
