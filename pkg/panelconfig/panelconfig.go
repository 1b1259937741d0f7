// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package panelconfig holds the panel's own settings file.  Settings are a
// flat "section:name" key space layered as compiled-in defaults overridden
// by the user's settings.json, the same merge rules the meta layer uses.
package panelconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/panelconfig/defaultconfig"
	"github.com/icewmcp/icewmcp/pkg/panelmeta"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

const SettingsFile = "settings.json"

type SettingsType struct {
	PanelClear         bool   `json:"panel:*,omitempty"`
	PanelWebPort       int    `json:"panel:webport,omitempty"`
	PanelWsPort        int    `json:"panel:wsport,omitempty"`
	PanelTrialSeconds  int    `json:"panel:trialseconds,omitempty"`
	PanelHistoryLimit  int    `json:"panel:historylimit,omitempty"`
	PanelShowCommented bool   `json:"panel:showcommented,omitempty"`
	PanelUpdateFeed    string `json:"panel:updatefeed,omitempty"`

	IceWMClear          bool   `json:"icewm:*,omitempty"`
	IceWMAutoRestart    bool   `json:"icewm:autorestart,omitempty"`
	IceWMRestartCommand string `json:"icewm:restartcommand,omitempty"`

	FontClear   bool   `json:"font:*,omitempty"`
	FontCharset string `json:"font:charset,omitempty"`
}

type ConfigError struct {
	File string `json:"file"`
	Err  string `json:"err"`
}

type FullConfigType struct {
	Settings     SettingsType  `json:"settings"`
	ConfigErrors []ConfigError `json:"configerrors"`
}

func settingsAbsPath() string {
	return filepath.Join(panelbase.GetPanelConfigDir(), SettingsFile)
}

func readConfigMap(barr []byte) (panelmeta.MetaMapType, error) {
	var m panelmeta.MetaMapType
	err := json.Unmarshal(barr, &m)
	return m, err
}

// ReadDefaultSettings returns the compiled-in settings defaults.
func ReadDefaultSettings() panelmeta.MetaMapType {
	barr, err := defaultconfig.ConfigFS.ReadFile(SettingsFile)
	if err != nil {
		// the defaults are embedded at build time, this cannot happen
		panic(fmt.Sprintf("cannot read embedded default settings: %v", err))
	}
	m, err := readConfigMap(barr)
	if err != nil {
		panic(fmt.Sprintf("cannot parse embedded default settings: %v", err))
	}
	return m
}

// ReadFullConfig layers the user settings file over the defaults.  Parse
// problems are reported in ConfigErrors rather than failing the read so a
// broken settings file never takes the daemon down.
func ReadFullConfig() FullConfigType {
	var fullConfig FullConfigType
	settingsMap := ReadDefaultSettings()
	barr, err := os.ReadFile(settingsAbsPath())
	if err == nil {
		userMap, err := readConfigMap(barr)
		if err != nil {
			fullConfig.ConfigErrors = append(fullConfig.ConfigErrors, ConfigError{File: SettingsFile, Err: err.Error()})
		} else {
			settingsMap = panelmeta.MergeMeta(settingsMap, userMap)
		}
	} else if !os.IsNotExist(err) {
		fullConfig.ConfigErrors = append(fullConfig.ConfigErrors, ConfigError{File: SettingsFile, Err: err.Error()})
	}
	err = utilfn.ReUnmarshal(&fullConfig.Settings, map[string]any(settingsMap))
	if err != nil {
		fullConfig.ConfigErrors = append(fullConfig.ConfigErrors, ConfigError{File: SettingsFile, Err: fmt.Sprintf("error applying settings: %v", err)})
	}
	return fullConfig
}

var settingsKeyTypes = buildSettingsKeyTypes()

func buildSettingsKeyTypes() map[string]reflect.Type {
	keyTypes := make(map[string]reflect.Type)
	rtype := reflect.TypeOf(SettingsType{})
	for idx := 0; idx < rtype.NumField(); idx++ {
		field := rtype.Field(idx)
		jsonTag := utilfn.GetJsonTag(field)
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		keyTypes[jsonTag] = field.Type
	}
	return keyTypes
}

func checkConfigValueType(configKey string, value any) error {
	rtype := settingsKeyTypes[configKey]
	if rtype == nil || value == nil {
		return nil
	}
	switch rtype.Kind() {
	case reflect.Bool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("config key %s requires a bool value", configKey)
		}
	case reflect.String:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("config key %s requires a string value", configKey)
		}
	case reflect.Int, reflect.Int64, reflect.Float64:
		switch value.(type) {
		case float64, int, int64, json.Number:
		default:
			return fmt.Errorf("config key %s requires a numeric value", configKey)
		}
	}
	return nil
}

// SetBaseConfigValue merges the given keys into the user settings file.  A
// nil value removes the key, "section:*" set to true clears the section.
// The running config updates through the file watcher.
func SetBaseConfigValue(toMerge panelmeta.MetaMapType) error {
	if len(toMerge) == 0 {
		return fmt.Errorf("no settings to apply")
	}
	for configKey, value := range toMerge {
		if _, ok := settingsKeyTypes[configKey]; !ok {
			return fmt.Errorf("invalid config key: %s", configKey)
		}
		if err := checkConfigValueType(configKey, value); err != nil {
			return err
		}
	}
	var userMap panelmeta.MetaMapType
	barr, err := os.ReadFile(settingsAbsPath())
	if err == nil {
		userMap, err = readConfigMap(barr)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", SettingsFile, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error reading %s: %w", SettingsFile, err)
	}
	newMap := panelmeta.MergeMeta(userMap, toMerge)
	barr, err = json.MarshalIndent(newMap, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling settings: %w", err)
	}
	if err := panelbase.EnsurePanelConfigDir(); err != nil {
		return err
	}
	return utilfn.AtomicWriteFile(settingsAbsPath(), append(barr, '\n'), 0644)
}

// ConfigKeys returns the valid settings keys, for CLI completion and
// validation messages.
func ConfigKeys() []string {
	return utilfn.GetOrderedMapKeys(settingsKeyTypes)
}

// ParseConfigValue converts a string form of a settings value (as typed on
// the command line) into the native type of the given key.
func ParseConfigValue(configKey string, valueStr string) (any, error) {
	rtype, ok := settingsKeyTypes[configKey]
	if !ok {
		return nil, fmt.Errorf("invalid config key: %s", configKey)
	}
	switch rtype.Kind() {
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(valueStr)
		if err != nil {
			return nil, fmt.Errorf("config key %s requires a bool value: %w", configKey, err)
		}
		return boolVal, nil
	case reflect.Int, reflect.Int64:
		intVal, err := strconv.Atoi(valueStr)
		if err != nil {
			return nil, fmt.Errorf("config key %s requires an integer value: %w", configKey, err)
		}
		return intVal, nil
	case reflect.Float64:
		floatVal, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("config key %s requires a numeric value: %w", configKey, err)
		}
		return floatVal, nil
	default:
		return valueStr, nil
	}
}
