// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/icewmcp/icewmcp/pkg/panelconfig"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
	"github.com/invopop/jsonschema"
)

const SettingsSchemaFileName = "schema/settings.json"

func generateSettingsSchema() error {
	settingsSchema := jsonschema.Reflect(&panelconfig.SettingsType{})

	jsonSettingsSchema, err := json.MarshalIndent(settingsSchema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to parse local schema: %v", err)
	}
	written, err := utilfn.WriteFileIfDifferent(SettingsSchemaFileName, jsonSettingsSchema)
	if !written {
		fmt.Fprintf(os.Stderr, "no changes to %s\n", SettingsSchemaFileName)
	}
	if err != nil {
		return fmt.Errorf("failed to write local schema: %v", err)
	}
	return nil
}

func main() {
	err := generateSettingsSchema()
	if err != nil {
		log.Fatalf("settings schema error: %v", err)
	}
}
