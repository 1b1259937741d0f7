// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/icewmcp/icewmcp/pkg/gogen"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
)

const SettingsMetaConstsFileName = "pkg/panelconfig/metaconsts.go"

func GenerateSettingsMetaConsts() {
	fmt.Fprintf(os.Stderr, "generating settings meta consts file to %s\n", SettingsMetaConstsFileName)
	var buf strings.Builder
	gogen.GenerateBoilerplate(&buf, "panelconfig", []string{})
	gogen.GenerateMetaMapConsts(&buf, "ConfigKey_", reflect.TypeOf(panelconfig.SettingsType{}))
	err := os.WriteFile(SettingsMetaConstsFileName, []byte(buf.String()), 0644)
	if err != nil {
		panic(err)
	}
}

func main() {
	GenerateSettingsMetaConsts()
}
