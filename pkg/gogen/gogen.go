// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package gogen writes the generated Go sources checked into the repo,
// currently the settings meta-const file.
package gogen

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

func GenerateBoilerplate(buf *strings.Builder, pkgName string, imports []string) {
	buf.WriteString("// Copyright 2025, The IceWMCP Authors\n")
	buf.WriteString("// SPDX-License-Identifier: GPL-2.0-or-later\n")
	buf.WriteString("\n// Generated Code. DO NOT EDIT.\n\n")
	buf.WriteString(fmt.Sprintf("package %s\n\n", pkgName))
	if len(imports) > 0 {
		buf.WriteString("import (\n")
		for _, imp := range imports {
			buf.WriteString(fmt.Sprintf("\t%q\n", imp))
		}
		buf.WriteString(")\n\n")
	}
}

func getBeforeColonPart(s string) string {
	if colonIdx := strings.Index(s, ":"); colonIdx != -1 {
		return s[:colonIdx]
	}
	return s
}

// GenerateMetaMapConsts emits one const per struct field, named after the
// field and valued with its json tag, grouped by tag section.
func GenerateMetaMapConsts(buf *strings.Builder, constPrefix string, rtype reflect.Type) {
	buf.WriteString("const (\n")
	var lastBeforeColon = ""
	isFirst := true
	for idx := 0; idx < rtype.NumField(); idx++ {
		field := rtype.Field(idx)
		if field.PkgPath != "" {
			continue
		}
		fieldName := field.Name
		jsonTag := utilfn.GetJsonTag(field)
		if jsonTag == "" {
			jsonTag = fieldName
		}
		beforeColon := getBeforeColonPart(jsonTag)
		if beforeColon != lastBeforeColon {
			if !isFirst {
				buf.WriteString("\n")
			}
			lastBeforeColon = beforeColon
		}
		cname := constPrefix + fieldName
		buf.WriteString(fmt.Sprintf("\t%-40s = %q\n", cname, jsonTag))
		isFirst = false
	}
	buf.WriteString(")\n")
}
