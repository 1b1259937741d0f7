// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package web

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed docs/*.txt
var docsFS embed.FS

var docNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ListDocs returns the names of the bundled help documents.
func ListDocs() []string {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil
	}
	var rtn []string
	for _, entry := range entries {
		rtn = append(rtn, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(rtn)
	return rtn
}

// ReadDoc returns the contents of a bundled help document.
func ReadDoc(name string) ([]byte, error) {
	if !docNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid doc name %q", name)
	}
	barr, err := docsFS.ReadFile("docs/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no doc named %q", name)
	}
	return barr, nil
}
