// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package cursors manages the XPM cursor overrides IceWM loads from
// ~/.icewm/cursors. Each cursor role maps to a fixed file name; dropping a
// file there replaces that cursor on the next IceWM restart.
package cursors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/icewmcp/icewmcp/pkg/icewm"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

type CursorRole struct {
	Role string `json:"role"`
	File string `json:"file"`
}

// Roles holds the cursor slots IceWM knows about, display order.
var Roles = []CursorRole{
	{"Normal Pointer", "left.xpm"},
	{"Move Pointer", "move.xpm"},
	{"Right Pointer", "right.xpm"},
	{"Resize Bottom", "sizeB.xpm"},
	{"Resize Bottom Left", "sizeBL.xpm"},
	{"Resize Bottom Right", "sizeBR.xpm"},
	{"Resize Left", "sizeL.xpm"},
	{"Resize Right", "sizeR.xpm"},
	{"Resize Top", "sizeT.xpm"},
	{"Resize Top Left", "sizeTL.xpm"},
	{"Resize Top Right", "sizeTR.xpm"},
}

type CursorStatus struct {
	Role      string `json:"role"`
	File      string `json:"file"`
	Path      string `json:"path"`
	Installed bool   `json:"installed"`
}

func fileForRole(role string) (string, error) {
	for _, r := range Roles {
		if strings.EqualFold(r.Role, role) {
			return r.File, nil
		}
	}
	return "", fmt.Errorf("unknown cursor role %q", role)
}

func statusInDir(dir string) []CursorStatus {
	rtn := make([]CursorStatus, 0, len(Roles))
	for _, r := range Roles {
		path := filepath.Join(dir, r.File)
		_, err := os.Stat(path)
		rtn = append(rtn, CursorStatus{
			Role:      r.Role,
			File:      r.File,
			Path:      path,
			Installed: err == nil,
		})
	}
	return rtn
}

func installInDir(dir string, role string, sourcePath string) error {
	fileName, err := fileForRole(role)
	if err != nil {
		return err
	}
	sourcePath = panelbase.ExpandHomeDirSafe(sourcePath)
	if !strings.HasSuffix(strings.ToLower(sourcePath), ".xpm") {
		return fmt.Errorf("cursor file %q must be an XPM image", sourcePath)
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("cannot read cursor file: %w", err)
	}
	headLen := len(data)
	if headLen > 64 {
		headLen = 64
	}
	if !strings.Contains(string(data[:headLen]), "XPM") {
		return fmt.Errorf("cursor file %q does not look like an XPM image", sourcePath)
	}
	err = panelbase.TryMkdirs(dir, 0755, "icewm cursors directory")
	if err != nil {
		return err
	}
	err = utilfn.AtomicWriteFile(filepath.Join(dir, fileName), data, 0644)
	if err != nil {
		return fmt.Errorf("cannot install cursor: %w", err)
	}
	return nil
}

func removeInDir(dir string, role string) error {
	fileName, err := fileForRole(role)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, fileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Status lists every cursor role and whether an override is installed.
func Status() []CursorStatus {
	return statusInDir(icewm.UserCursorsDir())
}

// Install copies an XPM file over the cursor slot for role.
func Install(role string, sourcePath string) error {
	return installInDir(icewm.UserCursorsDir(), role, sourcePath)
}

// Remove deletes the override for role, falling back to IceWM's built-in.
func Remove(role string) error {
	return removeInDir(icewm.UserCursorsDir(), role)
}
