// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package fontservice converts between Pango font descriptions and the
// XLFD strings IceWM's font options expect.
package fontservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/icewmcp/icewmcp/pkg/fontspec"
	"github.com/icewmcp/icewmcp/pkg/panelconfig"
)

type FontService struct{}

// FontConversion reports both renderings of a font so the client can show
// the one it did not start with.
type FontConversion struct {
	Pango string `json:"pango"`
	XLFD  string `json:"xlfd"`
}

func charset() string {
	settings := panelconfig.GetWatcher().GetFullConfig().Settings
	if settings.FontCharset != "" {
		return settings.FontCharset
	}
	return fontspec.DefaultCharset
}

// PangoToXLFD converts a Pango description like "DejaVu Sans Bold 11" to an
// XLFD string, using the font:charset setting for the charset fields.
func (fs *FontService) PangoToXLFD(ctx context.Context, desc string) (*FontConversion, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil, fmt.Errorf("font description is empty")
	}
	spec := fontspec.ParsePangoDescription(desc)
	return &FontConversion{Pango: desc, XLFD: spec.XLFD(charset())}, nil
}

// XLFDToPango converts an XLFD string back to a Pango description.
func (fs *FontService) XLFDToPango(ctx context.Context, xlfd string) (*FontConversion, error) {
	xlfd = strings.TrimSpace(xlfd)
	if xlfd == "" {
		return nil, fmt.Errorf("font string is empty")
	}
	return &FontConversion{Pango: fontspec.XLFDToPango(xlfd), XLFD: xlfd}, nil
}
