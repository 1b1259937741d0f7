// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package fontspec converts between Pango font descriptions ("Arial Bold 18")
// and the legacy XLFD strings IceWM wants in its preferences file
// ("-*-arial-bold-r-normal-*-*-180-*-*-p-*-*-*"). The conversion is lossy in
// both directions; foundry and charset have no Pango equivalent.
package fontspec

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCharset is the registry-encoding pair assumed for reconstructed
// fonts. Wildcards keep fontconfig happy on every system.
const DefaultCharset = "*-*"

const DefaultSizePt = 12

type FontSpec struct {
	Family  string `json:"family"`
	SizePt  int    `json:"sizept"`
	Weight  string `json:"weight,omitempty"`  // xlfd word: medium, bold, heavy, thin, ultrabold, ultralight
	Style   string `json:"style,omitempty"`   // normal, italic, oblique
	Stretch string `json:"stretch,omitempty"` // condensed, expanded, ...
}

// pango weight words to the xlfd weight field
var weightWords = map[string]string{
	"bold":        "bold",
	"heavy":       "heavy",
	"light":       "thin",
	"thin":        "thin",
	"medium":      "medium",
	"normal":      "medium",
	"regular":     "medium",
	"ultrabold":   "ultrabold",
	"ultra-bold":  "ultrabold",
	"ultralight":  "ultralight",
	"ultra-light": "ultralight",
}

var styleWords = map[string]string{
	"italic":  "i",
	"oblique": "o",
}

var stretchWords = map[string]bool{
	"condensed":      true,
	"expanded":       true,
	"extracondensed": true,
	"extraexpanded":  true,
	"semicondensed":  true,
	"semiexpanded":   true,
	"ultracondensed": true,
	"ultraexpanded":  true,
}

// ParsePangoDescription splits a description like "DejaVu Sans Bold Oblique
// Condensed 14" into its parts. Unrecognized words belong to the family name.
func ParsePangoDescription(desc string) FontSpec {
	spec := FontSpec{SizePt: DefaultSizePt, Weight: "medium", Style: "normal", Stretch: "normal"}
	words := strings.Fields(desc)
	if len(words) == 0 {
		return spec
	}
	// trailing number is the point size
	if size, err := strconv.ParseFloat(words[len(words)-1], 64); err == nil && size > 0 {
		spec.SizePt = int(size)
		words = words[:len(words)-1]
	}
	// style words accumulate at the end of the description
	for len(words) > 0 {
		last := strings.ToLower(words[len(words)-1])
		if last == "normal" || last == "regular" {
			words = words[:len(words)-1]
			continue
		}
		if weight, ok := weightWords[last]; ok {
			spec.Weight = weight
			words = words[:len(words)-1]
			continue
		}
		if style, ok := styleWords[last]; ok {
			if style == "i" {
				spec.Style = "italic"
			} else {
				spec.Style = "oblique"
			}
			words = words[:len(words)-1]
			continue
		}
		if stretchWords[strings.ReplaceAll(last, "-", "")] {
			spec.Stretch = strings.ReplaceAll(last, "-", "")
			words = words[:len(words)-1]
			continue
		}
		break
	}
	spec.Family = strings.Join(words, " ")
	return spec
}

func styleLetter(style string) string {
	switch style {
	case "italic":
		return "i"
	case "oblique":
		return "o"
	}
	return "r"
}

// XLFD renders the spec as an XLFD string, point size in decipoints.
func (spec FontSpec) XLFD(charset string) string {
	if charset == "" {
		charset = DefaultCharset
	}
	family := spec.Family
	if family == "" {
		family = "*"
	}
	weight := spec.Weight
	if weight == "" {
		weight = "medium"
	}
	stretch := spec.Stretch
	if stretch == "" {
		stretch = "normal"
	}
	xlfd := fmt.Sprintf("-*-%s-%s-%s-%s-*-*-%d-*-*-p-*-%s",
		family, weight, styleLetter(spec.Style), stretch, spec.SizePt*10, charset)
	return strings.ToLower(strings.TrimSpace(xlfd))
}

// PangoToXLFD converts a Pango description to an XLFD string.
func PangoToXLFD(desc string) string {
	return ParsePangoDescription(desc).XLFD(DefaultCharset)
}

// XLFDToPango reconstructs a Pango description from an XLFD string, e.g.
// "-adobe-courier-medium-r-*-*-*-140-*-*-*-*-*-*" to "courier, medium 14".
// Incomplete strings come back unchanged.
func XLFDToPango(xlfd string) string {
	parts := strings.Split(xlfd, "-")
	if len(parts) < 9 {
		return xlfd
	}
	face := parts[2]
	weight := "medium"
	if parts[3] != "*" && parts[3] != "" {
		weight = parts[3]
	}
	size := ""
	if n, err := strconv.Atoi(parts[8]); err == nil && n > 0 {
		// decipoints; tolerate plain points from hand-written strings
		if n >= 10 {
			n = n / 10
		}
		size = strconv.Itoa(n)
	}
	style := ""
	if parts[4] == "i" {
		style = " italic "
	} else if parts[4] == "o" {
		style = " oblique "
	}
	stretch := ""
	if setwidth := strings.ToLower(parts[5]); setwidth != "*" && setwidth != "" &&
		setwidth != "normal" && setwidth != "regular" {
		stretch = setwidth + " "
	}
	desc := face + ", " + weight + style + " " + stretch + size
	desc = strings.ToLower(strings.ReplaceAll(desc, "  ", " "))
	return strings.TrimSpace(desc)
}
