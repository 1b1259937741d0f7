// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

// The keys file holds one shortcut per line:
//
//	key "Alt+Ctrl+t" xterm -rv
//
// Anything that is not a key line (comments, blanks) is dropped on save; the
// panel owns this file and rewrites it whole.

const keysFileHeader = "# IceWM custom keyboard shortcuts\n# Generated by IceWMCP\n\n"

type KeyBinding struct {
	Combo   string `json:"combo"`
	Command string `json:"command"`
}

// SplitCommandWords splits a line into words, honoring double quotes.
func SplitCommandWords(input string) []string {
	var words []string
	var current strings.Builder
	inQuotes := false
	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ', '\t':
			if !inQuotes {
				if current.Len() > 0 {
					words = append(words, current.String())
					current.Reset()
				}
			} else {
				current.WriteRune(char)
			}
		default:
			current.WriteRune(char)
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func ParseKeysText(text string) []KeyBinding {
	var bindings []KeyBinding
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words := SplitCommandWords(line)
		if len(words) < 3 || words[0] != "key" {
			continue
		}
		bindings = append(bindings, KeyBinding{
			Combo:   words[1],
			Command: strings.Join(words[2:], " "),
		})
	}
	return bindings
}

// RenderKeysText renders bindings sorted by combo, under the panel header.
func RenderKeysText(bindings []KeyBinding) string {
	sorted := append([]KeyBinding(nil), bindings...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Combo < sorted[j].Combo
	})
	var buf strings.Builder
	buf.WriteString(keysFileHeader)
	for _, kb := range sorted {
		fmt.Fprintf(&buf, "key \"%s\"\t\t%s\n", kb.Combo, kb.Command)
	}
	return buf.String()
}

func LoadKeysFile(path string) ([]KeyBinding, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read keys file %q: %w", path, err)
	}
	return ParseKeysText(string(data)), nil
}

func SaveKeysFile(path string, bindings []KeyBinding) error {
	err := utilfn.AtomicWriteFile(path, []byte(RenderKeysText(bindings)), 0644)
	if err != nil {
		return fmt.Errorf("cannot write keys file %q: %w", path, err)
	}
	return nil
}

// FindBinding returns the index of combo in bindings, or -1.  Combos are
// compared in normalized form, so modifier order and casing do not matter.
func FindBinding(bindings []KeyBinding, combo string) int {
	want := NormalizeKeyCombo(combo)
	for idx, kb := range bindings {
		if NormalizeKeyCombo(kb.Combo) == want {
			return idx
		}
	}
	return -1
}

// comboModifiers lists the modifier names IceWM accepts in key combos, in
// canonical output order.
var comboModifiers = []string{"Ctrl", "Alt", "Shift", "Meta", "Super", "Hyper", "AltGr"}

func canonicalModifier(mod string) string {
	for _, canon := range comboModifiers {
		if strings.EqualFold(mod, canon) {
			return canon
		}
	}
	return ""
}

// NormalizeKeyCombo rewrites a combo into canonical form.  Modifiers are
// sorted into the order Ctrl, Alt, Shift (then Meta, Super, Hyper, AltGr)
// with canonical casing and duplicates dropped; the key token stays verbatim
// at the end.  "shift+CTRL+t" normalizes to "Ctrl+Shift+t".  Combos without
// a key part come back unchanged.
func NormalizeKeyCombo(combo string) string {
	parts := strings.Split(combo, "+")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return combo
	}
	key := parts[len(parts)-1]
	present := make(map[string]bool)
	var unrecognized []string
	for _, mod := range parts[:len(parts)-1] {
		if canon := canonicalModifier(mod); canon != "" {
			present[canon] = true
		} else {
			unrecognized = append(unrecognized, mod)
		}
	}
	normalized := make([]string, 0, len(parts))
	for _, canon := range comboModifiers {
		if present[canon] {
			normalized = append(normalized, canon)
		}
	}
	normalized = append(normalized, unrecognized...)
	normalized = append(normalized, key)
	return strings.Join(normalized, "+")
}

// ValidateKeyCombo rejects combos IceWM would not parse: empty, embedded
// whitespace, or a trailing modifier with no key.
func ValidateKeyCombo(combo string) error {
	if combo == "" {
		return fmt.Errorf("key combo is empty")
	}
	if strings.ContainsAny(combo, " \t\"") {
		return fmt.Errorf("key combo %q must not contain whitespace or quotes", combo)
	}
	if strings.HasSuffix(combo, "+") {
		return fmt.Errorf("key combo %q is missing a key after the modifier", combo)
	}
	return nil
}
