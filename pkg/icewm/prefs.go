// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexflint/go-filemutex"

	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

// IceWM preference files are line oriented. Options ship commented out in the
// system file ("#  TaskBarShowClock=1 # 0/1") and get uncommented or appended
// in the user file. The codec keeps every line, byte for byte, except the
// lines an edit actually touches.

type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineOption
	LineCommentedOption
)

type PrefLine struct {
	Raw     string
	Kind    LineKind
	Key     string
	Value   string
	Trailer string // trailing "# ..." after the value, preserved on rewrite
}

type PrefDoc struct {
	Path  string
	Lines []*PrefLine
}

type OptionInfo struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Commented bool   `json:"commented,omitempty"`
	Source    string `json:"source,omitempty"` // "user" or "system"
}

var optionLineRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*=\s*(.*)$`)
var commentedOptionRe = regexp.MustCompile(`^#+\s*([A-Za-z][A-Za-z0-9_]*)\s*=\s*(.*)$`)

const prefsLockName = ".icewmcp-prefs.lock"

// splitValueTrailer splits a raw value into the value proper and a trailing
// comment. '#' inside double quotes does not start a comment.
func splitValueTrailer(s string) (string, string) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '"' {
			inQuote = !inQuote
		} else if ch == '#' && !inQuote {
			return strings.TrimRight(s[:i], " \t"), s[i:]
		}
	}
	return s, ""
}

func parsePrefLine(raw string) *PrefLine {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &PrefLine{Raw: raw, Kind: LineBlank}
	}
	if strings.HasPrefix(trimmed, "#") {
		if m := commentedOptionRe.FindStringSubmatch(trimmed); m != nil {
			value, trailer := splitValueTrailer(m[2])
			return &PrefLine{Raw: raw, Kind: LineCommentedOption, Key: m[1], Value: value, Trailer: trailer}
		}
		return &PrefLine{Raw: raw, Kind: LineComment}
	}
	if m := optionLineRe.FindStringSubmatch(trimmed); m != nil {
		value, trailer := splitValueTrailer(m[2])
		return &PrefLine{Raw: raw, Kind: LineOption, Key: m[1], Value: value, Trailer: trailer}
	}
	// unknown line, pass through untouched
	return &PrefLine{Raw: raw, Kind: LineComment}
}

func ParsePrefs(text string) *PrefDoc {
	doc := &PrefDoc{}
	if text == "" {
		return doc
	}
	rawLines := strings.Split(text, "\n")
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}
	for _, raw := range rawLines {
		raw = strings.TrimSuffix(raw, "\r")
		doc.Lines = append(doc.Lines, parsePrefLine(raw))
	}
	return doc
}

// LoadPrefsFile parses path. A missing file yields an empty doc so a fresh
// user config can be built up and saved.
func LoadPrefsFile(path string) (*PrefDoc, error) {
	doc := &PrefDoc{Path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read preferences file %q: %w", path, err)
	}
	parsed := ParsePrefs(string(data))
	parsed.Path = path
	return parsed, nil
}

func (doc *PrefDoc) Render() string {
	if len(doc.Lines) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, line := range doc.Lines {
		buf.WriteString(line.Raw)
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (line *PrefLine) rebuildRaw() {
	raw := line.Key + "=" + line.Value
	if line.Kind == LineCommentedOption {
		raw = "# " + raw
	}
	if line.Trailer != "" {
		raw = raw + " " + line.Trailer
	}
	line.Raw = raw
}

// Get returns the effective value for key. An active line wins over a
// commented one; the last occurrence of each wins.
func (doc *PrefDoc) Get(key string) (value string, commented bool, found bool) {
	var lastActive, lastCommented *PrefLine
	for _, line := range doc.Lines {
		if line.Key != key {
			continue
		}
		if line.Kind == LineOption {
			lastActive = line
		} else if line.Kind == LineCommentedOption {
			lastCommented = line
		}
	}
	if lastActive != nil {
		return lastActive.Value, false, true
	}
	if lastCommented != nil {
		return lastCommented.Value, true, true
	}
	return "", false, false
}

// Set makes key=value active, uncommenting an existing commented line or
// appending a new one. Returns true if the document changed.
func (doc *PrefDoc) Set(key string, value string) bool {
	var lastActive, lastCommented *PrefLine
	for _, line := range doc.Lines {
		if line.Key != key {
			continue
		}
		if line.Kind == LineOption {
			lastActive = line
		} else if line.Kind == LineCommentedOption {
			lastCommented = line
		}
	}
	if lastActive != nil {
		if lastActive.Value == value {
			return false
		}
		lastActive.Value = value
		lastActive.rebuildRaw()
		return true
	}
	if lastCommented != nil {
		lastCommented.Kind = LineOption
		lastCommented.Value = value
		lastCommented.rebuildRaw()
		return true
	}
	newLine := &PrefLine{Kind: LineOption, Key: key, Value: value}
	newLine.rebuildRaw()
	doc.Lines = append(doc.Lines, newLine)
	return true
}

// Append adds a fresh active line for key, even when older lines exist.
func (doc *PrefDoc) Append(key string, value string) {
	newLine := &PrefLine{Kind: LineOption, Key: key, Value: value}
	newLine.rebuildRaw()
	doc.Lines = append(doc.Lines, newLine)
}

// Unset comments out every active line for key, reverting it to the default.
func (doc *PrefDoc) Unset(key string) bool {
	changed := false
	for _, line := range doc.Lines {
		if line.Key == key && line.Kind == LineOption {
			line.Kind = LineCommentedOption
			line.rebuildRaw()
			changed = true
		}
	}
	return changed
}

// Keys returns the unique option keys in first-appearance order.
func (doc *PrefDoc) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, line := range doc.Lines {
		if line.Key == "" || seen[line.Key] {
			continue
		}
		seen[line.Key] = true
		keys = append(keys, line.Key)
	}
	return keys
}

// Options returns one OptionInfo per key, using the effective value.
func (doc *PrefDoc) Options() []OptionInfo {
	var rtn []OptionInfo
	for _, key := range doc.Keys() {
		value, commented, _ := doc.Get(key)
		rtn = append(rtn, OptionInfo{Key: key, Value: value, Commented: commented})
	}
	return rtn
}

// Save writes the document back to doc.Path. The previous contents go to
// Path.bak, and concurrent panel processes serialize on a lock file next to
// the preferences file.
func (doc *PrefDoc) Save() error {
	if doc.Path == "" {
		return fmt.Errorf("preferences document has no path")
	}
	dir := filepath.Dir(doc.Path)
	err := panelbase.TryMkdirs(dir, 0755, "icewm config directory")
	if err != nil {
		return err
	}
	lock, err := filemutex.New(filepath.Join(dir, prefsLockName))
	if err != nil {
		return fmt.Errorf("cannot create prefs lock: %w", err)
	}
	err = lock.Lock()
	if err != nil {
		return fmt.Errorf("cannot acquire prefs lock: %w", err)
	}
	defer lock.Unlock()
	oldData, err := os.ReadFile(doc.Path)
	if err == nil {
		err = os.WriteFile(doc.Path+".bak", oldData, 0644)
		if err != nil {
			return fmt.Errorf("cannot write backup file: %w", err)
		}
	}
	err = utilfn.AtomicWriteFile(doc.Path, []byte(doc.Render()), 0644)
	if err != nil {
		return fmt.Errorf("cannot write preferences file %q: %w", doc.Path, err)
	}
	return nil
}

// MergedOptions overlays the user document on the system defaults. Active
// entries beat commented ones; the user file beats the system file.
func MergedOptions(system *PrefDoc, user *PrefDoc) []OptionInfo {
	optMap := make(map[string]OptionInfo)
	if system != nil {
		for _, opt := range system.Options() {
			opt.Source = "system"
			optMap[opt.Key] = opt
		}
	}
	if user != nil {
		for _, opt := range user.Options() {
			opt.Source = "user"
			existing, ok := optMap[opt.Key]
			if !ok || !opt.Commented || existing.Commented {
				optMap[opt.Key] = opt
			}
		}
	}
	keys := utilfn.GetOrderedMapKeys(optMap)
	rtn := make([]OptionInfo, 0, len(keys))
	for _, key := range keys {
		rtn = append(rtn, optMap[key])
	}
	return rtn
}

// option value helpers

func IsQuoted(value string) bool {
	return len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)
}

func QuoteValue(s string) string {
	return `"` + s + `"`
}

func UnquoteValue(value string) string {
	if IsQuoted(value) {
		return value[1 : len(value)-1]
	}
	return value
}

type OptionType string

const (
	OptionTypeBool   OptionType = "bool"
	OptionTypeNumber OptionType = "number"
	OptionTypeString OptionType = "string"
	OptionTypeKey    OptionType = "key"
	OptionTypeColor  OptionType = "color"
	OptionTypeList   OptionType = "list"
)

// ClassifyOption infers the editor type for an option from its name and its
// current value, the way the panel's editors group them.
func ClassifyOption(key string, value string) OptionType {
	if strings.Contains(key, "Key") && IsQuoted(value) {
		return OptionTypeKey
	}
	if IsQuoted(value) {
		inner := UnquoteValue(value)
		if strings.HasPrefix(inner, "rgb:") || strings.HasPrefix(inner, "#") {
			return OptionTypeColor
		}
		if strings.Contains(value, `", "`) || strings.Contains(value, `","`) {
			return OptionTypeList
		}
		return OptionTypeString
	}
	if value == "0" || value == "1" {
		return OptionTypeBool
	}
	if _, err := strconv.Atoi(value); err == nil {
		return OptionTypeNumber
	}
	return OptionTypeString
}

