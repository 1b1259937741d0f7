// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package tools tracks the external helper programs the control panel
// integrates with (IceWM companions and small X11 utilities).  It reports
// which of them are installed, enriches them with freedesktop.org .desktop
// metadata when available, launches them detached from the daemon, and
// opens the IceWM documentation in the user's browser.
package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/skratchdot/open-golang/open"
	"gopkg.in/ini.v1"
)

// Tool describes one helper program the panel knows about.
type Tool struct {
	Name        string
	Title       string
	Description string
	Command     string
	Args        []string
}

// ToolInfo is the availability report for a known tool.
type ToolInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Command     string   `json:"command"`
	Args        []string `json:"args,omitempty"`
	Available   bool     `json:"available"`
	Path        string   `json:"path,omitempty"`
}

var knownTools = []Tool{
	{Name: "icesh", Title: "IceWM Shell", Description: "Scriptable window management for IceWM", Command: "icesh"},
	{Name: "icewmbg", Title: "IceWM Background", Description: "Desktop background and wallpaper daemon", Command: "icewmbg"},
	{Name: "icehelp", Title: "IceWM Help Browser", Description: "Viewer for the bundled IceWM documentation", Command: "icehelp"},
	{Name: "icewm-menu-fdo", Title: "IceWM Menu Generator", Description: "Builds an IceWM menu from freedesktop.org application entries", Command: "icewm-menu-fdo"},
	{Name: "xterm", Title: "XTerm", Description: "Standard X11 terminal emulator", Command: "xterm"},
	{Name: "xfontsel", Title: "X Font Selector", Description: "Browse core X font names interactively", Command: "xfontsel"},
	{Name: "xkill", Title: "XKill", Description: "Force-close a misbehaving X client", Command: "xkill"},
	{Name: "xprop", Title: "XProp", Description: "Inspect window properties", Command: "xprop"},
}

// Documentation targets openable via OpenDoc.
const (
	DocTargetSite   = "site"
	DocTargetFAQ    = "faq"
	DocTargetManual = "manual"
	DocTargetThemes = "themes"
)

var docLinks = map[string]string{
	DocTargetSite:   "https://ice-wm.org/",
	DocTargetFAQ:    "https://ice-wm.org/FAQ/",
	DocTargetManual: "https://ice-wm.org/man/icewm",
	DocTargetThemes: "https://ice-wm.org/themes/",
}

// DocTargets returns the valid OpenDoc targets, sorted.
func DocTargets() []string {
	targets := make([]string, 0, len(docLinks))
	for name := range docLinks {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// DocURL resolves a documentation target to its URL.
func DocURL(target string) (string, error) {
	url, ok := docLinks[strings.ToLower(target)]
	if !ok {
		return "", fmt.Errorf("unknown documentation target %q (valid: %s)", target, strings.Join(DocTargets(), ", "))
	}
	return url, nil
}

// OpenDoc opens a documentation target in the default browser and returns
// the URL it opened.
func OpenDoc(target string) (string, error) {
	url, err := DocURL(target)
	if err != nil {
		return "", err
	}
	if err := open.Run(url); err != nil {
		return "", fmt.Errorf("error opening %s: %w", url, err)
	}
	return url, nil
}

// Registry resolves tool availability and desktop metadata.  LookPath and
// DesktopDirs are settable for tests.
type Registry struct {
	LookPath    func(file string) (string, error)
	DesktopDirs []string
}

func NewRegistry() *Registry {
	return &Registry{
		LookPath:    exec.LookPath,
		DesktopDirs: defaultDesktopDirs(),
	}
}

func defaultDesktopDirs() []string {
	var dirs []string
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// ListTools reports every known tool with its availability.  When a
// matching .desktop entry exists its Name/Comment override the builtin
// title and description.
func (reg *Registry) ListTools() []ToolInfo {
	infos := make([]ToolInfo, 0, len(knownTools))
	for _, tool := range knownTools {
		infos = append(infos, reg.toolInfo(tool))
	}
	return infos
}

// FindTool looks up a known tool by name (case-insensitive).
func (reg *Registry) FindTool(name string) (ToolInfo, error) {
	for _, tool := range knownTools {
		if strings.EqualFold(tool.Name, name) {
			return reg.toolInfo(tool), nil
		}
	}
	return ToolInfo{}, fmt.Errorf("unknown tool %q", name)
}

func (reg *Registry) toolInfo(tool Tool) ToolInfo {
	info := ToolInfo{
		Name:        tool.Name,
		Title:       tool.Title,
		Description: tool.Description,
		Command:     tool.Command,
		Args:        tool.Args,
	}
	if reg.LookPath != nil {
		if path, err := reg.LookPath(tool.Command); err == nil {
			info.Available = true
			info.Path = path
		}
	}
	if entry := reg.findDesktopEntry(tool.Command); entry != nil {
		if entry.Name != "" {
			info.Title = entry.Name
		}
		if entry.Comment != "" {
			info.Description = entry.Comment
		}
	}
	return info
}

// LaunchTool starts a known tool detached from the daemon and returns its
// pid.  Extra arguments are appended after the tool's builtin ones.
func (reg *Registry) LaunchTool(name string, extraArgs []string) (int, error) {
	info, err := reg.FindTool(name)
	if err != nil {
		return 0, err
	}
	if !info.Available {
		return 0, fmt.Errorf("tool %q is not installed (command %q not found in PATH)", info.Name, info.Command)
	}
	args := append(append([]string(nil), info.Args...), extraArgs...)
	return launchDetached(info.Path, args)
}

// RunCommand runs an arbitrary command line through the shell, detached
// from the daemon, and returns the shell's pid.  This backs the panel's
// run dialog.
func RunCommand(cmdline string) (int, error) {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return 0, fmt.Errorf("empty command")
	}
	return launchDetached("/bin/sh", []string{"-c", cmdline})
}

func launchDetached(bin string, args []string) (int, error) {
	ecmd := exec.Command(bin, args...)
	ecmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := ecmd.Start(); err != nil {
		return 0, fmt.Errorf("cannot start %s: %w", bin, err)
	}
	pid := ecmd.Process.Pid
	go func() {
		// reap so the child does not linger as a zombie
		_ = ecmd.Wait()
	}()
	return pid, nil
}

// DesktopEntry is the subset of a freedesktop.org .desktop file the panel
// cares about.
type DesktopEntry struct {
	Name     string
	Comment  string
	Exec     string
	Icon     string
	Terminal bool
}

func loadDesktopEntry(path string) (*DesktopEntry, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error reading desktop entry %s: %w", path, err)
	}
	sec := f.Section("Desktop Entry")
	return &DesktopEntry{
		Name:     sec.Key("Name").String(),
		Comment:  sec.Key("Comment").String(),
		Exec:     sec.Key("Exec").String(),
		Icon:     sec.Key("Icon").String(),
		Terminal: sec.Key("Terminal").MustBool(false),
	}, nil
}

func (reg *Registry) findDesktopEntry(command string) *DesktopEntry {
	for _, dir := range reg.DesktopDirs {
		path := filepath.Join(dir, command+".desktop")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		entry, err := loadDesktopEntry(path)
		if err != nil {
			continue
		}
		return entry
	}
	return nil
}
