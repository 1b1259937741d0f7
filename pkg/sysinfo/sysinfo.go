// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package sysinfo assembles the system overview the panel shows: host and
// kernel identity, CPU and memory figures, the desktop session, and the
// printers CUPS knows about.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
	"gopkg.in/ini.v1"
)

const BytesPerGB = 1073741824

const DefaultOSReleasePath = "/etc/os-release"

type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platformversion,omitempty"`
	PrettyName      string `json:"prettyname,omitempty"`
	KernelVersion   string `json:"kernelversion,omitempty"`
	KernelArch      string `json:"kernelarch,omitempty"`
	UptimeSec       uint64 `json:"uptimesec"`
}

type CPUInfo struct {
	ModelName   string  `json:"modelname,omitempty"`
	Cores       int     `json:"cores"`
	UsedPercent float64 `json:"usedpercent"`
}

type MemoryInfo struct {
	TotalGB     float64 `json:"totalgb"`
	UsedGB      float64 `json:"usedgb"`
	AvailableGB float64 `json:"availablegb"`
	UsedPercent float64 `json:"usedpercent"`
}

type SessionInfo struct {
	Display        string `json:"display,omitempty"`
	SessionType    string `json:"sessiontype,omitempty"`
	CurrentDesktop string `json:"currentdesktop,omitempty"`
}

type Printer struct {
	Name    string `json:"name"`
	Device  string `json:"device"`
	Default bool   `json:"default,omitempty"`
}

// SystemReport is the full overview returned by Report.
type SystemReport struct {
	Host     HostInfo    `json:"host"`
	CPU      CPUInfo     `json:"cpu"`
	Memory   MemoryInfo  `json:"memory"`
	Session  SessionInfo `json:"session"`
	Printers []Printer   `json:"printers,omitempty"`
}

// CmdRunner runs a command and returns its combined output.
type CmdRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Collector gathers system information.  Run, LookPath, and OSReleasePath
// are settable for tests.
type Collector struct {
	Run           CmdRunner
	LookPath      func(file string) (string, error)
	OSReleasePath string
}

func NewCollector() *Collector {
	return &Collector{
		Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		LookPath:      exec.LookPath,
		OSReleasePath: DefaultOSReleasePath,
	}
}

// Report assembles the full system overview.  The probes are independent
// and run concurrently, each writing its own section.  Individual probe
// failures leave their section zeroed rather than failing the whole report.
func (c *Collector) Report(ctx context.Context) SystemReport {
	var report SystemReport
	var group errgroup.Group
	group.Go(func() error {
		if hostInfo, err := c.Host(ctx); err == nil {
			report.Host = hostInfo
		}
		return nil
	})
	group.Go(func() error {
		if cpuInfo, err := c.CPU(ctx); err == nil {
			report.CPU = cpuInfo
		}
		return nil
	})
	group.Go(func() error {
		if memInfo, err := c.Memory(ctx); err == nil {
			report.Memory = memInfo
		}
		return nil
	})
	group.Go(func() error {
		if printers, err := c.Printers(ctx); err == nil {
			report.Printers = printers
		}
		return nil
	})
	report.Session = Session()
	group.Wait()
	return report
}

func (c *Collector) Host(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("error reading host info: %w", err)
	}
	hostInfo := HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		UptimeSec:       info.Uptime,
	}
	hostInfo.PrettyName = c.osPrettyName()
	return hostInfo, nil
}

func (c *Collector) osPrettyName() string {
	path := c.OSReleasePath
	if path == "" {
		path = DefaultOSReleasePath
	}
	f, err := ini.Load(path)
	if err != nil {
		return ""
	}
	sec := f.Section("")
	if name := sec.Key("PRETTY_NAME").String(); name != "" {
		return name
	}
	return sec.Key("NAME").String()
}

func (c *Collector) CPU(ctx context.Context) (CPUInfo, error) {
	var cpuInfo CPUInfo
	counts, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("error counting cpus: %w", err)
	}
	cpuInfo.Cores = counts
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		cpuInfo.ModelName = infos[0].ModelName
	}
	if percentArr, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percentArr) > 0 {
		cpuInfo.UsedPercent = percentArr[0]
	}
	return cpuInfo, nil
}

func (c *Collector) Memory(ctx context.Context) (MemoryInfo, error) {
	memData, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("error reading memory info: %w", err)
	}
	return MemoryInfo{
		TotalGB:     float64(memData.Total) / BytesPerGB,
		UsedGB:      float64(memData.Used) / BytesPerGB,
		AvailableGB: float64(memData.Available) / BytesPerGB,
		UsedPercent: memData.UsedPercent,
	}, nil
}

// Session reports the X session environment the daemon is running in.
func Session() SessionInfo {
	return SessionInfo{
		Display:        os.Getenv("DISPLAY"),
		SessionType:    os.Getenv("XDG_SESSION_TYPE"),
		CurrentDesktop: os.Getenv("XDG_CURRENT_DESKTOP"),
	}
}

var lpstatDeviceRe = regexp.MustCompile(`^device for ([^:]+):\s*(.*)$`)
var lpstatDefaultRe = regexp.MustCompile(`^system default destination:\s*(\S+)`)

// Printers lists CUPS print queues via lpstat.  A missing lpstat binary
// means no CUPS installation and yields an empty list, not an error.
func (c *Collector) Printers(ctx context.Context) ([]Printer, error) {
	if c.LookPath != nil {
		if _, err := c.LookPath("lpstat"); err != nil {
			return nil, nil
		}
	}
	out, err := c.Run(ctx, "lpstat", "-v")
	if err != nil {
		// lpstat exits nonzero when no printers are configured
		return nil, nil
	}
	printers := parseLpstatDevices(string(out))
	if len(printers) == 0 {
		return nil, nil
	}
	if out, err := c.Run(ctx, "lpstat", "-d"); err == nil {
		if def := parseLpstatDefault(string(out)); def != "" {
			for idx := range printers {
				if printers[idx].Name == def {
					printers[idx].Default = true
				}
			}
		}
	}
	return printers, nil
}

func parseLpstatDevices(output string) []Printer {
	var printers []Printer
	for _, line := range strings.Split(output, "\n") {
		m := lpstatDeviceRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		printers = append(printers, Printer{Name: strings.TrimSpace(m[1]), Device: strings.TrimSpace(m[2])})
	}
	return printers
}

func parseLpstatDefault(output string) string {
	for _, line := range strings.Split(output, "\n") {
		m := lpstatDefaultRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			return m[1]
		}
	}
	return ""
}
