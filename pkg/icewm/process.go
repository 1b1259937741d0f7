// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

var ErrNotRunning = errors.New("icewm is not running")

var iceWMProcNames = []string{"icewm", "icewm-session"}

// FindProcess locates the running icewm (or icewm-session) process.
func FindProcess(ctx context.Context) (*process.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list processes: %w", err)
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if utilfn.ContainsStr(iceWMProcNames, name) {
			return p, nil
		}
	}
	return nil, ErrNotRunning
}

// Restart sends SIGHUP, which makes icewm re-read its configuration.
func Restart(ctx context.Context) error {
	p, err := FindProcess(ctx)
	if err != nil {
		return err
	}
	err = p.SendSignalWithContext(ctx, syscall.SIGHUP)
	if err != nil {
		return fmt.Errorf("cannot signal icewm (pid %d): %w", p.Pid, err)
	}
	return nil
}

// InSession reports whether the current desktop session is IceWM.
func InSession(ctx context.Context) bool {
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	if strings.Contains(desktop, "icewm") {
		return true
	}
	_, err := FindProcess(ctx)
	return err == nil
}

// Version runs "icewm --version" and returns the version string.
func Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "icewm", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("cannot run icewm --version: %w", err)
	}
	line := utilfn.GetFirstLine(strings.TrimSpace(string(out)))
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		return fields[1], nil
	}
	return line, nil
}
