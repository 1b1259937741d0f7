// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package panelbase

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// AcquirePanelLock ensures only one icewmcpd instance runs per data dir.
func AcquirePanelLock() (FDLock, error) {
	dataDir := GetPanelDataDir()
	lockFileName := filepath.Join(dataDir, PanelLockFile)
	fd, err := os.OpenFile(lockFileName, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("error opening lock file: %w", err)
	}
	err = unix.Flock(int(fd.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("error acquiring lock: %w", err)
	}
	return fd, nil
}
