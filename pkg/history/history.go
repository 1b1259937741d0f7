// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package history persists the panel's run-dialog MRU list and a log of
// configuration changes in a small sqlite db.  The run list mirrors the
// classic gtkRun behavior: most recently used first, capped, seeded with
// xterm on first start, and imported from the old dotfile when present.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/panelps"
)

const DefaultRunHistoryLimit = 20
const DefaultSeedCommand = "xterm"

const legacyRunFileName = ".icewmcp_gtkruncmd"
const legacyRunHeader = "# IceWMControlPanel gtk.Run file: DO NOT EDIT!"

type RunEntry struct {
	Cmd       string `json:"cmd"`
	LastRunTs int64  `json:"lastrunts"`
	RunCount  int    `json:"runcount"`
}

type ChangeEntry struct {
	Id      int64  `json:"id"`
	Ts      int64  `json:"ts"`
	Module  string `json:"module"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
}

// seedRunHistory runs once at init.  An empty run_history table first tries
// the legacy gtkRun dotfile, then falls back to the builtin seed command.
func seedRunHistory(ctx context.Context) error {
	count, err := WithTxRtn(ctx, func(tx *TxWrap) (int, error) {
		return tx.GetInt(`SELECT count(*) FROM run_history`), nil
	})
	if err != nil {
		return fmt.Errorf("counting run history: %w", err)
	}
	if count > 0 {
		return nil
	}
	imported, err := importLegacyRunFile(ctx)
	if err != nil {
		return err
	}
	if imported > 0 {
		return nil
	}
	return WithTx(ctx, func(tx *TxWrap) error {
		tx.Exec(`INSERT INTO run_history (cmd, lastrunts, runcount) VALUES (?, ?, 0)`, DefaultSeedCommand, time.Now().UnixMilli())
		return nil
	})
}

// importLegacyRunFile reads the pre-daemon ~/.icewmcp_gtkruncmd MRU file.
// The file stores commands oldest first under a fixed header line; anything
// else is not ours and is left alone.
func importLegacyRunFile(ctx context.Context) (int, error) {
	legacyPath := filepath.Join(panelbase.GetHomeDir(), legacyRunFileName)
	barr, err := os.ReadFile(legacyPath)
	if err != nil {
		return 0, nil
	}
	lines := strings.Split(string(barr), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != legacyRunHeader {
		return 0, nil
	}
	var cmds []string
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmds = append(cmds, line)
	}
	if len(cmds) == 0 {
		return 0, nil
	}
	// oldest first in the file, so increasing timestamps keep MRU order
	baseTs := time.Now().UnixMilli() - int64(len(cmds))*1000
	err = WithTx(ctx, func(tx *TxWrap) error {
		for idx, cmd := range cmds {
			tx.Exec(`INSERT INTO run_history (cmd, lastrunts, runcount) VALUES (?, ?, 1)
			         ON CONFLICT(cmd) DO UPDATE SET lastrunts = excluded.lastrunts`, cmd, baseTs+int64(idx)*1000)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", legacyRunFileName, err)
	}
	return len(cmds), nil
}

// RecordRun moves cmd to the front of the MRU list, creating it if needed,
// and prunes the list to limit entries.
func RecordRun(ctx context.Context, cmd string, limit int) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return fmt.Errorf("empty command")
	}
	if limit <= 0 {
		limit = DefaultRunHistoryLimit
	}
	err := WithTx(ctx, func(tx *TxWrap) error {
		tx.Exec(`INSERT INTO run_history (cmd, lastrunts, runcount) VALUES (?, ?, 1)
		         ON CONFLICT(cmd) DO UPDATE SET lastrunts = excluded.lastrunts, runcount = runcount + 1`, cmd, time.Now().UnixMilli())
		tx.Exec(`DELETE FROM run_history WHERE cmd NOT IN
		         (SELECT cmd FROM run_history ORDER BY lastrunts DESC LIMIT ?)`, limit)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	publishHistoryUpdated("run")
	return nil
}

// GetRecentCommands returns the run MRU list, most recent first.
func GetRecentCommands(ctx context.Context, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = DefaultRunHistoryLimit
	}
	return WithTxRtn(ctx, func(tx *TxWrap) ([]RunEntry, error) {
		var rows []RunEntry
		tx.Select(&rows, `SELECT cmd, lastrunts, runcount FROM run_history ORDER BY lastrunts DESC LIMIT ?`, limit)
		return rows, nil
	})
}

// RemoveCommand deletes one command from the MRU list.
func RemoveCommand(ctx context.Context, cmd string) error {
	err := WithTx(ctx, func(tx *TxWrap) error {
		tx.Exec(`DELETE FROM run_history WHERE cmd = ?`, cmd)
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing command: %w", err)
	}
	publishHistoryUpdated("run")
	return nil
}

// ClearRunHistory empties the MRU list.
func ClearRunHistory(ctx context.Context) error {
	err := WithTx(ctx, func(tx *TxWrap) error {
		tx.Exec(`DELETE FROM run_history`)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing run history: %w", err)
	}
	publishHistoryUpdated("run")
	return nil
}

// RecordChange appends one entry to the change log.  detail may be nil, a
// string, or any json-marshalable value.
func RecordChange(ctx context.Context, module string, summary string, detail any) error {
	if module == "" || summary == "" {
		return fmt.Errorf("module and summary are required")
	}
	detailStr := ""
	switch v := detail.(type) {
	case nil:
	case string:
		detailStr = v
	default:
		barr, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling change detail (%T): %w", detail, err)
		}
		detailStr = string(barr)
	}
	err := WithTx(ctx, func(tx *TxWrap) error {
		tx.Exec(`INSERT INTO change_log (ts, module, summary, detail) VALUES (?, ?, ?, ?)`,
			time.Now().UnixMilli(), module, summary, detailStr)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording change: %w", err)
	}
	publishHistoryUpdated("change")
	return nil
}

// GetChanges returns change-log entries, newest first, optionally filtered
// by module.
func GetChanges(ctx context.Context, module string, limit int) ([]ChangeEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return WithTxRtn(ctx, func(tx *TxWrap) ([]ChangeEntry, error) {
		var rows []ChangeEntry
		if module != "" {
			tx.Select(&rows, `SELECT id, ts, module, summary, detail FROM change_log WHERE module = ? ORDER BY id DESC LIMIT ?`, module, limit)
		} else {
			tx.Select(&rows, `SELECT id, ts, module, summary, detail FROM change_log ORDER BY id DESC LIMIT ?`, limit)
		}
		return rows, nil
	})
}

// PruneChanges drops change-log entries older than keepDays and returns the
// number removed.
func PruneChanges(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		keepDays = 90
	}
	cutoffTs := time.Now().AddDate(0, 0, -keepDays).UnixMilli()
	return WithTxRtn(ctx, func(tx *TxWrap) (int64, error) {
		result := tx.Exec(`DELETE FROM change_log WHERE ts < ?`, cutoffTs)
		if result == nil {
			return 0, nil
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return 0, nil
		}
		return removed, nil
	})
}

func publishHistoryUpdated(kind string) {
	panelps.Broker.Publish(panelps.PanelEvent{
		Event: panelps.Event_HistoryUpdated,
		Data:  map[string]any{"kind": kind},
	})
}
