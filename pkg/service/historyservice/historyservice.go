// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package historyservice exposes the change log kept for every setting the
// panel writes.
package historyservice

import (
	"context"

	"github.com/icewmcp/icewmcp/pkg/history"
)

type HistoryService struct{}

// GetChanges returns recorded changes, newest first.  An empty module
// returns changes from every module; limit 0 uses the default.
func (hs *HistoryService) GetChanges(ctx context.Context, module string, limit int) ([]history.ChangeEntry, error) {
	return history.GetChanges(ctx, module, limit)
}

// PruneChanges deletes change log entries older than keepDays (0 uses the
// default retention) and returns how many were removed.
func (hs *HistoryService) PruneChanges(ctx context.Context, keepDays int) (int64, error) {
	return history.PruneChanges(ctx, keepDays)
}
