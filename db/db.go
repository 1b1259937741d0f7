// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package db

import "embed"

//go:embed migrations-history/*.sql
var HistoryMigrationFS embed.FS
