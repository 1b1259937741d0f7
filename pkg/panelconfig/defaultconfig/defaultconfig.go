// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package defaultconfig

import "embed"

//go:embed *.json
var ConfigFS embed.FS
