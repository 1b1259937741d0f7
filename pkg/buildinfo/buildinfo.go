// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package buildinfo carries the panel version stamped at link time and the
// update check against the published VERSION feed.
package buildinfo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// set by main-icewmcpd.go / main-icewmcp.go
var PanelVersion = "0.0.0"
var BuildTime = "0"

const License = "GPL-2.0-or-later"

// Authors of the original IceWM Control Panel this tool descends from.
var Authors = []string{
	"Erica Andrews",
	"David Mortensen",
	"Dirk Moebius",
	"Mike Hostler",
}

// DefaultUpdateFeed returns one line "version,downloadurl".
const DefaultUpdateFeed = "https://raw.githubusercontent.com/icewmcp/icewmcp/main/VERSION"

const updateCheckTimeout = 10 * time.Second
const maxFeedSize = 4096

type UpdateCheckResult struct {
	Current     string `json:"current"`
	Latest      string `json:"latest"`
	DownloadURL string `json:"downloadurl,omitempty"`
	Newer       bool   `json:"newer"`
}

// normalizeVersion gives semver.Compare the leading "v" it insists on.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func parseFeed(body string) (string, string, error) {
	line := strings.TrimSpace(body)
	if idx := strings.IndexByte(line, '\n'); idx != -1 {
		line = strings.TrimSpace(line[:idx])
	}
	if line == "" {
		return "", "", fmt.Errorf("empty version feed")
	}
	parts := strings.SplitN(line, ",", 2)
	latest := strings.TrimSpace(parts[0])
	if !semver.IsValid(normalizeVersion(latest)) {
		return "", "", fmt.Errorf("invalid version %q in feed", latest)
	}
	downloadURL := ""
	if len(parts) == 2 {
		downloadURL = strings.TrimSpace(parts[1])
	}
	return latest, downloadURL, nil
}

// CheckUpdate fetches feedURL (the default feed when empty) and compares
// the advertised version against the running one.
func CheckUpdate(ctx context.Context, feedURL string) (*UpdateCheckResult, error) {
	if feedURL == "" {
		feedURL = DefaultUpdateFeed
	}
	reqCtx, cancelFn := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancelFn()
	req, err := http.NewRequestWithContext(reqCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bad update feed url: %w", err)
	}
	req.Header.Set("User-Agent", "icewmcp/"+PanelVersion)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch update feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update feed returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("cannot read update feed: %w", err)
	}
	latest, downloadURL, err := parseFeed(string(body))
	if err != nil {
		return nil, err
	}
	return &UpdateCheckResult{
		Current:     PanelVersion,
		Latest:      latest,
		DownloadURL: downloadURL,
		Newer:       semver.Compare(normalizeVersion(latest), normalizeVersion(PanelVersion)) > 0,
	}, nil
}
