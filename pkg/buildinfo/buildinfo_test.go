// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package buildinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFeed(t *testing.T) {
	latest, url, err := parseFeed("3.2.1,https://example.com/download\n")
	if err != nil {
		t.Fatalf("parseFeed error: %v", err)
	}
	if latest != "3.2.1" {
		t.Errorf("latest = %q, want 3.2.1", latest)
	}
	if url != "https://example.com/download" {
		t.Errorf("url = %q", url)
	}
}

func TestParseFeedVersionOnly(t *testing.T) {
	latest, url, err := parseFeed("4.0.0")
	if err != nil {
		t.Fatalf("parseFeed error: %v", err)
	}
	if latest != "4.0.0" || url != "" {
		t.Errorf("got (%q, %q)", latest, url)
	}
}

func TestParseFeedBad(t *testing.T) {
	if _, _, err := parseFeed(""); err == nil {
		t.Errorf("expected error for empty feed")
	}
	if _, _, err := parseFeed("not-a-version,x"); err == nil {
		t.Errorf("expected error for junk version")
	}
}

func TestCheckUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("99.0.0,https://example.com/get\n"))
	}))
	defer server.Close()
	result, err := CheckUpdate(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("CheckUpdate error: %v", err)
	}
	if !result.Newer {
		t.Errorf("expected 99.0.0 to be newer than %s", PanelVersion)
	}
	if result.Latest != "99.0.0" {
		t.Errorf("latest = %q", result.Latest)
	}
	if result.DownloadURL != "https://example.com/get" {
		t.Errorf("downloadurl = %q", result.DownloadURL)
	}
}

func TestCheckUpdateSameVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(PanelVersion))
	}))
	defer server.Close()
	result, err := CheckUpdate(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("CheckUpdate error: %v", err)
	}
	if result.Newer {
		t.Errorf("same version should not report newer")
	}
}

func TestCheckUpdateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()
	if _, err := CheckUpdate(context.Background(), server.URL); err == nil {
		t.Errorf("expected error for 404 feed")
	}
}

// The top-level README and NOTICE must state the same license this binary
// reports and credit the same authors.
func TestDocsConsistency(t *testing.T) {
	for _, name := range []string{"README.md", "NOTICE.md"} {
		barr, err := os.ReadFile(filepath.Join("..", "..", name))
		if err != nil {
			t.Fatalf("cannot read %s: %v", name, err)
		}
		doc := string(barr)
		if !strings.Contains(doc, License) {
			t.Errorf("%s does not state the %s license", name, License)
		}
		for _, author := range Authors {
			if !strings.Contains(doc, author) {
				t.Errorf("%s does not credit %s", name, author)
			}
		}
	}
}
