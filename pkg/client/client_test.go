// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
)

func setupDaemon(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv(panelbase.PanelDataHomeEnvVar, t.TempDir())
	cf := panelbase.ConnectFile{
		WebAddr: strings.TrimPrefix(server.URL, "http://"),
		WsAddr:  "127.0.0.1:0",
		Token:   "test-token",
	}
	if err := panelbase.WriteConnectFile(cf); err != nil {
		t.Fatalf("WriteConnectFile error: %v", err)
	}
	c, err := MakeClient()
	if err != nil {
		t.Fatalf("MakeClient error: %v", err)
	}
	return c
}

func TestCallService(t *testing.T) {
	c := setupDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/panel/service" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get(authkey.AuthKeyHeader) != "test-token" {
			t.Errorf("missing auth token")
		}
		var call map[string]any
		json.NewDecoder(r.Body).Decode(&call)
		if call["service"] != "theme" || call["method"] != "GetCurrentTheme" {
			t.Errorf("unexpected call: %v", call)
		}
		w.Write([]byte(`{"success":true,"data":"IceClearlooks/default.theme"}`))
	})
	var theme string
	err := c.CallServiceInto(context.Background(), &theme, "theme", "GetCurrentTheme")
	if err != nil {
		t.Fatalf("CallServiceInto error: %v", err)
	}
	if theme != "IceClearlooks/default.theme" {
		t.Errorf("theme = %q", theme)
	}
}

func TestCallServiceError(t *testing.T) {
	c := setupDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unknown option \"NoSuch\""}`))
	})
	_, err := c.CallService(context.Background(), "prefs", "GetOption", "NoSuch")
	if err == nil || !strings.Contains(err.Error(), "NoSuch") {
		t.Errorf("err = %v", err)
	}
}

func TestCallServiceHTTPError(t *testing.T) {
	c := setupDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "x-authkey header is invalid", http.StatusInternalServerError)
	})
	_, err := c.CallService(context.Background(), "panel", "GetVersion")
	if err == nil || !strings.Contains(err.Error(), "x-authkey") {
		t.Errorf("err = %v", err)
	}
}

func TestGetRaw(t *testing.T) {
	c := setupDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/panel/prefs/raw" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("scope") != "system" {
			t.Errorf("scope = %q", r.URL.Query().Get("scope"))
		}
		w.Write([]byte("# preferences\n"))
	})
	body, err := c.GetRaw(context.Background(), "/panel/prefs/raw", map[string][]string{"scope": {"system"}})
	if err != nil {
		t.Fatalf("GetRaw error: %v", err)
	}
	if string(body) != "# preferences\n" {
		t.Errorf("body = %q", body)
	}
}

func TestMakeClientNoDaemon(t *testing.T) {
	t.Setenv(panelbase.PanelDataHomeEnvVar, t.TempDir())
	_, err := MakeClient()
	if err == nil || !strings.Contains(err.Error(), "icewmcpd") {
		t.Errorf("err = %v", err)
	}
}
