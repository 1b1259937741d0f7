// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/paneljwt"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

const testSecret = "web-test-secret"

func setupAuth(t *testing.T) string {
	t.Helper()
	t.Setenv(authkey.AuthKeyEnv, testSecret)
	if err := authkey.SetAuthKeyFromEnv(); err != nil {
		t.Fatalf("SetAuthKeyFromEnv error: %v", err)
	}
	token, err := paneljwt.MakeClientToken(testSecret, "test")
	if err != nil {
		t.Fatalf("MakeClientToken error: %v", err)
	}
	return token
}

func TestListDocs(t *testing.T) {
	docs := ListDocs()
	if !utilfn.ContainsStr(docs, "prefs") || !utilfn.ContainsStr(docs, "keys") {
		t.Errorf("docs list missing expected entries: %v", docs)
	}
}

func TestReadDoc(t *testing.T) {
	barr, err := ReadDoc("prefs")
	if err != nil {
		t.Fatalf("ReadDoc error: %v", err)
	}
	if !strings.Contains(string(barr), "preferences") {
		t.Errorf("prefs doc looks wrong")
	}
	if _, err := ReadDoc("nosuchdoc"); err == nil {
		t.Errorf("expected error for unknown doc")
	}
	if _, err := ReadDoc("../etc/passwd"); err == nil {
		t.Errorf("expected error for traversal name")
	}
}

func TestWebFnWrapAuth(t *testing.T) {
	token := setupAuth(t)
	called := false
	handler := WebFnWrap(WebFnOpts{}, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/panel/doc?name=prefs", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if called {
		t.Errorf("handler ran without auth header")
	}
	if rec.Code == http.StatusOK {
		t.Errorf("expected non-200 without auth, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/panel/doc?name=prefs", nil)
	req.Header.Set(authkey.AuthKeyHeader, token)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if !called {
		t.Errorf("handler did not run with valid token")
	}
	if got := rec.Header().Get(CacheControlHeaderKey); got != CacheControlHeaderNoCache {
		t.Errorf("cache-control = %q", got)
	}
}

func TestWebFnWrapBadToken(t *testing.T) {
	setupAuth(t)
	handler := WebFnWrap(WebFnOpts{}, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler ran with invalid token")
	})
	req := httptest.NewRequest(http.MethodGet, "/panel/doc", nil)
	req.Header.Set(authkey.AuthKeyHeader, "garbage-token")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code == http.StatusOK {
		t.Errorf("expected failure status for bad token")
	}
}

func TestHandleServiceEnvelope(t *testing.T) {
	token := setupAuth(t)
	handler := WebFnWrap(WebFnOpts{JsonErrors: true}, handleService)
	body := `{"service":"nosuchservice","method":"Nope","args":[]}`
	req := httptest.NewRequest(http.MethodPost, "/panel/service", strings.NewReader(body))
	req.Header.Set(authkey.AuthKeyHeader, token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var rtn map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rtn); err != nil {
		t.Fatalf("bad json response: %v", err)
	}
	errStr, _ := rtn["error"].(string)
	if !strings.Contains(errStr, "invalid service") {
		t.Errorf("error = %q", errStr)
	}
}

func TestHandleServiceMethodNotAllowed(t *testing.T) {
	token := setupAuth(t)
	handler := WebFnWrap(WebFnOpts{JsonErrors: true}, handleService)
	req := httptest.NewRequest(http.MethodGet, "/panel/service", nil)
	req.Header.Set(authkey.AuthKeyHeader, token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestParseSubscription(t *testing.T) {
	sub, err := parseSubscription(map[string]any{
		"type":   "sub",
		"event":  "prefs:updated",
		"scopes": []any{"user"},
	})
	if err != nil {
		t.Fatalf("parseSubscription error: %v", err)
	}
	if sub.Event != "prefs:updated" {
		t.Errorf("event = %q", sub.Event)
	}
	if len(sub.Scopes) != 1 || sub.Scopes[0] != "user" {
		t.Errorf("scopes = %v", sub.Scopes)
	}
	if _, err := parseSubscription(map[string]any{"type": "sub"}); err == nil {
		t.Errorf("expected error for missing event")
	}
}
