// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package client is the CLI side of the panel API.  It reads the connect
// file the daemon writes and calls services over loopback HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
)

// a bit longer than the server's write timeout so the server side wins
const httpCallTimeout = 25 * time.Second

type Client struct {
	connect    *panelbase.ConnectFile
	httpClient *http.Client
}

// serviceResponse mirrors the service dispatch envelope.
type serviceResponse struct {
	Success bool            `json:"success,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type serviceCall struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

// MakeClient reads the connect file.  Fails when no daemon has written one.
func MakeClient() (*Client, error) {
	cf, err := panelbase.ReadConnectFile()
	if err != nil {
		return nil, err
	}
	return &Client{
		connect:    cf,
		httpClient: &http.Client{Timeout: httpCallTimeout},
	}, nil
}

func (c *Client) WebAddr() string {
	return c.connect.WebAddr
}

func (c *Client) WsAddr() string {
	return c.connect.WsAddr
}

// CallService invokes service.method on the daemon and returns the raw
// data payload.  A service-level error comes back as a Go error.
func (c *Client) CallService(ctx context.Context, service string, method string, args ...any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	callBytes, err := json.Marshal(serviceCall{Service: service, Method: method, Args: args})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal service call: %w", err)
	}
	callURL := "http://" + c.connect.WebAddr + "/panel/service"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(callBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authkey.AuthKeyHeader, c.connect.Token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach icewmcpd at %s: %w", c.connect.WebAddr, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icewmcpd returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	var svcResp serviceResponse
	if err := json.Unmarshal(body, &svcResp); err != nil {
		return nil, fmt.Errorf("invalid response from icewmcpd: %w", err)
	}
	if svcResp.Error != "" {
		return nil, fmt.Errorf("%s", svcResp.Error)
	}
	return svcResp.Data, nil
}

// CallServiceInto unmarshals the service result into out (out may be nil
// for calls without a data return).
func (c *Client) CallServiceInto(ctx context.Context, out any, service string, method string, args ...any) error {
	data, err := c.CallService(ctx, service, method, args...)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cannot decode %s.%s result: %w", service, method, err)
	}
	return nil
}

// GetRaw fetches a non-service endpoint like /panel/prefs/raw.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	getURL := "http://" + c.connect.WebAddr + path
	if len(query) > 0 {
		getURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(authkey.AuthKeyHeader, c.connect.Token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach icewmcpd at %s: %w", c.connect.WebAddr, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icewmcpd returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}
