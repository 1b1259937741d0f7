// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package web

import (
	"fmt"
	"net"

	"github.com/icewmcp/icewmcp/pkg/authkey"
	"github.com/icewmcp/icewmcp/pkg/panelbase"
	"github.com/icewmcp/icewmcp/pkg/paneljwt"
)

// WriteConnectFile publishes the listener addresses and a fresh client
// token for local CLIs.  Called once both listeners are up.
func WriteConnectFile(webListener net.Listener, wsListener net.Listener) error {
	token, err := paneljwt.MakeClientToken(authkey.GetAuthKey(), "connectfile")
	if err != nil {
		return fmt.Errorf("cannot mint client token: %w", err)
	}
	cf := panelbase.ConnectFile{
		WebAddr: webListener.Addr().String(),
		WsAddr:  wsListener.Addr().String(),
		Token:   token,
	}
	err = panelbase.WriteConnectFile(cf)
	if err != nil {
		return err
	}
	return nil
}
