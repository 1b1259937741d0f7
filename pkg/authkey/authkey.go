// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

package authkey

import (
	"fmt"
	"net/http"
	"os"

	"github.com/icewmcp/icewmcp/pkg/paneljwt"
	"github.com/icewmcp/icewmcp/pkg/util/utilfn"
)

var authkey string

const AuthKeyEnv = "ICEWMCP_AUTH_KEY"
const AuthKeyHeader = "X-AuthKey"

// ValidateIncomingRequest checks the X-AuthKey header, which carries a token
// minted from the connect file (see paneljwt).
func ValidateIncomingRequest(r *http.Request) error {
	reqToken := r.Header.Get(AuthKeyHeader)
	if reqToken == "" {
		return fmt.Errorf("no x-authkey header")
	}
	err := paneljwt.ValidateClientToken(reqToken, GetAuthKey())
	if err != nil {
		return fmt.Errorf("x-authkey header is invalid: %w", err)
	}
	return nil
}

// SetAuthKeyFromEnv reads ICEWMCP_AUTH_KEY (clearing it from the environment),
// or provisions a random key when the daemon runs standalone.
func SetAuthKeyFromEnv() error {
	authkey = os.Getenv(AuthKeyEnv)
	os.Setenv(AuthKeyEnv, "")
	if authkey != "" {
		return nil
	}
	genKey, err := utilfn.RandomHexString(64)
	if err != nil {
		return fmt.Errorf("cannot generate auth key: %w", err)
	}
	authkey = genKey
	return nil
}

func GetAuthKey() string {
	return authkey
}
