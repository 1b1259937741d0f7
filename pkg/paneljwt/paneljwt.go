// Copyright 2025, The IceWMCP Authors
// SPDX-License-Identifier: GPL-2.0-or-later

// Package paneljwt mints and validates the bearer tokens written to the
// connect file. Tokens are HS256-signed with the daemon's auth key, so any
// process that can read the connect file (mode 0600) can talk to the daemon.
package paneljwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	IssuerPanel = "icewmcpd"

	DefaultTokenLifetime = 30 * 24 * time.Hour
)

type PanelClaims struct {
	jwt.RegisteredClaims
	ClientId string `json:"clientid,omitempty"`
}

func MakeClientToken(secret string, clientId string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("auth key not set")
	}
	claims := &PanelClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    IssuerPanel,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(DefaultTokenLifetime)),
		},
		ClientId: clientId,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return tokenStr, nil
}

func ValidateAndExtract(tokenStr string, secret string) (*PanelClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth key not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, &PanelClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(IssuerPanel), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := token.Claims.(*PanelClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func ValidateClientToken(tokenStr string, secret string) error {
	_, err := ValidateAndExtract(tokenStr, secret)
	return err
}
