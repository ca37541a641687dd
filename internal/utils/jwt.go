// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidTokenClaims is returned when a token parses but its claims are
// not a JSON object.
var ErrInvalidTokenClaims = errors.New("invalid token claims")

// TokenClaims holds the claims the client cares about. The client never
// holds the signing key, so nothing here is verified; the values are
// informational only.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

// ParseTokenClaims decodes a bearer token without verifying its signature.
//
// Opaque (non-JWT) tokens are legitimate for the service, so callers should
// treat an error as "no claims available" rather than as an auth failure.
//
// Example usage:
//
//	claims, err := utils.ParseTokenClaims(token)
//	if err == nil && claims.ExpiresAt != nil {
//	    session.TokenExpiresAt = claims.ExpiresAt
//	}
func ParseTokenClaims(tokenString string) (TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(tokenString), jwt.MapClaims{})
	if err != nil {
		return TokenClaims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidTokenClaims
	}

	var result TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		result.Subject = sub
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenClaims{}, fmt.Errorf("parse token expiry: %w", err)
	}
	if exp != nil {
		t := exp.Time
		result.ExpiresAt = &t
	}

	return result, nil
}
