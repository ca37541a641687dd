// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SessionState is the lifecycle of the client session.
//
// Unknown moves to Anonymous when no token is stored, or to Resolving while
// the stored token is checked; Resolving ends in Authenticated or Anonymous.
type SessionState int

const (
	SessionUnknown SessionState = iota
	SessionResolving
	SessionAuthenticated
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionResolving:
		return "resolving"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Terminal reports whether resolution has finished.
func (s SessionState) Terminal() bool {
	return s == SessionAuthenticated || s == SessionAnonymous
}
