// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the account record returned by GET /users/me and embedded in the
// login/registration responses.
type User struct {
	// ID is the server-assigned identifier of the account.
	ID int64 `json:"id"`

	// Email is the unique login of the account.
	Email string `json:"email"`

	// Name is the display name. May be empty.
	Name string `json:"name"`

	// Credits is the balance reported by the server. Fractional values are
	// floored on decode, see [CreditBalance].
	Credits CreditBalance `json:"credits"`

	// Plan is the subscription tier (free, basic, pro, enterprise).
	Plan string `json:"plan,omitempty"`

	// APIKey is present only when the user generated one.
	APIKey *string `json:"api_key,omitempty"`

	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active,omitempty"`

	// CreatedAt is the account creation time.
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// Credentials carries login or registration input.
//
// Password is never persisted or logged; Name is used only by registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse is the body of POST /users/login and POST /users/register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// APIKeyResponse is the body of POST /users/api-key/generate.
type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}

// Session is the authenticated identity held by the client for the duration
// of a login. It is owned exclusively by the session manager.
type Session struct {
	UserID        int64
	Email         string
	DisplayName   string
	CreditBalance CreditBalance
	Plan          string
	APIKey        string

	// TokenExpiresAt is the "exp" claim of the bearer token when the token is
	// a JWT. Informational only; the server stays the authority.
	TokenExpiresAt *time.Time
}

// NewSession builds a [Session] from the server user record.
func NewSession(u User) Session {
	s := Session{
		UserID:        u.ID,
		Email:         u.Email,
		DisplayName:   u.Name,
		CreditBalance: u.Credits,
		Plan:          u.Plan,
	}
	if s.DisplayName == "" {
		s.DisplayName = displayNameFromEmail(u.Email)
	}
	if u.APIKey != nil {
		s.APIKey = *u.APIKey
	}
	return s
}

func displayNameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
