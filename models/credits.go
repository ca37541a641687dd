// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// CreditBalance is a non-negative whole number of credits.
//
// The server reports credits as a float; decoding floors the value and clamps
// negatives to zero so the client never displays fractional or negative
// balances.
type CreditBalance int64

// UnmarshalJSON implements [json.Unmarshaler].
func (c *CreditBalance) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode credit balance: %w", err)
	}
	*c = CreditBalanceFromFloat(f)
	return nil
}

// CreditBalanceFromFloat floors f and clamps it at zero.
func CreditBalanceFromFloat(f float64) CreditBalance {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	return CreditBalance(math.Floor(f))
}

// Sub returns max(0, c-amount).
func (c CreditBalance) Sub(amount int64) CreditBalance {
	if amount <= 0 {
		return c
	}
	if int64(c) <= amount {
		return 0
	}
	return CreditBalance(int64(c) - amount)
}

// CreditsResponse is the body of GET /users/credits.
type CreditsResponse struct {
	UserID           int64         `json:"user_id,omitempty"`
	Credits          CreditBalance `json:"credits"`
	Plan             string        `json:"plan,omitempty"`
	CreditsPerSecond float64       `json:"credits_per_second,omitempty"`
}

// UsageStats is the body of GET /users/{id}/usage.
type UsageStats struct {
	UserID             int64   `json:"user_id"`
	TotalClones        int     `json:"total_clones"`
	TotalConversions   int     `json:"total_conversions"`
	TotalCreditsUsed   float64 `json:"total_credits_used"`
	TotalAudioSeconds  float64 `json:"total_audio_seconds"`
	VoiceProfilesCount int     `json:"voice_profiles_count"`
}

// CreditTransaction is one entry of GET /users/{id}/transactions. Charges
// carry a negative CreditsUsed, top-ups a positive one.
type CreditTransaction struct {
	ID           int64     `json:"id"`
	Operation    string    `json:"operation"`
	CreditsUsed  float64   `json:"credits_used"`
	BalanceAfter float64   `json:"balance_after"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// IsCharge reports whether the transaction consumed credits.
func (t CreditTransaction) IsCharge() bool {
	return t.CreditsUsed < 0
}
