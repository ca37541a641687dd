// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditBalance_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    CreditBalance
		wantErr bool
	}{
		{name: "integer", raw: `120`, want: 120},
		{name: "fraction floors", raw: `99.9`, want: 99},
		{name: "negative clamps", raw: `-3.5`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "string", raw: `"12"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp CreditsResponse
			err := json.Unmarshal([]byte(`{"credits":`+tt.raw+`}`), &resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Credits)
		})
	}
}

func TestCreditBalanceFromFloat(t *testing.T) {
	assert.Equal(t, CreditBalance(0), CreditBalanceFromFloat(math.NaN()))
	assert.Equal(t, CreditBalance(0), CreditBalanceFromFloat(0.7))
	assert.Equal(t, CreditBalance(2), CreditBalanceFromFloat(2.999))
}

func TestCreditBalance_Sub(t *testing.T) {
	tests := []struct {
		balance CreditBalance
		amount  int64
		want    CreditBalance
	}{
		{balance: 10, amount: 3, want: 7},
		{balance: 10, amount: 10, want: 0},
		{balance: 2, amount: 5, want: 0},
		{balance: 10, amount: 0, want: 10},
		{balance: 10, amount: -4, want: 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.balance.Sub(tt.amount), "%d - %d", tt.balance, tt.amount)
	}
}
