// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *ClientConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*ClientConfig) {}},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty audio dir", mutate: func(c *ClientConfig) { c.Storage.Audio.Dir = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "bad address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "http://" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "negative rps", mutate: func(c *ClientConfig) { c.Adapter.RequestsPerSecond = -1 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "multiplier below one", mutate: func(c *ClientConfig) { c.Workers.HealthBackoffMultiplier = 0.5 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "cap below initial", mutate: func(c *ClientConfig) { c.Workers.HealthMaxDelay = c.Workers.HealthInitialDelay / 2 }, wantErr: ErrInvalidWorkerConfigs},
		{name: "zero error ttl", mutate: func(c *ClientConfig) { c.App.ErrorTTL = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "speed too high", mutate: func(c *ClientConfig) { c.Synthesis.DefaultSpeed = 2.5 }, wantErr: ErrInvalidSynthesisConfigs},
		{name: "zero task poll interval", mutate: func(c *ClientConfig) { c.Synthesis.TaskPollInterval = 0 }, wantErr: ErrInvalidSynthesisConfigs},
		{name: "negative task timeout", mutate: func(c *ClientConfig) { c.Synthesis.TaskTimeout = -1 }, wantErr: ErrInvalidSynthesisConfigs},
		{name: "no task timeout", mutate: func(c *ClientConfig) { c.Synthesis.TaskTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8000", want: "http://localhost:8000"},
		{in: " https://api.example.com/api/v1/ ", want: "https://api.example.com/api/v1"},
		{in: "http://10.0.0.1:8000/api/v1", want: "http://10.0.0.1:8000/api/v1"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
