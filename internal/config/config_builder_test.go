// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a zero config does not pass validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_DefaultsAreValid verifies that the built-in defaults validate.
func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceOverrides verifies that later non-zero fields win and
// zero fields keep the earlier value.
func TestBuild_LaterSourceOverrides(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&ClientConfig{Adapter: Adapter{HTTPAddress: "http://env:8000/api/v1"}},
		&ClientConfig{Adapter: Adapter{HTTPAddress: "http://flags:8000/api/v1"}, App: App{ErrorTTL: time.Second}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://flags:8000/api/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Second, cfg.App.ErrorTTL)
	assert.Equal(t, 3*time.Second, cfg.App.AuthSafetyTimeout)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env-host:8000/api/v1")
	t.Setenv("APP_ERROR_TTL", "7s")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://env-host:8000/api/v1", b.configs[0].Adapter.HTTPAddress)
	assert.Equal(t, 7*time.Second, b.configs[0].App.ErrorTTL)
}

// TestWithEnv_SetsErrorOnBadValue verifies that an unparsable value is
// recorded in b.err.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("APP_ERROR_TTL", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsParsedConfig verifies the fluent interface and parsing.
func TestWithFlags_AppendsParsedConfig(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-a", "localhost:9000"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:9000", b.configs[0].Adapter.HTTPAddress)
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies that unknown flags fail.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "http://json:8000/api/v1"
	payload.Synthesis.DefaultEmotion = "calm"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "http://json:8000/api/v1", b.configs[1].Adapter.HTTPAddress)
	assert.Equal(t, "calm", b.configs[1].Synthesis.DefaultEmotion)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.Log.Level = "first"
	last := StructuredJSONConfig{}
	last.Log.Level = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&ClientConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&ClientConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].Log.Level)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

// TestGetClientConfig_PriorityOrder verifies defaults < env < flags < JSON.
func TestGetClientConfig_PriorityOrder(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Storage.DB.DSN = "json.db"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("STORAGE_DB_DSN", "env.db")
	t.Setenv("ADAPTER_ADDRESS", "http://env:8000/api/v1")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := GetClientConfig([]string{"-a", "http://flags:8000/api/v1", "-d", "flags.db", "-c", path})

	require.NoError(t, err)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "http://flags:8000/api/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 1.5, cfg.Workers.HealthBackoffMultiplier)
}
