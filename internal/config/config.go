// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the voxclone
// client. It is populated by merging defaults, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// App holds coordinator-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the service address and outbound request limits.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local token database and the audio directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds the connectivity monitor schedule.
	Workers Workers `envPrefix:"WORKERS_"`

	// Synthesis holds per-request defaults for generation.
	Synthesis Synthesis `envPrefix:"SYNTHESIS_"`

	// Log holds the log file location and level.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from defaults, environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds settings of the coordinator and the session manager.
type App struct {
	// ErrorTTL is how long the global error stays visible.
	// Env: APP_ERROR_TTL
	ErrorTTL time.Duration `env:"ERROR_TTL"`

	// AuthSafetyTimeout bounds startup session resolution. When it fires the
	// session settles as anonymous and the stored token is kept.
	// Env: APP_AUTH_SAFETY_TIMEOUT
	AuthSafetyTimeout time.Duration `env:"AUTH_SAFETY_TIMEOUT"`
}

// Adapter holds network settings used by the client transport layer.
type Adapter struct {
	// HTTPAddress is the service base URL including the API prefix
	// (e.g. "http://localhost:8000/api/v1"). A missing scheme means http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default per-request timeout.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LongRequestTimeout applies to uploads and synthesis.
	// Env: ADAPTER_LONG_REQUEST_TIMEOUT
	LongRequestTimeout time.Duration `env:"LONG_REQUEST_TIMEOUT"`

	// RequestsPerSecond limits outbound requests. Zero disables limiting.
	// Env: ADAPTER_RPS
	RequestsPerSecond float64 `env:"RPS"`

	// Burst is the limiter bucket size; it defaults to 1 when limiting is on.
	// Env: ADAPTER_BURST
	Burst int `env:"BURST"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the SQLite settings for the credential table.
	DB DB `envPrefix:"DB_"`

	// Audio holds the directory for materialized audio resources.
	Audio Audio `envPrefix:"AUDIO_"`
}

// DB holds the local database connection settings.
type DB struct {
	// DSN is the SQLite data source, usually a file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Audio holds settings of the audio resource directory.
type Audio struct {
	// Dir is where generated audio is written. Files are removed when the
	// runner releases them.
	// Env: STORAGE_AUDIO_DIR
	Dir string `env:"DIR"`
}

// Workers holds the connectivity monitor schedule.
type Workers struct {
	// HealthInitialDelay is the delay after the first failed check.
	// Env: WORKERS_HEALTH_INITIAL_DELAY
	HealthInitialDelay time.Duration `env:"HEALTH_INITIAL_DELAY"`

	// HealthMaxDelay caps the retry delay.
	// Env: WORKERS_HEALTH_MAX_DELAY
	HealthMaxDelay time.Duration `env:"HEALTH_MAX_DELAY"`

	// HealthBackoffMultiplier grows the delay after each failure.
	// Env: WORKERS_HEALTH_BACKOFF_MULTIPLIER
	HealthBackoffMultiplier float64 `env:"HEALTH_BACKOFF_MULTIPLIER"`

	// HealthInterval re-checks a healthy service. Negative disables it.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`

	// CreditsRefreshInterval re-fetches the balance while logged in.
	// Negative disables it.
	// Env: WORKERS_CREDITS_REFRESH_INTERVAL
	CreditsRefreshInterval time.Duration `env:"CREDITS_REFRESH_INTERVAL"`
}

// Synthesis holds defaults applied to generation requests that leave the
// corresponding field empty.
type Synthesis struct {
	// EnableConversion turns on the voice-conversion stage by default.
	// Env: SYNTHESIS_ENABLE_CONVERSION
	EnableConversion bool `env:"ENABLE_CONVERSION"`

	// DefaultEmotion is used when a request has no emotion; empty keeps the
	// plain clone endpoint.
	// Env: SYNTHESIS_DEFAULT_EMOTION
	DefaultEmotion string `env:"DEFAULT_EMOTION"`

	// DefaultSpeed is the playback speed multiplier (0.5 - 2.0).
	// Env: SYNTHESIS_DEFAULT_SPEED
	DefaultSpeed float64 `env:"DEFAULT_SPEED"`

	// DefaultLanguage is a language code such as "en".
	// Env: SYNTHESIS_DEFAULT_LANGUAGE
	DefaultLanguage string `env:"DEFAULT_LANGUAGE"`

	// Async queues plain clones as background tasks and polls them instead
	// of holding one long request open.
	// Env: SYNTHESIS_ASYNC
	Async bool `env:"ASYNC"`

	// TaskPollInterval is the delay between task status requests.
	// Env: SYNTHESIS_TASK_POLL_INTERVAL
	TaskPollInterval time.Duration `env:"TASK_POLL_INTERVAL"`

	// TaskTimeout bounds how long a queued task is awaited. Zero waits
	// until the job is canceled.
	// Env: SYNTHESIS_TASK_TIMEOUT
	TaskTimeout time.Duration `env:"TASK_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Dir is the directory of the log file; empty means next to the binary.
	// Env: LOG_DIR
	Dir string `env:"DIR"`

	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Defaults returns the built-in configuration.
func Defaults() *ClientConfig {
	return &ClientConfig{
		App: App{
			ErrorTTL:          5 * time.Second,
			AuthSafetyTimeout: 3 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:        "http://localhost:8000/api/v1",
			RequestTimeout:     30 * time.Second,
			LongRequestTimeout: 120 * time.Second,
		},
		Storage: Storage{
			DB:    DB{DSN: "voxclone.db"},
			Audio: Audio{Dir: "audio"},
		},
		Workers: Workers{
			HealthInitialDelay:      3 * time.Second,
			HealthMaxDelay:          30 * time.Second,
			HealthBackoffMultiplier: 1.5,
			HealthInterval:          30 * time.Second,
			CreditsRefreshInterval:  time.Minute,
		},
		Synthesis: Synthesis{
			DefaultSpeed:     1.0,
			DefaultLanguage:  "en",
			TaskPollInterval: time.Second,
			TaskTimeout:      10 * time.Minute,
		},
		Log: Log{Level: "debug"},
	}
}

// GetClientConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig(args []string) (*ClientConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
