// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the final merged [ClientConfig] satisfies all
// invariants before it is used at startup.
//
// The token database must be a real file: an in-memory DSN would lose the
// credential on exit.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Audio.Dir == "" {
		return fmt.Errorf("%w: empty audio dir", ErrInvalidStorageConfigs)
	}

	if _, err := NormalizeBaseURL(cfg.Adapter.HTTPAddress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}
	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.LongRequestTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.RequestsPerSecond < 0 || cfg.Adapter.Burst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidAdapterConfigs)
	}

	w := cfg.Workers
	if w.HealthInitialDelay <= 0 || w.HealthMaxDelay < w.HealthInitialDelay || w.HealthBackoffMultiplier < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.ErrorTTL <= 0 || cfg.App.AuthSafetyTimeout <= 0 {
		return ErrInvalidAppConfigs
	}

	if s := cfg.Synthesis.DefaultSpeed; s < 0.5 || s > 2.0 {
		return fmt.Errorf("%w: speed %.2f out of range", ErrInvalidSynthesisConfigs, s)
	}
	if cfg.Synthesis.TaskPollInterval <= 0 || cfg.Synthesis.TaskTimeout < 0 {
		return fmt.Errorf("%w: task polling needs a positive interval", ErrInvalidSynthesisConfigs)
	}

	return nil
}

// NormalizeBaseURL trims the address, adds the http scheme when it is
// missing and strips trailing slashes. The path (API prefix) is kept.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
