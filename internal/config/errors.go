// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, an unparsable address or a zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a zero error TTL).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid connectivity monitor settings
	// (for example, a multiplier below 1).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidSynthesisConfigs indicates invalid synthesis defaults
	// (for example, a speed outside 0.5 - 2.0).
	ErrInvalidSynthesisConfigs = errors.New("invalid synthesis configuration")
)
