// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SystemStatus is the single source of truth for whether the backing service
// is usable right now. It is owned by the connectivity monitor.
type SystemStatus struct {
	Reachable    bool
	GPUAvailable bool
	// GPULabel is the device name reported by the service, empty when unknown.
	GPULabel string

	ConsecutiveFailures int
	// SecondsUntilNextRetry is a display countdown; it is not tied to the
	// accuracy of the retry timer.
	SecondsUntilNextRetry int

	// CheckedAt is the completion time of the last check.
	CheckedAt time.Time
}

// HealthResponse is the body of GET /health and GET /health/detailed.
type HealthResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version,omitempty"`
	GPU     *GPUInfo `json:"gpu,omitempty"`
}

// GPUInfo is the compute section of GET /health/detailed.
type GPUInfo struct {
	Available bool   `json:"available"`
	Name      string `json:"name"`
}
