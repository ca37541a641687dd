// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are typically injected by linker flags during CI/CD and shown in
// the dashboard footer for diagnostics and release traceability.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo], replacing empty values with "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (b AppBuildInfo) BuildVersion() string { return b.buildVersion }

func (b AppBuildInfo) BuildDate() string { return b.buildDate }

func (b AppBuildInfo) BuildCommit() string { return b.buildCommit }

func (b AppBuildInfo) String() string {
	return fmt.Sprintf("version %s, built %s, commit %s", b.buildVersion, b.buildDate, b.buildCommit)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
