// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers for request correlation,
// synthesis jobs and local audio resources.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to v4 if the clock source
// fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Short returns a 12 hex character id suitable for file names and refs.
// The random tail of a v4 uuid is used so ids created in the same
// millisecond still differ.
func (g *UUIDGenerator) Short() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[len(id)-12:]
}
