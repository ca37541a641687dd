// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"fmt"
	"time"
)

// zonelessLayout is the ISO form the service writes for naive datetimes.
const zonelessLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a service datetime. It accepts RFC 3339 and the zone-less ISO
// form; the latter is read as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp: expected a string, got %s", data)
	}
	raw := string(data[1 : len(data)-1])

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		parsed, err = time.ParseInLocation(zonelessLayout, raw, time.UTC)
	}
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}
