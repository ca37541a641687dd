// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TagSet is an ordered set of style tags.
//
// Tags are trimmed and deduplicated case-insensitively; the first spelling
// wins. Order is kept for display but ignored by [TagSet.Equal]. On the wire
// the set is a comma-separated string, which is what the profile endpoints
// accept and return.
type TagSet struct {
	items []string
}

// NewTagSet builds a set from tags, dropping blanks and duplicates.
func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// ParseTagSet splits a comma-separated tag string.
func ParseTagSet(raw string) TagSet {
	return NewTagSet(strings.Split(raw, ",")...)
}

// Add inserts tag unless it is blank or already present. It reports whether
// the set changed.
func (s *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.items = append(s.items, tag)
	return true
}

// Remove deletes tag. It reports whether the set changed.
func (s *TagSet) Remove(tag string) bool {
	tag = strings.TrimSpace(tag)
	for i, t := range s.items {
		if strings.EqualFold(t, tag) {
			s.items = slices.Delete(s.items, i, i+1)
			return true
		}
	}
	return false
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range s.items {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Len returns the number of tags.
func (s TagSet) Len() int {
	return len(s.items)
}

// Values returns a copy of the tags in insertion order.
func (s TagSet) Values() []string {
	return slices.Clone(s.items)
}

// Equal reports whether both sets hold the same tags regardless of order.
func (s TagSet) Equal(other TagSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.items {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// String returns the comma-separated wire form.
func (s TagSet) String() string {
	return strings.Join(s.items, ",")
}

// MarshalJSON implements [json.Marshaler].
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements [json.Unmarshaler]. It accepts a comma-separated
// string, a JSON array of strings, or null.
func (s *TagSet) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}

	switch value := v.(type) {
	case nil:
		*s = TagSet{}
	case string:
		*s = ParseTagSet(value)
	case []any:
		tags := make([]string, 0, len(value))
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("decode tags: unexpected element %T", item)
			}
			tags = append(tags, str)
		}
		*s = NewTagSet(tags...)
	default:
		return fmt.Errorf("decode tags: unexpected type %T", v)
	}
	return nil
}
