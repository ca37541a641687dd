// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository and storage methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrTokenNotFound is returned by [TokenRepository.Load] when no token
	// has been persisted (first start or after logout).
	ErrTokenNotFound = errors.New("auth token not found")

	// ErrEmptyAudio is returned when an audio resource is acquired from an
	// empty byte slice.
	ErrEmptyAudio = errors.New("empty audio data")

	// ErrUnknownAudioRef is returned when a ref is not (or no longer) held by
	// the audio storage.
	ErrUnknownAudioRef = errors.New("unknown audio ref")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")
)
