// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/voxclone-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TokenRepository persists the single bearer token of the client across
// restarts.
type TokenRepository interface {
	// Load returns the stored token or [ErrTokenNotFound].
	Load(ctx context.Context) (string, error)
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// AudioStorage owns locally materialized audio. Every acquired resource must
// be released exactly once; the synthesis runner is the only caller.
type AudioStorage interface {
	// Acquire writes data to a new resource and returns its handle.
	// contentType may be empty, in which case it is sniffed.
	Acquire(ctx context.Context, data []byte, contentType string) (models.AudioResource, error)
	// Resolve returns the resource behind ref.
	Resolve(ref string) (models.AudioResource, error)
	// Release deletes the resource. Releasing an unknown ref returns
	// [ErrUnknownAudioRef].
	Release(ref string) error
	// ReleaseAll deletes every live resource.
	ReleaseAll() error
	// Live returns the number of resources not yet released.
	Live() int
}
