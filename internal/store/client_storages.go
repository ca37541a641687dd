// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/voxclone-client/internal/config"
	"github.com/MKhiriev/voxclone-client/internal/logger"
)

// ClientStorages groups all client-side storage into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// Tokens persists the bearer token in the local SQLite database.
	Tokens TokenRepository
	// Audio owns generated audio files.
	Audio AudioStorage

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Prepares the audio directory.
//
// Returns an error if the database connection cannot be established, if
// migration fails, or if the audio directory cannot be created.
func NewClientStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	audio, err := NewAudioFileStorage(cfg.Audio.Dir, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{
		Tokens: NewTokenRepository(db, logger),
		Audio:  audio,
		db:     db,
	}, nil
}

// Close releases all audio files and closes the database.
func (s *ClientStorages) Close() error {
	var audioErr error
	if s.Audio != nil {
		audioErr = s.Audio.ReleaseAll()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
	}
	return audioErr
}
