// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/voxclone-client/internal/logger"
)

type tokenRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewTokenRepository returns a SQLite-backed [TokenRepository].
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	return &tokenRepository{db: db, logger: logger, now: time.Now}
}

func (r *tokenRepository) Load(ctx context.Context) (string, error) {
	query, args, err := buildLoadTokenQuery()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.Load").Msg("failed to load token")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if token == "" {
		return "", ErrTokenNotFound
	}

	return token, nil
}

func (r *tokenRepository) Save(ctx context.Context, token string) error {
	if token == "" {
		return r.Clear(ctx)
	}

	query, args, err := buildSaveTokenQuery(token, r.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.Save").Msg("failed to save token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *tokenRepository) Clear(ctx context.Context) error {
	query, args, err := buildClearTokenQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "tokenRepository.Clear").Msg("failed to clear token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
