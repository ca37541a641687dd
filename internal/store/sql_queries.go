// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	credentialsTable = "credentials"
	// the table holds at most one row
	credentialsRowID = 1
)

func buildLoadTokenQuery() (string, []any, error) {
	return sq.Select("token").
		From(credentialsTable).
		Where(sq.Eq{"id": credentialsRowID}).
		ToSql()
}

func buildSaveTokenQuery(token string, now time.Time) (string, []any, error) {
	return sq.Insert(credentialsTable).
		Columns("id", "token", "updated_at").
		Values(credentialsRowID, token, now).
		Suffix("ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at").
		ToSql()
}

func buildClearTokenQuery() (string, []any, error) {
	return sq.Delete(credentialsTable).
		Where(sq.Eq{"id": credentialsRowID}).
		ToSql()
}
