// Package repository handles all interactions with the database.
//
// It contains the SQL for the users and posts tables and maps result rows
// into model records, abstracting SQL away from the HTTP layer.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/social-network/internal/database"
	"github.com/jackc/pgx/v5"
)

// Connection executes one parameterized statement and returns its rows.
// *database.Database satisfies it.
type Connection interface {
	Execute(ctx context.Context, sql string, params ...any) ([]database.Row, error)
}

var (
	// ErrNotFound is returned by Find when no row matches the id.
	// It is pgx.ErrNoRows so sqlerr maps it to a 404.
	ErrNotFound = pgx.ErrNoRows

	// ErrColumnType is returned when a column value cannot be converted
	// to the record field type.
	ErrColumnType = errors.New("unexpected column type")

	// ErrMissingColumn is returned when a row lacks an expected column.
	ErrMissingColumn = errors.New("missing column")
)
