package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Row is one result row keyed by column name.
// Values are whatever pgx decodes for the column type: int32/int64 for
// integers, string for text, nil for SQL NULL.
type Row map[string]any

// Execute runs a single parameterized statement and collects every
// returned row. Statements that return no rows yield an empty slice.
//
// Params are always sent to the server as bind parameters.
func (db *Database) Execute(ctx context.Context, sql string, params ...any) ([]Row, error) {
	rows, err := db.Pool.Query(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Row, error) {
		values, err := pgx.RowToMap(row)
		return Row(values), err
	})
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	return result, nil
}
