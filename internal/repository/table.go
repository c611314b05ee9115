package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/social-network/internal/database"
)

// Schema describes how a record type maps onto a table.
//
// Columns lists the non-id columns in bind order. Encode must return
// values in that same order.
type Schema[T any] struct {
	Table   string
	Columns []string
	Decode  func(database.Row) (T, error)
	Encode  func(T) []any
	ID      func(T) int64
}

// Table is table-backed CRUD for one record type.
// Every method issues exactly one statement; values are always bound
// as parameters, never formatted into the SQL.
type Table[T any] struct {
	conn   Connection
	schema Schema[T]

	selectAllSQL string
	findSQL      string
	insertSQL    string
	updateSQL    string
	deleteSQL    string
}

// NewTable builds the five statements for schema once.
func NewTable[T any](conn Connection, schema Schema[T]) *Table[T] {
	allColumns := "id, " + strings.Join(schema.Columns, ", ")

	placeholders := make([]string, len(schema.Columns))
	assignments := make([]string, len(schema.Columns))
	for i, column := range schema.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	idParam := len(schema.Columns) + 1

	return &Table[T]{
		conn:   conn,
		schema: schema,

		selectAllSQL: fmt.Sprintf("SELECT %s FROM %s;", allColumns, schema.Table),
		findSQL:      fmt.Sprintf("SELECT %s FROM %s WHERE id = $1;", allColumns, schema.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id;",
			schema.Table, strings.Join(schema.Columns, ", "), strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d;",
			schema.Table, strings.Join(assignments, ", "), idParam),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1;", schema.Table),
	}
}

// All returns every record in the order the database yields them.
// There is no ORDER BY, so the order is only as stable as the table scan.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	rows, err := t.conn.Execute(ctx, t.selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("select all %s: %w", t.schema.Table, err)
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		record, err := t.schema.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s row: %w", t.schema.Table, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Find returns the record with the given id, or ErrNotFound.
func (t *Table[T]) Find(ctx context.Context, id int64) (T, error) {
	var zero T

	rows, err := t.conn.Execute(ctx, t.findSQL, id)
	if err != nil {
		return zero, fmt.Errorf("find %s %d: %w", t.schema.Table, id, err)
	}

	if len(rows) == 0 {
		// The "table:<name>:" prefix is what sqlerr reads to name the entity.
		return zero, fmt.Errorf("table:%s: id %d: %w", t.schema.Table, id, ErrNotFound)
	}

	record, err := t.schema.Decode(rows[0])
	if err != nil {
		return zero, fmt.Errorf("decode %s row: %w", t.schema.Table, err)
	}

	return record, nil
}

// Create inserts record and returns the id the database assigned.
// The id field of record is ignored.
func (t *Table[T]) Create(ctx context.Context, record T) (int64, error) {
	rows, err := t.conn.Execute(ctx, t.insertSQL, t.schema.Encode(record)...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.schema.Table, err)
	}

	if len(rows) == 0 {
		return 0, fmt.Errorf("insert %s: no id returned", t.schema.Table)
	}

	id, err := int64Column(rows[0], "id")
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.schema.Table, err)
	}

	return id, nil
}

// Update overwrites every non-id column of the row matching record's id.
// A missing id is not an error.
func (t *Table[T]) Update(ctx context.Context, record T) error {
	params := append(t.schema.Encode(record), t.schema.ID(record))

	if _, err := t.conn.Execute(ctx, t.updateSQL, params...); err != nil {
		return fmt.Errorf("update %s %d: %w", t.schema.Table, t.schema.ID(record), err)
	}

	return nil
}

// Delete removes the row with the given id. A missing id is not an error.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if _, err := t.conn.Execute(ctx, t.deleteSQL, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", t.schema.Table, id, err)
	}

	return nil
}
