package repository

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/social-network/internal/database"
)

// int64Column reads an integer column. Numeric strings are accepted;
// NULL decodes to 0.
func int64Column(row database.Row, column string) (int64, error) {
	value, ok := row[column]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int:
		return int64(v), nil
	case string:
		return parseInt64(column, v)
	case []byte:
		return parseInt64(column, string(v))
	default:
		return 0, fmt.Errorf("%w: column %s is %T, want integer", ErrColumnType, column, value)
	}
}

func parseInt64(column, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s value %q is not an integer", ErrColumnType, column, s)
	}
	return n, nil
}

// stringColumn reads a text column. NULL decodes to "".
func stringColumn(row database.Row, column string) (string, error) {
	value, ok := row[column]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: column %s is %T, want text", ErrColumnType, column, value)
	}
}

// rowDecoder accumulates the first column error so record decoders
// read as a flat list of fields.
type rowDecoder struct {
	row database.Row
	err error
}

func (d *rowDecoder) integer(column string) int64 {
	if d.err != nil {
		return 0
	}
	v, err := int64Column(d.row, column)
	d.err = err
	return v
}

func (d *rowDecoder) text(column string) string {
	if d.err != nil {
		return ""
	}
	v, err := stringColumn(d.row, column)
	d.err = err
	return v
}
