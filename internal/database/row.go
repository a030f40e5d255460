package database

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// ErrColumnNotFound is returned by MapRow when a requested column is not part
// of the scanned row.
var ErrColumnNotFound = errors.New("column not found")

// MapRow adapts a row scanned with sqlx.Rows.MapScan to botdata.Row.
// NULL values read as the zero value of the requested type.
type MapRow map[string]any

func (r MapRow) value(column string) (any, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	return v, nil
}

// Int64 returns the column as an integer.
func (r MapRow) Int64(column string) (int64, error) {
	v, err := r.value(column)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return n, nil
}

// String returns the column as text.
func (r MapRow) String(column string) (string, error) {
	v, err := r.value(column)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", column, err)
	}
	return s, nil
}

// Bool returns the column as a boolean. SQLite stores booleans as integers.
func (r MapRow) Bool(column string) (bool, error) {
	v, err := r.value(column)
	if err != nil {
		return false, err
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("column %s: %w", column, err)
	}
	return b, nil
}
