package notefields

import (
	"database/sql"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Preparer is the part of *sql.DB (or *sql.Tx) the statements need.
type Preparer interface {
	Prepare(query string) (*sql.Stmt, error)
}

// extractFunc turns the current row into a value. The bool is false when
// the column is NULL.
type extractFunc[V any] func(rows *sql.Rows) (V, bool, error)

// accessor runs one prepared single-parameter query.
type accessor[K, V any] struct {
	name    string
	stmt    *sql.Stmt
	extract extractFunc[V]
	retired *atomic.Bool
}

func (a *accessor[K, V]) get(key K) (V, bool, error) {
	var zero V
	if a.retired.Load() {
		return zero, false, ErrClosed
	}
	rows, err := a.stmt.Query(key)
	if err != nil {
		return zero, false, a.fail(err, key)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, a.fail(err, key)
		}
		return zero, false, nil
	}
	v, ok, err := a.extract(rows)
	if err != nil {
		return zero, false, a.fail(errors.Wrap(err, "extracting"), key)
	}
	return v, ok, nil
}

// fail wraps a query error with the statement name and key. If Close ran
// while the query was in flight the statement is gone, and the caller gets
// ErrClosed just as it would had it started after Close.
func (a *accessor[K, V]) fail(err error, key K) error {
	if a.retired.Load() {
		return ErrClosed
	}
	return errors.Wrapf(err, "%s(%v)", a.name, key)
}

func (a *accessor[K, V]) Name() string { return a.name }

func (a *accessor[K, V]) Close() error {
	return a.stmt.Close()
}

// scanNull reads the single selected column.
func scanNull[T any](rows *sql.Rows) (T, bool, error) {
	var v sql.Null[T]
	if err := rows.Scan(&v); err != nil {
		return v.V, false, err
	}
	return v.V, v.Valid, nil
}

// collectStrings drains every remaining row, starting at the current one.
// NULLs are skipped.
func collectStrings(rows *sql.Rows) ([]string, bool, error) {
	var out []string
	for {
		s, ok, err := scanNull[string](rows)
		if err != nil {
			return nil, false, err
		}
		if ok {
			out = append(out, s)
		}
		if !rows.Next() {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, true, nil
}
