package table

import (
	"fmt"
	"reflect"
)

// Predicate decides whether a row is kept by Select.
// Only a returned true keeps the row. A non-nil error aborts the select.
type Predicate func(r *Row) (bool, error)

// Equals returns a predicate that keeps rows whose referenced column equals want.
func Equals(ref any, want any) Predicate {
	return func(r *Row) (bool, error) {
		v, err := r.Get(ref)
		if err != nil {
			return false, err
		}
		return reflect.DeepEqual(v, want), nil
	}
}

// Select builds a new table from the rows for which where returns true,
// keeping only the given columns in the order given. A nil columns slice keeps
// every column and a nil where keeps every row. The receiver is not modified.
func (t *Table) Select(columns []any, where Predicate) (*Table, error) {
	positions, err := t.resolveColumns(columns)
	if err != nil {
		return nil, err
	}
	header := make([]string, len(positions))
	for i, col := range positions {
		header[i] = t.header[col]
	}
	out, err := New(header)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	for pos, row := range t.All() {
		if where != nil {
			keep, err := where(row)
			if err != nil {
				return nil, fmt.Errorf("select: row %d: %w", pos, err)
			}
			if !keep {
				continue
			}
		}
		src := t.rows[pos]
		projected := make([]any, len(positions))
		for i, col := range positions {
			projected[i] = src[col]
		}
		out.rows = append(out.rows, projected)
	}
	return out, nil
}
