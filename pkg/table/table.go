// Package table implements an in-memory table of fixed-width rows.
//
// A Table owns its rows and its header. Rows are handed out as Row views
// that hold only the table and a row position, so every read goes back to
// the table and every write goes through SetRow.
//
// A Table has no internal locking. Callers sharing one across goroutines
// must synchronize access themselves; iterating while another goroutine
// appends is undefined.
package table

import (
	"fmt"
	"math"
	"slices"
)

// Table is an ordered sequence of rows that all share the same header.
type Table struct {
	header  []string
	width   int
	rows    [][]any
	columns map[string]int
}

// New creates an empty table with the given header.
// Column names must be unique.
func New(header []string) (*Table, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if prev, ok := columns[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q at positions %d and %d", ErrConfiguration, name, prev, i)
		}
		columns[name] = i
	}
	return &Table{
		header:  slices.Clone(header),
		width:   len(header),
		columns: columns,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(header ...string) *Table {
	t, err := New(header)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return t.width }

// Header returns a copy of the column names.
func (t *Table) Header() []string { return slices.Clone(t.header) }

// ResolveColumn turns a column reference into a position.
// A string is looked up by name, an integer is bounds checked.
func (t *Table) ResolveColumn(ref any) (int, error) {
	switch v := ref.(type) {
	case string:
		pos, ok := t.columns[v]
		if !ok {
			return 0, columnNotFound(v)
		}
		return pos, nil
	case int:
		return t.checkColumn(v)
	case int8:
		return t.checkColumn(int(v))
	case int16:
		return t.checkColumn(int(v))
	case int32:
		return t.checkColumn(int(v))
	case int64:
		return t.checkColumn(int(v))
	case uint:
		return t.checkUnsigned(uint64(v))
	case uint8:
		return t.checkColumn(int(v))
	case uint16:
		return t.checkColumn(int(v))
	case uint32:
		return t.checkUnsigned(uint64(v))
	case uint64:
		return t.checkUnsigned(v)
	case uintptr:
		return t.checkUnsigned(uint64(v))
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidReference, ref, ref)
	}
}

// checkUnsigned rejects values that would wrap when converted to int.
func (t *Table) checkUnsigned(pos uint64) (int, error) {
	if pos >= uint64(t.width) {
		return 0, columnOutOfRange(int(min(pos, math.MaxInt)), t.width)
	}
	return int(pos), nil
}

func (t *Table) checkColumn(pos int) (int, error) {
	if pos < 0 || pos >= t.width {
		return 0, columnOutOfRange(pos, t.width)
	}
	return pos, nil
}

func (t *Table) resolveColumns(refs []any) ([]int, error) {
	if refs == nil {
		all := make([]int, t.width)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	positions := make([]int, len(refs))
	for i, ref := range refs {
		pos, err := t.ResolveColumn(ref)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	return positions, nil
}

func (t *Table) checkRow(pos int) error {
	if pos < 0 || pos >= len(t.rows) {
		return rowOutOfRange(pos, len(t.rows))
	}
	return nil
}

// Append adds a copy of row at the end of the table.
func (t *Table) Append(row []any) error {
	if len(row) != t.width {
		return &ShapeError{Op: "append", Row: -1, Want: t.width, Got: len(row)}
	}
	t.rows = append(t.rows, slices.Clone(row))
	return nil
}

// AppendMany appends rows in order. It stops at the first bad row and
// leaves the rows before it in the table.
func (t *Table) AppendMany(rows [][]any) error {
	for i, row := range rows {
		if err := t.Append(row); err != nil {
			return fmt.Errorf("row %d of %d: %w", i, len(rows), err)
		}
	}
	return nil
}

// Row returns a view of the row at pos.
func (t *Table) Row(pos int) (*Row, error) {
	if err := t.checkRow(pos); err != nil {
		return nil, err
	}
	return &Row{table: t, pos: pos}, nil
}

// RowData returns a copy of the values of the row at pos.
func (t *Table) RowData(pos int) ([]any, error) {
	if err := t.checkRow(pos); err != nil {
		return nil, err
	}
	return slices.Clone(t.rows[pos]), nil
}

// SetRow replaces the row at pos with a copy of values.
// It is the only path through which existing rows change.
func (t *Table) SetRow(pos int, values []any) error {
	if err := t.checkRow(pos); err != nil {
		return err
	}
	if len(values) != t.width {
		return &ShapeError{Op: "set_row", Row: pos, Want: t.width, Got: len(values)}
	}
	t.rows[pos] = slices.Clone(values)
	return nil
}

// Column returns the values of one column in row order.
func (t *Table) Column(ref any) ([]any, error) {
	col, err := t.ResolveColumn(ref)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[col]
	}
	return values, nil
}

// Records returns a copy of every row.
func (t *Table) Records() [][]any {
	out := make([][]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// Flatten returns every cell in row-major order.
// For a single-column table that is simply the column.
func (t *Table) Flatten() []any {
	out := make([]any, 0, len(t.rows)*t.width)
	for _, row := range t.rows {
		out = append(out, row...)
	}
	return out
}

// Rename returns a new table holding copies of the rows under a new header.
func (t *Table) Rename(header []string) (*Table, error) {
	if len(header) != t.width {
		return nil, &ShapeError{Op: "rename", Row: -1, Want: t.width, Got: len(header)}
	}
	out, err := New(header)
	if err != nil {
		return nil, err
	}
	out.rows = t.Records()
	return out, nil
}

// Update applies changes keyed by row position. Each change holds one value
// per entry of columns, or one per table column when columns is nil.
// Rows are updated in ascending position order; an error leaves the rows
// updated before it in place.
func (t *Table) Update(columns []any, changes map[int][]any) error {
	if len(changes) == 0 {
		return fmt.Errorf("%w: update needs at least one change", ErrInvalidArgument)
	}
	positions, err := t.resolveColumns(columns)
	if err != nil {
		return err
	}
	rows := make([]int, 0, len(changes))
	for pos := range changes {
		rows = append(rows, pos)
	}
	slices.Sort(rows)

	for _, pos := range rows {
		if err := t.updateRow(pos, positions, changes[pos]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) updateRow(pos int, columns []int, values []any) error {
	if err := t.checkRow(pos); err != nil {
		return err
	}
	if len(values) != len(columns) {
		return &ShapeError{Op: "update", Row: pos, Want: len(columns), Got: len(values)}
	}
	row := slices.Clone(t.rows[pos])
	for i, col := range columns {
		row[col] = values[i]
	}
	return t.SetRow(pos, row)
}

// Translate replaces every value of a column with fn(value), in row order.
func (t *Table) Translate(column any, fn func(any) any) error {
	col, err := t.ResolveColumn(column)
	if err != nil {
		return err
	}
	for pos := range t.rows {
		row := slices.Clone(t.rows[pos])
		row[col] = fn(row[col])
		if err := t.SetRow(pos, row); err != nil {
			return err
		}
	}
	return nil
}
