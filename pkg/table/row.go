package table

import (
	"fmt"
	"iter"
)

// Row is a view of one row of a Table. It holds no data of its own:
// reads go to the table and writes replace the whole row through SetRow.
type Row struct {
	table *Table
	pos   int
}

// Table returns the table the row belongs to.
func (r *Row) Table() *Table { return r.table }

// Position returns the row position in its table.
func (r *Row) Position() int { return r.pos }

// Get returns the value of the referenced column.
func (r *Row) Get(ref any) (any, error) {
	col, err := r.table.ResolveColumn(ref)
	if err != nil {
		return nil, err
	}
	data, err := r.data()
	if err != nil {
		return nil, err
	}
	return data[col], nil
}

// Set writes value into the referenced column.
func (r *Row) Set(ref any, value any) error {
	col, err := r.table.ResolveColumn(ref)
	if err != nil {
		return err
	}
	values, err := r.table.RowData(r.pos)
	if err != nil {
		return err
	}
	values[col] = value
	return r.table.SetRow(r.pos, values)
}

// Select returns the values of the referenced columns, in the order given.
func (r *Row) Select(refs ...any) ([]any, error) {
	data, err := r.data()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(refs))
	for i, ref := range refs {
		col, err := r.table.ResolveColumn(ref)
		if err != nil {
			return nil, err
		}
		out[i] = data[col]
	}
	return out, nil
}

// Update overwrites the given columns, or every column when columns is nil,
// with values and writes the row back in one SetRow call.
func (r *Row) Update(columns []any, values []any) error {
	if values == nil {
		return fmt.Errorf("%w: row update needs values", ErrInvalidArgument)
	}
	positions, err := r.table.resolveColumns(columns)
	if err != nil {
		return err
	}
	return r.table.updateRow(r.pos, positions, values)
}

// Values returns a copy of the row.
func (r *Row) Values() ([]any, error) {
	return r.table.RowData(r.pos)
}

// Pairs yields (column name, value) in header order.
// Values are read when the sequence is ranged over, not when Pairs is called.
func (r *Row) Pairs() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		data, err := r.data()
		if err != nil {
			return
		}
		for i, name := range r.table.header {
			if !yield(name, data[i]) {
				return
			}
		}
	}
}

func (r *Row) data() ([]any, error) {
	if err := r.table.checkRow(r.pos); err != nil {
		return nil, err
	}
	return r.table.rows[r.pos], nil
}
