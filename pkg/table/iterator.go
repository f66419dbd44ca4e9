package table

import "iter"

// Iterator walks the rows of a table in position order.
//
// The row count is read again on every call to Next, so rows appended while
// iterating are visited too. Once Next has returned false it keeps doing so.
type Iterator struct {
	table *Table
	pos   int
	done  bool
}

// Iterate returns a new iterator positioned before the first row.
func (t *Table) Iterate() *Iterator {
	return &Iterator{table: t, pos: -1}
}

// Next advances to the next row. It returns false when there are no more rows.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	it.pos++
	if it.pos >= it.table.Len() {
		it.done = true
		return false
	}
	return true
}

// Row returns a view of the current row, or nil before the first call to
// Next and after the iterator is exhausted.
func (it *Iterator) Row() *Row {
	if it.pos < 0 || it.done {
		return nil
	}
	return &Row{table: it.table, pos: it.pos}
}

// Position returns the current row position; -1 before the first Next.
func (it *Iterator) Position() int { return it.pos }

// All returns a sequence of (position, row) pairs. Each range over the
// sequence starts a new Iterator, so it can be ranged over any number of times.
func (t *Table) All() iter.Seq2[int, *Row] {
	return func(yield func(int, *Row) bool) {
		it := t.Iterate()
		for it.Next() {
			if !yield(it.Position(), it.Row()) {
				return
			}
		}
	}
}
