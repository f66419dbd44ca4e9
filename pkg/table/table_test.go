package table

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func newABC(t *testing.T, rows ...[]any) *Table {
	t.Helper()
	tbl, err := New([]string{"A", "B", "C"})
	assert.NilError(t, err)
	assert.NilError(t, tbl.AppendMany(rows))
	return tbl
}

func TestNew(t *testing.T) {
	tbl, err := New([]string{"A", "B", "C"})
	assert.NilError(t, err)
	assert.Equal(t, tbl.Width(), 3)
	assert.Equal(t, tbl.Len(), 0)
	assert.DeepEqual(t, tbl.Header(), []string{"A", "B", "C"})

	_, err = New([]string{"A", "B", "A"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestHeaderIsCopied(t *testing.T) {
	header := []string{"A", "B"}
	tbl, err := New(header)
	assert.NilError(t, err)

	header[0] = "Z"
	got := tbl.Header()
	got[1] = "Y"
	assert.DeepEqual(t, tbl.Header(), []string{"A", "B"})
}

func TestResolveColumn(t *testing.T) {
	tbl := newABC(t)

	tests := []struct {
		name    string
		ref     any
		want    int
		wantErr error
	}{
		{name: "first name", ref: "A", want: 0},
		{name: "last name", ref: "C", want: 2},
		{name: "position", ref: 1, want: 1},
		{name: "int64 position", ref: int64(2), want: 2},
		{name: "uint8 position", ref: uint8(1), want: 1},
		{name: "uint16 position", ref: uint16(2), want: 2},
		{name: "uint32 position", ref: uint32(0), want: 0},
		{name: "uint64 position", ref: uint64(2), want: 2},
		{name: "uintptr position", ref: uintptr(1), want: 1},
		{name: "huge uint64", ref: uint64(math.MaxUint64), wantErr: ErrIndexOutOfRange},
		{name: "uint past width", ref: uint(3), wantErr: ErrIndexOutOfRange},
		{name: "position past width", ref: 10, wantErr: ErrIndexOutOfRange},
		{name: "negative position", ref: -1, wantErr: ErrIndexOutOfRange},
		{name: "unknown name", ref: "D", wantErr: ErrColumnNotFound},
		{name: "slice", ref: []string{"E"}, wantErr: ErrInvalidReference},
		{name: "float", ref: 1.0, wantErr: ErrInvalidReference},
		{name: "nil", ref: nil, wantErr: ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.ResolveColumn(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestResolveColumnIdempotent(t *testing.T) {
	tbl := newABC(t)
	for i := 0; i < tbl.Width(); i++ {
		once, err := tbl.ResolveColumn(i)
		assert.NilError(t, err)
		twice, err := tbl.ResolveColumn(once)
		assert.NilError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestAppendRoundTrip(t *testing.T) {
	tbl := newABC(t)
	for i := 0; i < 5; i++ {
		row := []any{"a" + string(rune('0'+i)), i, nil}
		assert.NilError(t, tbl.Append(row))

		got, err := tbl.RowData(tbl.Len() - 1)
		assert.NilError(t, err)
		assert.DeepEqual(t, got, row)
	}
	assert.Equal(t, tbl.Len(), 5)
}

func TestAppendCopiesInput(t *testing.T) {
	tbl := newABC(t)
	row := []any{"a", "b", "c"}
	assert.NilError(t, tbl.Append(row))
	row[0] = "changed"

	got, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.Equal(t, got[0], "a")

	got[1] = "changed"
	again, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.Equal(t, again[1], "b")
}

func TestAppendShape(t *testing.T) {
	tbl := newABC(t)
	err := tbl.Append([]any{"a", "b"})
	assert.ErrorIs(t, err, ErrShape)

	var shapeErr *ShapeError
	assert.Assert(t, errors.As(err, &shapeErr))
	assert.Equal(t, shapeErr.Want, 3)
	assert.Equal(t, shapeErr.Got, 2)
	assert.Equal(t, tbl.Len(), 0)
}

func TestAppendManyIsNotTransactional(t *testing.T) {
	tbl := newABC(t)
	err := tbl.AppendMany([][]any{
		{"a0", "b0", "c0"},
		{"a1", "b1", "c1"},
		{"bad"},
		{"a3", "b3", "c3"},
	})
	assert.ErrorIs(t, err, ErrShape)
	assert.Equal(t, tbl.Len(), 2)
}

func TestRowOutOfRange(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"})

	for _, pos := range []int{-1, 1, 100} {
		_, err := tbl.Row(pos)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = tbl.RowData(pos)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		err = tbl.SetRow(pos, []any{"x", "y", "z"})
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestSetRowRoundTrip(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"}, []any{"a1", "b1", "c1"})

	replacement := []any{"x", "y", "z"}
	assert.NilError(t, tbl.SetRow(1, replacement))
	got, err := tbl.RowData(1)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, replacement)

	first, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, first, []any{"a0", "b0", "c0"})

	assert.ErrorIs(t, tbl.SetRow(0, []any{"x"}), ErrShape)
}

func TestUpdate(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"}, []any{"a1", "b1", "c1"})

	err := tbl.Update([]any{"A", "B"}, map[int][]any{0: {"00", "11"}})
	assert.NilError(t, err)
	got, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []any{"00", "11", "c0"})

	err = tbl.Update(nil, map[int][]any{1: {"x", "y", "z"}})
	assert.NilError(t, err)
	got, err = tbl.RowData(1)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []any{"x", "y", "z"})

	err = tbl.Update([]any{2}, map[int][]any{0: {"c-by-position"}})
	assert.NilError(t, err)
	got, err = tbl.RowData(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []any{"00", "11", "c-by-position"})
}

func TestUpdateErrors(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"}, []any{"a1", "b1", "c1"})

	assert.ErrorIs(t, tbl.Update(nil, nil), ErrInvalidArgument)
	assert.ErrorIs(t, tbl.Update([]any{"D"}, map[int][]any{0: {"x"}}), ErrColumnNotFound)
	assert.ErrorIs(t, tbl.Update([]any{"A"}, map[int][]any{0: {"x", "y"}}), ErrShape)

	// Row 0 is applied before row 5 fails.
	err := tbl.Update([]any{"A"}, map[int][]any{0: {"first"}, 5: {"missing"}})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	got, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.Equal(t, got[0], "first")
}

func TestTranslate(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"}, []any{"a1", "b1", "c1"})

	err := tbl.Translate("B", func(v any) any { return strings.ToUpper(v.(string)) })
	assert.NilError(t, err)

	col, err := tbl.Column("B")
	assert.NilError(t, err)
	assert.DeepEqual(t, col, []any{"B0", "B1"})

	other, err := tbl.Column(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, other, []any{"a0", "a1"})

	assert.ErrorIs(t, tbl.Translate("Z", func(v any) any { return v }), ErrColumnNotFound)
}

func TestTranslateLeavesHandedOutRowsAlone(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"})
	before, err := tbl.RowData(0)
	assert.NilError(t, err)
	records := tbl.Records()

	assert.NilError(t, tbl.Translate(0, func(v any) any { return v.(string) + "!" }))

	assert.DeepEqual(t, before, []any{"a0", "b0", "c0"})
	assert.DeepEqual(t, records, [][]any{{"a0", "b0", "c0"}})
	after, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, after, []any{"a0!", "b0", "c0"})
}

func TestRecordsAndFlatten(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"}, []any{"a1", "b1", "c1"})

	assert.DeepEqual(t, tbl.Records(), [][]any{{"a0", "b0", "c0"}, {"a1", "b1", "c1"}})
	assert.DeepEqual(t, tbl.Flatten(), []any{"a0", "b0", "c0", "a1", "b1", "c1"})
}

func TestRename(t *testing.T) {
	tbl := newABC(t, []any{"a0", "b0", "c0"})

	renamed, err := tbl.Rename([]string{"x", "y", "z"})
	assert.NilError(t, err)
	assert.DeepEqual(t, renamed.Header(), []string{"x", "y", "z"})
	assert.DeepEqual(t, renamed.Records(), tbl.Records())

	assert.NilError(t, renamed.SetRow(0, []any{"1", "2", "3"}))
	orig, err := tbl.RowData(0)
	assert.NilError(t, err)
	assert.DeepEqual(t, orig, []any{"a0", "b0", "c0"})

	_, err = tbl.Rename([]string{"x"})
	assert.ErrorIs(t, err, ErrShape)
	_, err = tbl.Rename([]string{"x", "x", "z"})
	assert.ErrorIs(t, err, ErrConfiguration)
}
