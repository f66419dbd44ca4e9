package table

import (
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFromCSVFile(t *testing.T) {
	tbl, err := FromCSVFile("testdata/simple.csv", nil)
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 3)
	assert.Equal(t, tbl.Width(), 3)
	assert.DeepEqual(t, tbl.Header(), []string{"A", "B", "C"})

	got, err := tbl.RowData(2)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []any{"a3", "b3", "c3"})
}

func TestFromCSVFileWithHeader(t *testing.T) {
	tbl, err := FromCSVFile("testdata/simple.csv", []string{"x", "y", "z"})
	assert.NilError(t, err)
	// The first record is data when a header is supplied.
	assert.Equal(t, tbl.Len(), 4)
	v, err := tbl.Row(0)
	assert.NilError(t, err)
	first, err := v.Get("x")
	assert.NilError(t, err)
	assert.Equal(t, first, "A")
}

func TestFromCSVFileRagged(t *testing.T) {
	_, err := FromCSVFile("testdata/ragged.csv", nil)
	assert.ErrorIs(t, err, ErrFormat)

	var formatErr *FormatError
	assert.Assert(t, errors.As(err, &formatErr))
	assert.Equal(t, formatErr.Record, 3)
	assert.Equal(t, formatErr.Want, 3)
	assert.Equal(t, formatErr.Got, 2)
}

func TestFromCSVFileMissing(t *testing.T) {
	_, err := FromCSVFile("testdata/does-not-exist.csv", nil)
	assert.ErrorContains(t, err, "failed to open file")
}

func TestLoadRecords(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		header  []string
		wantLen int
		wantErr error
	}{
		{
			name:    "header from first record",
			records: [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}},
			wantLen: 2,
		},
		{
			name:    "explicit header",
			records: [][]string{{"1", "2"}},
			header:  []string{"A", "B"},
			wantLen: 1,
		},
		{
			name:    "empty source",
			records: nil,
			wantErr: ErrFormat,
		},
		{
			name:    "only a header",
			records: [][]string{{"A", "B"}},
			wantLen: 0,
		},
		{
			name:    "width mismatch",
			records: [][]string{{"A", "B"}, {"1", "2", "3"}},
			wantErr: ErrFormat,
		},
		{
			name:    "duplicate header",
			records: [][]string{{"A", "A"}},
			wantErr: ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := LoadRecords(tt.records, tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, tbl.Len(), tt.wantLen)
		})
	}
}

func TestFromCSVQuoting(t *testing.T) {
	in := "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n"
	tbl, err := FromCSV(strings.NewReader(in), nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Records(), [][]any{{"Smith, J", `said "hi"`}})
}

func TestNewCSVReaderDelimiter(t *testing.T) {
	tbl, err := Load(NewCSVReader(strings.NewReader("a;b\n1;2\n"), ';'), nil)
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Header(), []string{"a", "b"})
	assert.DeepEqual(t, tbl.Records(), [][]any{{"1", "2"}})
}

type failingSource struct{ err error }

func (s failingSource) Read() ([]string, error) { return nil, s.err }

func TestLoadSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(failingSource{err: boom}, nil)
	assert.ErrorIs(t, err, boom)
}

// The use case the package was written for: who lives in Waterloo?
func TestPeopleByCity(t *testing.T) {
	people, err := FromCSVFile("testdata/people.csv", nil)
	assert.NilError(t, err)

	result, err := people.Select([]any{"name"}, Equals("city", "Waterloo"))
	assert.NilError(t, err)
	assert.Equal(t, result.Width(), 1)
	assert.Equal(t, result.Len(), 2)

	first, err := result.Row(0)
	assert.NilError(t, err)
	name, err := first.Get("name")
	assert.NilError(t, err)
	assert.Equal(t, name, "Jack")

	assert.DeepEqual(t, result.Flatten(), []any{"Jack", "Frank"})
}
