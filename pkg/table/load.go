package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source produces records of string cells and returns io.EOF after the last
// one. *csv.Reader satisfies it.
type Source interface {
	Read() ([]string, error)
}

// Load builds a table from src. When header is nil the first record is used
// as the header; every other record becomes a row. A record whose width
// differs from the header fails with a *FormatError.
func Load(src Source, header []string) (*Table, error) {
	record := 0
	if header == nil {
		first, err := src.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: source has no header record", ErrFormat)
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		header = first
		record++
	}

	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for {
		fields, err := src.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		record++
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", record, err)
		}
		if len(fields) != t.width {
			return nil, &FormatError{Record: record, Want: t.width, Got: len(fields)}
		}
		t.rows = append(t.rows, stringCells(fields))
	}
}

// LoadRecords is Load over records already held in memory.
func LoadRecords(records [][]string, header []string) (*Table, error) {
	return Load(&sliceSource{records: records}, header)
}

// FromCSV reads comma separated records from r. See Load for header handling.
func FromCSV(r io.Reader, header []string) (*Table, error) {
	return Load(NewCSVReader(r, ','), header)
}

// FromCSVFile reads the CSV file at path. See Load for header handling.
func FromCSVFile(path string, header []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	t, err := FromCSV(f, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// NewCSVReader returns a csv.Reader that leaves record width checking to Load,
// so width errors surface as *FormatError.
func NewCSVReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	return cr
}

func stringCells(fields []string) []any {
	row := make([]any, len(fields))
	for i, f := range fields {
		row[i] = f
	}
	return row
}

type sliceSource struct {
	records [][]string
	next    int
}

func (s *sliceSource) Read() ([]string, error) {
	if s.next >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.next]
	s.next++
	return rec, nil
}
