package engine

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bisegni/eatable/pkg/database"
	"github.com/bisegni/eatable/pkg/plan"
	"github.com/bisegni/eatable/pkg/table"
)

// Output formats understood by the Executor.
const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// Executor runs a plan and writes the resulting table
type Executor struct {
	Pretty bool
	Format string
}

func NewExecutor() *Executor {
	return &Executor{
		Pretty: false,
		Format: FormatJSONL,
	}
}

// Execute runs the plan rooted at node and writes its result to w.
func (e *Executor) Execute(node plan.Node, w io.Writer) error {
	result, err := node.Execute()
	if err != nil {
		return err
	}
	return e.WriteTable(result, w)
}

// WriteTable writes t to w in the executor's format.
func (e *Executor) WriteTable(t *table.Table, w io.Writer) error {
	switch strings.ToLower(e.Format) {
	case "", FormatJSONL:
		return e.writeJSONL(t, w)
	case FormatJSON:
		return e.writeJSON(t, w)
	case FormatCSV:
		return writeCSV(t, w)
	case FormatTable:
		return writeAligned(t, w)
	default:
		return fmt.Errorf("unknown output format %q", e.Format)
	}
}

// ValidFormat reports whether format is one the executor can write.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSONL, FormatJSON, FormatCSV, FormatTable:
		return true
	}
	return false
}

func (e *Executor) encoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	} else {
		encoder.SetIndent("", "")
	}
	return encoder
}

// Stream results as JSONL, one object per row in header order
func (e *Executor) writeJSONL(t *table.Table, w io.Writer) error {
	encoder := e.encoder(w)
	for _, row := range t.All() {
		if err := encoder.Encode(database.RowMap(row)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) writeJSON(t *table.Table, w io.Writer) error {
	return e.encoder(w).Encode(database.TableMaps(t))
}

func writeCSV(t *table.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, row := range t.All() {
		values, err := row.Values()
		if err != nil {
			return err
		}
		if err := cw.Write(cellStrings(values)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeAligned(t *table.Table, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Header(), "\t"))
	for _, row := range t.All() {
		values, err := row.Values()
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, strings.Join(cellStrings(values), "\t"))
	}
	fmt.Fprintf(tw, "(%d rows)\n", t.Len())
	return tw.Flush()
}

func cellStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}
