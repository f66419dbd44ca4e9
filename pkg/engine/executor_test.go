package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bisegni/eatable/pkg/database"
	"github.com/bisegni/eatable/pkg/planner"
	"github.com/bisegni/eatable/pkg/query"
	"github.com/bisegni/eatable/pkg/table"
)

func newCatalog(t *testing.T) *database.Catalog {
	t.Helper()
	tbl, err := table.LoadRecords([][]string{
		{"name", "age"},
		{"Alice", "20"},
		{"Bob", "30"},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := database.NewCatalog()
	c.RegisterTable("people", tbl)
	return c
}

func run(t *testing.T, e *Executor, q string) string {
	t.Helper()
	sq, err := query.ParseQuery(q)
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	node, err := planner.CreatePlan(sq, newCatalog(t), "people")
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	var buf bytes.Buffer
	if err := e.Execute(node, &buf); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return buf.String()
}

func TestExecutorFilter(t *testing.T) {
	out := run(t, NewExecutor(), "SELECT * WHERE age > 25")

	if strings.Contains(out, "Alice") {
		t.Errorf("Expected Alice to be filtered out, got: %s", out)
	}
	if out != `{"name":"Bob","age":"30"}`+"\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestExecutorFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		pretty bool
		want   string
	}{
		{
			name:   "jsonl",
			format: FormatJSONL,
			want:   "{\"who\":\"Alice\"}\n{\"who\":\"Bob\"}\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			want:   "[{\"who\":\"Alice\"},{\"who\":\"Bob\"}]\n",
		},
		{
			name:   "pretty jsonl",
			format: FormatJSONL,
			pretty: true,
			want:   "{\n  \"who\": \"Alice\"\n}\n{\n  \"who\": \"Bob\"\n}\n",
		},
		{
			name:   "csv",
			format: FormatCSV,
			want:   "who\nAlice\nBob\n",
		},
		{
			name:   "table",
			format: FormatTable,
			want:   "who\nAlice\nBob\n(2 rows)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Executor{Format: tt.format, Pretty: tt.pretty}
			if got := run(t, e, "SELECT name AS who"); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecutorAlignedColumns(t *testing.T) {
	out := run(t, &Executor{Format: FormatTable}, "SELECT name, age")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "name   age" || lines[1] != "Alice  20" {
		t.Errorf("columns not aligned: %q", out)
	}
}

func TestExecutorUnknownFormat(t *testing.T) {
	e := &Executor{Format: "xml"}
	var buf bytes.Buffer
	if err := e.WriteTable(table.MustNew("a"), &buf); err == nil {
		t.Errorf("expected error for unknown format")
	}
	if ValidFormat("xml") || !ValidFormat("CSV") {
		t.Errorf("ValidFormat disagrees with WriteTable")
	}
}

func TestWriteCSVNilCell(t *testing.T) {
	tbl := table.MustNew("a", "b")
	if err := tbl.Append([]any{nil, 3}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := (&Executor{Format: FormatCSV}).WriteTable(tbl, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a,b\n,3\n" {
		t.Errorf("unexpected csv: %q", buf.String())
	}
}
