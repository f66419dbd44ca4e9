package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bisegni/eatable/pkg/database"
	"github.com/bisegni/eatable/pkg/engine"
	"github.com/bisegni/eatable/pkg/plan"
	"github.com/bisegni/eatable/pkg/planner"
	"github.com/bisegni/eatable/pkg/query"
	"github.com/bisegni/eatable/pkg/table"
	"github.com/spf13/cobra"
)

// defaultTable is the catalog name of the loaded file; queries without FROM read it.
const defaultTable = "default"

var queryCmd = &cobra.Command{
	Use:   "query [file|-] [select]",
	Short: "Run a SELECT query against a CSV file",
	Long: `Run a SELECT query against a CSV file.

The loaded file is registered as "default" and under its base name,
so "FROM people" works for people.csv. Columns may be named, quoted with
backticks, or addressed by position as #N.

Examples:
  eatable query people.csv "SELECT name, age WHERE age > 30"
  eatable query people.csv "SELECT city, COUNT(*), AVG(age) FROM people GROUP BY city"
  eatable query people.csv "SELECT x FROM (SELECT #0 AS x WHERE city = 'Waterloo')"
  cat people.csv | eatable query - "SELECT *" --format table`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !query.IsSelect(args[1]) {
			return fmt.Errorf("query must start with SELECT: %q", args[1])
		}
		return RunExpression(args[0], args[1])
	},
}

// loadCatalog reads filename (or stdin for "-") into a table and registers it.
func loadCatalog(filename string) (*database.Catalog, error) {
	t, err := loadTable(filename)
	if err != nil {
		return nil, err
	}
	catalog := database.NewCatalog()
	catalog.RegisterTable(defaultTable, t)
	if name := tableName(filename); name != "" && name != defaultTable {
		catalog.RegisterTable(name, t)
	}
	slog.Debug("table loaded", "file", filename, "rows", t.Len(), "columns", t.Width())
	return catalog, nil
}

func loadTable(filename string) (*table.Table, error) {
	var r io.Reader = os.Stdin
	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		r = file
	}

	var header []string
	if !cfg.Input.Header {
		header = cfg.Input.Columns
	}
	t, err := table.Load(table.NewCSVReader(r, cfg.Input.Comma()), header)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", displayName(filename), err)
	}
	return t, nil
}

// tableName derives a catalog name from a file path: "data/people.csv" is
// "people". Names that the query grammar cannot spell unquoted are still
// reachable with backticks, so only empty names are dropped.
func tableName(filename string) string {
	if filename == "-" {
		return ""
	}
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return ""
	}
	return name
}

func displayName(filename string) string {
	if filename == "-" {
		return "<stdin>"
	}
	return filename
}

func newExecutor() *engine.Executor {
	executor := engine.NewExecutor()
	executor.Pretty = cfg.Output.Pretty
	executor.Format = cfg.Output.Format
	return executor
}

// runOn routes expression against the catalog and writes the result to w.
func runOn(catalog *database.Catalog, expression string, w io.Writer) error {
	if err := routeError(expression); err != nil {
		return err
	}

	node, err := buildPlan(catalog, expression)
	if err != nil {
		return err
	}

	if QueryExplain {
		fmt.Fprintln(w, "Execution Plan:")
		fmt.Fprint(w, plan.FormatPlan(node))
		return nil
	}
	return newExecutor().Execute(node, w)
}

func buildPlan(catalog *database.Catalog, expression string) (plan.Node, error) {
	expression = strings.TrimSpace(expression)

	if query.IsSelect(expression) {
		q, err := query.ParseQuery(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to parse query: %w", err)
		}
		node, err := planner.CreatePlan(q, catalog, defaultTable)
		if err != nil {
			return nil, fmt.Errorf("planning error: %w", err)
		}
		return node, nil
	}

	t, err := catalog.GetTable(defaultTable)
	if err != nil {
		return nil, err
	}
	var node plan.Node = &plan.ScanNode{TableName: defaultTable, Table: t}
	if expression == "" {
		return node, nil
	}

	expr := query.ParseFilterExpression(expression)
	if expr == nil {
		return nil, fmt.Errorf("invalid filter %q", expression)
	}
	return &plan.FilterNode{Input: node, Expression: expr.Condition()}, nil
}
