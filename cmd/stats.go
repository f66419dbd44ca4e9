package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bisegni/eatable/pkg/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file|-]",
	Short: "Show statistics about a CSV file",
	Long: `Display statistics about a CSV file including row count, column count
and, per column, how many cells are filled and how many of them are numeric.

Examples:
  eatable stats people.csv
  cat people.csv | eatable stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

// columnStats summarizes one column.
type columnStats struct {
	Name    string
	Filled  int
	Numeric int
	Min     decimal.Decimal
	Max     decimal.Decimal
}

func runStats(cmd *cobra.Command, args []string) error {
	filename := "-"
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "-" && !stdinHasData() {
		return errNoSource
	}

	t, err := loadTable(filename)
	if err != nil {
		return err
	}

	stats, err := gatherStats(t)
	if err != nil {
		return err
	}
	printStats(os.Stdout, displayName(filename), t, stats)
	return nil
}

func gatherStats(t *table.Table) ([]columnStats, error) {
	header := t.Header()
	stats := make([]columnStats, len(header))

	for i, name := range header {
		cells, err := t.Column(i)
		if err != nil {
			return nil, err
		}
		s := columnStats{Name: name}
		for _, cell := range cells {
			text := strings.TrimSpace(fmt.Sprint(cell))
			if cell == nil || text == "" {
				continue
			}
			s.Filled++
			d, err := decimal.NewFromString(text)
			if err != nil {
				continue
			}
			if s.Numeric == 0 || d.LessThan(s.Min) {
				s.Min = d
			}
			if s.Numeric == 0 || d.GreaterThan(s.Max) {
				s.Max = d
			}
			s.Numeric++
		}
		stats[i] = s
	}
	return stats, nil
}

func printStats(w io.Writer, name string, t *table.Table, stats []columnStats) {
	fmt.Fprintf(w, "File: %s\n", name)
	fmt.Fprintf(w, "Total rows: %d\n", t.Len())
	fmt.Fprintf(w, "Columns: %d\n", t.Width())

	fmt.Fprintf(w, "\nFields:\n")
	for i, s := range stats {
		fmt.Fprintf(w, "  #%d %s:\n", i, s.Name)
		fmt.Fprintf(w, "    filled: %d (%.1f%%)\n", s.Filled, percent(s.Filled, t.Len()))
		if s.Numeric > 0 {
			fmt.Fprintf(w, "    numeric: %d (min %s, max %s)\n", s.Numeric, s.Min, s.Max)
		}
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
