package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bisegni/eatable/pkg/engine"
	"github.com/spf13/cobra"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert a CSV file to JSONL, JSON, CSV or an aligned table",
	Long: `Convert a CSV file to another representation.
Converting to csv normalizes quoting and the delimiter.
Examples:
  eatable convert people.csv --to jsonl
  eatable convert people.csv --to json --pretty
  eatable convert people.tsv -d "\t" --to csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "to", "t", "", "Target format (jsonl, json, csv, table)")
	convertCmd.MarkFlagRequired("to")
}

func runConvert(cmd *cobra.Command, args []string) error {
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

	executor := newExecutor()
	executor.Format = strings.ToLower(convertOutput)
	if !engine.ValidFormat(executor.Format) {
		return fmt.Errorf("unknown target format %q: expected jsonl, json, csv or table", convertOutput)
	}
	return executor.WriteTable(t, os.Stdout)
}
