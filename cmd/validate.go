package cmd

import (
	"errors"
	"fmt"

	"github.com/bisegni/eatable/pkg/table"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate that every CSV record has the header's width",
	Long: `Validate that a CSV file loads into a table: the header has unique
names and every record has as many fields as the header.

Examples:
  eatable validate people.csv
  cat people.csv | eatable validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := "-"
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "-" && !stdinHasData() {
		return errNoSource
	}

	out := cmd.OutOrStdout()
	t, err := loadTable(filename)
	if err != nil {
		var fe *table.FormatError
		if errors.As(err, &fe) {
			fmt.Fprintf(out, "❌ Validation failed: record %d has %d field(s), want %d\n", fe.Record, fe.Got, fe.Want)
		} else {
			fmt.Fprintf(out, "❌ Validation failed: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(out, "✅ Valid CSV file with %d record(s) and %d column(s)\n", t.Len(), t.Width())
	return nil
}
