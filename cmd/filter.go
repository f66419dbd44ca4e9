package cmd

import (
	"os"

	"github.com/bisegni/eatable/pkg/plan"
	"github.com/bisegni/eatable/pkg/query"
	"github.com/spf13/cobra"
)

var (
	filterField    string
	filterOperator string
	filterValue    string
)

var filterCmd = &cobra.Command{
	Use:   "filter [file|-]",
	Short: "Filter CSV rows based on a condition",
	Long: `Filter rows of a CSV file on a single column condition.
Numeric values compare numerically, everything else as text.
Examples:
  eatable filter people.csv --field age --op ">" --value 30
  eatable filter people.csv --field city --op "=" --value Waterloo
  eatable filter people.csv --field "#0" --op contains --value an`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterField, "field", "", "Column name, or #N for a position")
	filterCmd.Flags().StringVar(&filterOperator, "op", "=", "Operator (=, !=, >, >=, <, <=, contains)")
	filterCmd.Flags().StringVar(&filterValue, "value", "", "Value to compare against")
	filterCmd.MarkFlagRequired("field")
	filterCmd.MarkFlagRequired("value")
}

func runFilter(cmd *cobra.Command, args []string) error {
	filename := "-"
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "-" && !stdinHasData() {
		return errNoSource
	}

	catalog, err := loadCatalog(filename)
	if err != nil {
		return err
	}
	t, err := catalog.GetTable(defaultTable)
	if err != nil {
		return err
	}

	f := &query.FilterExpr{Field: filterField, Operator: filterOperator, Value: filterValue}
	node := &plan.FilterNode{
		Input:      &plan.ScanNode{TableName: defaultTable, Table: t},
		Expression: f.Condition(),
	}
	return newExecutor().Execute(node, os.Stdout)
}
