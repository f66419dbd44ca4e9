package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bisegni/eatable/pkg/config"
	"github.com/bisegni/eatable/pkg/logging"
	"github.com/bisegni/eatable/pkg/query"
	"github.com/spf13/cobra"
)

var (
	QueryPretty     bool
	QueryFormat     string
	QueryExplain    bool
	QueryHeader     []string
	QueryNoHeader   bool
	QueryDelimiter  string
	InteractiveMode bool

	cfg         *config.Config
	logCleanup  = func() {}
	errNoSource = fmt.Errorf("no input: pass a CSV file or pipe one on stdin")
)

var rootCmd = &cobra.Command{
	Use:   "eatable [file|-] [query]",
	Short: "In-memory table query tool for CSV files",
	Long: `eatable loads a CSV file into an in-memory table and queries it.
If no command is provided, it defaults to querying the specified file.

The query is either a SELECT statement or a shorthand filter:
  - SELECT: eatable people.csv "SELECT name, age WHERE city = 'Waterloo'"
  - Filter: eatable people.csv "age>30"
  - Stdin:  cat people.csv | eatable "SELECT city, COUNT(*) GROUP BY city"

Examples:
  eatable people.csv
  eatable people.csv "SELECT #0 AS who FROM people WHERE age >= 30"
  eatable people.csv "city~=loo" --format table
  eatable stats people.csv
  eatable -i people.csv`,
	Args:          cobra.RangeArgs(0, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		hasStdin := stdinHasData()

		if InteractiveMode {
			if len(args) == 0 {
				return fmt.Errorf("interactive mode requires a file")
			}
			return RunInteractive(args[0])
		}

		var filename, expression string

		switch len(args) {
		case 0:
			if !hasStdin {
				return cmd.Help()
			}
			filename = "-"
		case 1:
			// With data on stdin a single argument is the query.
			if hasStdin && args[0] != "-" {
				filename = "-"
				expression = args[0]
			} else {
				filename = args[0]
			}
		default:
			filename = args[0]
			expression = args[1]
		}

		return RunExpression(filename, expression)
	},
}

// Execute runs the root command and logs a failure before returning it.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	logCleanup()
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&QueryPretty, "pretty", false, "Pretty print JSON output")
	rootCmd.PersistentFlags().StringVarP(&QueryFormat, "format", "f", "", "Output format (jsonl, json, csv, table)")
	rootCmd.PersistentFlags().BoolVar(&QueryExplain, "explain", false, "Print the execution plan instead of running the query")
	rootCmd.PersistentFlags().StringSliceVar(&QueryHeader, "header", nil, "Column names for a file without a header row (e.g., name,age)")
	rootCmd.PersistentFlags().BoolVar(&QueryNoHeader, "no-header", false, "The first record is data, not column names")
	rootCmd.PersistentFlags().StringVarP(&QueryDelimiter, "delimiter", "d", "", "Field delimiter (default \",\")")
	rootCmd.PersistentFlags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
}

// initConfig loads the environment configuration, applies flags given on
// the command line on top of it and sets up logging.
func initConfig(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("pretty") {
		loaded.Output.Pretty = QueryPretty
	}
	if flags.Changed("format") {
		loaded.Output.Format = strings.ToLower(QueryFormat)
	}
	if flags.Changed("delimiter") {
		loaded.Input.Delimiter = config.UnescapeDelimiter(QueryDelimiter)
	}
	if flags.Changed("header") {
		loaded.Input.Columns = QueryHeader
		loaded.Input.Header = false
	}
	if flags.Changed("no-header") {
		loaded.Input.Header = !QueryNoHeader
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	_, logCleanup = logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.SeqURL)
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}

func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// RunExpression loads filename and runs a SELECT, a shorthand filter, or,
// when expression is empty, writes the whole table.
func RunExpression(filename, expression string) error {
	if filename == "-" && !stdinHasData() {
		return errNoSource
	}
	catalog, err := loadCatalog(filename)
	if err != nil {
		return err
	}
	return runOn(catalog, expression, os.Stdout)
}

func routeError(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return nil
	}
	if query.IsSelect(expression) || query.IsFilterExpression(expression) {
		return nil
	}
	return fmt.Errorf("unrecognized query %q: expected SELECT ... or a filter like age>30", expression)
}
