package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bisegni/eatable/pkg/database"
	"github.com/bisegni/eatable/pkg/engine"
	"github.com/chzyer/readline"
)

const interactiveHelp = `Commands:
  SELECT ...             run a query (FROM defaults to the loaded file)
  age>30                 shorthand filter on the loaded file
  .tables                list tables
  .explain on|off        print plans instead of results
  .format FORMAT         switch output format (jsonl, json, csv, table)
  .help                  show this help
  exit | quit            leave`

// RunInteractive loads filename once and answers queries until EOF or exit.
func RunInteractive(filename string) error {
	catalog, err := loadCatalog(filename)
	if err != nil {
		return err
	}

	fmt.Println("Interactive mode enabled. Type 'exit' or 'quit' to leave, '.help' for commands.")
	fmt.Printf("Loaded %s as table %q\n", filename, tableNameOrDefault(filename))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eatable> ",
		HistoryFile:     "", // In-memory history for this session
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit") {
			break
		}

		if err := executeInteractive(catalog, trimmed, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}

// executeInteractive handles one REPL line: a dot command or a query.
func executeInteractive(catalog *database.Catalog, line string, w io.Writer) error {
	if !strings.HasPrefix(line, ".") {
		return runOn(catalog, line, w)
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ".tables":
		for _, name := range catalog.Names() {
			t, err := catalog.GetTable(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s (%d rows, %d columns)\n", name, t.Len(), t.Width())
		}
		return nil
	case ".explain":
		if len(fields) != 2 {
			return fmt.Errorf("usage: .explain on|off")
		}
		switch strings.ToLower(fields[1]) {
		case "on":
			QueryExplain = true
		case "off":
			QueryExplain = false
		default:
			return fmt.Errorf("usage: .explain on|off")
		}
		return nil
	case ".format":
		if len(fields) != 2 || !engine.ValidFormat(fields[1]) {
			return fmt.Errorf("usage: .format jsonl|json|csv|table")
		}
		cfg.Output.Format = strings.ToLower(fields[1])
		return nil
	case ".help":
		fmt.Fprintln(w, interactiveHelp)
		return nil
	default:
		return fmt.Errorf("unknown command %s (try .help)", fields[0])
	}
}

func tableNameOrDefault(filename string) string {
	if name := tableName(filename); name != "" {
		return name
	}
	return defaultTable
}
