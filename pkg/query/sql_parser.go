package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Field represents a selected column with optional alias and aggregation
type Field struct {
	Column    any    // column name (string) or position (int); nil for '*' and COUNT(*)
	Star      bool   // SELECT *
	Alias     string // output column name, empty to keep the source name
	Aggregate string // "MAX", "MIN", "AVG", "COUNT", "SUM" or empty
}

func (f Field) String() string {
	if f.Star {
		return "*"
	}
	s := refString(f.Column)
	if f.Aggregate != "" {
		if f.Column == nil {
			s = "*"
		}
		s = fmt.Sprintf("%s(%s)", f.Aggregate, s)
	}
	if f.Alias != "" {
		s += " AS " + f.Alias
	}
	return s
}

// SelectQuery represents a parsed SQL-like query IR (Intermediate Representation)
type SelectQuery struct {
	Fields    []Field
	FromTable string       // Name of the table if source is a table
	FromQuery *SelectQuery // Recursive subquery if source is another query
	Filter    Expression   // Compiled expression tree for the WHERE clause
	GroupBy   any          // column reference, nil when not grouping
}

// HasAggregation reports whether the query groups or aggregates.
func (q *SelectQuery) HasAggregation() bool {
	if q.GroupBy != nil {
		return true
	}
	for _, f := range q.Fields {
		if f.Aggregate != "" {
			return true
		}
	}
	return false
}

// Lexer definition
var (
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(SELECT|FROM|WHERE|GROUP|BY|AS|AND|OR|TRUE|FALSE|CONTAINS)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "QuotedIdent", Pattern: "`[^`]*`"},
		{Name: "Position", Pattern: `#\d+`},
		{Name: "Number", Pattern: `[-+]?\d*\.?\d+`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Operator", Pattern: `>=|<=|!=|[=<>]`},
		{Name: "Punct", Pattern: `[-+/*%,.()]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// Participle Parser
	sqlParser = participle.MustBuild[ASTSelect](
		participle.Lexer(sqlLexer),
		participle.Unquote("String", "QuotedIdent"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// IsSelect reports whether input looks like a SELECT query.
func IsSelect(input string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(input)), "SELECT")
}

// ParseQuery parses a SELECT string using Participle
func ParseQuery(input string) (*SelectQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty query")
	}

	ast, err := sqlParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return ast.ToSelectQuery()
}

func isAggregate(name string) bool {
	switch name {
	case "COUNT", "SUM", "AVG", "MIN", "MAX":
		return true
	}
	return false
}

func refString(ref any) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case int:
		return fmt.Sprintf("#%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
