package query

import (
	"strconv"
	"strings"
)

// FilterExpr represents a parsed shorthand filter such as "city=Waterloo"
type FilterExpr struct {
	Field    string
	Operator string
	Value    string
}

var filterOperators = []string{">=", "<=", "!=", "~=", ">", "<", "="}

// IsFilterExpression checks if a string looks like a shorthand filter
// (contains an operator) rather than a SELECT query
func IsFilterExpression(expr string) bool {
	if IsSelect(expr) {
		return false
	}
	for _, op := range filterOperators {
		if strings.Contains(expr, op) {
			return true
		}
	}
	return false
}

// ParseFilterExpression parses expressions like "age>28", "name=john", "status!=active"
func ParseFilterExpression(expr string) *FilterExpr {
	for _, op := range filterOperators {
		if idx := strings.Index(expr, op); idx > 0 {
			field := strings.TrimSpace(expr[:idx])
			value := strings.TrimSpace(expr[idx+len(op):])

			if field != "" && value != "" {
				// Convert ~= to contains for internal representation
				internalOp := op
				if op == "~=" {
					internalOp = "contains"
				}
				return &FilterExpr{
					Field:    field,
					Operator: internalOp,
					Value:    value,
				}
			}
		}
	}

	return nil
}

// Condition converts the shorthand into an expression. A field of the form
// #N refers to a column position; a numeric value compares numerically.
func (f *FilterExpr) Condition() *Condition {
	var column any = f.Field
	if strings.HasPrefix(f.Field, "#") {
		if pos, err := strconv.Atoi(f.Field[1:]); err == nil {
			column = pos
		}
	}
	var value interface{} = f.Value
	if n, ok := parseNumber(f.Value); ok {
		value = n
	}
	return &Condition{Column: column, Operator: f.Operator, Value: value}
}
