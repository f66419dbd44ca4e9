package query

import (
	"fmt"

	"github.com/bisegni/eatable/pkg/table"
)

// Expression is a boolean expression that can be evaluated against a row
type Expression interface {
	Evaluate(row *table.Row) (bool, error)
	String() string
}

// Predicate adapts an expression to a table.Predicate.
func Predicate(e Expression) table.Predicate {
	if e == nil {
		return nil
	}
	return e.Evaluate
}

// Condition compares a column with a literal Value, or with the column Other
// when Other is set (leaf node).
type Condition struct {
	Column   any
	Operator string
	Value    interface{}
	Other    any
}

func (c *Condition) Evaluate(row *table.Row) (bool, error) {
	left, err := row.Get(c.Column)
	if err != nil {
		return false, err
	}
	right := c.Value
	if c.Other != nil {
		right, err = row.Get(c.Other)
		if err != nil {
			return false, err
		}
	}
	return matchValue(c.Operator, left, right)
}

func (c *Condition) String() string {
	right := fmt.Sprintf("%q", fmt.Sprint(c.Value))
	if _, ok := c.Value.(float64); ok {
		right = fmt.Sprint(c.Value)
	}
	if c.Other != nil {
		right = refString(c.Other)
	}
	return fmt.Sprintf("%s %s %s", refString(c.Column), c.Operator, right)
}

// AndExpression represents Logical AND
type AndExpression struct {
	Left  Expression
	Right Expression
}

func (a *AndExpression) Evaluate(row *table.Row) (bool, error) {
	ok, err := a.Left.Evaluate(row)
	if err != nil || !ok {
		return false, err
	}
	return a.Right.Evaluate(row)
}

func (a *AndExpression) String() string {
	return "(" + a.Left.String() + " AND " + a.Right.String() + ")"
}

// OrExpression represents Logical OR
type OrExpression struct {
	Left  Expression
	Right Expression
}

func (o *OrExpression) Evaluate(row *table.Row) (bool, error) {
	ok, err := o.Left.Evaluate(row)
	if err != nil || ok {
		return ok, err
	}
	return o.Right.Evaluate(row)
}

func (o *OrExpression) String() string {
	return "(" + o.Left.String() + " OR " + o.Right.String() + ")"
}
