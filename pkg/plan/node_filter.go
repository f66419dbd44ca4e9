package plan

import (
	"fmt"

	"github.com/bisegni/eatable/pkg/query"
	"github.com/bisegni/eatable/pkg/table"
)

// FilterNode filters rows based on an expression
type FilterNode struct {
	Input      Node
	Expression query.Expression
}

func (n *FilterNode) Execute() (*table.Table, error) {
	input, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}
	out, err := input.Select(nil, query.Predicate(n.Expression))
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", n.Expression, err)
	}
	return out, nil
}

func (n *FilterNode) Children() []Node {
	return []Node{n.Input}
}

func (n *FilterNode) Explain() string {
	return "Filter(expression: " + n.Expression.String() + ")"
}
