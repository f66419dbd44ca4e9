package plan

import (
	"strings"

	"github.com/bisegni/eatable/pkg/table"
)

// Node represents an execution node in the query plan.
// Execute materializes the node's output as a new table; the input tables
// are never modified.
type Node interface {
	Execute() (*table.Table, error)
	Children() []Node
	Explain() string
}

// FormatPlan generates a visual string representation of the plan tree
func FormatPlan(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n, "", true)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node, prefix string, last bool) {
	branch, indent := "├─ ", "│  "
	if last {
		branch, indent = "└─ ", "   "
	}
	sb.WriteString(prefix + branch + n.Explain() + "\n")

	children := n.Children()
	for i, child := range children {
		writeNode(sb, child, prefix+indent, i == len(children)-1)
	}
}
