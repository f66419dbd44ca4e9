package plan

import (
	"fmt"
	"strings"

	"github.com/bisegni/eatable/pkg/query"
	"github.com/bisegni/eatable/pkg/table"
)

// ProjectNode projects fields
type ProjectNode struct {
	Input  Node
	Fields []query.Field
}

func (n *ProjectNode) Execute() (*table.Table, error) {
	input, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}

	header := input.Header()
	var columns []any
	var names []string
	for _, f := range n.Fields {
		if f.Star {
			for i, name := range header {
				columns = append(columns, i)
				names = append(names, name)
			}
			continue
		}
		pos, err := input.ResolveColumn(f.Column)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", f, err)
		}
		name := f.Alias
		if name == "" {
			name = header[pos]
		}
		columns = append(columns, pos)
		names = append(names, name)
	}

	out, err := table.New(names)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	for pos, row := range input.All() {
		values, err := row.Select(columns...)
		if err != nil {
			return nil, fmt.Errorf("project: row %d: %w", pos, err)
		}
		if err := out.Append(values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (n *ProjectNode) Children() []Node {
	return []Node{n.Input}
}

func (n *ProjectNode) Explain() string {
	fields := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("Project(%s)", strings.Join(fields, ", "))
}
