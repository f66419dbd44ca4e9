package plan

import (
	"fmt"

	"github.com/bisegni/eatable/pkg/table"
)

// ScanNode scans a table
type ScanNode struct {
	TableName string
	Table     *table.Table
}

func (n *ScanNode) Execute() (*table.Table, error) {
	if n.Table == nil {
		return nil, fmt.Errorf("scan %s: no table", n.TableName)
	}
	return n.Table, nil
}

func (n *ScanNode) Children() []Node {
	return nil
}

func (n *ScanNode) Explain() string {
	if n.Table == nil {
		return fmt.Sprintf("Scan(table: %s)", n.TableName)
	}
	return fmt.Sprintf("Scan(table: %s, rows: %d, columns: %d)", n.TableName, n.Table.Len(), n.Table.Width())
}
