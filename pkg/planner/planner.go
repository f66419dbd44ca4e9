package planner

import (
	"github.com/bisegni/eatable/pkg/database"
	"github.com/bisegni/eatable/pkg/plan"
	"github.com/bisegni/eatable/pkg/query"
)

// CreatePlan converts a Query IR into an Execution Plan.
// A query without FROM reads the catalog table named defaultTable.
func CreatePlan(q *query.SelectQuery, catalog *database.Catalog, defaultTable string) (plan.Node, error) {
	// 1. Resolve Input (FROM)
	var inputNode plan.Node

	if q.FromQuery != nil {
		subPlan, err := CreatePlan(q.FromQuery, catalog, defaultTable)
		if err != nil {
			return nil, err
		}
		inputNode = subPlan
	} else {
		name := q.FromTable
		if name == "" {
			name = defaultTable
		}
		t, err := catalog.GetTable(name)
		if err != nil {
			return nil, err
		}
		inputNode = &plan.ScanNode{TableName: name, Table: t}
	}

	var currentNode plan.Node = inputNode

	// 2. Apply WHERE (Filter)
	if q.Filter != nil {
		currentNode = &plan.FilterNode{
			Input:      currentNode,
			Expression: q.Filter,
		}
	}

	// 3. Apply GroupBy / Aggregation, or a projection unless it is a bare SELECT *
	if q.HasAggregation() {
		currentNode = &plan.AggregateNode{
			Input:   currentNode,
			GroupBy: q.GroupBy,
			Fields:  q.Fields,
		}
	} else if !selectsAll(q.Fields) {
		currentNode = &plan.ProjectNode{
			Input:  currentNode,
			Fields: q.Fields,
		}
	}

	return currentNode, nil
}

func selectsAll(fields []query.Field) bool {
	return len(fields) == 0 || (len(fields) == 1 && fields[0].Star)
}
