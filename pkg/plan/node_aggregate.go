package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bisegni/eatable/pkg/query"
	"github.com/bisegni/eatable/pkg/table"
)

// AggregateNode handles GroupBy and Aggregations
type AggregateNode struct {
	Input   Node
	GroupBy any // column reference, nil for a single global group
	Fields  []query.Field
}

func (n *AggregateNode) Execute() (*table.Table, error) {
	input, err := n.Input.Execute()
	if err != nil {
		return nil, err
	}

	groupCol := -1
	if n.GroupBy != nil {
		if groupCol, err = input.ResolveColumn(n.GroupBy); err != nil {
			return nil, fmt.Errorf("group by: %w", err)
		}
	}

	specs, header, err := n.compile(input, groupCol)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*groupState)
	var keys []string
	for _, row := range input.All() {
		key := ""
		var keyVal any
		if groupCol >= 0 {
			if keyVal, err = row.Get(groupCol); err != nil {
				return nil, err
			}
			key = fmt.Sprintf("%v", keyVal)
		}
		state, ok := groups[key]
		if !ok {
			state = newGroupState(keyVal, specs)
			groups[key] = state
			keys = append(keys, key)
		}
		if err := state.update(row); err != nil {
			return nil, err
		}
	}

	// A global aggregate over no rows still yields one row (COUNT = 0).
	if groupCol < 0 && len(keys) == 0 {
		groups[""] = newGroupState(nil, specs)
		keys = append(keys, "")
	}
	// Numeric keys sort by value, the rest as text.
	sort.Slice(keys, func(i, j int) bool {
		if c := compareCells(groups[keys[i]].key, groups[keys[j]].key); c != 0 {
			return c < 0
		}
		return keys[i] < keys[j]
	})

	out, err := table.New(header)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	for _, key := range keys {
		if err := out.Append(groups[key].finalize()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// aggSpec is a field bound to a resolved column; col is -1 for COUNT(*).
type aggSpec struct {
	fn  string
	col int
}

func (n *AggregateNode) compile(input *table.Table, groupCol int) ([]aggSpec, []string, error) {
	header := input.Header()
	specs := make([]aggSpec, len(n.Fields))
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		if f.Star {
			return nil, nil, fmt.Errorf("'*' cannot be combined with aggregation")
		}
		col := -1
		if f.Column != nil {
			pos, err := input.ResolveColumn(f.Column)
			if err != nil {
				return nil, nil, fmt.Errorf("aggregate %s: %w", f, err)
			}
			col = pos
		}
		if f.Aggregate == "" && col != groupCol {
			return nil, nil, fmt.Errorf("column %s must appear in GROUP BY or be aggregated", f)
		}
		specs[i] = aggSpec{fn: f.Aggregate, col: col}

		switch {
		case f.Alias != "":
			names[i] = f.Alias
		case f.Aggregate == "":
			names[i] = header[col]
		case col < 0:
			names[i] = f.Aggregate
		default:
			names[i] = f.Aggregate + "_" + strings.ReplaceAll(header[col], " ", "_")
		}
	}
	return specs, names, nil
}

func (n *AggregateNode) Children() []Node {
	return []Node{n.Input}
}

func (n *AggregateNode) Explain() string {
	var fieldStrings []string
	for _, f := range n.Fields {
		fieldStrings = append(fieldStrings, f.String())
	}
	group := "global"
	if n.GroupBy != nil {
		group = fmt.Sprintf("%v", n.GroupBy)
	}
	return fmt.Sprintf("Aggregate(group: %s, fields: [%s])", group, strings.Join(fieldStrings, ", "))
}

type groupState struct {
	key   any
	specs []aggSpec
	aggs  []fieldAggregator
}

func newGroupState(key any, specs []aggSpec) *groupState {
	s := &groupState{
		key:   key,
		specs: specs,
		aggs:  make([]fieldAggregator, len(specs)),
	}
	for i, spec := range specs {
		if spec.fn != "" {
			s.aggs[i] = createAggregator(spec.fn)
		}
	}
	return s
}

func (s *groupState) update(row *table.Row) error {
	for i, spec := range s.specs {
		if s.aggs[i] == nil {
			continue
		}
		if spec.col < 0 {
			s.aggs[i].Add(struct{}{})
			continue
		}
		val, err := row.Get(spec.col)
		if err != nil {
			return err
		}
		s.aggs[i].Add(val)
	}
	return nil
}

func (s *groupState) finalize() []any {
	out := make([]any, len(s.specs))
	for i := range s.specs {
		if s.aggs[i] == nil {
			out[i] = s.key
			continue
		}
		out[i] = s.aggs[i].Result()
	}
	return out
}
