package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregators
type fieldAggregator interface {
	Add(val interface{})
	Result() interface{}
}

func createAggregator(funcName string) fieldAggregator {
	switch strings.ToUpper(funcName) {
	case "MAX":
		return &extremeAggregator{want: 1}
	case "MIN":
		return &extremeAggregator{want: -1}
	case "AVG":
		return &avgAggregator{}
	case "SUM":
		return &sumAggregator{}
	default:
		return &countAggregator{}
	}
}

// MIN / MAX. Values are ordered numerically when both parse as numbers,
// as strings otherwise. The winning cell is returned unchanged.
type extremeAggregator struct {
	want int
	val  interface{}
	set  bool
}

func (a *extremeAggregator) Add(v interface{}) {
	if isBlank(v) {
		return
	}
	if !a.set || compareCells(v, a.val) == a.want {
		a.val = v
		a.set = true
	}
}

func (a *extremeAggregator) Result() interface{} {
	return a.val
}

// AVG
type avgAggregator struct {
	sum   decimal.Decimal
	count int64
}

func (a *avgAggregator) Add(v interface{}) {
	d, ok := toDecimal(v)
	if ok {
		a.sum = a.sum.Add(d)
		a.count++
	}
}

func (a *avgAggregator) Result() interface{} {
	if a.count == 0 {
		return nil
	}
	return a.sum.Div(decimal.NewFromInt(a.count)).String()
}

// COUNT counts non-blank values; COUNT(*) feeds it a placeholder per row.
type countAggregator struct {
	count int
}

func (a *countAggregator) Add(v interface{}) {
	if !isBlank(v) {
		a.count++
	}
}

func (a *countAggregator) Result() interface{} {
	return a.count
}

// SUM
type sumAggregator struct {
	sum decimal.Decimal
}

func (a *sumAggregator) Add(v interface{}) {
	d, ok := toDecimal(v)
	if ok {
		a.sum = a.sum.Add(d)
	}
}

func (a *sumAggregator) Result() interface{} {
	return a.sum.String()
}

// Helpers

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case float64:
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt32(val), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func compareCells(a, b interface{}) int {
	ad, aok := toDecimal(a)
	bd, bok := toDecimal(b)
	if aok && bok {
		return ad.Cmp(bd)
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}
