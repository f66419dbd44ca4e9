package query

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// matchValue applies operator to a cell value and an operand.
// Cells loaded from CSV are strings, so numbers are compared numerically
// whenever both sides parse as numbers.
func matchValue(operator string, value, operand interface{}) (bool, error) {
	switch operator {
	case "=", "==":
		return compareEqual(value, operand), nil
	case "!=":
		return !compareEqual(value, operand), nil
	case ">":
		return compareOrder(value, operand) > 0, nil
	case ">=":
		return compareOrder(value, operand) >= 0, nil
	case "<":
		return compareOrder(value, operand) < 0, nil
	case "<=":
		return compareOrder(value, operand) <= 0, nil
	case "contains":
		return containsValue(value, operand), nil
	default:
		return false, fmt.Errorf("unsupported operator %q", operator)
	}
}

func compareEqual(a, b interface{}) bool {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		return af == bf
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	}
	// Fallback to string comparison for other types
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// compareOrder returns -1, 0 or 1. Non-numeric operands are ordered as strings.
func compareOrder(a, b interface{}) int {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func containsValue(a, b interface{}) bool {
	if aStr, ok := a.(string); ok {
		if bStr, ok := b.(string); ok {
			return strings.Contains(aStr, bStr)
		}
	}
	return strings.Contains(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case string:
		return parseNumber(val)
	default:
		return 0, false
	}
}

// parseNumber accepts plain decimal text only, so cells such as "NaN",
// "Inf" or "0x1p3" stay strings.
func parseNumber(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
