package database

import (
	"bytes"
	"encoding/json"

	"github.com/bisegni/eatable/pkg/table"
)

// KeyVal is one column of a serialized row.
type KeyVal struct {
	Key string
	Val interface{}
}

// OrderedMap represents a row as a map that preserves header order.
// It is a slice of KeyVal pairs so that JSON output keeps the column order.
type OrderedMap []KeyVal

// RowMap builds an OrderedMap from a row view, in header order.
func RowMap(r *table.Row) OrderedMap {
	om := make(OrderedMap, 0, r.Table().Width())
	for name, val := range r.Pairs() {
		om = append(om, KeyVal{Key: name, Val: val})
	}
	return om
}

// TableMaps converts every row of t.
func TableMaps(t *table.Table) []OrderedMap {
	out := make([]OrderedMap, 0, t.Len())
	for _, row := range t.All() {
		out = append(out, RowMap(row))
	}
	return out
}

// MarshalJSON implements the json.Marshaler interface.
func (om OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range om {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(kv.Val)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value for a key (O(N) lookup, rows are narrow)
func (om OrderedMap) Get(key string) (interface{}, bool) {
	for _, kv := range om {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return nil, false
}

// Keys returns the column names in order.
func (om OrderedMap) Keys() []string {
	keys := make([]string, len(om))
	for i, kv := range om {
		keys[i] = kv.Key
	}
	return keys
}

// String implements fmt.Stringer
func (om OrderedMap) String() string {
	b, _ := om.MarshalJSON()
	return string(b)
}
