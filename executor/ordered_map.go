package executor

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string-keyed map that preserves insertion (response)
// order when marshaled, since GraphQL result objects are ordered per the
// selection set that produced them.
type OrderedMap struct {
	m     map[string]interface{}
	order []string
}

// NewOrderedMapWithLength preallocates an OrderedMap for n keys, whose
// positions are assigned by index via Set rather than by arrival order —
// field resolution may complete out of order when run concurrently, but the
// response must still reflect selection order.
func NewOrderedMapWithLength(n int) *OrderedMap {
	return &OrderedMap{
		m:     make(map[string]interface{}, n),
		order: make([]string, n),
	}
}

// Set assigns key the given value at position i.
func (m *OrderedMap) Set(i int, key string, value interface{}) {
	m.order[i] = key
	m.m[key] = value
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.m[key]
	return v, ok
}

func (m *OrderedMap) Len() int {
	return len(m.order)
}

func (m *OrderedMap) Keys() []string {
	return m.order
}

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	pairs := make([][]byte, len(m.order))
	for i, key := range m.order {
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(m.m[key])
		if err != nil {
			return nil, err
		}
		pairs[i] = bytes.Join([][]byte{keyJSON, valueJSON}, []byte{':'})
	}
	return append(append([]byte{'{'}, bytes.Join(pairs, []byte{','})...), '}'), nil
}
