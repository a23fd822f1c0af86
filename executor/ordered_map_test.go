package executor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMapWithLength(3)

	// Out-of-order assignment still marshals in position order.
	m.Set(2, "c", 3)
	m.Set(0, "a", 1)
	m.Set(1, "b", nil)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = m.Get("d")
	assert.False(t, ok)

	buf, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":null,"c":3}`, string(buf))
}

func TestOrderedMap_Nested(t *testing.T) {
	inner := NewOrderedMapWithLength(1)
	inner.Set(0, "x", "y")
	outer := NewOrderedMapWithLength(1)
	outer.Set(0, "inner", inner)

	buf, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"inner":{"x":"y"}}`, string(buf))
}
