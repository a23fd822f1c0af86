package deferred

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveThen(t *testing.T) {
	q := NewQueue()
	d := New(q)
	var got interface{}
	next := d.Then(func(v interface{}) (interface{}, error) {
		got = v
		return v, nil
	}, nil)
	d.Resolve(42)
	v, err := q.Wait(next)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 42, v)
}

func TestThenAfterSettleStillEnqueues(t *testing.T) {
	q := NewQueue()
	d := Resolved(q, "x")
	ran := false
	next := d.Then(func(v interface{}) (interface{}, error) {
		ran = true
		return v, nil
	}, nil)
	assert.False(t, ran, "Then callbacks must never run synchronously")
	v, err := q.Wait(next)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, "x", v)
}

func TestRejectPropagates(t *testing.T) {
	q := NewQueue()
	d := New(q)
	onRejectedCalled := false
	next := d.Then(func(v interface{}) (interface{}, error) {
		t.Fatal("onFulfilled should not run")
		return nil, nil
	}, func(err error) (interface{}, error) {
		onRejectedCalled = true
		return nil, err
	})
	d.Reject(fmt.Errorf("boom"))
	_, err := q.Wait(next)
	assert.True(t, onRejectedCalled)
	assert.EqualError(t, err, "boom")
}

func TestResolveWithDeferredAdopts(t *testing.T) {
	q := NewQueue()
	inner := New(q)
	outer := New(q)
	outer.Resolve(inner)
	inner.Resolve("inner value")
	v, err := q.Wait(outer)
	require.NoError(t, err)
	assert.Equal(t, "inner value", v)
}

func TestSecondResolveIsNoOp(t *testing.T) {
	q := NewQueue()
	d := New(q)
	d.Resolve(1)
	d.Resolve(2)
	d.Reject(fmt.Errorf("ignored"))
	v, err := q.Wait(d)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestAllFulfilled(t *testing.T) {
	q := NewQueue()
	a := New(q)
	b := New(q)
	all := All(q, []interface{}{a, "plain", b})
	a.Resolve(1)
	b.Resolve(2)
	v, err := q.Wait(all)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, "plain", 2}, v)
}

func TestAllRejectsOnFirstFailure(t *testing.T) {
	q := NewQueue()
	a := New(q)
	b := New(q)
	all := All(q, []interface{}{a, b})
	b.Reject(fmt.Errorf("b failed"))
	a.Resolve(1)
	_, err := q.Wait(all)
	assert.EqualError(t, err, "b failed")
}

func TestAllEmpty(t *testing.T) {
	q := NewQueue()
	all := All(q, nil)
	v, err := q.Wait(all)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, v)
}

func TestWaitOnStillPendingIsError(t *testing.T) {
	q := NewQueue()
	d := New(q)
	_, err := q.Wait(d)
	assert.Error(t, err)
}

func TestOrderingIsFIFO(t *testing.T) {
	q := NewQueue()
	a := New(q)
	b := New(q)
	var order []int
	a.Then(func(v interface{}) (interface{}, error) {
		order = append(order, 1)
		return nil, nil
	}, nil)
	b.Then(func(v interface{}) (interface{}, error) {
		order = append(order, 2)
		return nil, nil
	}, nil)
	a.Resolve(nil)
	b.Resolve(nil)
	q.Drain()
	assert.Equal(t, []int{1, 2}, order)
}

func TestNativeAdapter(t *testing.T) {
	q := NewQueue()
	a := NewAdapter(q)
	d := New(q)
	require.True(t, a.IsDeferred(d))
	require.False(t, a.IsDeferred(5))
	chained := a.Then(d, func(v interface{}) (interface{}, error) {
		return v.(int) + 1, nil
	}, nil)
	d.Resolve(1)
	v, err := a.Wait(chained)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
