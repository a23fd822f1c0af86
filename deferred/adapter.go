package deferred

// Adapter lets a host swap in an external async runtime in place of the
// built-in Deferred/Queue pair. The executor is written entirely against
// this interface, so it never assumes the concrete value returned by a
// resolver is a *Deferred.
type Adapter interface {
	// IsDeferred reports whether v is a pending (or settled) async value
	// this adapter understands, as opposed to a plain resolved value.
	IsDeferred(v interface{}) bool

	// Resolved returns an adapter-native value already fulfilled with
	// value. Every step of the executor's field-resolution chain is
	// expressed in terms of adapter-native values, even ones that never
	// actually suspend, so Then/All compose uniformly regardless of
	// whether a particular resolver returned synchronously.
	Resolved(value interface{}) interface{}

	// Rejected returns an adapter-native value already settled with
	// reason.
	Rejected(reason error) interface{}

	// Then chains a continuation onto d (which must satisfy IsDeferred)
	// and returns a new adapter-native value for the chain.
	Then(d interface{}, onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) interface{}

	// All combines items (a mix of adapter-native values and plain
	// values) into a single adapter-native value that settles once every
	// item has.
	All(items []interface{}) interface{}

	// Wait drives d to completion and returns its final value or error.
	Wait(d interface{}) (interface{}, error)
}

// nativeAdapter is the default Adapter, backed by this package's own
// Deferred/Queue.
type nativeAdapter struct {
	queue *Queue
}

// NewAdapter returns the built-in Adapter backed by queue.
func NewAdapter(queue *Queue) Adapter {
	return &nativeAdapter{queue: queue}
}

func (a *nativeAdapter) IsDeferred(v interface{}) bool {
	_, ok := v.(*Deferred)
	return ok
}

func (a *nativeAdapter) Resolved(value interface{}) interface{} {
	return Resolved(a.queue, value)
}

func (a *nativeAdapter) Rejected(reason error) interface{} {
	return NewRejected(a.queue, reason)
}

func (a *nativeAdapter) Then(d interface{}, onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) interface{} {
	return d.(*Deferred).Then(onFulfilled, onRejected)
}

func (a *nativeAdapter) All(items []interface{}) interface{} {
	return All(a.queue, items)
}

func (a *nativeAdapter) Wait(d interface{}) (interface{}, error) {
	dd, ok := d.(*Deferred)
	if !ok {
		return d, nil
	}
	return a.queue.Wait(dd)
}
