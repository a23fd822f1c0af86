// Package deferred implements the engine's promise-like primitive: a
// settle-once container for an eventual value, driven by a single
// process-wide (or per-execution) FIFO task queue rather than goroutines.
// The executor suspends at exactly the points where a resolver returns a
// pending Deferred, and resumes by draining the queue.
package deferred

import "fmt"

// State is the lifecycle stage of a Deferred.
type State int

const (
	Pending State = iota
	Fulfilled
	Rejected
)

// Deferred is a settle-once container for an eventual value or rejection.
// Once settled (Fulfilled or Rejected), its state is terminal: further
// calls to Resolve/Reject are no-ops.
type Deferred struct {
	queue   *Queue
	state   State
	value   interface{}
	reason  error
	waiting []func(interface{}, error)

	// adopting is set while d follows another Deferred passed to Resolve.
	adopting bool
}

// New creates a pending Deferred bound to queue. Every continuation
// registered via Then (and every settlement reaction) is enqueued onto
// queue rather than run inline.
func New(queue *Queue) *Deferred {
	return &Deferred{queue: queue}
}

// Resolved returns a Deferred that is already fulfilled with value.
func Resolved(queue *Queue, value interface{}) *Deferred {
	d := New(queue)
	d.Resolve(value)
	return d
}

// NewRejected returns a Deferred that is already rejected with reason.
func NewRejected(queue *Queue, reason error) *Deferred {
	d := New(queue)
	d.Reject(reason)
	return d
}

// State reports the Deferred's current lifecycle stage.
func (d *Deferred) State() State {
	return d.state
}

// Resolve transitions d to fulfilled with value. If value is itself a
// *Deferred, d instead adopts its eventual state once it settles. Calls
// after the first are no-ops.
func (d *Deferred) Resolve(value interface{}) {
	if d.state != Pending || d.adopting {
		return
	}
	if inner, ok := value.(*Deferred); ok {
		d.adopting = true
		inner.subscribe(func(v interface{}, err error) {
			if err != nil {
				d.settle(Rejected, nil, err)
			} else {
				d.settle(Fulfilled, v, nil)
			}
		})
		return
	}
	d.settle(Fulfilled, value, nil)
}

// Reject transitions d to rejected with reason. Calls after the first
// Resolve or Reject are no-ops.
func (d *Deferred) Reject(reason error) {
	if d.state != Pending || d.adopting {
		return
	}
	d.settle(Rejected, nil, reason)
}

func (d *Deferred) settle(state State, value interface{}, reason error) {
	d.state = state
	d.value = value
	d.reason = reason
	waiting := d.waiting
	d.waiting = nil
	for _, fn := range waiting {
		fn := fn
		d.queue.enqueue(func() { fn(value, reason) })
	}
}

// subscribe registers fn to run (via the queue) once d settles. If d has
// already settled, fn is enqueued immediately.
func (d *Deferred) subscribe(fn func(interface{}, error)) {
	if d.state == Pending {
		d.waiting = append(d.waiting, fn)
		return
	}
	value, reason := d.value, d.reason
	d.queue.enqueue(func() { fn(value, reason) })
}

// Then returns a new Deferred that settles once d settles and the
// applicable callback (which may be nil) has run. A panic inside a
// callback becomes a rejection of the returned Deferred, mirroring how
// scalar parsing bridges into host exceptions elsewhere in the engine.
func (d *Deferred) Then(onFulfilled func(interface{}) (interface{}, error), onRejected func(error) (interface{}, error)) *Deferred {
	next := New(d.queue)
	d.subscribe(func(value interface{}, reason error) {
		defer func() {
			if r := recover(); r != nil {
				next.Reject(fmt.Errorf("%v", r))
			}
		}()
		if reason != nil {
			if onRejected == nil {
				next.Reject(reason)
				return
			}
			if v, err := onRejected(reason); err != nil {
				next.Reject(err)
			} else {
				next.Resolve(v)
			}
			return
		}
		if onFulfilled == nil {
			next.Resolve(value)
			return
		}
		if v, err := onFulfilled(value); err != nil {
			next.Reject(err)
		} else {
			next.Resolve(v)
		}
	})
	return next
}

// All settles fulfilled with an index-preserving slice once every item has
// settled fulfilled (non-*Deferred items are treated as already
// fulfilled), or rejects with the reason of the first item to reject.
func All(queue *Queue, items []interface{}) *Deferred {
	result := New(queue)
	n := len(items)
	if n == 0 {
		result.Resolve([]interface{}{})
		return result
	}

	values := make([]interface{}, n)
	remaining := n
	settled := false

	for i, item := range items {
		i := i
		inner, ok := item.(*Deferred)
		if !ok {
			values[i] = item
			remaining--
			continue
		}
		inner.subscribe(func(v interface{}, err error) {
			if settled {
				return
			}
			if err != nil {
				settled = true
				result.Reject(err)
				return
			}
			values[i] = v
			remaining--
			if remaining == 0 {
				settled = true
				result.Resolve(values)
			}
		})
	}

	if !settled && remaining == 0 {
		settled = true
		result.Resolve(values)
	}

	return result
}
