package deferred

import "fmt"

// Queue is a single-threaded, FIFO task queue. Then callbacks and
// settlement reactions are enqueued here rather than invoked inline, so
// ordering within one resolution step matches field-declaration order.
type Queue struct {
	tasks []func()
}

// NewQueue returns an empty queue. Callers typically create one per
// execution: the scheduler's task queue is per-invocation, so concurrent
// executions must each use their own.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) enqueue(task func()) {
	q.tasks = append(q.tasks, task)
}

// Defer schedules task to run on a later pump of the queue, after every
// task already enqueued. It's the host-facing way to sequence work with
// settlement reactions, e.g. to settle a Deferred "on the next tick".
func (q *Queue) Defer(task func()) {
	q.enqueue(task)
}

// runOne pops and runs the oldest queued task, reporting whether there was
// one to run.
func (q *Queue) runOne() bool {
	if len(q.tasks) == 0 {
		return false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	task()
	return true
}

// Wait pumps the queue while d is pending and the queue is non-empty, then
// returns d's settled value or reason. A Deferred that is still pending
// once the queue runs dry is a programming error: some resolver returned a
// Deferred that nothing will ever settle.
func (q *Queue) Wait(d *Deferred) (interface{}, error) {
	for d.state == Pending {
		if !q.runOne() {
			break
		}
	}
	if d.state == Pending {
		return nil, fmt.Errorf("deferred: task queue drained with a pending value still outstanding")
	}
	return d.value, d.reason
}

// Drain runs every currently queued task (including ones newly enqueued by
// running them) until the queue is empty, without reference to any
// particular Deferred. Hosts driving their own event loop alongside the
// engine can use this to flush settlement reactions between ticks.
func (q *Queue) Drain() {
	for q.runOne() {
	}
}
