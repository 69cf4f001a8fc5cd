package queryworker

import (
	"context"
	"errors"

	"github.com/wavemark/fathom/internal/spatialindex"
)

// ErrQueueClosed is returned by Send once the queue has been closed; the
// HTTP layer surfaces this as the documented channel-send-failure 500.
var ErrQueueClosed = errors.New("queryworker: queue is closed")

// Queue is the unbounded multi-producer (HTTP handlers), single-consumer
// (Run) queue of pending tasks. It is backed by an internal goroutine
// holding a growable slice buffer between two unbuffered channels, rather
// than a fixed-capacity Go channel, so depth is bounded only by memory --
// a producer send never blocks on, or is rejected for, queue depth.
type Queue struct {
	in  chan *Task
	out chan *Task
}

// NewQueue returns an empty queue and starts its buffering goroutine.
func NewQueue() *Queue {
	q := &Queue{
		in:  make(chan *Task),
		out: make(chan *Task),
	}
	go q.buffer()
	return q
}

// buffer relays tasks from in to out through a growable slice, so sends on
// in never block waiting for a consumer to catch up.
func (q *Queue) buffer() {
	var pending []*Task
	for {
		if len(pending) == 0 {
			task, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			pending = append(pending, task)
			continue
		}

		select {
		case task, ok := <-q.in:
			if !ok {
				for _, t := range pending {
					q.out <- t
				}
				close(q.out)
				return
			}
			pending = append(pending, task)
		case q.out <- pending[0]:
			pending = pending[1:]
		}
	}
}

// Send enqueues task. It returns ErrQueueClosed if the queue has already
// been closed; a queue with a healthy consumer never blocks or rejects a
// send for capacity reasons.
func (q *Queue) Send(task *Task) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrQueueClosed
		}
	}()
	q.in <- task
	return nil
}

// Close shuts the queue down; any in-flight or future Send returns
// ErrQueueClosed.
func (q *Queue) Close() {
	close(q.in)
}

// Run drains q against idx until ctx is cancelled or q is closed and
// emptied. Each task transitions
// Waiting -> Processing once dequeued, then its matching nodes are
// appended one at a time -- the task's write lock is acquired fresh for
// every append, never held across the Search call or across the
// iteration over its results, so a concurrent /results poll is never
// blocked behind a long-running query.
func Run(ctx context.Context, q *Queue, idx *spatialindex.Index) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-q.out:
			if !ok {
				return
			}
			process(task, idx)
		}
	}
}

func process(task *Task, idx *spatialindex.Index) {
	task.setState(Processing)
	for _, node := range idx.Search(task.Region) {
		task.appendResult(node)
	}
	task.setState(Complete)
}
