// Package queryworker implements the single-consumer job pipeline: HTTP
// handlers enqueue QueryTasks onto an unbounded channel, one worker
// goroutine drains it against the spatial index, and polling reads the
// task's current state and result prefix under its own lock.
package queryworker

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wavemark/fathom/internal/mapkind"
	"github.com/wavemark/fathom/internal/region"
)

// State is a QueryTask's lifecycle stage. Progression is strictly linear:
// Waiting -> Processing -> Complete.
type State int

const (
	Waiting State = iota
	Processing
	Complete
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Processing:
		return "Processing"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Task is one spatial query in flight. ID and Region are fixed at
// construction and read without locking; state and results are guarded by
// mu: the worker is the sole writer, HTTP polling is the sole external
// reader. Lock hold times are bounded to a single state change or
// a single result append, never a whole R-tree iteration.
type Task struct {
	ID     uuid.UUID
	Region region.Region

	mu      sync.RWMutex
	state   State
	results []mapkind.IndexNode
}

// NewTask creates a task in the Waiting state with an empty result list.
func NewTask(id uuid.UUID, r region.Region) *Task {
	return &Task{ID: id, Region: r, state: Waiting}
}

// State returns the task's current lifecycle stage.
func (t *Task) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// setState transitions the task to s.
func (t *Task) setState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
}

// appendResult adds one node to the task's result list under its own lock;
// callers must not hold this lock across anything but the single append.
func (t *Task) appendResult(node mapkind.IndexNode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, node)
}

// Results returns a snapshot of the task's current state and result list.
// The slice is safe for the caller to read without further locking: the
// worker only ever appends, which writes past the snapshot's length (or
// into a new backing array), so elements within the snapshot are never
// rewritten.
func (t *Task) Results() (State, []mapkind.IndexNode) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state, t.results
}
