package queryworker

import (
	"sync"

	"github.com/google/uuid"
)

// JobTable is the server-wide registry of in-flight and completed tasks,
// keyed by token. Writers hold the lock only across the map insertion
// itself; they never hold it while touching a Task's own fields.
type JobTable struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

// NewJobTable returns an empty table.
func NewJobTable() *JobTable {
	return &JobTable{tasks: make(map[uuid.UUID]*Task)}
}

// Insert registers t under its ID.
func (jt *JobTable) Insert(t *Task) {
	jt.mu.Lock()
	defer jt.mu.Unlock()
	jt.tasks[t.ID] = t
}

// Lookup returns the task for id, or ok=false if no such task exists.
func (jt *JobTable) Lookup(id uuid.UUID) (*Task, bool) {
	jt.mu.RLock()
	defer jt.mu.RUnlock()
	t, ok := jt.tasks[id]
	return t, ok
}
