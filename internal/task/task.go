// Package task implements the identified unit of work that DAGs schedule:
// an immutable id, a human name, a declared predecessor set, and an Action.
package task

import (
	"context"
	"sync/atomic"

	"github.com/taskgraph/dagrs/internal/environment"
	"github.com/taskgraph/dagrs/internal/value"
)

// ID is a process-wide monotonically increasing non-zero integer. Ids are
// stable for the life of a Task object and are the sole identity used inside
// a Graph; names are metadata only.
type ID int64

// counter backs the global id allocator. Zero is reserved as "no id"; the
// first allocated id is 1. Wrap-around is not handled — the core assumes a
// 64-bit counter never exhausts in a process lifetime.
var counter int64

// NextID allocates the next process-wide TaskID.
func NextID() ID {
	return ID(atomic.AddInt64(&counter, 1))
}

// Action is the capability every task carries: given an input bundle and a
// read-only environment handle, produce an output envelope or fail. The core
// scheduler never switches on what kind of Action it is running.
type Action interface {
	Run(ctx context.Context, input value.Input, env *environment.Environment) (value.Output, error)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context, input value.Input, env *environment.Environment) (value.Output, error)

// Run implements Action.
func (f ActionFunc) Run(ctx context.Context, input value.Input, env *environment.Environment) (value.Output, error) {
	return f(ctx, input, env)
}

// Task is an identified unit of work with a declared predecessor set and an
// Action. Predecessors are tracked by id in declaration order; set via
// SetPredecessors before a Task is handed to a Dag.
type Task struct {
	id           ID
	name         string
	predecessors []ID
	action       Action
}

// New allocates a Task with a fresh id and the given human-readable name. The
// task has no action and no predecessors until configured.
func New(name string) *Task {
	return &Task{id: NextID(), name: name}
}

// WithClosure is a convenience constructor combining New and SetAction for a
// closure action.
func WithClosure(name string, fn ActionFunc) *Task {
	t := New(name)
	t.SetAction(fn)
	return t
}

// WithAction is a convenience constructor combining New and SetAction.
func WithAction(name string, action Action) *Task {
	t := New(name)
	t.SetAction(action)
	return t
}

// ID returns the task's process-wide unique identifier.
func (t *Task) ID() ID { return t.id }

// Name returns the task's human-readable name. Names are metadata only and
// are never used for graph identity.
func (t *Task) Name() string { return t.name }

// Predecessors returns the ordered list of predecessor ids declared on this
// task.
func (t *Task) Predecessors() []ID {
	cp := make([]ID, len(t.predecessors))
	copy(cp, t.predecessors)
	return cp
}

// SetPredecessors replaces the predecessor set with the ids of the given
// tasks, preserving call order. Changing predecessors after a Dag built from
// this task has already been initialized has no effect on that Dag's frozen
// graph — the Dag copies the declaration at Init time.
func (t *Task) SetPredecessors(tasks ...*Task) {
	ids := make([]ID, len(tasks))
	for i, p := range tasks {
		ids[i] = p.ID()
	}
	t.predecessors = ids
}

// SetAction installs the task's Action.
func (t *Task) SetAction(action Action) { t.action = action }

// Action returns the task's installed Action, or nil if none was set.
func (t *Task) Action() Action { return t.action }
