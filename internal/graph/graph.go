// Package graph validates a set of tasks into an acyclic dependency graph and
// computes the deterministic topological execution sequence the executor
// replays every run.
package graph

import (
	"sort"

	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/task"
)

// Graph is the validated, immutable internal representation of a DAG. Build
// it once via New; it never changes after that, even if the originating
// tasks' predecessor lists are mutated later.
type Graph struct {
	tasks      map[task.ID]*task.Task
	successors map[task.ID][]task.ID // forward adjacency: predecessor -> successors
	sequence   []task.ID             // deterministic topological order
}

// New validates tasks and builds their Graph. It performs, in order: the
// emptiness check, the closure check, and cycle detection via Kahn's
// algorithm with ties broken by ascending TaskID for determinism. Validation
// is idempotent: calling New again with an unchanged task set yields the same
// sequence.
func New(tasks []*task.Task) (*Graph, error) {
	if len(tasks) == 0 {
		return nil, dagerr.EmptyJob()
	}

	byID := make(map[task.ID]*task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID()] = t
	}

	// Closure check: every declared predecessor must resolve inside this set.
	for _, t := range tasks {
		for _, pred := range t.Predecessors() {
			if _, ok := byID[pred]; !ok {
				return nil, dagerr.RelyTaskIllegal(t.Name())
			}
		}
	}

	successors := make(map[task.ID][]task.ID, len(tasks))
	inDegree := make(map[task.ID]int, len(tasks))
	for _, t := range tasks {
		inDegree[t.ID()] = len(t.Predecessors())
		for _, pred := range t.Predecessors() {
			successors[pred] = append(successors[pred], t.ID())
		}
	}

	// Kahn's algorithm. A min-heap would be overkill at the scale this engine
	// targets; tasks.len() is typically small, so a sorted-scan each round
	// keeps the ready set deterministic without extra machinery.
	remaining := make(map[task.ID]int, len(inDegree))
	for id, d := range inDegree {
		remaining[id] = d
	}

	sequence := make([]task.ID, 0, len(tasks))
	for len(sequence) < len(tasks) {
		var ready []task.ID
		for id, d := range remaining {
			if d == 0 {
				ready = append(ready, id)
			}
		}
		if len(ready) == 0 {
			return nil, dagerr.LoopGraph()
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

		for _, id := range ready {
			delete(remaining, id)
			sequence = append(sequence, id)
			for _, succ := range successors[id] {
				remaining[succ]--
			}
		}
	}

	return &Graph{tasks: byID, successors: successors, sequence: sequence}, nil
}

// Sequence returns the deterministic topological execution order.
func (g *Graph) Sequence() []task.ID {
	cp := make([]task.ID, len(g.sequence))
	copy(cp, g.sequence)
	return cp
}

// Task looks up a task by id within this graph.
func (g *Graph) Task(id task.ID) (*task.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Successors returns the ids of tasks that directly depend on id.
func (g *Graph) Successors(id task.ID) []task.ID {
	cp := make([]task.ID, len(g.successors[id]))
	copy(cp, g.successors[id])
	return cp
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int { return len(g.tasks) }

// Sink returns the last task in the topological sequence. The DAG's final
// result is defined as this task's output envelope: the topological sink,
// not necessarily the last task declared in source order.
func (g *Graph) Sink() task.ID {
	return g.sequence[len(g.sequence)-1]
}
