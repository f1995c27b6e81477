package dag

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/environment"
	"github.com/taskgraph/dagrs/internal/graph"
	"github.com/taskgraph/dagrs/internal/logger"
	"github.com/taskgraph/dagrs/internal/task"
	"github.com/taskgraph/dagrs/internal/value"
)

// completion is what a task's goroutine reports back to the single
// coordinating dispatcher once it finishes running.
type completion struct {
	id     task.ID
	output value.Output
	err    error
}

// run drives g to completion: it schedules ready tasks concurrently, collects
// outputs, wires them as inputs to successors, stops on the first failure,
// and returns the output of the graph's sink task.
//
// runID is pure observability metadata — it never influences scheduling —
// but it is attached to every log line this dispatch loop emits, mirroring
// the teacher's RequestID tagging of a DAG run.
func run(ctx context.Context, runID uuid.UUID, g *graph.Graph, env *environment.Environment) (value.Output, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logger.FromContext(ctx).With("run_id", runID.String())

	remaining := make(map[task.ID]int, g.Len())
	outputs := make(map[task.ID]value.Output, g.Len())
	started := make(map[task.ID]bool, g.Len())

	sequence := g.Sequence()
	for _, id := range sequence {
		t, _ := g.Task(id)
		remaining[id] = len(t.Predecessors())
	}

	done := make(chan completion, g.Len())
	var wg sync.WaitGroup
	dispatchedCount := 0

	dispatch := func(id task.ID) {
		t, _ := g.Task(id)
		started[id] = true
		dispatchedCount++
		log.Debug("dispatching task", "task", t.Name())

		preds := t.Predecessors()
		envelopes := make([]value.Output, len(preds))
		for i, p := range preds {
			envelopes[i] = outputs[p]
		}
		input := value.NewInput(envelopes)

		wg.Add(1)
		go func() {
			defer wg.Done()
			action := t.Action()
			if action == nil {
				done <- completion{id: id, output: value.Empty()}
				return
			}
			out, err := action.Run(ctx, input, env)
			done <- completion{id: id, output: out, err: err}
		}()
	}

	// Seed the ready queue with every zero-predecessor task, in sequence
	// order for determinism.
	for _, id := range sequence {
		if remaining[id] == 0 {
			dispatch(id)
		}
	}

	var failure error
	completed := 0

	// Loop until every task we actually dispatched has reported back. Tasks
	// that never become ready — because an ancestor failed and dispatch
	// stopped — are never counted here; they simply never run.
	for completed < dispatchedCount {
		c := <-done
		completed++

		if c.err != nil && failure == nil {
			name := nameOf(g, c.id)
			failure = dagerr.TaskError(name, c.err)
			log.Error("task failed", "task", name, "error", c.err)
			cancel() // best-effort: in-flight goroutines observe ctx.Done if they check it
			// Drain remaining in-flight completions without dispatching more work.
			continue
		}
		if failure != nil {
			// A prior failure already aborted dispatch; just drain.
			continue
		}

		log.Debug("task completed", "task", nameOf(g, c.id))
		outputs[c.id] = c.output

		for _, succ := range g.Successors(c.id) {
			remaining[succ]--
			if remaining[succ] == 0 && !started[succ] {
				dispatch(succ)
			}
		}
	}

	wg.Wait()

	if failure != nil {
		return value.Output{}, failure
	}
	return outputs[g.Sink()], nil
}

func nameOf(g *graph.Graph, id task.ID) string {
	if t, ok := g.Task(id); ok {
		return t.Name()
	}
	return ""
}
