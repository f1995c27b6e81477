// Package dag ties the task set, the validated graph, the environment and the
// executor together into a single runnable unit: a Dag.
package dag

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/environment"
	"github.com/taskgraph/dagrs/internal/graph"
	"github.com/taskgraph/dagrs/internal/logger"
	yamlparser "github.com/taskgraph/dagrs/internal/parser/yaml"
	"github.com/taskgraph/dagrs/internal/task"
	"github.com/taskgraph/dagrs/internal/value"
)

// Dag owns a task set, the computed execution sequence, the environment, a
// per-task output cache, and the final-result handle. Build one with
// WithTasks or WithYAML, optionally SetEnv, then Start it at most once.
type Dag struct {
	tasks []*task.Task
	env   *environment.Environment

	mu        sync.Mutex
	graph     *graph.Graph
	running   atomic.Bool
	result    value.Output
	hasResult bool
}

// WithTasks builds a Dag from an in-memory task set. The Dag is not yet
// validated — Init (called automatically by Start, or explicitly by an
// owning Engine) performs the emptiness check, the closure check, and cycle
// detection.
func WithTasks(tasks ...*task.Task) *Dag {
	return &Dag{tasks: tasks, env: environment.New()}
}

// WithYAML builds a Dag by parsing the declarative document at path. env
// seeds the Dag's Environment (e.g. a "base" key a script expects) before
// any task runs.
func WithYAML(path string, env map[string]any) (*Dag, error) {
	tasks, err := yamlparser.TasksFromFile(path)
	if err != nil {
		return nil, err
	}
	d := WithTasks(tasks...)
	for k, v := range env {
		d.env.Set(k, v)
	}
	return d, nil
}

// SetEnv replaces the Dag's environment wholesale. The environment is
// treated as read-only once Start begins; there is no concurrent writer.
func (d *Dag) SetEnv(env *environment.Environment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.env = env
}

// Init validates the graph and computes the execution sequence. It is
// idempotent: calling it again on an unchanged task set recomputes the same
// sequence. Re-initialization after a failed build is supported (the
// previous attempt leaves no partial state behind) but is not required —
// Start calls Init itself when the Dag has not yet been validated.
func (d *Dag) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	g, err := graph.New(d.tasks)
	if err != nil {
		return err
	}
	d.graph = g
	return nil
}

// Start runs the Dag to completion, blocking the calling goroutine. It is an
// error to call Start on a Dag instance that is already running — the core
// does not support re-entrant execution of the same DAG instance in
// parallel.
func (d *Dag) Start(ctx context.Context) (value.Output, error) {
	if !d.running.CompareAndSwap(false, true) {
		return value.Output{}, dagerr.TaskError("dag: already running", nil)
	}
	defer d.running.Store(false)

	d.mu.Lock()
	g := d.graph
	env := d.env
	d.mu.Unlock()

	if g == nil {
		if err := d.Init(); err != nil {
			return value.Output{}, err
		}
		d.mu.Lock()
		g = d.graph
		d.mu.Unlock()
	}

	runID := uuid.New()
	runLog := logger.FromContext(ctx).With("run_id", runID.String())

	runLog.Debug("dag run starting")
	out, err := run(ctx, runID, g, env)
	if err != nil {
		runLog.Error("dag run failed", "error", err)
		return out, err
	}
	runLog.Debug("dag run completed")

	d.mu.Lock()
	d.result = out
	d.hasResult = true
	d.mu.Unlock()
	return out, err
}

// Result returns the final output envelope of the most recent successful
// Start call, if any.
func (d *Dag) Result() (value.Output, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result, d.hasResult
}
