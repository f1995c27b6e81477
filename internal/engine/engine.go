// Package engine implements a named registry of Dags sharing a single
// goroutine-scheduled runtime: append DAGs under a name, then run them by
// name or in insertion order.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskgraph/dagrs/internal/dag"
	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/logger"
	"github.com/taskgraph/dagrs/internal/value"
)

// Engine owns a name→Dag mapping and a parallel insertion-ordered name
// sequence (1-based) enabling deterministic sequential batch execution.
// Names are unique per Engine: a second AppendDag under an existing name is
// silently ignored, mirroring the upstream contract.
type Engine struct {
	mu       sync.RWMutex
	dags     map[string]*dag.Dag
	sequence []string

	log logger.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the Engine's logger. Defaults to logger.Default.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		dags: make(map[string]*dag.Dag),
		log:  logger.Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AppendDag adds a Dag to the Engine under name and assigns it the next
// sequence number. If name is already bound, the call is a no-op. If the
// Dag fails to initialize (graph validation), the error is logged and the
// Dag is dropped — name remains unbound.
func (e *Engine) AppendDag(name string, d *dag.Dag) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dags[name]; exists {
		return
	}
	if err := d.Init(); err != nil {
		e.log.Error("failed to initialize dag", "name", name, "error", err)
		return
	}
	e.dags[name] = d
	e.sequence = append(e.sequence, name)
}

// RunDag looks up the Dag bound to name and runs it to completion. An
// unknown name fails with EmptyJob — an intentional reuse of the "nothing to
// run" signal rather than a dedicated UnknownDag variant.
func (e *Engine) RunDag(ctx context.Context, name string) (value.Output, error) {
	e.mu.RLock()
	d, ok := e.dags[name]
	e.mu.RUnlock()

	if !ok {
		e.log.Error("no dag registered under name", "name", name)
		return value.Output{}, dagerr.EmptyJob()
	}
	return d.Start(ctx)
}

// RunSequential runs every registered Dag in ascending sequence-number order,
// stopping and returning at the first failure.
func (e *Engine) RunSequential(ctx context.Context) error {
	e.mu.RLock()
	names := make([]string, len(e.sequence))
	copy(names, e.sequence)
	e.mu.RUnlock()

	for _, name := range names {
		if _, err := e.RunDag(ctx, name); err != nil {
			return fmt.Errorf("dag %q: %w", name, err)
		}
	}
	return nil
}
