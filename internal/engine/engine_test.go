package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgraph/dagrs/internal/dag"
	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/environment"
	"github.com/taskgraph/dagrs/internal/task"
	"github.com/taskgraph/dagrs/internal/value"
)

func constDag(name string, n int) *dag.Dag {
	t := task.WithClosure(name, func(_ context.Context, _ value.Input, _ *environment.Environment) (value.Output, error) {
		return value.New(n), nil
	})
	return dag.WithTasks(t)
}

func TestAppendDagDuplicateNameIsNoOp(t *testing.T) {
	e := New()
	e.AppendDag("x", constDag("a", 1))
	e.AppendDag("x", constDag("b", 2))

	_, err := e.RunDag(context.Background(), "x")
	require.NoError(t, err)

	got, ok := GetDagResult[int](e, "x")
	require.True(t, ok)
	assert.Equal(t, 1, got, "second AppendDag under the same name must be ignored")
}

func TestAppendDagDropsFailedInit(t *testing.T) {
	cyclic := task.New("cyclic")
	cyclic.SetPredecessors(cyclic)

	e := New()
	e.AppendDag("bad", dag.WithTasks(cyclic))

	_, err := e.RunDag(context.Background(), "bad")
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindEmptyJob, kind, "unregistered name reuses EmptyJob")
}

func TestRunDagUnknownNameReturnsEmptyJob(t *testing.T) {
	e := New()
	_, err := e.RunDag(context.Background(), "nope")
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindEmptyJob, kind)
}

func TestRunSequentialStopsAtFirstFailure(t *testing.T) {
	failing := task.WithClosure("boom", func(_ context.Context, _ value.Input, _ *environment.Environment) (value.Output, error) {
		return value.Output{}, errors.New("boom")
	})

	e := New()
	e.AppendDag("first", constDag("a", 1))
	e.AppendDag("second", dag.WithTasks(failing))
	e.AppendDag("third", constDag("c", 3))

	err := e.RunSequential(context.Background())
	require.Error(t, err)

	_, ok := GetDagResult[int](e, "first")
	assert.True(t, ok, "dags before the failure must have run")
	_, ok = GetDagResult[int](e, "third")
	assert.False(t, ok, "dags after the failure must never run")
}

func TestGetDagResultTypedMismatch(t *testing.T) {
	e := New()
	e.AppendDag("x", constDag("a", 1))
	_, err := e.RunDag(context.Background(), "x")
	require.NoError(t, err)

	_, ok := GetDagResult[string](e, "x")
	assert.False(t, ok, "wrong requested type must fail, not panic")
}

func TestGetDagResultBeforeRun(t *testing.T) {
	e := New()
	e.AppendDag("x", constDag("a", 1))

	_, ok := GetDagResult[int](e, "x")
	assert.False(t, ok)
}
