package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgraph/dagrs/internal/dagerr"
	"github.com/taskgraph/dagrs/internal/task"
)

func TestNewEmptyFails(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindEmptyJob, kind)
}

func TestNewRelyTaskIllegal(t *testing.T) {
	a := task.New("a")
	// a depends on an id that belongs to no task in this set.
	ghost := task.New("ghost")
	a.SetPredecessors(ghost)

	_, err := New([]*task.Task{a})
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindRelyTaskIllegal, kind)
}

func TestNewCycleDetected(t *testing.T) {
	a := task.New("a")
	b := task.New("b")
	c := task.New("c")
	a.SetPredecessors(b)
	b.SetPredecessors(c)
	c.SetPredecessors(a)

	_, err := New([]*task.Task{a, b, c})
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindLoopGraph, kind)
}

func TestNewSelfLoopDetected(t *testing.T) {
	a := task.New("a")
	a.SetPredecessors(a)

	_, err := New([]*task.Task{a})
	require.Error(t, err)
	kind, ok := dagerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, dagerr.KindLoopGraph, kind)
}

func TestTopologicalOrderRespectsDependencies(t *testing.T) {
	a := task.New("a")
	b := task.New("b")
	c := task.New("c")
	b.SetPredecessors(a)
	c.SetPredecessors(b)

	g, err := New([]*task.Task{c, b, a})
	require.NoError(t, err)

	seq := g.Sequence()
	require.Len(t, seq, 3)

	pos := make(map[task.ID]int, len(seq))
	for i, id := range seq {
		pos[id] = i
	}
	assert.Less(t, pos[a.ID()], pos[b.ID()])
	assert.Less(t, pos[b.ID()], pos[c.ID()])
	assert.Equal(t, c.ID(), g.Sink())
}

func TestValidationIsIdempotent(t *testing.T) {
	a := task.New("a")
	b := task.New("b")
	b.SetPredecessors(a)

	g1, err := New([]*task.Task{a, b})
	require.NoError(t, err)
	g2, err := New([]*task.Task{a, b})
	require.NoError(t, err)

	assert.Equal(t, g1.Sequence(), g2.Sequence())
}

func TestSuccessorsAndTaskLookup(t *testing.T) {
	a := task.New("a")
	b := task.New("b")
	b.SetPredecessors(a)

	g, err := New([]*task.Task{a, b})
	require.NoError(t, err)

	assert.Equal(t, []task.ID{b.ID()}, g.Successors(a.ID()))
	got, ok := g.Task(a.ID())
	require.True(t, ok)
	assert.Equal(t, "a", got.Name())

	_, ok = g.Task(task.ID(999999))
	assert.False(t, ok)
}

func TestTiesBrokenByAscendingTaskID(t *testing.T) {
	// Three independent (no predecessors) tasks: the sequence among them
	// must follow ascending TaskID, not insertion order into the slice.
	a := task.New("a")
	b := task.New("b")
	c := task.New("c")

	g, err := New([]*task.Task{c, a, b})
	require.NoError(t, err)

	assert.Equal(t, []task.ID{a.ID(), b.ID(), c.ID()}, g.Sequence())
}
