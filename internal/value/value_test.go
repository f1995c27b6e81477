package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingle(t *testing.T) {
	o := New(42)
	v, ok := AsSingle[int](o)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = AsSingle[string](o)
	assert.False(t, ok, "wrong type must not match")
}

func TestNewSequence(t *testing.T) {
	o := NewSequence([]any{1, 2, 3})
	seq, ok := AsSequence[int](o)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, seq)

	_, ok = AsSequence[string](o)
	assert.False(t, ok)
}

func TestNewSequenceIsCopied(t *testing.T) {
	src := []any{1, 2, 3}
	o := NewSequence(src)
	src[0] = 999

	seq, ok := AsSequence[int](o)
	require.True(t, ok)
	assert.Equal(t, 1, seq[0], "mutating the caller's slice must not affect the envelope")
}

func TestEmpty(t *testing.T) {
	o := Empty()
	assert.True(t, o.IsEmpty())

	_, ok := AsSingle[int](o)
	assert.False(t, ok)
	_, ok = AsSequence[int](o)
	assert.False(t, ok)
}

func TestAsSingleOnSequenceFails(t *testing.T) {
	o := NewSequence([]any{1, 2})
	_, ok := AsSingle[int](o)
	assert.False(t, ok)
}

func TestAsSequenceOnSingleFails(t *testing.T) {
	o := New(1)
	_, ok := AsSequence[int](o)
	assert.False(t, ok)
}
