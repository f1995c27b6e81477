package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgraph/dagrs/internal/value"
)

func TestShellActionSuccess(t *testing.T) {
	a := ShellAction{Script: "echo hello"}
	out, err := a.Run(context.Background(), value.Input{}, nil)
	require.NoError(t, err)
	s, ok := value.AsSingle[string](out)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestShellActionFailureCapturesStderr(t *testing.T) {
	a := ShellAction{Script: "echo oops 1>&2; exit 1"}
	_, err := a.Run(context.Background(), value.Input{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestShellActionRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := ShellAction{Script: "sleep 5"}
	_, err := a.Run(ctx, value.Input{}, nil)
	require.Error(t, err)
}
