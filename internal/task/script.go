package task

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/taskgraph/dagrs/internal/environment"
	"github.com/taskgraph/dagrs/internal/value"
)

// ShellAction runs a textual script through the host shell. It is the
// built-in "script action" family: an external collaborator reached through
// the ordinary Action contract, so the scheduler never special-cases it.
type ShellAction struct {
	// Shell is the interpreter binary, e.g. "sh" or "bash". Defaults to "sh"
	// when empty.
	Shell string
	// Script is the program body passed to the shell as `-c <Script>`.
	Script string
}

// Run implements Action. It executes Script under Shell, honoring ctx
// cancellation so the executor's best-effort abort-on-error can unwind an
// in-flight shell task promptly. A non-zero exit status is
// reported as an error, never panicked on; stdout is captured and returned as
// a single string value on success.
func (s ShellAction) Run(ctx context.Context, _ value.Input, _ *environment.Environment) (value.Output, error) {
	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", s.Script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return value.Output{}, &ScriptError{Script: s.Script, Err: err, Stderr: msg}
	}
	return value.New(strings.TrimRight(stdout.String(), "\n")), nil
}

// ScriptError wraps a failed shell invocation with captured stderr, so a host
// inspecting a TaskError's cause can print something more useful than the
// bare *exec.ExitError.
type ScriptError struct {
	Script string
	Err    error
	Stderr string
}

func (e *ScriptError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *ScriptError) Unwrap() error { return e.Err }
