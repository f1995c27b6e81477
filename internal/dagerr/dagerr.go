// Package dagerr defines the error taxonomy shared by the graph, executor,
// engine and declarative parser. Errors are values, never logs: callers are
// expected to match on Kind (or use errors.As against *Error) rather than
// parse messages.
package dagerr

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

// Kind classifies the cause of a dagrs failure.
type Kind int

const (
	// KindParser indicates the declarative document was unreadable, malformed,
	// or semantically invalid.
	KindParser Kind = iota
	// KindRelyTaskIllegal indicates a task declared a predecessor id that does
	// not belong to any task in the same DAG.
	KindRelyTaskIllegal
	// KindLoopGraph indicates the graph contains a cycle, including a self-loop.
	KindLoopGraph
	// KindEmptyJob indicates the graph has no tasks, or an engine was asked to
	// run an unknown DAG name.
	KindEmptyJob
	// KindTaskError indicates an action failed at runtime, or a DAG instance
	// was asked to start while already running.
	KindTaskError
)

func (k Kind) String() string {
	switch k {
	case KindParser:
		return "ParserError"
	case KindRelyTaskIllegal:
		return "RelyTaskIllegal"
	case KindLoopGraph:
		return "LoopGraph"
	case KindEmptyJob:
		return "EmptyJob"
	case KindTaskError:
		return "TaskError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across the dagrs public API.
type Error struct {
	Kind   Kind
	Detail string // task or document name, where applicable
	Cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindParser:
		return fmt.Sprintf("parser error: %s", e.Detail)
	case KindRelyTaskIllegal:
		return fmt.Sprintf("task[%s] dependency task not exist", e.Detail)
	case KindLoopGraph:
		return "illegal directed acyclic graph, loop detected"
	case KindEmptyJob:
		return "there are no tasks in the job"
	case KindTaskError:
		return fmt.Sprintf("task error: %s", e.Detail)
	default:
		return "unknown dagrs error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// errdefs classification. LoopGraph/EmptyJob/RelyTaskIllegal/ParserError are
// all "the caller gave us something we can't run" — ErrInvalidArgument.
// TaskError is a runtime fault raised by user code — ErrUnknown, since the
// core has no way to further classify an arbitrary Action failure.
func (e *Error) Is(target error) bool {
	switch target {
	case errdefs.ErrInvalidArgument:
		return e.Kind == KindParser || e.Kind == KindRelyTaskIllegal ||
			e.Kind == KindLoopGraph || e.Kind == KindEmptyJob
	case errdefs.ErrUnknown:
		return e.Kind == KindTaskError
	}
	return false
}

// Parser builds a ParserError.
func Parser(format string, args ...any) error {
	return &Error{Kind: KindParser, Detail: fmt.Sprintf(format, args...)}
}

// ParserWrap builds a ParserError wrapping cause.
func ParserWrap(cause error, format string, args ...any) error {
	return &Error{Kind: KindParser, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// RelyTaskIllegal builds a RelyTaskIllegal error for the named task.
func RelyTaskIllegal(taskName string) error {
	return &Error{Kind: KindRelyTaskIllegal, Detail: taskName}
}

// LoopGraph builds a LoopGraph error.
func LoopGraph() error {
	return &Error{Kind: KindLoopGraph}
}

// EmptyJob builds an EmptyJob error.
func EmptyJob() error {
	return &Error{Kind: KindEmptyJob}
}

// TaskError builds a TaskError for the named task, optionally wrapping cause.
func TaskError(taskName string, cause error) error {
	return &Error{Kind: KindTaskError, Detail: taskName, Cause: cause}
}

// KindOf extracts the Kind of err, if err is (or wraps) a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
