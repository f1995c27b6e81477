package engine

import "github.com/taskgraph/dagrs/internal/value"

// GetDagResult performs a typed read of the final envelope of a previously
// executed Dag registered under name. It returns ok=false if name is
// unknown, the Dag has not completed a successful run, or the stored value's
// type does not match T.
//
// Exported as a free function, not a method, because Go methods cannot carry
// their own type parameters.
func GetDagResult[T any](e *Engine, name string) (T, bool) {
	var zero T
	e.mu.RLock()
	d, ok := e.dags[name]
	e.mu.RUnlock()
	if !ok {
		return zero, false
	}
	out, ok := d.Result()
	if !ok {
		return zero, false
	}
	return value.AsSingle[T](out)
}
