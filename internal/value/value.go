// Package value implements the dynamically typed, immutable envelope that
// carries task outputs across DAG edges, plus the ordered input bundle built
// from a task's predecessor outputs.
package value

// kind distinguishes what an Output actually carries.
type kind int

const (
	kindEmpty kind = iota
	kindSingle
	kindSequence
)

// Output is the uniformly typed payload a task produces. It carries exactly
// one of: a single opaque value, an ordered sequence of opaque values, or the
// empty marker. Output is immutable once constructed: its own sequence slice
// is never handed out (AsSequence builds a fresh one). Stored values are not
// deep-copied, so a value of a reference type (map, slice, pointer) is shared
// with whoever reads it back.
type Output struct {
	kind     kind
	single   any
	sequence []any
}

// New wraps a single value.
func New(v any) Output {
	return Output{kind: kindSingle, single: v}
}

// NewSequence wraps an ordered sequence of values. The input slice is copied
// so the caller cannot mutate the envelope after the fact.
func NewSequence(values []any) Output {
	cp := make([]any, len(values))
	copy(cp, values)
	return Output{kind: kindSequence, sequence: cp}
}

// Empty returns the distinguished "produced nothing" envelope.
func Empty() Output {
	return Output{kind: kindEmpty}
}

// IsEmpty reports whether o carries the empty marker.
func (o Output) IsEmpty() bool { return o.kind == kindEmpty }

// AsSingle performs a dynamic type check against T and returns the stored
// value and true on match, or the zero value and false otherwise (including
// when o does not carry a single value at all).
func AsSingle[T any](o Output) (T, bool) {
	var zero T
	if o.kind != kindSingle {
		return zero, false
	}
	v, ok := o.single.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// AsSequence performs an element-wise dynamic type check against T and
// returns the stored sequence and true on full match, or nil and false
// otherwise (including when o does not carry a sequence at all).
func AsSequence[T any](o Output) ([]T, bool) {
	if o.kind != kindSequence {
		return nil, false
	}
	out := make([]T, len(o.sequence))
	for i, v := range o.sequence {
		t, ok := v.(T)
		if !ok {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}
