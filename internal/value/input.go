package value

// Input is the immutable ordered sequence of predecessor output envelopes
// delivered to a task, one per declared predecessor, in declaration order —
// independent of the real-time order those predecessors actually completed
// in.
type Input struct {
	envelopes []Output
}

// NewInput builds an Input bundle from envelopes in predecessor-declaration
// order. The slice is copied.
func NewInput(envelopes []Output) Input {
	cp := make([]Output, len(envelopes))
	copy(cp, envelopes)
	return Input{envelopes: cp}
}

// Len returns the number of envelopes in the bundle.
func (in Input) Len() int { return len(in.envelopes) }

// At returns the envelope at the given predecessor position.
func (in Input) At(i int) (Output, bool) {
	if i < 0 || i >= len(in.envelopes) {
		return Output{}, false
	}
	return in.envelopes[i], true
}

// All returns a copy of the underlying envelopes, safe for the caller to
// range over.
func (in Input) All() []Output {
	cp := make([]Output, len(in.envelopes))
	copy(cp, in.envelopes)
	return cp
}
