package ports

// Sink is the append-only destination for serialized values of one section
// of the composite output. Iteration order of the final output equals append
// order; a sink never deletes or updates past entries.
type Sink[V any] interface {
	// Append adds a value to the end of the sink.
	Append(v V) error
	// Count returns the number of values appended so far.
	Count() int
}
