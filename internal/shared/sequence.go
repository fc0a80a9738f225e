package shared

// Sequence is an ordered list of independently owned handles.
type Sequence[T any] []Handle[T]

// MakeSequence allocates one handle per value, in order. Every handle gets
// the same options.
func MakeSequence[T any](vals []T, opts ...Option[T]) Sequence[T] {
	seq := make(Sequence[T], 0, len(vals))
	for _, v := range vals {
		seq = append(seq, Make(v, opts...))
	}
	return seq
}

// Values returns copies of the referenced values, in order.
func (s Sequence[T]) Values() []T {
	out := make([]T, 0, len(s))
	for _, h := range s {
		out = append(out, h.Deref())
	}
	return out
}

// Release drops the sequence's ownership of every element. Elements cloned
// elsewhere stay live until those owners release too.
func (s Sequence[T]) Release() {
	for _, h := range s {
		h.Release()
	}
}
