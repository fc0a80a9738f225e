// Package shared provides reference-counted handles to heap-allocated
// values.
//
// A Handle is a small value that points at a shared box. Copying a Handle
// with plain assignment does not add an owner; use Clone for that. Every
// owner calls Release exactly once. When the last owner releases, the
// release hook (if any) runs and the handle is dead.
//
// Handles are not safe for concurrent use. The count itself is atomic so a
// misuse shows up as a panic rather than a torn counter.
package shared

import "sync/atomic"

// Handle is a shared-ownership reference to a T.
type Handle[T any] struct {
	b *box[T]
}

type box[T any] struct {
	val       T
	refs      atomic.Int64
	onRelease func(*T)
}

// Option configures a handle at construction.
type Option[T any] func(*box[T])

// WithRelease registers fn to run once, when the last owner releases.
func WithRelease[T any](fn func(*T)) Option[T] {
	return func(b *box[T]) {
		b.onRelease = fn
	}
}

// Make allocates v on the heap and returns the first owning handle.
func Make[T any](v T, opts ...Option[T]) Handle[T] {
	b := &box[T]{val: v}
	for _, opt := range opts {
		opt(b)
	}
	b.refs.Store(1)
	return Handle[T]{b: b}
}

// Valid reports whether h was produced by Make or Clone.
func (h Handle[T]) Valid() bool {
	return h.b != nil
}

// Clone registers another owner and returns its handle.
func (h Handle[T]) Clone() Handle[T] {
	h.mustBeLive("clone")
	h.b.refs.Add(1)
	return h
}

// Release drops one owner. It returns true when that was the last owner.
// Releasing a dead handle panics.
func (h Handle[T]) Release() bool {
	h.mustBeLive("release")
	n := h.b.refs.Add(-1)
	if n > 0 {
		return false
	}
	if h.b.onRelease != nil {
		h.b.onRelease(&h.b.val)
	}
	return true
}

// Get returns a pointer to the shared value. Writes through it are seen by
// every owner.
func (h Handle[T]) Get() *T {
	h.mustBeLive("get")
	return &h.b.val
}

// Deref returns a copy of the shared value.
func (h Handle[T]) Deref() T {
	return *h.Get()
}

// Refs returns the current owner count.
func (h Handle[T]) Refs() int64 {
	if h.b == nil {
		return 0
	}
	return h.b.refs.Load()
}

func (h Handle[T]) mustBeLive(op string) {
	if h.b == nil {
		panic("shared: " + op + " on zero handle")
	}
	if h.b.refs.Load() <= 0 {
		panic("shared: " + op + " on released handle")
	}
}
