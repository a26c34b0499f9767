// Package ringbuf provides a fixed-capacity circular buffer that counts every
// write, including the ones that overwrote older elements.
package ringbuf

import "iter"

// Buffer is a fixed-size circular buffer. Once full, each Push overwrites the
// oldest element. TotalWritten keeps counting past the capacity, so the
// number of lost elements is TotalWritten() - Len().
//
// Buffer is not safe for concurrent use; owners guard it with their own lock.
type Buffer[T any] struct {
	data    []T
	size    int
	written int // next write counter, reset only by Drain
}

// New creates a buffer holding at most capacity elements.
// It panics if capacity is not positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ringbuf: capacity must be positive")
	}
	return &Buffer[T]{
		data: make([]T, 0, capacity),
		size: capacity,
	}
}

// Push appends elem, overwriting the oldest element when the buffer is full.
func (b *Buffer[T]) Push(elem T) {
	if len(b.data) < b.size {
		b.data = append(b.data, elem)
	} else {
		b.data[b.written%b.size] = elem
	}
	b.written++
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return b.size
}

// TotalWritten returns the number of pushes since creation or the last Drain.
func (b *Buffer[T]) TotalWritten() int {
	return b.written
}

// Wrapped reports whether at least one element has been overwritten.
func (b *Buffer[T]) Wrapped() bool {
	return b.written > b.size
}

// Lost returns how many pushed elements are no longer stored.
func (b *Buffer[T]) Lost() int {
	return b.written - len(b.data)
}

// split returns the two storage halves in insertion order.
func (b *Buffer[T]) split() (head, tail []T) {
	if b.written <= b.size {
		return b.data, nil
	}
	wrap := b.written % b.size
	return b.data[wrap:], b.data[:wrap]
}

// Drain removes and returns all stored elements, oldest first, and resets the
// write counter.
func (b *Buffer[T]) Drain() []T {
	head, tail := b.split()
	out := make([]T, 0, len(b.data))
	out = append(out, head...)
	out = append(out, tail...)
	b.data = make([]T, 0, b.size)
	b.written = 0
	return out
}

// Snapshot returns a copy of the stored elements, oldest first.
func (b *Buffer[T]) Snapshot() []T {
	head, tail := b.split()
	out := make([]T, 0, len(b.data))
	out = append(out, head...)
	return append(out, tail...)
}

// All yields the stored elements oldest first.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		head, tail := b.split()
		for _, v := range head {
			if !yield(v) {
				return
			}
		}
		for _, v := range tail {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward yields the stored elements newest first.
func (b *Buffer[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		head, tail := b.split()
		for i := len(tail) - 1; i >= 0; i-- {
			if !yield(tail[i]) {
				return
			}
		}
		for i := len(head) - 1; i >= 0; i-- {
			if !yield(head[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the buffer, including its counter.
func (b *Buffer[T]) Clone() *Buffer[T] {
	data := make([]T, len(b.data), b.size)
	copy(data, b.data)
	return &Buffer[T]{data: data, size: b.size, written: b.written}
}
