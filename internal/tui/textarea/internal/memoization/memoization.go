// Package memoization is a small LRU cache used to reuse rendered lines.
package memoization

import (
	"container/list"
	"fmt"
	"hash/fnv"
	"sync"
)

// Hasher is a cache key.
type Hasher interface {
	Hash() string
}

type entry[T any] struct {
	key   string
	value T
}

// MemoCache is a fixed-capacity LRU cache safe for concurrent use.
type MemoCache[H Hasher, T any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

// NewMemoCache creates a cache holding at most capacity entries.
func NewMemoCache[H Hasher, T any](capacity int) *MemoCache[H, T] {
	return &MemoCache[H, T]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Capacity returns the maximum number of entries.
func (m *MemoCache[H, T]) Capacity() int {
	return m.capacity
}

// Size returns the current number of entries.
func (m *MemoCache[H, T]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Get returns the value for key and marks it most recently used.
func (m *MemoCache[H, T]) Get(key H) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key.Hash()]; ok {
		m.order.MoveToFront(el)
		return el.Value.(*entry[T]).value, true
	}
	var zero T
	return zero, false
}

// Set stores value for key, evicting the least recently used entry when full.
func (m *MemoCache[H, T]) Set(key H, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := key.Hash()
	if el, ok := m.items[h]; ok {
		m.order.MoveToFront(el)
		el.Value.(*entry[T]).value = value
		return
	}
	if m.capacity <= 0 {
		return
	}
	if m.order.Len() >= m.capacity {
		if oldest := m.order.Back(); oldest != nil {
			m.order.Remove(oldest)
			delete(m.items, oldest.Value.(*entry[T]).key)
		}
	}
	m.items[h] = m.order.PushFront(&entry[T]{key: h, value: value})
}

// HString is a string key.
type HString string

// Hash returns the FNV-64a hash of the string.
func (h HString) Hash() string {
	f := fnv.New64a()
	_, _ = f.Write([]byte(h))
	return fmt.Sprintf("%x", f.Sum64())
}

// HInt is an int key.
type HInt int

// Hash returns the FNV-64a hash of the decimal form.
func (h HInt) Hash() string {
	f := fnv.New64a()
	_, _ = f.Write([]byte(fmt.Sprintf("%d", h)))
	return fmt.Sprintf("%x", f.Sum64())
}
