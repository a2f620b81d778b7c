// Package lifo implements a generic last-in-first-out stack backed by a single growable buffer.
//
// A [Stack] is not thread-safe. Iteration is fail-fast: pushing, popping or clearing while an
// [Iterator] is in progress makes its next step report [ErrConcurrentModification].
package lifo

import (
	"iter"
	"slices"

	"github.com/teenjuna/lifo/growth"
)

// Stack is a last-in-first-out container.
//
// Items live at indices [0, Size()) of the storage buffer, the top item being the last one. The
// buffer itself is never exposed: every method that returns items returns copies.
type Stack[Item any] struct {
	items   []Item
	count   int
	version uint64

	growth  growth.Policy
	equal   func(a, b Item) bool
	metrics *metrics
}

// New creates an empty stack.
//
// Default configuration:
//   - Capacity: 0 (no pre-allocation)
//   - Growth: [growth.Doubling]
//   - Equal: == for comparable types, reflect.DeepEqual otherwise
//   - Prometheus: disabled
func New[Item any](configFuncs ...ConfigFunc[Item]) *Stack[Item] {
	cfg := newConfig(configFuncs...)

	stack := Stack[Item]{
		items:  make([]Item, cfg.capacity),
		growth: cfg.growth,
		equal:  cfg.equal,
	}
	if cfg.prometheus != nil {
		stack.metrics = cfg.prometheus.metrics()
	}
	stack.metrics.allocated(cfg.capacity)

	return &stack
}

// From creates a stack and pushes every item of source into it, so the first item of source ends
// up at the bottom and the last one on top.
//
// Returns [ErrNilSource] if source is nil.
func From[Item any](source iter.Seq[Item], configFuncs ...ConfigFunc[Item]) (*Stack[Item], error) {
	if source == nil {
		return nil, ErrNilSource
	}

	stack := New(configFuncs...)
	for item := range source {
		stack.Push(item)
	}

	return stack, nil
}

// Size returns the number of items in the stack.
func (s *Stack[Item]) Size() int {
	return s.count
}

// Capacity returns the length of the storage buffer, which is never less than [Stack.Size].
func (s *Stack[Item]) Capacity() int {
	return len(s.items)
}

// Push puts item on top of the stack, growing the buffer if it's full.
func (s *Stack[Item]) Push(item Item) {
	if s.count+1 > len(s.items) {
		s.grow(s.count + 1)
	}

	s.items[s.count] = item
	s.count++
	s.version++
	s.metrics.pushed(s.count)
}

// Pop removes the top item and returns it.
//
// Returns [ErrEmpty] if the stack holds no items.
func (s *Stack[Item]) Pop() (Item, error) {
	var zero Item
	if s.count == 0 {
		return zero, ErrEmpty
	}

	s.count--
	item := s.items[s.count]
	// The slot must not keep the item alive.
	s.items[s.count] = zero
	s.version++
	s.metrics.popped(s.count)

	return item, nil
}

// Peek returns the top item without removing it.
//
// Returns [ErrEmpty] if the stack holds no items.
func (s *Stack[Item]) Peek() (Item, error) {
	if s.count == 0 {
		var zero Item
		return zero, ErrEmpty
	}
	return s.items[s.count-1], nil
}

// Contains reports whether an item equal to item is in the stack.
func (s *Stack[Item]) Contains(item Item) bool {
	return slices.ContainsFunc(s.items[:s.count], func(other Item) bool {
		return s.equal(other, item)
	})
}

// ToSlice returns a new slice with the items of the stack, the top item first.
func (s *Stack[Item]) ToSlice() []Item {
	items := make([]Item, s.count)
	copy(items, s.items[:s.count])
	slices.Reverse(items)
	return items
}

// Clear removes all items and releases the storage buffer.
func (s *Stack[Item]) Clear() {
	s.items = make([]Item, 0)
	s.count = 0
	s.version++
	s.metrics.cleared()
}

// All returns a sequence of the items from top to bottom.
//
// If the stack is modified during the iteration, the sequence yields [ErrConcurrentModification]
// with the zero item and stops.
func (s *Stack[Item]) All() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		it := s.Iterator()
		for it.Next() {
			if !yield(it.Item(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero Item
			yield(zero, err)
		}
	}
}

// Values returns a sequence of the items from top to bottom.
//
// It panics with [ErrConcurrentModification] if the stack is modified during the iteration. Use
// [Stack.All] or [Stack.Iterator] to handle that case as an error.
func (s *Stack[Item]) Values() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		it := s.Iterator()
		for it.Next() {
			if !yield(it.Item()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

func (s *Stack[Item]) grow(required int) {
	capacity := max(s.growth.Next(len(s.items), required), required)

	items := make([]Item, capacity)
	copy(items, s.items[:s.count])
	s.items = items

	s.metrics.grown(capacity, s.count)
}
