package lifo

import "errors"

var (
	// ErrNilSource is returned by [From] when the source sequence is nil.
	ErrNilSource = errors.New("source can't be nil")
	// ErrEmpty is returned by [Stack.Pop] and [Stack.Peek] when the stack holds no items.
	ErrEmpty = errors.New("stack is empty")
	// ErrConcurrentModification is reported by an [Iterator] when the stack was pushed to,
	// popped from or cleared after the iteration started.
	ErrConcurrentModification = errors.New("stack was modified during iteration")
)
