package lifo

// Iterator walks a stack from top to bottom.
//
// The size and the version of the stack are captured when the iterator is created. Every call to
// [Iterator.Next] compares the captured version with the current one, so any push, pop or clear
// made in between stops the iteration with [ErrConcurrentModification].
//
//	it := stack.Iterator()
//	for it.Next() {
//		item := it.Item()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[Item any] struct {
	stack   *Stack[Item]
	index   int
	version uint64
	item    Item
	done    bool
	err     error
}

// Iterator returns a new iterator positioned before the top item.
func (s *Stack[Item]) Iterator() *Iterator[Item] {
	return &Iterator[Item]{
		stack:   s,
		index:   s.count - 1,
		version: s.version,
	}
}

// Next advances the iterator to the next item. It returns false when there are no more items or
// when the stack was modified, in which case [Iterator.Err] returns the reason.
func (it *Iterator[Item]) Next() bool {
	var zero Item
	it.item = zero

	if it.done {
		return false
	}
	if it.stack.version != it.version {
		it.done = true
		it.err = ErrConcurrentModification
		return false
	}
	if it.index < 0 {
		it.done = true
		return false
	}

	it.item = it.stack.items[it.index]
	it.index--

	return true
}

// Item returns the item the iterator is positioned on.
func (it *Iterator[Item]) Item() Item {
	return it.item
}

// Err returns [ErrConcurrentModification] if the iteration was stopped by a modification of the
// stack, and nil otherwise.
func (it *Iterator[Item]) Err() error {
	return it.err
}
