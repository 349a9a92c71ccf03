// Package ranked provides an ordered collection of values ranked by an integer priority.
package ranked

import (
	"iter"
	"slices"
)

// List keeps values ordered by descending priority.
// Values with equal priority keep the order they were inserted in, so ranking is stable.
//
// A List is not safe for concurrent use.
type List[T any] struct {
	values []*element[T]
}

type element[T any] struct {
	val      T
	priority int
}

// New creates a [List], optionally with an initial capacity.
func New[T any](initialBuffer ...int) *List[T] {
	if len(initialBuffer) > 0 {
		return &List[T]{values: make([]*element[T], 0, initialBuffer[0])}
	}
	return &List[T]{}
}

// Len gets the number of values in the List.
func (l *List[T]) Len() int {
	return len(l.values)
}

// Insert will place val such that its priority is greater than all elements after it.
// A value is inserted after every existing value with the same priority.
func (l *List[T]) Insert(val T, priority int) {
	insertPos := len(l.values)
	for i, el := range l.values {
		if el.priority < priority {
			insertPos = i
			break
		}
	}
	l.values = slices.Insert(l.values, insertPos, &element[T]{val: val, priority: priority})
}

// RemoveFunc removes the first value, in rank order, for which match returns true.
// False is returned if nothing matched.
func (l *List[T]) RemoveFunc(match func(T) bool) (T, bool) {
	for i, el := range l.values {
		if match(el.val) {
			l.values = slices.Delete(l.values, i, i+1)
			return el.val, true
		}
	}
	var mt T
	return mt, false
}

// Values returns a copy of all values in rank order.
// Changes to the List after this call are not reflected in the returned slice.
func (l *List[T]) Values() []T {
	if len(l.values) == 0 {
		return nil
	}
	vals := make([]T, len(l.values))
	for i, el := range l.values {
		vals[i] = el.val
	}
	return vals
}

// All iterates the List in rank order, yielding each value with its priority.
// The List must not be modified while iterating.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, el := range l.values {
			if !yield(el.priority, el.val) {
				return
			}
		}
	}
}

// Clear removes all values from the List.
func (l *List[T]) Clear() {
	clear(l.values)
	l.values = l.values[:0]
}
