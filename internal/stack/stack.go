// Package stack provides the LIFO used for iterative depth-first traversal.
package stack

type Stack[T any] struct {
	items []T
}

// NewWithCapacity preallocates room for capacity items.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds items in order, leaving the last one on top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	top := len(s.items) - 1
	item := s.items[top]
	s.items[top] = zero
	s.items = s.items[:top]
	return item, true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}
