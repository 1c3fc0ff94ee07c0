package layout

// orderedSet is a set that remembers insertion order, so that generations
// visit nodes deterministically regardless of map iteration order.
type orderedSet[T comparable] struct {
	index map[T]struct{}
	order []T
}

func newOrderedSet[T comparable]() orderedSet[T] {
	return orderedSet[T]{index: make(map[T]struct{})}
}

// add inserts v and reports whether it was absent.
func (s *orderedSet[T]) add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *orderedSet[T]) has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet[T]) len() int { return len(s.order) }

// drain returns the members in insertion order and empties the set.
func (s *orderedSet[T]) drain() []T {
	out := s.order
	s.order = nil
	clear(s.index)
	return out
}
