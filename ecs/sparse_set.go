package ecs

// sparseSet stores components densely, keyed by entity ID. Values are held
// as any; the typed accessors in generics.go do the casting.
type sparseSet struct {
	dense  []int
	values []any
	index  map[int]int
}

func newSparseSet() *sparseSet {
	return &sparseSet{index: make(map[int]int)}
}

func (s *sparseSet) has(id int) bool {
	_, ok := s.index[id]
	return ok
}

func (s *sparseSet) get(id int) (any, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

func (s *sparseSet) set(id int, v any) {
	if i, ok := s.index[id]; ok {
		s.values[i] = v
		return
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
}

func (s *sparseSet) remove(id int) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[i] = lastID
	s.values[i] = s.values[last]
	s.index[lastID] = i

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	delete(s.index, id)
	return true
}
