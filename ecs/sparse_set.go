package ecs

// componentStore is the type-erased view the world uses to clean up when an
// entity dies.
type componentStore interface {
	remove(id entityID) bool
	has(id entityID) bool
	entities() []Entity
}

// sparseSet stores one component type densely, indexed by entity slot.
type sparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []*T
	sparse        []int
}

func (s *sparseSet[T]) has(id entityID) bool {
	if id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == id
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	if !s.has(e.id()) {
		return nil, false
	}
	idx := s.sparse[e.id()-1]
	if s.denseEntities[idx] != e {
		return nil, false
	}
	return s.denseValues[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		idx := s.sparse[id-1]
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last].id()

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) entities() []Entity {
	return s.denseEntities
}
