package orbit

import (
	"fmt"
	"math"
	"slices"
)

// Store owns the simulated bodies as one contiguous slice. Parent links are
// stored as IDs on each body and resolved through the index map, so parent
// lookup is O(1) and survives reordering.
type Store struct {
	bodies []Body
	index  map[ID]int
	nextID ID
}

func NewStore() *Store {
	return &Store{
		bodies: make([]Body, 0),
		index:  make(map[ID]int),
		nextID: 1,
	}
}

// Add validates bs and appends a new body. Mass must be positive and
// finite, state must be finite and the parent, if any, must exist.
func (s *Store) Add(bs BodySpec) (ID, error) {
	if !(bs.Mass > 0) || math.IsInf(bs.Mass, 0) {
		return None, &BodyError{Name: bs.Name, Wrapped: ErrNonPositiveMass}
	}
	if !finite(bs.Position) || !finite(bs.Velocity) {
		return None, &BodyError{Name: bs.Name, Wrapped: ErrInvalidState}
	}
	if bs.Parent != None {
		if _, ok := s.index[bs.Parent]; !ok {
			return None, &BodyError{Name: bs.Name, Wrapped: fmt.Errorf("parent %d: %w", bs.Parent, ErrUnknownBody)}
		}
	}

	id := s.nextID
	s.nextID++

	s.bodies = append(s.bodies, Body{
		ID:       id,
		Name:     bs.Name,
		Mass:     bs.Mass,
		Position: bs.Position,
		Velocity: bs.Velocity,
		Parent:   bs.Parent,
	})
	s.index[id] = len(s.bodies) - 1
	return id, nil
}

// MustAdd is Add for built-in scenarios whose specs are known to be valid.
func (s *Store) MustAdd(bs BodySpec) ID {
	id, err := s.Add(bs)
	if err != nil {
		panic(err)
	}
	return id
}

// Remove deletes a body. Bodies that orbited it are handed to its own
// parent (or left parentless) and their apsis records are re-armed.
func (s *Store) Remove(id ID) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownBody)
	}
	grandparent := s.bodies[i].Parent

	s.bodies = slices.Delete(s.bodies, i, i+1)
	s.reindex()

	for j := range s.bodies {
		if s.bodies[j].Parent == id {
			s.bodies[j].Parent = grandparent
			s.bodies[j].Apsis.Reset()
		}
	}
	return nil
}

func (s *Store) reindex() {
	clear(s.index)
	for i := range s.bodies {
		s.index[s.bodies[i].ID] = i
	}
}

// Get returns a pointer into the live slice. It is invalidated by Add or
// Remove.
func (s *Store) Get(id ID) (*Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.bodies[i], true
}

func (s *Store) Index(id ID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Lookup finds a body by name. Names are not required to be unique; the
// first match wins.
func (s *Store) Lookup(name string) (ID, bool) {
	for i := range s.bodies {
		if s.bodies[i].Name == name {
			return s.bodies[i].ID, true
		}
	}
	return None, false
}

// ParentIndex returns the slice index of the parent of the body at index i.
func (s *Store) ParentIndex(i int) (int, bool) {
	if i < 0 || i >= len(s.bodies) {
		return -1, false
	}
	p := s.bodies[i].Parent
	if p == None {
		return -1, false
	}
	j, ok := s.index[p]
	return j, ok
}

// Bodies returns the live slice. Only the engine should mutate it.
func (s *Store) Bodies() []Body { return s.bodies }

func (s *Store) Len() int { return len(s.bodies) }

// Snapshot copies the bodies for readers outside the frame loop.
func (s *Store) Snapshot() []Body {
	return slices.Clone(s.bodies)
}

// Reset drops every body. IDs keep counting so stale references never
// resolve to a new body.
func (s *Store) Reset() {
	s.bodies = s.bodies[:0]
	clear(s.index)
}
