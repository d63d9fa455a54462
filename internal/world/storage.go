package world

import (
	"fmt"
	"slices"

	"github.com/udisondev/labyrinth/internal/model"
)

// Object is anything that lives in Storage.
type Object interface {
	ObjectID() model.ObjectID
	ObjectType() model.ObjectType
	Position() model.Point
	Attrs() model.ObjectAttrs
}

// Storage owns every object of a world.
//
// Iteration is always in ascending object id order. Each insert of an id
// bumps its generation, so a model.Ref taken before a remove never
// resolves to whatever is inserted under the same id later.
type Storage struct {
	objects map[model.ObjectID]Object
	gens    map[model.ObjectID]uint32
	order   []model.ObjectID // sorted ascending
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{
		objects: make(map[model.ObjectID]Object),
		gens:    make(map[model.ObjectID]uint32),
	}
}

// Insert adds obj. Returns an error if an object with the same id is
// already present.
func (s *Storage) Insert(obj Object) error {
	id := obj.ObjectID()
	if id == model.InvalidObjectID {
		return fmt.Errorf("inserting %s: invalid object id", obj.ObjectType())
	}
	if _, exists := s.objects[id]; exists {
		return fmt.Errorf("inserting %s %d: id already in storage", obj.ObjectType(), id)
	}

	s.objects[id] = obj
	s.gens[id]++

	idx, _ := slices.BinarySearch(s.order, id)
	s.order = slices.Insert(s.order, idx, id)
	return nil
}

// Remove deletes the object with the given id. Reports whether it was present.
func (s *Storage) Remove(id model.ObjectID) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)

	if idx, found := slices.BinarySearch(s.order, id); found {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
	return true
}

// Get returns the object with the given id.
func (s *Storage) Get(id model.ObjectID) (Object, bool) {
	obj, ok := s.objects[id]
	return obj, ok
}

// Contains reports whether obj itself (not just its id) is in storage.
func (s *Storage) Contains(obj Object) bool {
	cur, ok := s.objects[obj.ObjectID()]
	return ok && cur == obj
}

// Ref returns a weak reference to the object currently stored under id.
// Returns the zero Ref if id is not present.
func (s *Storage) Ref(id model.ObjectID) model.Ref {
	if _, ok := s.objects[id]; !ok {
		return model.Ref{}
	}
	return model.Ref{ID: id, Gen: s.gens[id]}
}

// Resolve returns the object behind ref if it is still the same instance.
func (s *Storage) Resolve(ref model.Ref) (Object, bool) {
	if ref.IsZero() {
		return nil, false
	}
	obj, ok := s.objects[ref.ID]
	if !ok || s.gens[ref.ID] != ref.Gen {
		return nil, false
	}
	return obj, true
}

// Len returns the number of stored objects.
func (s *Storage) Len() int {
	return len(s.objects)
}

// Objects returns a snapshot of all objects in ascending id order.
// The snapshot is safe to iterate while the storage is modified.
func (s *Storage) Objects() []Object {
	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// ObjectsAt returns every object positioned at p, in ascending id order.
func (s *Storage) ObjectsAt(p model.Point) []Object {
	var out []Object
	for _, id := range s.order {
		if obj := s.objects[id]; obj.Position() == p {
			out = append(out, obj)
		}
	}
	return out
}

// Blocked reports whether a non-passable object occupies p.
func (s *Storage) Blocked(p model.Point) bool {
	for _, id := range s.order {
		obj := s.objects[id]
		if obj.Position() == p && !obj.Attrs().Passable() {
			return true
		}
	}
	return false
}

// Subset returns a snapshot of all stored objects of concrete type T in
// ascending id order.
func Subset[T Object](s *Storage) []T {
	var out []T
	for _, id := range s.order {
		if obj, ok := s.objects[id].(T); ok {
			out = append(out, obj)
		}
	}
	return out
}
