package world

import "github.com/udisondev/labyrinth/internal/model"

// ObjectIDGenerator hands out object ids for one world.
//
// Ids start at 1 (0 is model.InvalidObjectID) and are never reused while
// the world lives. A respawned unit keeps the id it was created with.
// Not safe for concurrent use: a world is driven by a single goroutine.
type ObjectIDGenerator struct {
	next model.ObjectID
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{next: model.InvalidObjectID}
}

// Next returns the next unused object id.
func (g *ObjectIDGenerator) Next() model.ObjectID {
	g.next++
	return g.next
}
