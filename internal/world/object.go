package world

import "github.com/udisondev/labyrinth/internal/model"

// Item is a carriable object. While carried it is not in storage and its
// position is meaningless.
type Item struct {
	model.GameObject
	typ     model.ItemType
	carrier model.Ref
}

// NewItem creates an item lying at pos.
func NewItem(id model.ObjectID, typ model.ItemType, pos model.Point) *Item {
	it := &Item{
		GameObject: model.NewGameObject(id, model.ObjectItem, model.AttrPassable|model.AttrVisible),
		typ:        typ,
	}
	it.SetPosition(pos)
	return it
}

// Type returns the item type.
func (it *Item) Type() model.ItemType { return it.typ }

// Carrier returns a reference to the unit holding the item, zero when on the ground.
func (it *Item) Carrier() model.Ref { return it.carrier }

// Name returns a display name for logs.
func (it *Item) Name() string { return it.typ.String() }

// Construction is a static map object.
type Construction struct {
	model.GameObject
	typ model.ConstructionType
}

// NewConstruction creates a construction at pos.
func NewConstruction(id model.ObjectID, typ model.ConstructionType, pos model.Point) *Construction {
	attrs := model.AttrVisible
	if typ.Passable() {
		attrs |= model.AttrPassable
	}
	c := &Construction{
		GameObject: model.NewGameObject(id, model.ObjectConstruction, attrs),
		typ:        typ,
	}
	c.SetPosition(pos)
	return c
}

// Type returns the construction type.
func (c *Construction) Type() model.ConstructionType { return c.typ }
