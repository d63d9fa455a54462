package model

// ObjectID identifies an object inside one world. IDs are never reused
// for a different entity while the world lives; a respawned unit keeps its id.
type ObjectID uint32

// InvalidObjectID is never assigned.
const InvalidObjectID ObjectID = 0

// Ref is a non-owning reference to a stored object.
// Gen is the storage generation of the id at the time the reference was
// taken; a removed or re-inserted object no longer matches it.
type Ref struct {
	ID  ObjectID
	Gen uint32
}

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool {
	return r.ID == InvalidObjectID
}

// ObjectType tags the concrete kind of a GameObject.
type ObjectType uint8

const (
	ObjectUnit ObjectType = iota
	ObjectItem
	ObjectConstruction
)

func (t ObjectType) String() string {
	switch t {
	case ObjectUnit:
		return "UNIT"
	case ObjectItem:
		return "ITEM"
	case ObjectConstruction:
		return "CONSTRUCTION"
	default:
		return "UNKNOWN"
	}
}

// ObjectAttrs is the capability bit-set of a GameObject.
type ObjectAttrs uint8

const (
	AttrPassable ObjectAttrs = 1 << iota
	AttrVisible
	AttrMovable
	AttrDamagable
)

// Has reports whether all bits of a are set.
func (s ObjectAttrs) Has(a ObjectAttrs) bool { return s&a == a }

// Set turns bits of a on.
func (s *ObjectAttrs) Set(a ObjectAttrs) { *s |= a }

// Clear turns bits of a off.
func (s *ObjectAttrs) Clear(a ObjectAttrs) { *s &^= a }

func (s ObjectAttrs) Passable() bool  { return s.Has(AttrPassable) }
func (s ObjectAttrs) Visible() bool   { return s.Has(AttrVisible) }
func (s ObjectAttrs) Movable() bool   { return s.Has(AttrMovable) }
func (s ObjectAttrs) Damagable() bool { return s.Has(AttrDamagable) }

// GameObject holds the fields shared by every stored entity.
// Concrete entities embed it; storage assigns the id.
type GameObject struct {
	id    ObjectID
	typ   ObjectType
	pos   Point
	attrs ObjectAttrs
}

// NewGameObject creates a GameObject of the given type.
func NewGameObject(id ObjectID, typ ObjectType, attrs ObjectAttrs) GameObject {
	return GameObject{id: id, typ: typ, attrs: attrs}
}

// ObjectID returns the object id (immutable after creation).
func (o *GameObject) ObjectID() ObjectID { return o.id }

// ObjectType returns the type tag.
func (o *GameObject) ObjectType() ObjectType { return o.typ }

// Position returns the current cell.
func (o *GameObject) Position() Point { return o.pos }

// SetPosition moves the object without any checks.
func (o *GameObject) SetPosition(p Point) { o.pos = p }

// Attrs returns a copy of the capability bit-set.
func (o *GameObject) Attrs() ObjectAttrs { return o.attrs }

// ObjectAttrs exposes the bit-set for in-place mutation.
func (o *GameObject) ObjectAttrs() *ObjectAttrs { return &o.attrs }

// SetAttrs replaces the whole bit-set.
func (o *GameObject) SetAttrs(a ObjectAttrs) { o.attrs = a }
