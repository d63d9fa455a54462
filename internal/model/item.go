package model

// ItemType enumerates carriable items.
type ItemType uint8

const (
	ItemKey ItemType = iota
	ItemSword
)

func (t ItemType) String() string {
	switch t {
	case ItemKey:
		return "Key"
	case ItemSword:
		return "Sword"
	default:
		return "Unknown"
	}
}

// SwordDamageBonus is added to a unit's actual damage per carried sword.
const SwordDamageBonus = 6

// ConstructionType enumerates static map objects.
type ConstructionType uint8

const (
	ConstructionWall ConstructionType = iota
	ConstructionDoor
	ConstructionGraveyard
)

func (t ConstructionType) String() string {
	switch t {
	case ConstructionWall:
		return "Wall"
	case ConstructionDoor:
		return "Door"
	case ConstructionGraveyard:
		return "Graveyard"
	default:
		return "Unknown"
	}
}

// Passable reports whether units may stand on this construction.
func (t ConstructionType) Passable() bool {
	return t == ConstructionGraveyard
}

// ItemAction is what a unit does with an item.
type ItemAction uint8

const (
	ItemTake ItemAction = iota
	ItemDrop
)

func (a ItemAction) String() string {
	if a == ItemTake {
		return "TAKE"
	}
	return "DROP"
}
