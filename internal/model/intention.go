package model

// UnitState is the coarse simulation state of a Unit.
type UnitState uint8

const (
	// StateUndefined - created but not spawned yet
	StateUndefined UnitState = iota
	// StateWalking - free to move, pick items and start duels
	StateWalking
	// StateDuel - locked in a 1v1 duel
	StateDuel
	// StateDead - removed from simulation, waiting for respawn
	StateDead
)

// String returns human-readable state name
func (s UnitState) String() string {
	switch s {
	case StateUndefined:
		return "UNDEFINED"
	case StateWalking:
		return "WALKING"
	case StateDuel:
		return "DUEL"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// UnitAttrs gates what a unit is currently permitted to do.
type UnitAttrs uint8

const (
	UnitInput UnitAttrs = 1 << iota
	UnitAttack
	UnitDuelable

	UnitAllAttrs = UnitInput | UnitAttack | UnitDuelable
)

func (s UnitAttrs) Has(a UnitAttrs) bool { return s&a == a }
func (s *UnitAttrs) Set(a UnitAttrs)     { *s |= a }
func (s *UnitAttrs) Clear(a UnitAttrs)   { *s &^= a }

func (s UnitAttrs) Input() bool    { return s.Has(UnitInput) }
func (s UnitAttrs) Attack() bool   { return s.Has(UnitAttack) }
func (s UnitAttrs) Duelable() bool { return s.Has(UnitDuelable) }

// Direction is one of the four cardinal moves. No diagonals.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool { return d <= DirRight }

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// Orientation is the facing of a unit; it follows the last move.
type Orientation = Direction
