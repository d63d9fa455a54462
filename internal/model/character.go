package model

// HeroType is the character class picked in the hero-pick stage.
type HeroType uint8

const (
	HeroWarrior HeroType = iota
	HeroMage
	HeroRogue
	HeroPriest
)

// Valid reports whether t names a playable class.
func (t HeroType) Valid() bool { return t <= HeroPriest }

func (t HeroType) String() string {
	switch t {
	case HeroWarrior:
		return "Warrior"
	case HeroMage:
		return "Mage"
	case HeroRogue:
		return "Rogue"
	case HeroPriest:
		return "Priest"
	default:
		return "Unknown"
	}
}

// UnitKind distinguishes player-controlled heroes from AI monsters.
type UnitKind uint8

const (
	KindHero UnitKind = iota
	KindMonster
)

func (k UnitKind) String() string {
	if k == KindMonster {
		return "MONSTER"
	}
	return "HERO"
}

// DamageType selects the mitigating stat.
type DamageType uint8

const (
	DamagePhysical DamageType = iota
	DamageMagical
)

func (t DamageType) String() string {
	if t == DamageMagical {
		return "MAGICAL"
	}
	return "PHYSICAL"
}

// DamageDescriptor describes one hit.
type DamageDescriptor struct {
	Value      int16
	Type       DamageType
	DealerName string
}

// BaseStats are the starting attributes of a unit kind.
type BaseStats struct {
	Name          string
	Damage        int16
	MaxHealth     int16
	Armor         int16
	MagResistance int16
	MoveSpeed     float64
}

// DefaultUnitStats mirrors a bare unit.
var DefaultUnitStats = BaseStats{
	Name:          "Unit",
	Damage:        10,
	MaxHealth:     50,
	Armor:         2,
	MagResistance: 2,
	MoveSpeed:     0.5,
}

// HeroStats returns the starting stats of a hero class.
func HeroStats(t HeroType) BaseStats {
	s := DefaultUnitStats
	s.Name = t.String()
	switch t {
	case HeroWarrior:
		s.Damage = 12
		s.MaxHealth = 60
		s.Armor = 4
		s.MagResistance = 1
	case HeroMage:
		s.Damage = 8
		s.MaxHealth = 45
		s.Armor = 1
		s.MagResistance = 5
	case HeroRogue:
		s.Damage = 14
		s.MaxHealth = 45
		s.Armor = 2
		s.MagResistance = 2
		s.MoveSpeed = 0.6
	case HeroPriest:
		s.Damage = 8
		s.MaxHealth = 55
		s.Armor = 2
		s.MagResistance = 4
	}
	return s
}

// MonsterStats are the stats of the skeleton monster.
var MonsterStats = BaseStats{
	Name:          "Skeleton",
	Damage:        10,
	MaxHealth:     50,
	Armor:         2,
	MagResistance: 2,
	MoveSpeed:     0.5,
}
