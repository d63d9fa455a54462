package world

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/labyrinth/internal/game/skill"
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// Behavior is the type-specific part of a unit: a hero's spellbook or a
// monster's brain. Shared unit logic lives on Unit itself.
type Behavior interface {
	// Update runs on every tick after the shared unit update.
	Update(u *Unit, delta time.Duration)
	// Cast performs spell number idx of the unit's spellbook.
	// target may be nil. Returns false if nothing was cast.
	Cast(u *Unit, idx uint8, target *Unit) bool
}

// BehaviorFactory builds the behavior of a freshly created unit instance.
type BehaviorFactory func(w *World, u *Unit) Behavior

// Unit is a hero or a monster.
type Unit struct {
	model.GameObject

	world *World
	log   *slog.Logger

	kind      model.UnitKind
	hero      model.HeroType
	playerUID int32
	name      string

	baseDamage    int16
	actualDamage  int16
	health        int16
	maxHealth     int16
	armor         int16
	magResistance int16
	moveSpeed     float64

	orientation model.Orientation
	state       model.UnitState
	unitAttrs   model.UnitAttrs

	inventory  []*Item
	duelTarget model.Ref

	cooldowns *skill.CooldownManager
	effects   *skill.EffectManager
	behavior  Behavior
}

func newUnit(w *World, id model.ObjectID, kind model.UnitKind, stats model.BaseStats) *Unit {
	u := &Unit{
		GameObject:    model.NewGameObject(id, model.ObjectUnit, model.AttrDamagable|model.AttrMovable),
		world:         w,
		kind:          kind,
		name:          stats.Name,
		baseDamage:    stats.Damage,
		actualDamage:  stats.Damage,
		health:        stats.MaxHealth,
		maxHealth:     stats.MaxHealth,
		armor:         stats.Armor,
		magResistance: stats.MagResistance,
		moveSpeed:     stats.MoveSpeed,
		orientation:   model.DirDown,
		state:         model.StateUndefined,
		unitAttrs:     model.UnitAllAttrs,
		cooldowns:     skill.NewCooldownManager(),
	}
	u.log = w.log.With("unit", id, "name", stats.Name)
	u.effects = skill.NewEffectManager(u.log)
	return u
}

// Name returns the display name.
func (u *Unit) Name() string { return u.name }

// Kind returns HERO or MONSTER.
func (u *Unit) Kind() model.UnitKind { return u.kind }

// IsMonster reports whether the unit is AI-controlled.
func (u *Unit) IsMonster() bool { return u.kind == model.KindMonster }

// HeroType returns the hero class. Meaningless for monsters.
func (u *Unit) HeroType() model.HeroType { return u.hero }

// PlayerUID returns the uid of the controlling player, 0 for monsters.
func (u *Unit) PlayerUID() int32 { return u.playerUID }

// State returns the unit state.
func (u *Unit) State() model.UnitState { return u.state }

// UnitAttrs returns the interaction attributes for in-place mutation.
func (u *Unit) UnitAttrs() *model.UnitAttrs { return &u.unitAttrs }

// Health returns current health.
func (u *Unit) Health() int16 { return u.health }

// MaxHealth returns maximum health.
func (u *Unit) MaxHealth() int16 { return u.maxHealth }

// Armor returns current physical mitigation.
func (u *Unit) Armor() int16 { return u.armor }

// MagResistance returns current magical mitigation.
func (u *Unit) MagResistance() int16 { return u.magResistance }

// MoveSpeed returns current move speed.
func (u *Unit) MoveSpeed() float64 { return u.moveSpeed }

// Damage returns the actual damage: base damage plus equipment bonuses.
func (u *Unit) Damage() int16 { return u.actualDamage }

// Orientation returns the direction of the last move attempt.
func (u *Unit) Orientation() model.Orientation { return u.orientation }

// Inventory returns the carried items. The slice must not be modified.
func (u *Unit) Inventory() []*Item { return u.inventory }

// Cooldowns returns the unit's cooldown timers.
func (u *Unit) Cooldowns() *skill.CooldownManager { return u.cooldowns }

// Effects returns the unit's active effects.
func (u *Unit) Effects() *skill.EffectManager { return u.effects }

// Behavior returns the type-specific behavior.
func (u *Unit) Behavior() Behavior { return u.behavior }

// World returns the world the unit belongs to.
func (u *Unit) World() *World { return u.world }

// Logger returns the unit's logger.
func (u *Unit) Logger() *slog.Logger { return u.log }

// Alive reports whether the unit is spawned and not dead.
func (u *Unit) Alive() bool {
	return u.state == model.StateWalking || u.state == model.StateDuel
}

// AddArmor changes armor by delta.
func (u *Unit) AddArmor(delta int16) { u.armor += delta }

// AddMoveSpeed changes move speed by delta.
func (u *Unit) AddMoveSpeed(delta float64) { u.moveSpeed += delta }

// Update advances the unit by one tick.
func (u *Unit) Update(delta time.Duration) {
	u.updateStats()
	u.effects.Update(delta)
	u.cooldowns.Update(delta)
	if u.behavior != nil {
		u.behavior.Update(u, delta)
	}
}

func (u *Unit) updateStats() {
	dmg := u.baseDamage
	for _, it := range u.inventory {
		if it.Type() == model.ItemSword {
			dmg += model.SwordDamageBonus
		}
	}
	u.actualDamage = dmg
}

// Spawn places the unit on the map for the first time.
func (u *Unit) Spawn(pos model.Point) {
	u.reset(pos)
	u.log.Info("spawned", "pos", pos)

	if u.IsMonster() {
		u.world.Emit(protocol.SpawnMonster{Unit: u.ObjectID(), Pos: pos})
		return
	}
	u.world.Emit(protocol.SpawnPlayer{UID: u.playerUID, Unit: u.ObjectID(), Hero: u.hero, Pos: pos})
}

// Respawn places a re-created unit back on the map and protects it for
// a while.
func (u *Unit) Respawn(pos model.Point) {
	u.reset(pos)
	u.log.Info("respawned", "pos", pos)

	u.ApplyEffect(skill.NewRespawnInvulnerability(u.world.cfg.RespawnInvulnerability))
	u.world.Emit(protocol.Respawn{Unit: u.ObjectID(), Pos: pos})
}

func (u *Unit) reset(pos model.Point) {
	u.state = model.StateWalking
	u.SetAttrs(model.AttrMovable | model.AttrVisible | model.AttrDamagable)
	u.unitAttrs = model.UnitAllAttrs
	u.health = u.maxHealth
	u.SetPosition(pos)
}

// ApplyEffect binds e to the unit and starts it. The effect manager owns
// it from then on.
func (u *Unit) ApplyEffect(e skill.Effect) {
	e.Bind(u)
	e.Start()
	u.effects.Add(e)
	u.log.Debug("effect applied", "effect", e.Name(), "duration", e.Remaining())
}

// Move steps one cell in dir. The move is silently rejected if a
// non-passable object occupies the destination. Returns whether the unit
// moved.
func (u *Unit) Move(dir model.Direction) bool {
	if !dir.Valid() {
		return false
	}
	u.orientation = dir

	from := u.Position()
	to := from.Step(dir)

	if u.world.openDoor(u, to) {
		return false
	}
	if u.world.storage.Blocked(to) {
		return false
	}

	u.SetPosition(to)
	u.log.Debug("moved", "from", from, "to", to)
	u.world.Emit(protocol.UnitMoved{Unit: u.ObjectID(), Dir: dir, Pos: to})
	return true
}

// CarriesKey reports whether a KEY is in the inventory.
func (u *Unit) CarriesKey() bool {
	return slices.ContainsFunc(u.inventory, func(it *Item) bool {
		return it.Type() == model.ItemKey
	})
}

// TakeItem moves a ground item into the inventory.
func (u *Unit) TakeItem(it *Item) {
	u.world.storage.Remove(it.ObjectID())
	it.carrier = u.world.storage.Ref(u.ObjectID())
	u.inventory = append(u.inventory, it)

	u.log.Info("took item", "item", it.ObjectID(), "type", it.Type())
	u.world.Emit(protocol.ItemEvent{Unit: u.ObjectID(), Item: it.ObjectID(), Action: model.ItemTake})
}

// DropItem puts a carried item on the unit's cell. Returns nil if the
// unit does not carry an item with that id.
func (u *Unit) DropItem(id model.ObjectID) *Item {
	idx := slices.IndexFunc(u.inventory, func(it *Item) bool {
		return it.ObjectID() == id
	})
	if idx < 0 {
		u.log.Warn("drop of item not carried", "item", id)
		return nil
	}

	it := u.inventory[idx]
	u.inventory = slices.Delete(u.inventory, idx, idx+1)

	it.carrier = model.Ref{}
	it.SetPosition(u.Position())
	if err := u.world.storage.Insert(it); err != nil {
		u.log.Error("returning item to storage", "item", id, "error", err)
		return nil
	}

	u.log.Info("dropped item", "item", id, "type", it.Type(), "pos", u.Position())
	u.world.Emit(protocol.ItemEvent{Unit: u.ObjectID(), Item: id, Action: model.ItemDrop})
	return it
}
