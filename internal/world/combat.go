package world

import (
	"github.com/udisondev/labyrinth/internal/game/skill"
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// TakeDamage applies one hit. Physical damage is mitigated by armor,
// magical damage by magic resistance; mitigation never heals. Health at
// or below zero kills the unit.
func (u *Unit) TakeDamage(d model.DamageDescriptor) {
	if !u.Alive() || !u.Attrs().Damagable() {
		return
	}

	taken := d.Value
	switch d.Type {
	case model.DamagePhysical:
		taken -= u.armor
	case model.DamageMagical:
		taken -= u.magResistance
	}
	taken = max(taken, 0)

	before := u.health
	u.health -= taken
	u.log.Info("took damage",
		"dealer", d.DealerName,
		"type", d.Type,
		"value", taken,
		"hp_before", before,
		"hp_after", u.health)

	if u.health <= 0 {
		u.Die(d.DealerName)
	}
}

// Die drops the inventory, ends any duel, removes the unit from storage
// and schedules its respawn.
func (u *Unit) Die(killer string) {
	if u.state == model.StateDead {
		return
	}
	u.log.Info("died", "killer", killer, "pos", u.Position())

	for len(u.inventory) > 0 {
		if u.DropItem(u.inventory[0].ObjectID()) == nil {
			// storage refused the item; forget it rather than loop
			u.inventory = u.inventory[1:]
		}
	}

	if partner := u.DuelTarget(); partner != nil {
		u.EndDuel()
		partner.ApplyEffect(skill.NewDuelInvulnerability(u.world.cfg.DuelInvulnerability))
	}
	u.duelTarget = model.Ref{}

	u.world.Emit(protocol.Death{Unit: u.ObjectID(), Killer: killer})

	u.state = model.StateDead
	u.SetAttrs(model.AttrPassable)
	u.unitAttrs = 0
	u.health = 0

	u.world.storage.Remove(u.ObjectID())
	u.world.respawner.Enqueue(u, u.world.cfg.RespawnDelay)
}

// DuelTarget returns the duel counterpart, or nil if there is none or it
// is no longer in the world.
func (u *Unit) DuelTarget() *Unit {
	if u.duelTarget.IsZero() {
		return nil
	}
	return u.world.ResolveUnit(u.duelTarget)
}

// CanDuel reports whether other can be challenged by u right now.
func (u *Unit) CanDuel(other *Unit) bool {
	if other == nil || other == u {
		return false
	}
	return u.state == model.StateWalking && u.unitAttrs.Duelable() &&
		other.state == model.StateWalking && other.unitAttrs.Duelable() &&
		u.world.storage.Contains(other)
}

// StartDuel engages other in a duel. Both sides switch to DUEL and lose
// DUELABLE until the duel ends.
func (u *Unit) StartDuel(other *Unit) bool {
	if !u.CanDuel(other) {
		return false
	}

	other.acceptDuel(u)
	u.state = model.StateDuel
	u.unitAttrs.Clear(model.UnitDuelable)
	u.duelTarget = u.world.storage.Ref(other.ObjectID())

	u.log.Info("duel started", "with", other.Name())
	u.world.Emit(protocol.Duel{First: u.ObjectID(), Second: other.ObjectID(), Started: true})
	return true
}

func (u *Unit) acceptDuel(other *Unit) {
	u.state = model.StateDuel
	u.unitAttrs.Clear(model.UnitDuelable)
	u.duelTarget = u.world.storage.Ref(other.ObjectID())
	u.log.Info("duel accepted", "from", other.Name())
}

// EndDuel returns both sides of the duel to WALKING and restores their
// interaction attributes.
func (u *Unit) EndDuel() {
	if u.state != model.StateDuel {
		return
	}

	partner := u.DuelTarget()
	otherID := u.duelTarget.ID
	u.leaveDuel()
	if partner != nil && partner.duelTarget.ID == u.ObjectID() {
		partner.leaveDuel()
	}

	u.log.Info("duel ended", "with", otherID)
	u.world.Emit(protocol.Duel{First: u.ObjectID(), Second: otherID, Started: false})
}

func (u *Unit) leaveDuel() {
	u.state = model.StateWalking
	u.unitAttrs.Set(model.UnitInput | model.UnitAttack | model.UnitDuelable)
	u.duelTarget = model.Ref{}
}

// Attack hits the duel target with the unit's actual damage.
func (u *Unit) Attack() bool {
	target := u.DuelTarget()
	if target == nil || u.state != model.StateDuel || !u.unitAttrs.Attack() {
		return false
	}

	u.world.Emit(protocol.Attack{
		Attacker: u.ObjectID(),
		Target:   target.ObjectID(),
		Damage:   u.actualDamage,
		Type:     model.DamagePhysical,
	})
	target.TakeDamage(model.DamageDescriptor{
		Value:      u.actualDamage,
		Type:       model.DamagePhysical,
		DealerName: u.name,
	})
	return true
}
