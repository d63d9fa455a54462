package world

import (
	"time"

	"github.com/udisondev/labyrinth/internal/game/skill"
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// SpellAttack is the spell index of the basic duel attack every hero has.
const SpellAttack uint8 = 0xFF

// attackSlot is the cooldown slot of the basic attack. Spellbook spell i
// uses slot i+1.
const attackSlot = 0

const heroAttackCooldown = time.Second

// Spell tuning.
const (
	dashDuration      = 3 * time.Second
	dashCooldown      = 10 * time.Second
	dashBonus         = 0.5
	armorUpDuration   = 5 * time.Second
	armorUpCooldown   = 15 * time.Second
	armorUpBonus      = 5
	freezeDuration    = 3 * time.Second
	freezeCooldown    = 12 * time.Second
	frostboltDamage   = 15
	frostboltCooldown = 5 * time.Second
	invisDuration     = 5 * time.Second
	invisCooldown     = 20 * time.Second
	healAmount        = 15
	healCooldown      = 8 * time.Second
)

// spell is one entry of a hero spellbook. cast returns false if the spell
// could not be performed (bad target), in which case the cooldown is not
// consumed.
type spell struct {
	name     string
	cooldown time.Duration
	cast     func(caster, target *Unit) bool
}

// spellbook is the Behavior of a hero.
type spellbook struct {
	spells []spell
}

// newSpellbook registers the cooldown slots of hero class t on u.
func newSpellbook(t model.HeroType, u *Unit) *spellbook {
	b := &spellbook{spells: heroSpells(t)}
	u.cooldowns.AddSpell(heroAttackCooldown)
	for _, s := range b.spells {
		u.cooldowns.AddSpell(s.cooldown)
	}
	return b
}

func (b *spellbook) Update(*Unit, time.Duration) {}

func (b *spellbook) Cast(u *Unit, idx uint8, target *Unit) bool {
	if int(idx) >= len(b.spells) {
		u.log.Warn("unknown spell", "spell", idx)
		return false
	}
	slot := int(idx) + 1
	if !u.cooldowns.SpellReady(slot) {
		return false
	}

	s := b.spells[idx]
	if !s.cast(u, target) {
		return false
	}
	u.cooldowns.Restart(slot)

	var targetID model.ObjectID
	if target != nil {
		targetID = target.ObjectID()
	}
	u.log.Info("spell cast", "spell", s.name, "target", targetID)
	u.world.Emit(protocol.Spell{Caster: u.ObjectID(), Spell: idx, Target: targetID})
	return true
}

func heroSpells(t model.HeroType) []spell {
	switch t {
	case model.HeroWarrior:
		return []spell{
			{name: "Dash", cooldown: dashCooldown, cast: func(c, _ *Unit) bool {
				c.ApplyEffect(skill.NewWarriorDash(dashDuration, dashBonus))
				return true
			}},
			{name: "ArmorUp", cooldown: armorUpCooldown, cast: func(c, _ *Unit) bool {
				c.ApplyEffect(skill.NewWarriorArmorUp(armorUpDuration, armorUpBonus))
				return true
			}},
		}
	case model.HeroMage:
		return []spell{
			{name: "Freeze", cooldown: freezeCooldown, cast: func(c, t *Unit) bool {
				if !validTarget(c, t) {
					return false
				}
				t.ApplyEffect(skill.NewMageFreeze(freezeDuration))
				return true
			}},
			{name: "Frostbolt", cooldown: frostboltCooldown, cast: func(c, t *Unit) bool {
				if !validTarget(c, t) {
					return false
				}
				c.world.Emit(protocol.Attack{
					Attacker: c.ObjectID(),
					Target:   t.ObjectID(),
					Damage:   frostboltDamage,
					Type:     model.DamageMagical,
				})
				t.TakeDamage(model.DamageDescriptor{
					Value:      frostboltDamage,
					Type:       model.DamageMagical,
					DealerName: c.Name(),
				})
				return true
			}},
		}
	case model.HeroRogue:
		return []spell{
			{name: "Invisibility", cooldown: invisCooldown, cast: func(c, _ *Unit) bool {
				c.ApplyEffect(skill.NewRogueInvisibility(invisDuration))
				return true
			}},
		}
	case model.HeroPriest:
		return []spell{
			{name: "Heal", cooldown: healCooldown, cast: func(c, _ *Unit) bool {
				c.health = min(c.health+healAmount, c.maxHealth)
				return true
			}},
		}
	}
	return nil
}

func validTarget(caster, target *Unit) bool {
	return target != nil && target != caster && target.Alive()
}

// CastSpell casts spell idx, or the basic attack for SpellAttack. Requires
// INPUT and a ready cooldown.
func (u *Unit) CastSpell(idx uint8, target *Unit) bool {
	if !u.Alive() || !u.unitAttrs.Input() {
		return false
	}

	if idx == SpellAttack {
		if !u.cooldowns.SpellReady(attackSlot) {
			return false
		}
		if !u.Attack() {
			return false
		}
		u.cooldowns.Restart(attackSlot)
		return true
	}

	if u.behavior == nil {
		return false
	}
	return u.behavior.Cast(u, idx, target)
}
