package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

func TestSpells_Warrior(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(2, 2))
	speed, armor := u.MoveSpeed(), u.Armor()

	require.True(t, u.CastSpell(0, nil))
	assert.Greater(t, u.MoveSpeed(), speed)
	assert.False(t, u.CastSpell(0, nil), "dash is on cooldown")

	require.True(t, u.CastSpell(1, nil))
	assert.Equal(t, armor+armorUpBonus, u.Armor())

	for range int(armorUpDuration/testTick) + 1 {
		u.Update(testTick)
	}
	assert.Equal(t, speed, u.MoveSpeed())
	assert.Equal(t, armor, u.Armor())

	spells := eventsOf[protocol.Spell](w.Drain())
	require.Len(t, spells, 2)
	assert.Equal(t, uint8(0), spells[0].Spell)
	assert.Equal(t, uint8(1), spells[1].Spell)
}

func TestSpells_MageTargets(t *testing.T) {
	w := newBoxWorld(t, 8)
	mage := spawnHero(t, w, 1, model.HeroMage, model.NewPoint(2, 2))
	victim := spawnHero(t, w, 2, model.HeroWarrior, model.NewPoint(5, 5))

	assert.False(t, mage.CastSpell(0, nil), "freeze needs a target")
	assert.False(t, mage.CastSpell(1, mage), "frostbolt cannot target the caster")

	require.True(t, mage.CastSpell(0, victim))
	assert.False(t, victim.UnitAttrs().Input())

	before := victim.Health()
	require.True(t, mage.CastSpell(1, victim))
	assert.Equal(t, before-(frostboltDamage-victim.MagResistance()), victim.Health())

	attacks := eventsOf[protocol.Attack](w.Drain())
	require.Len(t, attacks, 1)
	assert.Equal(t, model.DamageMagical, attacks[0].Type)
}

func TestSpells_FrozenCasterCannotCast(t *testing.T) {
	w := newBoxWorld(t, 8)
	mage := spawnHero(t, w, 1, model.HeroMage, model.NewPoint(2, 2))
	rogue := spawnHero(t, w, 2, model.HeroRogue, model.NewPoint(4, 4))

	require.True(t, mage.CastSpell(0, rogue))
	assert.False(t, rogue.CastSpell(0, nil))
}

func TestSpells_RogueInvisibility(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroRogue, model.NewPoint(2, 2))

	require.True(t, u.CastSpell(0, nil))
	assert.False(t, u.Attrs().Visible())
	assert.False(t, u.UnitAttrs().Duelable())
	assert.False(t, u.CastSpell(1, nil), "rogue has a single spell")

	for range int(invisDuration/testTick) + 1 {
		u.Update(testTick)
	}
	assert.True(t, u.Attrs().Visible())
	assert.True(t, u.UnitAttrs().Duelable())
}

func TestSpells_PriestHealCapped(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroPriest, model.NewPoint(2, 2))

	u.TakeDamage(model.DamageDescriptor{Value: 12, Type: model.DamagePhysical})
	require.Less(t, u.Health(), u.MaxHealth())

	require.True(t, u.CastSpell(0, nil))
	assert.Equal(t, u.MaxHealth(), u.Health())
}

func TestSpells_BasicAttackCooldown(t *testing.T) {
	w := newBoxWorld(t, 8)
	hero := spawnHero(t, w, 1, model.HeroRogue, model.NewPoint(2, 2))
	monster := spawnMonster(t, w, model.NewPoint(3, 2))
	require.True(t, hero.StartDuel(monster))

	require.True(t, hero.CastSpell(SpellAttack, nil))
	assert.False(t, hero.CastSpell(SpellAttack, nil), "attack is on cooldown")

	hero.Update(heroAttackCooldown)
	assert.True(t, hero.CastSpell(SpellAttack, nil))
}
