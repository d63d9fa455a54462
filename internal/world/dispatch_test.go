package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

func TestDispatch_Move(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(3, 3))

	w.Push(protocol.Move{UID: 1, Dir: model.DirUp})
	w.Push(protocol.Move{UID: 99, Dir: model.DirUp}) // unknown player
	w.Update(testTick)

	assert.Equal(t, model.NewPoint(3, 4), u.Position())
	assert.Len(t, eventsOf[protocol.UnitMoved](w.Drain()), 1)
}

func TestDispatch_FrozenHeroIgnoresMoves(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(3, 3))
	u.UnitAttrs().Clear(model.UnitInput)

	w.Push(protocol.Move{UID: 1, Dir: model.DirUp})
	w.Update(testTick)

	assert.Equal(t, model.NewPoint(3, 3), u.Position())
}

func TestDispatch_ItemTakeAndDrop(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(3, 3))
	here := w.AddItem(model.ItemSword, model.NewPoint(3, 3))
	away := w.AddItem(model.ItemKey, model.NewPoint(5, 5))

	w.Push(protocol.ItemAction{UID: 1, Item: away.ObjectID(), Action: model.ItemTake})
	w.Push(protocol.ItemAction{UID: 1, Item: here.ObjectID(), Action: model.ItemTake})
	w.Update(testTick)

	require.Len(t, u.Inventory(), 1)
	assert.Same(t, here, u.Inventory()[0])
	assert.True(t, w.Storage().Contains(away))

	w.Push(protocol.Move{UID: 1, Dir: model.DirRight})
	w.Push(protocol.ItemAction{UID: 1, Item: here.ObjectID(), Action: model.ItemDrop})
	w.Update(testTick)

	assert.Empty(t, u.Inventory())
	assert.Equal(t, model.NewPoint(4, 3), here.Position())
}

func TestDispatch_DuelNeedsAdjacency(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(2, 2))
	far := spawnMonster(t, w, model.NewPoint(5, 5))
	near := spawnMonster(t, w, model.NewPoint(2, 3))

	w.Push(protocol.DuelAction{UID: 1, Target: far.ObjectID()})
	w.Update(testTick)
	assert.Equal(t, model.StateWalking, u.State())

	w.Push(protocol.DuelAction{UID: 1, Target: near.ObjectID()})
	w.Update(testTick)
	assert.Same(t, near, u.DuelTarget())
}

func TestDispatch_SpellCastWithTarget(t *testing.T) {
	w := newBoxWorld(t, 8)
	mage := spawnHero(t, w, 1, model.HeroMage, model.NewPoint(2, 2))
	victim := spawnMonster(t, w, model.NewPoint(5, 5))

	w.Push(protocol.SpellCast{UID: 1, Spell: 1, Target: victim.ObjectID()})
	w.Update(testTick)

	assert.Less(t, victim.Health(), victim.MaxHealth())
	spells := eventsOf[protocol.Spell](w.Drain())
	require.Len(t, spells, 1)
	assert.Equal(t, protocol.Spell{Caster: mage.ObjectID(), Spell: 1, Target: victim.ObjectID()}, spells[0])
}

func TestDispatch_EscapeWithKey(t *testing.T) {
	w := newBoxWorld(t, 8)
	u := spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(3, 3))
	w.AddConstruction(model.ConstructionDoor, model.NewPoint(4, 3))

	w.Push(protocol.Move{UID: 1, Dir: model.DirRight})
	w.Update(testTick)
	_, won := w.Winner()
	assert.False(t, won, "door is locked without the key")
	assert.Equal(t, model.NewPoint(3, 3), u.Position())

	u.TakeItem(w.AddItem(model.ItemKey, model.NewPoint(3, 3)))
	w.Push(protocol.Move{UID: 1, Dir: model.DirRight})
	w.Update(testTick)

	end, won := w.Winner()
	require.True(t, won)
	assert.Equal(t, u.ObjectID(), end.Winner)
	assert.Len(t, eventsOf[protocol.GameEnd](w.Drain()), 1)
}

func TestDispatch_UnsupportedCommand(t *testing.T) {
	w := newBoxWorld(t, 8)
	spawnHero(t, w, 1, model.HeroWarrior, model.NewPoint(3, 3))
	w.Drain()

	w.Push(protocol.Ready{UID: 1})
	assert.NotPanics(t, func() { w.Update(testTick) })
	assert.Empty(t, w.Drain())
}
