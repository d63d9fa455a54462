package skill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/model"
)

// fakeTarget is a minimal Target for effect tests.
type fakeTarget struct {
	objAttrs  model.ObjectAttrs
	unitAttrs model.UnitAttrs
	armor     int16
	moveSpeed float64
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		objAttrs:  model.AttrVisible | model.AttrMovable | model.AttrDamagable,
		unitAttrs: model.UnitAllAttrs,
		armor:     2,
		moveSpeed: 0.5,
	}
}

func (f *fakeTarget) Name() string                    { return "dummy" }
func (f *fakeTarget) ObjectAttrs() *model.ObjectAttrs { return &f.objAttrs }
func (f *fakeTarget) UnitAttrs() *model.UnitAttrs     { return &f.unitAttrs }
func (f *fakeTarget) AddArmor(d int16)                { f.armor += d }
func (f *fakeTarget) AddMoveSpeed(d float64)          { f.moveSpeed += d }

// countingEffect records how many times Stop ran.
type countingEffect struct {
	timedEffect
	starts int
	stops  int
}

func (e *countingEffect) Start() { e.starts++ }
func (e *countingEffect) Stop()  { e.stops++ }

func apply(m *EffectManager, t Target, e Effect) {
	e.Bind(t)
	e.Start()
	m.Add(e)
}

func TestEffectManager_StopsOnceWhenTimerCrossesZero(t *testing.T) {
	m := NewEffectManager(nil)
	e := &countingEffect{timedEffect: newTimedEffect("count", 100*time.Millisecond)}
	apply(m, newFakeTarget(), e)

	m.Update(60 * time.Millisecond)
	assert.Equal(t, EffectActive, e.State())
	assert.Equal(t, 0, e.stops)
	assert.Equal(t, 1, m.Count())

	m.Update(40 * time.Millisecond)
	assert.Equal(t, EffectOver, e.State(), "timer at exactly zero is over")
	assert.Equal(t, 1, e.stops)
	assert.Equal(t, 0, m.Count())

	for range 3 {
		m.Update(time.Second)
	}
	assert.Equal(t, 1, e.stops, "stop must not run twice")
}

func TestEffectManager_TimerFrozenWhenOver(t *testing.T) {
	e := &countingEffect{timedEffect: newTimedEffect("count", 10*time.Millisecond)}
	e.Update(20 * time.Millisecond)
	require.Equal(t, EffectOver, e.State())

	left := e.Remaining()
	e.Update(time.Second)
	assert.Equal(t, left, e.Remaining(), "OVER effect must not tick")
}

func TestEffectManager_KeepsOthers(t *testing.T) {
	m := NewEffectManager(nil)
	target := newFakeTarget()
	short := &countingEffect{timedEffect: newTimedEffect("short", 10*time.Millisecond)}
	long := &countingEffect{timedEffect: newTimedEffect("long", time.Second)}
	apply(m, target, short)
	apply(m, target, long)

	m.Update(20 * time.Millisecond)

	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Has("long"))
	assert.False(t, m.Has("short"))
	assert.Equal(t, 0, long.stops)
}

func TestEffects_ApplyAndRevert(t *testing.T) {
	tests := []struct {
		name    string
		effect  Effect
		applied func(t *testing.T, f *fakeTarget)
	}{
		{
			name:   "dash",
			effect: NewWarriorDash(time.Second, 0.25),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.InDelta(t, 0.75, f.moveSpeed, 1e-9)
			},
		},
		{
			name:   "armor up",
			effect: NewWarriorArmorUp(time.Second, 5),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.Equal(t, int16(7), f.armor)
			},
		},
		{
			name:   "freeze",
			effect: NewMageFreeze(time.Second),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.False(t, f.unitAttrs.Input())
				assert.True(t, f.unitAttrs.Attack())
			},
		},
		{
			name:   "invisibility",
			effect: NewRogueInvisibility(time.Second),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.False(t, f.objAttrs.Visible())
				assert.False(t, f.unitAttrs.Duelable())
			},
		},
		{
			name:   "duel invulnerability",
			effect: NewDuelInvulnerability(time.Second),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.False(t, f.unitAttrs.Duelable())
			},
		},
		{
			name:   "respawn invulnerability",
			effect: NewRespawnInvulnerability(time.Second),
			applied: func(t *testing.T, f *fakeTarget) {
				assert.False(t, f.unitAttrs.Duelable())
				assert.False(t, f.objAttrs.Passable())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewEffectManager(nil)
			f := newFakeTarget()
			before := *f

			apply(m, f, tt.effect)
			tt.applied(t, f)

			m.Update(2 * time.Second)
			assert.Equal(t, 0, m.Count())
			assert.Equal(t, before, *f, "stop must revert the exact delta")
		})
	}
}

func TestRespawnInvulnerability_RestoresPassable(t *testing.T) {
	f := newFakeTarget()
	f.objAttrs.Set(model.AttrPassable)

	e := NewRespawnInvulnerability(time.Second)
	e.Bind(f)
	e.Start()
	assert.False(t, f.objAttrs.Passable())

	e.Stop()
	assert.True(t, f.objAttrs.Passable())
	assert.True(t, f.objAttrs.Visible())
}
