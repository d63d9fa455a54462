package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Step(t *testing.T) {
	p := NewPoint(5, 5)

	tests := []struct {
		dir  Direction
		want Point
	}{
		{DirUp, NewPoint(5, 6)},
		{DirDown, NewPoint(5, 4)},
		{DirLeft, NewPoint(4, 5)},
		{DirRight, NewPoint(6, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Step(tt.dir))
			assert.Equal(t, int32(1), p.Manhattan(p.Step(tt.dir)))
		})
	}
}

func TestPoint_Distance(t *testing.T) {
	a := NewPoint(0, 0)
	b := NewPoint(3, 4)

	assert.Equal(t, int64(25), a.DistanceSquared(b))
	assert.InDelta(t, 5.0, a.Distance(b), 0.0001)
	assert.Equal(t, int32(7), a.Manhattan(b))
}

func TestPoint_DirectionTo(t *testing.T) {
	p := NewPoint(2, 2)

	dir, ok := p.DirectionTo(NewPoint(4, 1))
	assert.True(t, ok)
	assert.Equal(t, DirRight, dir, "X axis is preferred")

	dir, ok = p.DirectionTo(NewPoint(2, 0))
	assert.True(t, ok)
	assert.Equal(t, DirDown, dir)

	_, ok = p.DirectionTo(p)
	assert.False(t, ok)
}

func TestAttrs_SetClear(t *testing.T) {
	var a ObjectAttrs
	a.Set(AttrVisible | AttrMovable)
	assert.True(t, a.Visible())
	assert.True(t, a.Movable())
	assert.False(t, a.Passable())

	a.Clear(AttrVisible)
	assert.False(t, a.Visible())
	assert.True(t, a.Movable())

	u := UnitAllAttrs
	u.Clear(UnitDuelable)
	assert.True(t, u.Input())
	assert.True(t, u.Attack())
	assert.False(t, u.Duelable())
}
