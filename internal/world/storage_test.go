package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/model"
)

func TestStorage_AscendingOrder(t *testing.T) {
	s := NewStorage()
	for _, id := range []model.ObjectID{7, 2, 9, 4} {
		require.NoError(t, s.Insert(NewItem(id, model.ItemSword, model.NewPoint(1, 1))))
	}

	var ids []model.ObjectID
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ObjectID())
	}
	assert.Equal(t, []model.ObjectID{2, 4, 7, 9}, ids)

	s.Remove(4)
	ids = ids[:0]
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ObjectID())
	}
	assert.Equal(t, []model.ObjectID{2, 7, 9}, ids)
}

func TestStorage_InsertDuplicate(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Insert(NewItem(1, model.ItemKey, model.Point{})))

	assert.Error(t, s.Insert(NewItem(1, model.ItemSword, model.Point{})))
	assert.Error(t, s.Insert(NewItem(model.InvalidObjectID, model.ItemSword, model.Point{})))
	assert.Equal(t, 1, s.Len())
}

func TestStorage_RefGoesStale(t *testing.T) {
	s := NewStorage()
	first := NewItem(3, model.ItemKey, model.Point{})
	require.NoError(t, s.Insert(first))

	ref := s.Ref(3)
	obj, ok := s.Resolve(ref)
	require.True(t, ok)
	assert.Same(t, first, obj)

	s.Remove(3)
	_, ok = s.Resolve(ref)
	assert.False(t, ok, "removed object must not resolve")

	second := NewItem(3, model.ItemKey, model.Point{})
	require.NoError(t, s.Insert(second))
	_, ok = s.Resolve(ref)
	assert.False(t, ok, "reference to an earlier instance must not resolve to a new one")

	obj, ok = s.Resolve(s.Ref(3))
	require.True(t, ok)
	assert.Same(t, second, obj)

	_, ok = s.Resolve(model.Ref{})
	assert.False(t, ok)
}

func TestStorage_SubsetAndBlocked(t *testing.T) {
	s := NewStorage()
	wall := NewConstruction(1, model.ConstructionWall, model.NewPoint(2, 2))
	grave := NewConstruction(2, model.ConstructionGraveyard, model.NewPoint(3, 3))
	key := NewItem(3, model.ItemKey, model.NewPoint(3, 3))
	for _, obj := range []Object{key, grave, wall} {
		require.NoError(t, s.Insert(obj))
	}

	assert.Len(t, Subset[*Construction](s), 2)
	assert.Len(t, Subset[*Item](s), 1)
	assert.Empty(t, Subset[*Unit](s))

	assert.True(t, s.Blocked(model.NewPoint(2, 2)))
	assert.False(t, s.Blocked(model.NewPoint(3, 3)), "graveyard and items are passable")
	assert.Len(t, s.ObjectsAt(model.NewPoint(3, 3)), 2)
	assert.True(t, s.Contains(wall))
	assert.False(t, s.Contains(NewConstruction(1, model.ConstructionWall, model.NewPoint(2, 2))))
}
