package world

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

const testTick = 100 * time.Millisecond

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBoxWorld builds a hand-assembled size×size world enclosed by walls
// with a graveyard in the bottom-left corner of the interior.
func newBoxWorld(t *testing.T, size int32) *World {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logger = discardLogger()
	w := New(cfg)
	w.SetMapSize(size)
	for i := int32(0); i < size; i++ {
		w.AddConstruction(model.ConstructionWall, model.NewPoint(i, 0))
		w.AddConstruction(model.ConstructionWall, model.NewPoint(i, size-1))
		if i > 0 && i < size-1 {
			w.AddConstruction(model.ConstructionWall, model.NewPoint(0, i))
			w.AddConstruction(model.ConstructionWall, model.NewPoint(size-1, i))
		}
	}
	w.AddConstruction(model.ConstructionGraveyard, model.NewPoint(1, 1))
	return w
}

func spawnHero(t *testing.T, w *World, uid int32, hero model.HeroType, pos model.Point) *Unit {
	t.Helper()
	u, err := w.AddHero(uid, "", hero)
	require.NoError(t, err)
	u.Spawn(pos)
	return u
}

func spawnMonster(t *testing.T, w *World, pos model.Point) *Unit {
	t.Helper()
	m, err := w.AddMonster(pos)
	require.NoError(t, err)
	m.Spawn(pos)
	return m
}

// eventsOf filters drained events by concrete type.
func eventsOf[T protocol.Event](events []protocol.Event) []T {
	var out []T
	for _, ev := range events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}
