package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/labyrinth/internal/testutil"
)

func newMatch(finished time.Time, winner string) Match {
	return Match{
		ID:         uuid.New(),
		Port:       1931,
		Seed:       0xDEADBEEF,
		Players:    []string{"alice", "bob"},
		Winner:     winner,
		Reason:     "winner",
		StartedAt:  finished.Add(-5 * time.Minute),
		FinishedAt: finished,
	}
}

func TestMatchRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	pool := testutil.SetupTestDB(t)
	repo := NewMatchRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("save and get", func(t *testing.T) {
		m := newMatch(now, "alice")
		require.NoError(t, repo.Save(ctx, m))

		got, err := repo.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.ID, got.ID)
		assert.Equal(t, m.Seed, got.Seed, "seeds above MaxInt32 survive the round trip")
		assert.Equal(t, m.Players, got.Players)
		assert.Equal(t, "alice", got.Winner)
		assert.Equal(t, 5*time.Minute, got.Duration())
	})

	t.Run("duplicate id", func(t *testing.T) {
		m := newMatch(now, "")
		require.NoError(t, repo.Save(ctx, m))
		assert.Error(t, repo.Save(ctx, m))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("recent is newest first", func(t *testing.T) {
		older := newMatch(now.Add(time.Hour), "bob")
		newer := newMatch(now.Add(2*time.Hour), "bob")
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		got, err := repo.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)

		wins, err := repo.CountWins(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 2, wins)
	})
}
