package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMatchNotFound is returned when no match has the requested id.
var ErrMatchNotFound = errors.New("match not found")

// Match is the history record of one finished session.
type Match struct {
	ID         uuid.UUID
	Port       int
	Seed       uint32
	Players    []string // nicknames in roster order
	Winner     string   // empty when nobody escaped
	Reason     string   // why the session finished
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the session lived.
func (m Match) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// MatchRepository stores match history.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates a repository on top of pool.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Save inserts m. Saving the same id twice is an error.
func (r *MatchRepository) Save(ctx context.Context, m Match) error {
	players := m.Players
	if players == nil {
		players = []string{}
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO matches (id, port, seed, players, winner, reason, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID.String(), m.Port, int64(m.Seed), players, m.Winner, m.Reason, m.StartedAt, m.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("saving match %s: %w", m.ID, err)
	}
	return nil
}

// Get returns the match with the given id.
func (r *MatchRepository) Get(ctx context.Context, id uuid.UUID) (Match, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id::text, port, seed, players, winner, reason, started_at, finished_at
		 FROM matches WHERE id = $1`, id.String(),
	)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Match{}, fmt.Errorf("match %s: %w", id, ErrMatchNotFound)
		}
		return Match{}, fmt.Errorf("querying match %s: %w", id, err)
	}
	return m, nil
}

// Recent returns up to limit matches, most recently finished first.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]Match, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, port, seed, players, winner, reason, started_at, finished_at
		 FROM matches ORDER BY finished_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent matches: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}
	return out, nil
}

// CountWins returns how many recorded matches nickname has won.
func (r *MatchRepository) CountWins(ctx context.Context, nickname string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM matches WHERE winner = $1`, nickname,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting wins of %q: %w", nickname, err)
	}
	return n, nil
}

func scanMatch(row pgx.Row) (Match, error) {
	var (
		m    Match
		id   string
		seed int64
	)
	if err := row.Scan(&id, &m.Port, &seed, &m.Players, &m.Winner, &m.Reason, &m.StartedAt, &m.FinishedAt); err != nil {
		return Match{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Match{}, fmt.Errorf("parsing match id %q: %w", id, err)
	}
	m.ID = parsed
	m.Seed = uint32(seed)
	return m, nil
}
