// Package controller manages the lifecycle of match sessions: it assigns
// ports, starts sessions on a bounded worker pool, reuses lobbies that
// still have room and reclaims finished sessions.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/labyrinth/internal/db"
	"github.com/udisondev/labyrinth/internal/gameserver"
)

var (
	// ErrNoFreePorts is returned when the port pool is exhausted.
	ErrNoFreePorts = errors.New("no free session ports")
	// ErrNoWorkers is returned when every session worker is busy.
	ErrNoWorkers = errors.New("no free session workers")
	// ErrNotRunning is returned by FindSession outside of Run.
	ErrNotRunning = errors.New("controller is not running")
)

// persistTimeout bounds saving one match record.
const persistTimeout = 5 * time.Second

// defaultClaimTimeout is used when neither ClaimTimeout nor the session
// idle timeout is set.
const defaultClaimTimeout = 30 * time.Second

// ListenFunc binds the socket of a new session.
type ListenFunc func(port int) (net.PacketConn, error)

// UDPListener returns a ListenFunc binding UDP sockets on bindAddress.
func UDPListener(bindAddress string) ListenFunc {
	return func(port int) (net.PacketConn, error) {
		return net.ListenPacket("udp", net.JoinHostPort(bindAddress, strconv.Itoa(port)))
	}
}

// MatchStore persists finished matches.
type MatchStore interface {
	Save(ctx context.Context, m db.Match) error
}

// Config configures the controller.
type Config struct {
	PlayersPerSession int
	MaxSessions       int
	// Session is the template every session config is derived from.
	Session gameserver.Config
	// SeedSource seeds the match seed generator; zero picks a random one.
	SeedSource uint64
	// ClaimTimeout is how long a lobby slot handed out by FindSession
	// stays reserved for a player that never connects. Zero means the
	// session idle timeout.
	ClaimTimeout time.Duration
}

// SessionInfo is a snapshot of a running session.
type SessionInfo struct {
	ID       uuid.UUID
	Port     int
	Stage    gameserver.Stage
	Assigned int
}

type session struct {
	id         uuid.UUID
	port       int
	server     *gameserver.Server
	assigned   int // players directed to this session
	assignedAt time.Time
}

// expireClaims drops slots handed out more than timeout ago whose
// players never connected, so the lobby can be offered again.
func (s *session) expireClaims(now time.Time, timeout time.Duration) {
	connected := s.server.Connected()
	if s.assigned <= connected || now.Sub(s.assignedAt) < timeout {
		return
	}
	s.assigned = connected
}

func (s *session) claim(now time.Time) {
	s.assigned++
	s.assignedAt = now
}

// Controller is the session lifecycle manager.
type Controller struct {
	cfg    Config
	ports  EndpointProvider
	listen ListenFunc
	store  MatchStore
	log    *slog.Logger

	group errgroup.Group

	mu       sync.Mutex
	ctx      context.Context
	sessions []*session
	seeds    *rand.Rand
}

// New creates a controller. store may be nil to skip persistence.
func New(cfg Config, ports EndpointProvider, listen ListenFunc, store MatchStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if cfg.PlayersPerSession <= 0 {
		cfg.PlayersPerSession = 1
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1
	}
	if cfg.ClaimTimeout <= 0 {
		cfg.ClaimTimeout = cfg.Session.IdleTimeout
	}
	if cfg.ClaimTimeout <= 0 {
		cfg.ClaimTimeout = defaultClaimTimeout
	}
	seed := cfg.SeedSource
	if seed == 0 {
		seed = rand.Uint64()
	}

	c := &Controller{
		cfg:    cfg,
		ports:  ports,
		listen: listen,
		store:  store,
		log:    log,
		seeds:  rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
	c.group.SetLimit(cfg.MaxSessions)
	return c
}

// Run serves until ctx is cancelled, then waits for every session to
// shut down.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.log.Info("controller started",
		"max_sessions", c.cfg.MaxSessions,
		"players_per_session", c.cfg.PlayersPerSession)

	<-ctx.Done()
	err := c.group.Wait()
	c.log.Info("controller stopped")
	return err
}

// FindSession returns the port of a session a new player should join:
// a forming lobby with room if there is one, otherwise a new session.
// Slots of players that were sent to a lobby but did not connect within
// ClaimTimeout count as free again.
func (c *Controller) FindSession() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx == nil || c.ctx.Err() != nil {
		return 0, ErrNotRunning
	}

	now := time.Now()
	for _, s := range c.sessions {
		if s.server.Stage() != gameserver.StageLobbyForming {
			continue
		}
		s.expireClaims(now, c.cfg.ClaimTimeout)
		if s.assigned < c.cfg.PlayersPerSession {
			s.claim(now)
			return s.port, nil
		}
	}

	s, err := c.startSession()
	if err != nil {
		return 0, err
	}
	s.claim(now)
	return s.port, nil
}

// startSession must be called with c.mu held.
func (c *Controller) startSession() (*session, error) {
	port, err := c.ports.Acquire()
	if err != nil {
		return nil, err
	}

	conn, err := c.listen(port)
	if err != nil {
		c.ports.Release(port)
		return nil, fmt.Errorf("binding session port %d: %w", port, err)
	}

	id := uuid.New()
	cfg := c.cfg.Session
	cfg.Port = port
	cfg.Players = c.cfg.PlayersPerSession
	cfg.Seed = c.seeds.Uint32()
	cfg.Logger = c.log.With("session", id, "port", port)

	s := &session{id: id, port: port, server: gameserver.New(cfg, conn)}
	ctx := c.ctx
	if !c.group.TryGo(func() error {
		c.runSession(ctx, s)
		return nil
	}) {
		_ = conn.Close()
		c.ports.Release(port)
		return nil, ErrNoWorkers
	}

	c.sessions = append(c.sessions, s)
	c.log.Info("session created", "session", id, "port", port, "seed", cfg.Seed)
	return s, nil
}

func (c *Controller) runSession(ctx context.Context, s *session) {
	err := s.server.Run(ctx)
	switch {
	case err == nil, errors.Is(err, gameserver.ErrIdleTimeout):
	default:
		c.log.Error("session failed", "session", s.id, "error", err)
	}
	c.reclaim(ctx, s)
}

// reclaim forgets a finished session, returns its port and stores the
// match record.
func (c *Controller) reclaim(ctx context.Context, s *session) {
	c.mu.Lock()
	for i, other := range c.sessions {
		if other == s {
			c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.ports.Release(s.port)

	res := s.server.Result()
	c.log.Info("session reclaimed", "session", s.id, "port", s.port, "reason", res.Reason)

	if c.store == nil || len(res.Players) == 0 {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	m := db.Match{
		ID:         s.id,
		Port:       s.port,
		Seed:       res.Seed,
		Players:    res.Players,
		Winner:     res.Winner,
		Reason:     res.Reason,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if err := c.store.Save(saveCtx, m); err != nil {
		c.log.Error("saving match", "session", s.id, "error", err)
	}
}

// Sessions returns a snapshot of the live sessions.
func (c *Controller) Sessions() []SessionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SessionInfo, len(c.sessions))
	for i, s := range c.sessions {
		out[i] = SessionInfo{ID: s.id, Port: s.port, Stage: s.server.Stage(), Assigned: s.assigned}
	}
	return out
}
