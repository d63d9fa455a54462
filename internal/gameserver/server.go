// Package gameserver runs one match session: lobby, hero pick, world
// generation and the fixed-period tick loop over a UDP socket.
package gameserver

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/labyrinth/internal/ai"
	"github.com/udisondev/labyrinth/internal/crypto"
	"github.com/udisondev/labyrinth/internal/world"
)

// inboxSize bounds datagrams buffered between two ticks. Excess
// datagrams are dropped like on a congested socket.
const inboxSize = 1024

// Config is the session configuration handed over by the controller.
type Config struct {
	Port    int
	Players int
	Seed    uint32

	TickInterval time.Duration
	IdleTimeout  time.Duration // zero disables the timeout
	ReadBuffer   int

	// World is the base world configuration; Seed is taken from the session.
	World world.Config
	AI    ai.Config

	// Cipher wraps every datagram when set.
	Cipher *crypto.DatagramCipher
	Logger *slog.Logger
}

// DefaultConfig returns a single-player session config.
func DefaultConfig() Config {
	return Config{
		Players:      1,
		TickInterval: 2 * time.Millisecond,
		IdleTimeout:  30 * time.Second,
		ReadBuffer:   512,
		World:        world.DefaultConfig(),
		AI:           ai.DefaultConfig(),
	}
}

// Result describes how a finished session went.
type Result struct {
	Reason     string
	Winner     string // nickname, empty without a winner
	Players    []string
	Seed       uint32
	StartedAt  time.Time
	FinishedAt time.Time
}

type datagram struct {
	buf  []byte // pooled backing buffer
	data []byte
	addr net.Addr
}

// Server is the session state machine. Everything except Stage,
// Connected, Config and Done is owned by the goroutine calling Run.
type Server struct {
	cfg  Config
	conn net.PacketConn
	log  *slog.Logger
	pool *BytePool

	stage     atomic.Uint32
	connected atomic.Int32
	done      chan struct{}

	roster *roster
	world  *world.World
	idle   time.Duration
	result Result
}

// New creates a session on an already bound socket.
func New(cfg Config, conn net.PacketConn) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ReadBuffer <= 0 {
		cfg.ReadBuffer = 512
	}
	if cfg.Players <= 0 {
		cfg.Players = 1
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 2 * time.Millisecond
	}

	return &Server{
		cfg:    cfg,
		conn:   conn,
		log:    cfg.Logger,
		pool:   NewBytePool(cfg.ReadBuffer),
		done:   make(chan struct{}),
		roster: newRoster(cfg.Players),
		result: Result{Seed: cfg.Seed, StartedAt: time.Now()},
	}
}

// Stage returns the current stage. Safe for concurrent use.
func (s *Server) Stage() Stage {
	return Stage(s.stage.Load())
}

// Connected returns how many players joined the lobby. Safe for
// concurrent use.
func (s *Server) Connected() int {
	return int(s.connected.Load())
}

// Config returns the session configuration.
func (s *Server) Config() Config {
	return s.cfg
}

// Done is closed once the session reached FINISHED.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Result returns the session outcome. Valid after Done is closed.
func (s *Server) Result() Result {
	return s.result
}

// World returns the simulation, nil before GENERATING_WORLD.
func (s *Server) World() *world.World {
	return s.world
}

// Run drives the session until it finishes or ctx is cancelled. Each
// tick sleeps for the rest of the tick period, drains every buffered
// datagram and then runs one simulation step. The socket is closed on
// return.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("session started", "players", s.cfg.Players, "seed", s.cfg.Seed)

	inbox := make(chan datagram, inboxSize)
	var wg sync.WaitGroup
	wg.Go(func() { s.readLoop(inbox) })

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for s.Stage() != StageFinished {
		select {
		case <-ctx.Done():
			s.finish(ReasonShutdown)
		case <-ticker.C:
			s.tick(inbox)
		}
	}

	if err := s.conn.Close(); err != nil {
		s.log.Warn("closing session socket", "error", err)
	}
	wg.Wait()

	s.log.Info("session finished",
		"reason", s.result.Reason,
		"winner", s.result.Winner,
		"duration", s.result.FinishedAt.Sub(s.result.StartedAt))

	if s.result.Reason == ReasonIdleTimeout {
		return ErrIdleTimeout
	}
	return nil
}

// readLoop moves datagrams from the socket to inbox until the socket is
// closed.
func (s *Server) readLoop(inbox chan<- datagram) {
	for {
		buf := s.pool.Get()
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			s.pool.Put(buf)
			if s.Stage() == StageFinished || isClosed(err) {
				return
			}
			s.log.Warn("reading datagram", "error", err)
			continue
		}

		select {
		case inbox <- datagram{buf: buf, data: buf[:n], addr: addr}:
		default:
			s.pool.Put(buf)
			s.log.Warn("inbox full, datagram dropped", "from", addr)
		}
	}
}

func (s *Server) tick(inbox <-chan datagram) {
	received := 0
	for drained := false; !drained; {
		select {
		case d := <-inbox:
			received++
			s.handle(d.data, d.addr)
			s.pool.Put(d.buf)
		default:
			drained = true
		}
	}
	s.step(received)
}

// step runs one simulation step after received datagrams were handled.
func (s *Server) step(received int) {
	stage := s.Stage()
	if stage == StageFinished {
		return
	}

	if received > 0 {
		s.idle = 0
	} else if stage != StageLobbyForming {
		s.idle += s.cfg.TickInterval
	}

	if stage == StageRunningGame {
		s.world.Update(s.cfg.TickInterval)
		s.flush()
		if end, ok := s.world.Winner(); ok {
			s.result.Winner = end.Name
			s.finish(ReasonWinner)
			return
		}
	}

	if s.cfg.IdleTimeout > 0 && s.idle >= s.cfg.IdleTimeout {
		s.log.Warn("no traffic, closing session", "idle", s.idle)
		s.finish(ReasonIdleTimeout)
	}
}

func (s *Server) setStage(st Stage) {
	prev := Stage(s.stage.Swap(uint32(st)))
	s.log.Info("stage changed", "from", prev, "to", st)
}

// finish moves the session to FINISHED. Only the first call counts.
func (s *Server) finish(reason string) {
	if s.Stage() == StageFinished {
		return
	}
	s.result.Reason = reason
	s.result.Players = s.roster.nicknames()
	s.result.FinishedAt = time.Now()
	s.setStage(StageFinished)
	close(s.done)
}
