// Package matchmaking is the front door clients talk to before they join
// a session: it answers pings and find-game requests.
package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/udisondev/labyrinth/internal/crypto"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// SessionFinder picks the session port for a new player.
type SessionFinder interface {
	FindSession() (int, error)
}

// Config configures the front door.
type Config struct {
	// VersionMajor must match the client's major version.
	VersionMajor uint8
	ReadBuffer   int
	Cipher       *crypto.DatagramCipher
	Logger       *slog.Logger
}

// Server answers matchmaking datagrams.
type Server struct {
	cfg    Config
	finder SessionFinder
	log    *slog.Logger
}

// New creates a matchmaking server.
func New(cfg Config, finder SessionFinder) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ReadBuffer <= 0 {
		cfg.ReadBuffer = 512
	}
	return &Server{cfg: cfg, finder: finder, log: cfg.Logger}
}

// ListenAndServe binds a UDP socket on addr and serves it.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, conn)
}

// Serve answers datagrams on conn until ctx is cancelled or conn is
// closed. Other read errors are logged and skipped. conn is closed on
// return.
func (s *Server) Serve(ctx context.Context, conn net.PacketConn) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	s.log.Info("matchmaking started", "address", conn.LocalAddr())

	buf := make([]byte, s.cfg.ReadBuffer)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("matchmaking stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("reading matchmaking datagram: %w", err)
			}
			s.log.Warn("reading matchmaking datagram", "error", err)
			continue
		}

		reply, ok := s.Respond(buf[:n], addr)
		if !ok {
			continue
		}
		data, err := s.encode(reply)
		if err != nil {
			s.log.Error("encoding reply", "kind", reply.Kind(), "error", err)
			continue
		}
		if _, err := conn.WriteTo(data, addr); err != nil {
			s.log.Warn("sending reply", "to", addr, "error", err)
		}
	}
}

// Respond computes the reply to one datagram. Malformed or unexpected
// datagrams get no reply.
func (s *Server) Respond(data []byte, addr net.Addr) (protocol.Message, bool) {
	if s.cfg.Cipher != nil {
		payload, err := s.cfg.Cipher.Open(data)
		if err != nil {
			s.log.Warn("datagram rejected", "from", addr, "error", err)
			return nil, false
		}
		data = payload
	}

	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		s.log.Warn("datagram rejected", "from", addr, "error", err)
		return nil, false
	}

	switch c := cmd.(type) {
	case protocol.Ping:
		return protocol.Pong{}, true

	case protocol.FindGame:
		if c.VersionMajor != s.cfg.VersionMajor {
			s.log.Info("version mismatch", "uid", c.UID, "client", c.VersionMajor, "server", s.cfg.VersionMajor)
			return protocol.ConnectionStatus{Status: protocol.StatusVersionMismatch}, true
		}
		port, err := s.finder.FindSession()
		if err != nil {
			s.log.Warn("no session for player", "uid", c.UID, "error", err)
			return protocol.ConnectionStatus{Status: protocol.StatusServerFull}, true
		}
		s.log.Info("game found", "uid", c.UID, "port", port)
		return protocol.GameFound{Port: uint16(port)}, true
	}

	s.log.Warn("unexpected command", "from", addr, "kind", cmd.Kind())
	return nil, false
}

func (s *Server) encode(m protocol.Message) ([]byte, error) {
	data := protocol.Encode(m)
	if s.cfg.Cipher == nil {
		return data, nil
	}
	return s.cfg.Cipher.Seal(data)
}
