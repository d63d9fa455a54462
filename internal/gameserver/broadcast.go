package gameserver

import (
	"errors"
	"net"

	"github.com/udisondev/labyrinth/internal/protocol"
)

// encode serializes m and seals it when a cipher is configured.
func (s *Server) encode(m protocol.Message) ([]byte, error) {
	data := protocol.Encode(m)
	if s.cfg.Cipher == nil {
		return data, nil
	}
	return s.cfg.Cipher.Seal(data)
}

func (s *Server) write(data []byte, addr net.Addr) {
	if addr == nil {
		return
	}
	if _, err := s.conn.WriteTo(data, addr); err != nil {
		s.log.Warn("sending datagram", "to", addr, "error", err)
	}
}

// sendTo unicasts m to addr.
func (s *Server) sendTo(addr net.Addr, m protocol.Message) {
	data, err := s.encode(m)
	if err != nil {
		s.log.Error("encoding message", "kind", m.Kind(), "error", err)
		return
	}
	s.write(data, addr)
}

// sendToPlayer unicasts m to a roster member; unknown uids are a no-op.
func (s *Server) sendToPlayer(uid int32, m protocol.Message) {
	p := s.roster.get(uid)
	if p == nil {
		return
	}
	s.sendTo(p.Addr, m)
}

// broadcast sends m to every player.
func (s *Server) broadcast(m protocol.Message) {
	s.fanOut(m, func(*Player) bool { return true })
}

// broadcastExcept sends m to every player but the one with uid skip.
func (s *Server) broadcastExcept(skip int32, m protocol.Message) {
	s.fanOut(m, func(p *Player) bool { return p.UID != skip })
}

func (s *Server) fanOut(m protocol.Message, include func(*Player) bool) {
	data, err := s.encode(m)
	if err != nil {
		s.log.Error("encoding message", "kind", m.Kind(), "error", err)
		return
	}
	for _, p := range s.roster.players {
		if include(p) {
			s.write(data, p.Addr)
		}
	}
}

// flush broadcasts every event the world produced.
func (s *Server) flush() {
	if s.world == nil {
		return
	}
	for _, ev := range s.world.Drain() {
		s.broadcast(ev)
	}
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
