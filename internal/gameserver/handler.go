package gameserver

import (
	"errors"
	"fmt"
	"net"

	"github.com/udisondev/labyrinth/internal/ai"
	"github.com/udisondev/labyrinth/internal/protocol"
	"github.com/udisondev/labyrinth/internal/world"
)

// handle validates one datagram and applies it to the current stage.
// Bad datagrams are logged and dropped; the session continues.
func (s *Server) handle(data []byte, addr net.Addr) {
	if s.cfg.Cipher != nil {
		payload, err := s.cfg.Cipher.Open(data)
		if err != nil {
			s.reject(addr, fmt.Errorf("%w: %w", ErrProtocolViolation, err))
			return
		}
		data = payload
	}

	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		s.reject(addr, fmt.Errorf("%w: %w", ErrProtocolViolation, err))
		return
	}

	stage := s.Stage()
	if stage == StageRunningGame {
		s.relearn(cmd.Sender(), addr)
	}

	if _, ok := cmd.(protocol.Ping); ok {
		s.sendTo(addr, protocol.Pong{})
		return
	}

	switch stage {
	case StageLobbyForming:
		err = s.handleLobby(cmd, addr)
	case StageHeroPick:
		err = s.handleHeroPick(cmd, addr)
	case StageGeneratingWorld:
		err = s.handleGenerating(cmd)
	case StageRunningGame:
		err = s.handleRunning(cmd)
	default:
		return
	}
	if err != nil {
		s.reject(addr, err)
	}
}

func (s *Server) reject(addr net.Addr, err error) {
	if errors.Is(err, ErrUnknownPlayer) {
		s.log.Debug("command from unknown player", "from", addr, "error", err)
		return
	}
	s.log.Warn("datagram rejected", "from", addr, "stage", s.Stage(), "error", err)
}

func unexpected(cmd protocol.Command, stage Stage) error {
	return fmt.Errorf("%w: %s during %s", ErrProtocolViolation, cmd.Kind(), stage)
}

// relearn follows a player whose endpoint changed (NAT rebinding, new
// client port).
func (s *Server) relearn(uid int32, addr net.Addr) {
	p := s.roster.get(uid)
	if p == nil || sameEndpoint(p.Addr, addr) {
		return
	}
	s.log.Info("player endpoint changed", "uid", uid, "from", p.Addr, "to", addr)
	p.Addr = addr
}

func (s *Server) playerOf(cmd protocol.Command) (*Player, error) {
	p := s.roster.get(cmd.Sender())
	if p == nil {
		return nil, fmt.Errorf("%w: uid %d", ErrUnknownPlayer, cmd.Sender())
	}
	return p, nil
}

func (s *Server) handleLobby(cmd protocol.Command, addr net.Addr) error {
	c, ok := cmd.(protocol.Connect)
	if !ok {
		return unexpected(cmd, StageLobbyForming)
	}

	if p := s.roster.get(c.UID); p != nil {
		// duplicate connect, the first acceptance may have been lost
		p.Addr = addr
		s.sendToPlayer(p.UID, protocol.ConnectionStatus{Status: protocol.StatusAccepted})
		return nil
	}
	if s.roster.len() >= s.cfg.Players {
		s.sendTo(addr, protocol.ConnectionStatus{Status: protocol.StatusServerFull})
		return nil
	}

	p := s.roster.add(c.UID, c.Nickname, addr)
	s.connected.Store(int32(s.roster.len()))
	s.log.Info("player connected", "uid", p.UID, "nickname", p.Nickname, "addr", addr,
		"players", s.roster.len(), "need", s.cfg.Players)

	s.sendToPlayer(p.UID, protocol.ConnectionStatus{Status: protocol.StatusAccepted})
	for _, q := range s.roster.players {
		s.sendToPlayer(p.UID, protocol.PlayerConnected{UID: q.UID, Nickname: q.Nickname})
	}
	s.broadcastExcept(p.UID, protocol.PlayerConnected{UID: p.UID, Nickname: p.Nickname})

	if s.roster.len() == s.cfg.Players {
		s.roster.setState(PlayerHeroPickPending)
		s.setStage(StageHeroPick)
		s.broadcast(protocol.HeroPickStage{})
	}
	return nil
}

func (s *Server) handleHeroPick(cmd protocol.Command, addr net.Addr) error {
	switch c := cmd.(type) {
	case protocol.Connect:
		if p := s.roster.get(c.UID); p != nil {
			p.Addr = addr
			s.sendTo(addr, protocol.ConnectionStatus{Status: protocol.StatusAccepted})
			return nil
		}
		s.sendTo(addr, protocol.ConnectionStatus{Status: protocol.StatusServerFull})
		return nil

	case protocol.HeroPick:
		p, err := s.playerOf(cmd)
		if err != nil {
			return err
		}
		if p.State == PlayerReady {
			return fmt.Errorf("%w: uid %d picks a hero after ready", ErrProtocolViolation, p.UID)
		}
		if !c.Hero.Valid() {
			return fmt.Errorf("%w: unknown hero %d", ErrProtocolViolation, c.Hero)
		}
		p.Hero = c.Hero
		s.broadcast(protocol.HeroPicked{UID: p.UID, Hero: p.Hero})
		return nil

	case protocol.Ready:
		p, err := s.playerOf(cmd)
		if err != nil {
			return err
		}
		if p.State == PlayerReady {
			return nil
		}
		p.State = PlayerReady
		s.log.Info("player ready", "uid", p.UID, "hero", p.Hero)
		s.broadcast(protocol.PlayerReady{UID: p.UID})

		if s.roster.all(func(p *Player) bool { return p.State == PlayerReady }) {
			if err := s.generateWorld(); err != nil {
				s.log.Error("generating world", "error", err)
				s.finish(ReasonWorldFailure)
			}
		}
		return nil
	}
	return unexpected(cmd, StageHeroPick)
}

func (s *Server) handleGenerating(cmd protocol.Command) error {
	if _, ok := cmd.(protocol.MapGenerated); !ok {
		return unexpected(cmd, StageGeneratingWorld)
	}
	p, err := s.playerOf(cmd)
	if err != nil {
		return err
	}
	p.acked = true

	if s.roster.all(func(p *Player) bool { return p.acked }) {
		s.roster.setState(PlayerInGame)
		s.setStage(StageRunningGame)
		s.broadcast(protocol.GameStart{})
	}
	return nil
}

func (s *Server) handleRunning(cmd protocol.Command) error {
	switch cmd.(type) {
	case protocol.Move, protocol.ItemAction, protocol.DuelAction, protocol.SpellCast:
		if _, err := s.playerOf(cmd); err != nil {
			return err
		}
		s.world.Push(cmd)
		return nil
	}
	return unexpected(cmd, StageRunningGame)
}

// generateWorld builds the world from the session seed, registers every
// player as a hero, spawns everything and announces the map parameters.
// The session then waits for a map-generated ack from every player.
func (s *Server) generateWorld() error {
	s.setStage(StageGeneratingWorld)

	cfg := s.cfg.World
	cfg.Seed = s.cfg.Seed
	cfg.Logger = s.log.With("component", "world")
	if cfg.NewMonsterBrain == nil {
		cfg.NewMonsterBrain = ai.NewFactory(s.cfg.AI)
	}

	w := world.New(cfg)
	if err := w.GenerateMap(); err != nil {
		return fmt.Errorf("generating map: %w", err)
	}
	for _, p := range s.roster.players {
		u, err := w.AddHero(p.UID, p.Nickname, p.Hero)
		if err != nil {
			return fmt.Errorf("adding hero of %d: %w", p.UID, err)
		}
		p.Unit = u.ObjectID()
	}
	if err := w.InitialSpawn(); err != nil {
		return fmt.Errorf("initial spawn: %w", err)
	}
	s.world = w

	s.broadcast(protocol.GenerateMap{
		ChunkCount: uint16(cfg.ChunkCount),
		ChunkSize:  uint16(cfg.ChunkSize),
		Seed:       cfg.Seed,
	})
	s.flush()
	return nil
}
