package gameserver

import (
	"net"

	"github.com/udisondev/labyrinth/internal/model"
)

// Player is the session record of one connected client.
type Player struct {
	UID      int32
	Nickname string
	Addr     net.Addr
	State    PlayerState
	Hero     model.HeroType
	Unit     model.ObjectID // zero until the world is generated

	acked bool // map-generated ack received
}

// roster keeps players in arrival order.
type roster struct {
	players []*Player
	byUID   map[int32]*Player
}

func newRoster(capacity int) *roster {
	return &roster{
		players: make([]*Player, 0, capacity),
		byUID:   make(map[int32]*Player, capacity),
	}
}

func (r *roster) get(uid int32) *Player {
	return r.byUID[uid]
}

func (r *roster) add(uid int32, nickname string, addr net.Addr) *Player {
	p := &Player{UID: uid, Nickname: nickname, Addr: addr}
	r.players = append(r.players, p)
	r.byUID[uid] = p
	return p
}

func (r *roster) len() int { return len(r.players) }

// all reports whether pred holds for every player.
func (r *roster) all(pred func(*Player) bool) bool {
	for _, p := range r.players {
		if !pred(p) {
			return false
		}
	}
	return true
}

func (r *roster) setState(s PlayerState) {
	for _, p := range r.players {
		p.State = s
	}
}

func (r *roster) nicknames() []string {
	out := make([]string, len(r.players))
	for i, p := range r.players {
		out[i] = p.Nickname
	}
	return out
}

// sameEndpoint compares endpoints by their string form; fake and real
// addresses of one peer compare equal.
func sameEndpoint(a, b net.Addr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Network() == b.Network() && a.String() == b.String()
}
