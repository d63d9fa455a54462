package protocol

import (
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol/packet"
)

// Command is an inbound message sent by a client on behalf of a player.
type Command interface {
	Message
	// Sender returns the uid of the player the command claims to be from.
	Sender() int32
}

// Connect asks to join the lobby.
type Connect struct {
	UID      int32
	Nickname string
}

func (Connect) Kind() Kind      { return KindConnect }
func (c Connect) Sender() int32 { return c.UID }
func (c Connect) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	w.WriteString(c.Nickname)
}
func (c *Connect) decode(r *packet.Reader) (err error) {
	if c.UID, err = r.ReadInt(); err != nil {
		return err
	}
	c.Nickname, err = r.ReadString()
	return err
}

// HeroPick selects the hero a player will control.
type HeroPick struct {
	UID  int32
	Hero model.HeroType
}

func (HeroPick) Kind() Kind      { return KindHeroPick }
func (c HeroPick) Sender() int32 { return c.UID }
func (c HeroPick) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	_ = w.WriteByte(byte(c.Hero))
}
func (c *HeroPick) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	hero, err := r.ReadByte()
	if err != nil {
		return err
	}
	c.UID, c.Hero = uid, model.HeroType(hero)
	return nil
}

// Ready signals the player finished picking.
type Ready struct {
	UID int32
}

func (Ready) Kind() Kind                { return KindReady }
func (c Ready) Sender() int32           { return c.UID }
func (c Ready) encode(w *packet.Writer) { w.WriteInt(c.UID) }
func (c *Ready) decode(r *packet.Reader) (err error) {
	c.UID, err = r.ReadInt()
	return err
}

// MapGenerated acknowledges that the client built the map from the seed.
type MapGenerated struct {
	UID int32
}

func (MapGenerated) Kind() Kind                { return KindMapGenerated }
func (c MapGenerated) Sender() int32           { return c.UID }
func (c MapGenerated) encode(w *packet.Writer) { w.WriteInt(c.UID) }
func (c *MapGenerated) decode(r *packet.Reader) (err error) {
	c.UID, err = r.ReadInt()
	return err
}

// Move asks the player's hero to step one cell.
type Move struct {
	UID int32
	Dir model.Direction
}

func (Move) Kind() Kind      { return KindMove }
func (c Move) Sender() int32 { return c.UID }
func (c Move) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	_ = w.WriteByte(byte(c.Dir))
}
func (c *Move) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	dir, err := r.ReadByte()
	if err != nil {
		return err
	}
	c.UID, c.Dir = uid, model.Direction(dir)
	return nil
}

// ItemAction takes an item from the hero's cell or drops a carried one.
type ItemAction struct {
	UID    int32
	Item   model.ObjectID
	Action model.ItemAction
}

func (ItemAction) Kind() Kind      { return KindItemAction }
func (c ItemAction) Sender() int32 { return c.UID }
func (c ItemAction) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	w.WriteUInt(uint32(c.Item))
	_ = w.WriteByte(byte(c.Action))
}
func (c *ItemAction) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	item, err := r.ReadUInt()
	if err != nil {
		return err
	}
	action, err := r.ReadByte()
	if err != nil {
		return err
	}
	c.UID, c.Item, c.Action = uid, model.ObjectID(item), model.ItemAction(action)
	return nil
}

// DuelAction challenges another unit to a duel.
type DuelAction struct {
	UID    int32
	Target model.ObjectID
}

func (DuelAction) Kind() Kind      { return KindDuelAction }
func (c DuelAction) Sender() int32 { return c.UID }
func (c DuelAction) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	w.WriteUInt(uint32(c.Target))
}
func (c *DuelAction) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	target, err := r.ReadUInt()
	if err != nil {
		return err
	}
	c.UID, c.Target = uid, model.ObjectID(target)
	return nil
}

// SpellCast casts spell number Spell from the hero's spellbook. Target is
// used by targeted spells and ignored otherwise.
type SpellCast struct {
	UID    int32
	Spell  uint8
	Target model.ObjectID
}

func (SpellCast) Kind() Kind      { return KindSpellCast }
func (c SpellCast) Sender() int32 { return c.UID }
func (c SpellCast) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	_ = w.WriteByte(c.Spell)
	w.WriteUInt(uint32(c.Target))
}
func (c *SpellCast) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	spell, err := r.ReadByte()
	if err != nil {
		return err
	}
	target, err := r.ReadUInt()
	if err != nil {
		return err
	}
	c.UID, c.Spell, c.Target = uid, spell, model.ObjectID(target)
	return nil
}

// Ping is a keep-alive. Game sessions use it as a heartbeat, the
// matchmaking service answers it with Pong.
type Ping struct {
	UID int32
}

func (Ping) Kind() Kind                { return KindPing }
func (c Ping) Sender() int32           { return c.UID }
func (c Ping) encode(w *packet.Writer) { w.WriteInt(c.UID) }
func (c *Ping) decode(r *packet.Reader) (err error) {
	c.UID, err = r.ReadInt()
	return err
}

// FindGame asks the matchmaking service for a session.
type FindGame struct {
	UID          int32
	VersionMajor uint8
}

func (FindGame) Kind() Kind      { return KindFindGame }
func (c FindGame) Sender() int32 { return c.UID }
func (c FindGame) encode(w *packet.Writer) {
	w.WriteInt(c.UID)
	_ = w.WriteByte(c.VersionMajor)
}
func (c *FindGame) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	version, err := r.ReadByte()
	if err != nil {
		return err
	}
	c.UID, c.VersionMajor = uid, version
	return nil
}
