package protocol

import (
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol/packet"
)

// Event is an outbound message produced by the server.
type Event = Message

// ConnectionStatus codes.
const (
	StatusAccepted byte = iota
	StatusRefused
	StatusVersionMismatch
	StatusServerFull
)

// ConnectionStatus answers a connect or find-game request.
type ConnectionStatus struct {
	Status byte
}

func (ConnectionStatus) Kind() Kind                { return KindConnectionStatus }
func (e ConnectionStatus) encode(w *packet.Writer) { _ = w.WriteByte(e.Status) }
func (e *ConnectionStatus) decode(r *packet.Reader) (err error) {
	e.Status, err = r.ReadByte()
	return err
}

// Accepted reports whether the status is StatusAccepted.
func (e ConnectionStatus) Accepted() bool { return e.Status == StatusAccepted }

// PlayerConnected is a lobby roster entry.
type PlayerConnected struct {
	UID      int32
	Nickname string
}

func (PlayerConnected) Kind() Kind { return KindPlayerConnected }
func (e PlayerConnected) encode(w *packet.Writer) {
	w.WriteInt(e.UID)
	w.WriteString(e.Nickname)
}
func (e *PlayerConnected) decode(r *packet.Reader) (err error) {
	if e.UID, err = r.ReadInt(); err != nil {
		return err
	}
	e.Nickname, err = r.ReadString()
	return err
}

// HeroPickStage announces that the lobby is full.
type HeroPickStage struct{}

func (HeroPickStage) Kind() Kind                   { return KindHeroPickStage }
func (HeroPickStage) encode(*packet.Writer)        {}
func (*HeroPickStage) decode(*packet.Reader) error { return nil }

// HeroPicked echoes a hero selection.
type HeroPicked struct {
	UID  int32
	Hero model.HeroType
}

func (HeroPicked) Kind() Kind { return KindHeroPicked }
func (e HeroPicked) encode(w *packet.Writer) {
	w.WriteInt(e.UID)
	_ = w.WriteByte(byte(e.Hero))
}
func (e *HeroPicked) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	hero, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.UID, e.Hero = uid, model.HeroType(hero)
	return nil
}

// PlayerReady echoes a ready signal.
type PlayerReady struct {
	UID int32
}

func (PlayerReady) Kind() Kind                { return KindPlayerReady }
func (e PlayerReady) encode(w *packet.Writer) { w.WriteInt(e.UID) }
func (e *PlayerReady) decode(r *packet.Reader) (err error) {
	e.UID, err = r.ReadInt()
	return err
}

// GenerateMap carries the parameters clients rebuild the map from.
type GenerateMap struct {
	ChunkCount uint16
	ChunkSize  uint16
	Seed       uint32
}

func (GenerateMap) Kind() Kind { return KindGenerateMap }
func (e GenerateMap) encode(w *packet.Writer) {
	w.WriteUShort(e.ChunkCount)
	w.WriteUShort(e.ChunkSize)
	w.WriteUInt(e.Seed)
}
func (e *GenerateMap) decode(r *packet.Reader) (err error) {
	if e.ChunkCount, err = r.ReadUShort(); err != nil {
		return err
	}
	if e.ChunkSize, err = r.ReadUShort(); err != nil {
		return err
	}
	e.Seed, err = r.ReadUInt()
	return err
}

// GameStart announces the running stage.
type GameStart struct{}

func (GameStart) Kind() Kind                   { return KindGameStart }
func (GameStart) encode(*packet.Writer)        {}
func (*GameStart) decode(*packet.Reader) error { return nil }

// GameEnd names the winner of the match.
type GameEnd struct {
	Winner model.ObjectID
	Name   string
}

func (GameEnd) Kind() Kind { return KindGameEnd }
func (e GameEnd) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Winner))
	w.WriteString(e.Name)
}
func (e *GameEnd) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	e.Winner = model.ObjectID(id)
	e.Name, err = r.ReadString()
	return err
}

// UnitMoved reports a one-cell step.
type UnitMoved struct {
	Unit model.ObjectID
	Dir  model.Direction
	Pos  model.Point
}

func (UnitMoved) Kind() Kind { return KindUnitMoved }
func (e UnitMoved) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Unit))
	_ = w.WriteByte(byte(e.Dir))
	writePoint(w, e.Pos)
}
func (e *UnitMoved) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	dir, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.Unit, e.Dir = model.ObjectID(id), model.Direction(dir)
	e.Pos, err = readPoint(r)
	return err
}

// SpawnPlayer places a player's hero on the map.
type SpawnPlayer struct {
	UID  int32
	Unit model.ObjectID
	Hero model.HeroType
	Pos  model.Point
}

func (SpawnPlayer) Kind() Kind { return KindSpawnPlayer }
func (e SpawnPlayer) encode(w *packet.Writer) {
	w.WriteInt(e.UID)
	w.WriteUInt(uint32(e.Unit))
	_ = w.WriteByte(byte(e.Hero))
	writePoint(w, e.Pos)
}
func (e *SpawnPlayer) decode(r *packet.Reader) error {
	uid, err := r.ReadInt()
	if err != nil {
		return err
	}
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	hero, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.UID, e.Unit, e.Hero = uid, model.ObjectID(id), model.HeroType(hero)
	e.Pos, err = readPoint(r)
	return err
}

// SpawnMonster places a monster on the map.
type SpawnMonster struct {
	Unit model.ObjectID
	Pos  model.Point
}

func (SpawnMonster) Kind() Kind { return KindSpawnMonster }
func (e SpawnMonster) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Unit))
	writePoint(w, e.Pos)
}
func (e *SpawnMonster) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	e.Unit = model.ObjectID(id)
	e.Pos, err = readPoint(r)
	return err
}

// SpawnItem places an item on the ground.
type SpawnItem struct {
	Item model.ObjectID
	Type model.ItemType
	Pos  model.Point
}

func (SpawnItem) Kind() Kind { return KindSpawnItem }
func (e SpawnItem) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Item))
	_ = w.WriteByte(byte(e.Type))
	writePoint(w, e.Pos)
}
func (e *SpawnItem) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.Item, e.Type = model.ObjectID(id), model.ItemType(typ)
	e.Pos, err = readPoint(r)
	return err
}

// SpawnConstruction places a door or graveyard.
type SpawnConstruction struct {
	Construction model.ObjectID
	Type         model.ConstructionType
	Pos          model.Point
}

func (SpawnConstruction) Kind() Kind { return KindSpawnConstruction }
func (e SpawnConstruction) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Construction))
	_ = w.WriteByte(byte(e.Type))
	writePoint(w, e.Pos)
}
func (e *SpawnConstruction) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.Construction, e.Type = model.ObjectID(id), model.ConstructionType(typ)
	e.Pos, err = readPoint(r)
	return err
}

// ItemEvent reports a take or drop.
type ItemEvent struct {
	Unit   model.ObjectID
	Item   model.ObjectID
	Action model.ItemAction
}

func (ItemEvent) Kind() Kind { return KindItemEvent }
func (e ItemEvent) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Unit))
	w.WriteUInt(uint32(e.Item))
	_ = w.WriteByte(byte(e.Action))
}
func (e *ItemEvent) decode(r *packet.Reader) error {
	unit, err := r.ReadUInt()
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
	e.Unit, e.Item, e.Action = model.ObjectID(unit), model.ObjectID(item), model.ItemAction(action)
	return nil
}

// Attack reports a damage exchange.
type Attack struct {
	Attacker model.ObjectID
	Target   model.ObjectID
	Damage   int16
	Type     model.DamageType
}

func (Attack) Kind() Kind { return KindAttack }
func (e Attack) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Attacker))
	w.WriteUInt(uint32(e.Target))
	w.WriteShort(e.Damage)
	_ = w.WriteByte(byte(e.Type))
}
func (e *Attack) decode(r *packet.Reader) error {
	attacker, err := r.ReadUInt()
	if err != nil {
		return err
	}
	target, err := r.ReadUInt()
	if err != nil {
		return err
	}
	damage, err := r.ReadShort()
	if err != nil {
		return err
	}
	typ, err := r.ReadByte()
	if err != nil {
		return err
	}
	e.Attacker, e.Target = model.ObjectID(attacker), model.ObjectID(target)
	e.Damage, e.Type = damage, model.DamageType(typ)
	return nil
}

// Duel reports a duel start or end between two units.
type Duel struct {
	First   model.ObjectID
	Second  model.ObjectID
	Started bool
}

func (Duel) Kind() Kind { return KindDuel }
func (e Duel) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.First))
	w.WriteUInt(uint32(e.Second))
	w.WriteBool(e.Started)
}
func (e *Duel) decode(r *packet.Reader) error {
	first, err := r.ReadUInt()
	if err != nil {
		return err
	}
	second, err := r.ReadUInt()
	if err != nil {
		return err
	}
	started, err := r.ReadBool()
	if err != nil {
		return err
	}
	e.First, e.Second, e.Started = model.ObjectID(first), model.ObjectID(second), started
	return nil
}

// Death reports a unit's death.
type Death struct {
	Unit   model.ObjectID
	Killer string
}

func (Death) Kind() Kind { return KindDeath }
func (e Death) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Unit))
	w.WriteString(e.Killer)
}
func (e *Death) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	e.Unit = model.ObjectID(id)
	e.Killer, err = r.ReadString()
	return err
}

// Respawn reports a unit re-entering the map.
type Respawn struct {
	Unit model.ObjectID
	Pos  model.Point
}

func (Respawn) Kind() Kind { return KindRespawn }
func (e Respawn) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Unit))
	writePoint(w, e.Pos)
}
func (e *Respawn) decode(r *packet.Reader) error {
	id, err := r.ReadUInt()
	if err != nil {
		return err
	}
	e.Unit = model.ObjectID(id)
	e.Pos, err = readPoint(r)
	return err
}

// Spell reports a successful spell cast.
type Spell struct {
	Caster model.ObjectID
	Spell  uint8
	Target model.ObjectID
}

func (Spell) Kind() Kind { return KindSpell }
func (e Spell) encode(w *packet.Writer) {
	w.WriteUInt(uint32(e.Caster))
	_ = w.WriteByte(e.Spell)
	w.WriteUInt(uint32(e.Target))
}
func (e *Spell) decode(r *packet.Reader) error {
	caster, err := r.ReadUInt()
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
	e.Caster, e.Spell, e.Target = model.ObjectID(caster), spell, model.ObjectID(target)
	return nil
}

// Pong answers a matchmaking Ping.
type Pong struct{}

func (Pong) Kind() Kind                   { return KindPong }
func (Pong) encode(*packet.Writer)        {}
func (*Pong) decode(*packet.Reader) error { return nil }

// GameFound tells a client which session port to connect to.
type GameFound struct {
	Port uint16
}

func (GameFound) Kind() Kind                { return KindGameFound }
func (e GameFound) encode(w *packet.Writer) { w.WriteUShort(e.Port) }
func (e *GameFound) decode(r *packet.Reader) (err error) {
	e.Port, err = r.ReadUShort()
	return err
}

func writePoint(w *packet.Writer, p model.Point) {
	w.WriteShort(int16(p.X))
	w.WriteShort(int16(p.Y))
}

func readPoint(r *packet.Reader) (model.Point, error) {
	x, err := r.ReadShort()
	if err != nil {
		return model.Point{}, err
	}
	y, err := r.ReadShort()
	if err != nil {
		return model.Point{}, err
	}
	return model.NewPoint(int32(x), int32(y)), nil
}
