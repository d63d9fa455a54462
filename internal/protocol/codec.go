package protocol

import (
	"errors"
	"fmt"

	"github.com/udisondev/labyrinth/internal/protocol/packet"
)

var (
	// ErrUnknownKind is returned for a datagram whose kind byte is not
	// a known message.
	ErrUnknownKind = errors.New("unknown message kind")

	// ErrTruncated is returned when a datagram ends before its fields do.
	ErrTruncated = errors.New("truncated message")
)

// Message is any datagram payload. Messages are plain values.
type Message interface {
	Kind() Kind
	encode(w *packet.Writer)
}

// Encode serializes m into a new byte slice.
func Encode(m Message) []byte {
	w := packet.Get()
	defer w.Put()

	AppendTo(w, m)
	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out
}

// AppendTo writes m to w without allocating a result slice.
func AppendTo(w *packet.Writer, m Message) {
	_ = w.WriteByte(byte(m.Kind()))
	m.encode(w)
}

// Decode parses one datagram. Trailing bytes after the message fields
// are ignored.
func Decode(data []byte) (Message, error) {
	r := packet.NewReader(data)
	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading kind: %w", ErrTruncated)
	}
	kind := Kind(b)

	var m Message
	switch kind {
	case KindConnect:
		m, err = decodeAs[Connect](r)
	case KindHeroPick:
		m, err = decodeAs[HeroPick](r)
	case KindReady:
		m, err = decodeAs[Ready](r)
	case KindMapGenerated:
		m, err = decodeAs[MapGenerated](r)
	case KindMove:
		m, err = decodeAs[Move](r)
	case KindItemAction:
		m, err = decodeAs[ItemAction](r)
	case KindDuelAction:
		m, err = decodeAs[DuelAction](r)
	case KindSpellCast:
		m, err = decodeAs[SpellCast](r)
	case KindPing:
		m, err = decodeAs[Ping](r)
	case KindFindGame:
		m, err = decodeAs[FindGame](r)
	case KindConnectionStatus:
		m, err = decodeAs[ConnectionStatus](r)
	case KindPlayerConnected:
		m, err = decodeAs[PlayerConnected](r)
	case KindHeroPickStage:
		m, err = decodeAs[HeroPickStage](r)
	case KindHeroPicked:
		m, err = decodeAs[HeroPicked](r)
	case KindPlayerReady:
		m, err = decodeAs[PlayerReady](r)
	case KindGenerateMap:
		m, err = decodeAs[GenerateMap](r)
	case KindGameStart:
		m, err = decodeAs[GameStart](r)
	case KindGameEnd:
		m, err = decodeAs[GameEnd](r)
	case KindUnitMoved:
		m, err = decodeAs[UnitMoved](r)
	case KindSpawnPlayer:
		m, err = decodeAs[SpawnPlayer](r)
	case KindSpawnMonster:
		m, err = decodeAs[SpawnMonster](r)
	case KindSpawnItem:
		m, err = decodeAs[SpawnItem](r)
	case KindSpawnConstruction:
		m, err = decodeAs[SpawnConstruction](r)
	case KindItemEvent:
		m, err = decodeAs[ItemEvent](r)
	case KindAttack:
		m, err = decodeAs[Attack](r)
	case KindDuel:
		m, err = decodeAs[Duel](r)
	case KindDeath:
		m, err = decodeAs[Death](r)
	case KindRespawn:
		m, err = decodeAs[Respawn](r)
	case KindSpell:
		m, err = decodeAs[Spell](r)
	case KindPong:
		m, err = decodeAs[Pong](r)
	case KindGameFound:
		m, err = decodeAs[GameFound](r)
	default:
		return nil, fmt.Errorf("kind 0x%02X: %w", b, ErrUnknownKind)
	}

	if err != nil {
		if errors.Is(err, packet.ErrShortRead) {
			return nil, fmt.Errorf("decoding %s: %w", kind, ErrTruncated)
		}
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return m, nil
}

// DecodeCommand parses a datagram that must be a client command.
func DecodeCommand(data []byte) (Command, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	cmd, ok := m.(Command)
	if !ok {
		return nil, fmt.Errorf("%s is not a command: %w", m.Kind(), ErrUnknownKind)
	}
	return cmd, nil
}

func decodeAs[T Message, P interface {
	*T
	decode(r *packet.Reader) error
}](r *packet.Reader) (Message, error) {
	var m T
	if err := P(&m).decode(r); err != nil {
		return nil, err
	}
	return m, nil
}
