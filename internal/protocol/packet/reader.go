package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
)

// ErrShortRead is returned when a datagram ends before a field does.
var ErrShortRead = errors.New("not enough data")

// maxNicknameRunes caps pre-allocation for string fields.
const maxNicknameRunes = 32

// Reader provides methods for reading datagram fields.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new datagram reader.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadByte at %d/%d: %w", r.pos, len(r.data), ErrShortRead)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBool reads a byte and reports whether it is non-zero.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadShort reads an int16 (2 bytes, LE).
func (r *Reader) ReadShort() (int16, error) {
	v, err := r.ReadUShort()
	return int16(v), err
}

// ReadUShort reads a uint16 (2 bytes, LE).
func (r *Reader) ReadUShort() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("ReadShort at %d/%d: %w", r.pos, len(r.data), ErrShortRead)
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadInt reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt() (int32, error) {
	v, err := r.ReadUInt()
	return int32(v), err
}

// ReadUInt reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUInt() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadInt at %d/%d: %w", r.pos, len(r.data), ErrShortRead)
	}
	val := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return val, nil
}

// ReadString reads a UTF-16LE null-terminated string.
func (r *Reader) ReadString() (string, error) {
	runes := make([]uint16, 0, maxNicknameRunes)

	for {
		if r.pos+2 > len(r.data) {
			return "", fmt.Errorf("ReadString at %d/%d: %w", r.pos, len(r.data), ErrShortRead)
		}

		ch := binary.LittleEndian.Uint16(r.data[r.pos:])
		r.pos += 2

		if ch == 0 {
			break
		}
		runes = append(runes, ch)
	}

	return string(utf16.Decode(runes)), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
