// Package crypto wraps match datagrams in a Blowfish ECB envelope with an
// XOR checksum.
package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// ErrChecksum is returned by Open when the decrypted envelope fails the
// checksum or declares a payload that does not fit.
var ErrChecksum = errors.New("datagram checksum mismatch")

const (
	blockSize    = blowfish.BlockSize
	lengthSize   = 2
	checksumSize = 4
)

// DatagramCipher seals and opens datagrams.
//
// Envelope layout before encryption (little-endian):
//
//	uint16 payload length | payload | zero padding | uint32 checksum
//
// The total is padded to a multiple of the Blowfish block size and the
// checksum makes the XOR of all 32-bit words zero.
type DatagramCipher struct {
	cipher *blowfish.Cipher
}

// NewDatagramCipher creates a cipher from key (1..56 bytes).
func NewDatagramCipher(key []byte) (*DatagramCipher, error) {
	c, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating blowfish cipher: %w", err)
	}
	return &DatagramCipher{cipher: c}, nil
}

// SealedSize returns the envelope size for a payload of n bytes.
func SealedSize(n int) int {
	raw := lengthSize + n + checksumSize
	return (raw + blockSize - 1) / blockSize * blockSize
}

// Seal returns the encrypted envelope of payload.
func (d *DatagramCipher) Seal(payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, fmt.Errorf("sealing datagram: payload of %d bytes is too large", len(payload))
	}

	out := make([]byte, SealedSize(len(payload)))
	binary.LittleEndian.PutUint16(out, uint16(len(payload)))
	copy(out[lengthSize:], payload)
	appendChecksum(out)

	if err := d.encrypt(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Open decrypts an envelope produced by Seal and returns its payload.
// data is left untouched.
func (d *DatagramCipher) Open(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("opening datagram: size %d is not a multiple of %d", len(data), blockSize)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	if err := d.decrypt(buf); err != nil {
		return nil, err
	}
	if !verifyChecksum(buf) {
		return nil, ErrChecksum
	}

	n := int(binary.LittleEndian.Uint16(buf))
	if lengthSize+n > len(buf)-checksumSize {
		return nil, fmt.Errorf("opening datagram: declared length %d: %w", n, ErrChecksum)
	}
	return buf[lengthSize : lengthSize+n], nil
}

func (d *DatagramCipher) encrypt(data []byte) error {
	if len(data)%blockSize != 0 {
		return fmt.Errorf("blowfish encrypt: size %d is not a multiple of %d", len(data), blockSize)
	}
	for i := 0; i < len(data); i += blockSize {
		d.cipher.Encrypt(data[i:i+blockSize], data[i:i+blockSize])
	}
	return nil
}

func (d *DatagramCipher) decrypt(data []byte) error {
	if len(data)%blockSize != 0 {
		return fmt.Errorf("blowfish decrypt: size %d is not a multiple of %d", len(data), blockSize)
	}
	for i := 0; i < len(data); i += blockSize {
		d.cipher.Decrypt(data[i:i+blockSize], data[i:i+blockSize])
	}
	return nil
}

// appendChecksum writes into the last word the XOR of all preceding
// words. len(data) must be a multiple of 4.
func appendChecksum(data []byte) {
	var sum uint32
	last := len(data) - checksumSize
	for i := 0; i < last; i += 4 {
		sum ^= binary.LittleEndian.Uint32(data[i:])
	}
	binary.LittleEndian.PutUint32(data[last:], sum)
}

// verifyChecksum reports whether the XOR of all 32-bit words is zero.
func verifyChecksum(data []byte) bool {
	if len(data)%4 != 0 || len(data) <= checksumSize {
		return false
	}
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		sum ^= binary.LittleEndian.Uint32(data[i:])
	}
	return sum == 0
}
