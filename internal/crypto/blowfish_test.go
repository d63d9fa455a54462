package crypto

import (
	"bytes"
	"errors"
	"testing"
)

var testKey = []byte("labyrinth-test-key")

func TestDatagramCipher_RoundTrip(t *testing.T) {
	c, err := NewDatagramCipher(testKey)
	if err != nil {
		t.Fatalf("NewDatagramCipher: %v", err)
	}

	for _, payload := range [][]byte{
		{},
		{0x01},
		{0x05, 0x01, 0x00, 0x00, 0x00, 0x02},
		bytes.Repeat([]byte{0xAB}, 57),
	} {
		sealed, err := c.Seal(payload)
		if err != nil {
			t.Fatalf("Seal(%d bytes): %v", len(payload), err)
		}
		if len(sealed)%blockSize != 0 {
			t.Errorf("sealed size %d is not block aligned", len(sealed))
		}
		if len(sealed) != SealedSize(len(payload)) {
			t.Errorf("sealed size = %d, want %d", len(sealed), SealedSize(len(payload)))
		}

		got, err := c.Open(sealed)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("Open = %x, want %x", got, payload)
		}
	}
}

func TestDatagramCipher_SealHidesPayload(t *testing.T) {
	c, err := NewDatagramCipher(testKey)
	if err != nil {
		t.Fatalf("NewDatagramCipher: %v", err)
	}

	payload := []byte("plain text payload")
	sealed, err := c.Seal(payload)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, payload) {
		t.Error("sealed datagram contains the plaintext")
	}
}

func TestDatagramCipher_OpenRejectsTampering(t *testing.T) {
	c, err := NewDatagramCipher(testKey)
	if err != nil {
		t.Fatalf("NewDatagramCipher: %v", err)
	}

	sealed, err := c.Seal([]byte{0x01, 0x02, 0x03, 0x04})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed[3] ^= 0xFF

	if _, err := c.Open(sealed); !errors.Is(err, ErrChecksum) {
		t.Errorf("Open(tampered) error = %v, want ErrChecksum", err)
	}
}

func TestDatagramCipher_OpenRejectsWrongKey(t *testing.T) {
	a, _ := NewDatagramCipher(testKey)
	b, _ := NewDatagramCipher([]byte("another-key"))

	sealed, err := a.Seal([]byte("hello"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := b.Open(sealed); err == nil {
		t.Error("Open with a different key should fail")
	}
}

func TestDatagramCipher_OpenRejectsBadSize(t *testing.T) {
	c, _ := NewDatagramCipher(testKey)

	for _, n := range []int{0, 1, 7, 9} {
		if _, err := c.Open(make([]byte, n)); err == nil {
			t.Errorf("Open(%d bytes) should fail", n)
		}
	}
}

func TestNewDatagramCipher_InvalidKey(t *testing.T) {
	if _, err := NewDatagramCipher(nil); err == nil {
		t.Error("empty key should be rejected")
	}
	if _, err := NewDatagramCipher(make([]byte, 57)); err == nil {
		t.Error("57-byte key should be rejected")
	}
}

func TestChecksum(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0}
	appendChecksum(data)
	if !verifyChecksum(data) {
		t.Fatal("checksum should verify")
	}
	data[0] ^= 1
	if verifyChecksum(data) {
		t.Error("corrupted data should not verify")
	}
}

func BenchmarkDatagramCipher_Seal(b *testing.B) {
	c, _ := NewDatagramCipher(testKey)
	payload := bytes.Repeat([]byte{0x42}, 64)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := c.Seal(payload); err != nil {
			b.Fatal(err)
		}
	}
}
