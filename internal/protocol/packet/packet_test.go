package packet

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestReader_ReadShort(t *testing.T) {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, 0x1234)

	r := NewReader(data)

	val, err := r.ReadShort()
	if err != nil {
		t.Fatalf("ReadShort failed: %v", err)
	}
	if val != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", val)
	}
	if r.Remaining() != 0 {
		t.Errorf("expected 0 remaining bytes, got %d", r.Remaining())
	}
}

func TestReader_ReadInt(t *testing.T) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 0x12345678)

	r := NewReader(data)

	val, err := r.ReadInt()
	if err != nil {
		t.Fatalf("ReadInt failed: %v", err)
	}
	if val != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08X", val)
	}
}

func TestReader_ShortRead(t *testing.T) {
	tests := []struct {
		name string
		read func(r *Reader) error
	}{
		{"byte", func(r *Reader) error { _, err := r.ReadByte(); return err }},
		{"short", func(r *Reader) error { _, err := r.ReadShort(); return err }},
		{"int", func(r *Reader) error { _, err := r.ReadInt(); return err }},
		{"string", func(r *Reader) error { _, err := r.ReadString(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(nil)
			if err := tt.read(r); !errors.Is(err, ErrShortRead) {
				t.Errorf("expected ErrShortRead, got %v", err)
			}
		})
	}
}

func TestWriterReader_String(t *testing.T) {
	tests := []string{"", "hero", "Воин", "😀 emoji"}

	for _, s := range tests {
		w := NewWriter(16)
		w.WriteString(s)

		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) failed: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip: expected %q, got %q", s, got)
		}
		if r.Remaining() != 0 {
			t.Errorf("%q: expected 0 remaining bytes, got %d", s, r.Remaining())
		}
	}
}

func TestWriter_LittleEndian(t *testing.T) {
	w := Get()
	defer w.Put()

	w.WriteUShort(0xBEEF)
	w.WriteInt(-2)
	w.WriteBool(true)

	want := []byte{0xEF, 0xBE, 0xFE, 0xFF, 0xFF, 0xFF, 0x01}
	got := w.Bytes()
	if len(got) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: expected 0x%02X, got 0x%02X", i, want[i], got[i])
		}
	}
}
