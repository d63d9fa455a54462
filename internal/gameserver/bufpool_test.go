package gameserver

import "testing"

func TestBytePool(t *testing.T) {
	p := NewBytePool(64)

	b := p.Get()
	if len(b) != 64 {
		t.Fatalf("len = %d, want 64", len(b))
	}
	p.Put(b[:3])
	if got := p.Get(); len(got) != 64 {
		t.Errorf("reused buffer len = %d, want 64", len(got))
	}

	// foreign buffers are ignored
	p.Put(make([]byte, 8))
	if got := p.Get(); len(got) != 64 {
		t.Errorf("len after foreign put = %d, want 64", len(got))
	}
}
