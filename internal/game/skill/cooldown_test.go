package skill

import (
	"testing"
	"time"
)

func TestCooldownManager(t *testing.T) {
	m := NewCooldownManager()
	move := m.AddSpell(time.Second)
	atk := m.AddSpell(3 * time.Second)

	if move != 0 || atk != 1 {
		t.Fatalf("indices = %d,%d; want 0,1", move, atk)
	}
	if !m.SpellReady(move) || !m.SpellReady(atk) {
		t.Fatal("new slots must be ready")
	}

	m.Restart(atk)
	if m.SpellReady(atk) {
		t.Error("restarted slot must not be ready")
	}

	m.Update(2 * time.Second)
	if m.SpellReady(atk) {
		t.Error("slot ready too early")
	}
	if got := m.Remaining(atk); got != time.Second {
		t.Errorf("Remaining = %v; want 1s", got)
	}

	m.Update(5 * time.Second)
	if !m.SpellReady(atk) {
		t.Error("slot must be ready after its duration")
	}
	if got := m.Remaining(atk); got != 0 {
		t.Errorf("Remaining = %v; want floored at 0", got)
	}
}

func TestCooldownManager_UnknownIndex(t *testing.T) {
	m := NewCooldownManager()
	if m.SpellReady(3) {
		t.Error("unknown slot reported ready")
	}
	m.Restart(-1)
	if m.Len() != 0 {
		t.Errorf("Len = %d; want 0", m.Len())
	}
}
