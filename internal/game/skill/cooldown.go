package skill

import "time"

type cooldown struct {
	duration  time.Duration
	remaining time.Duration
}

// CooldownManager is a fixed, index-addressed set of ability timers.
// Slots start ready.
type CooldownManager struct {
	slots []cooldown
}

// NewCooldownManager creates an empty CooldownManager.
func NewCooldownManager() *CooldownManager {
	return &CooldownManager{slots: make([]cooldown, 0, 4)}
}

// AddSpell registers a slot with the given duration and returns its index.
func (m *CooldownManager) AddSpell(duration time.Duration) int {
	m.slots = append(m.slots, cooldown{duration: duration})
	return len(m.slots) - 1
}

// SpellReady reports whether the slot's timer reached zero.
// Unknown indices are never ready.
func (m *CooldownManager) SpellReady(index int) bool {
	if index < 0 || index >= len(m.slots) {
		return false
	}
	return m.slots[index].remaining <= 0
}

// Restart resets the slot to its registered duration.
func (m *CooldownManager) Restart(index int) {
	if index < 0 || index >= len(m.slots) {
		return
	}
	m.slots[index].remaining = m.slots[index].duration
}

// Remaining returns time left on the slot.
func (m *CooldownManager) Remaining(index int) time.Duration {
	if index < 0 || index >= len(m.slots) {
		return 0
	}
	return m.slots[index].remaining
}

// Len returns number of registered slots.
func (m *CooldownManager) Len() int {
	return len(m.slots)
}

// Update decrements all running timers, floored at zero.
func (m *CooldownManager) Update(delta time.Duration) {
	for i := range m.slots {
		if m.slots[i].remaining <= 0 {
			continue
		}
		m.slots[i].remaining -= delta
		if m.slots[i].remaining < 0 {
			m.slots[i].remaining = 0
		}
	}
}
