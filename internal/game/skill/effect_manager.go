package skill

import (
	"log/slog"
	"time"
)

// EffectManager tracks the effects applied to one unit.
//
// Not safe for concurrent use: a unit is only touched by its session's
// tick goroutine.
type EffectManager struct {
	effects []Effect
	log     *slog.Logger
}

// NewEffectManager creates a new empty EffectManager.
func NewEffectManager(log *slog.Logger) *EffectManager {
	if log == nil {
		log = slog.Default()
	}
	return &EffectManager{
		effects: make([]Effect, 0, 4),
		log:     log,
	}
}

// Add registers an already started effect.
func (m *EffectManager) Add(e Effect) {
	m.effects = append(m.effects, e)
}

// Update advances every ACTIVE effect. An effect whose timer crossed to
// zero or below is stopped and dropped in the same call, so Stop runs
// exactly once per effect.
func (m *EffectManager) Update(delta time.Duration) {
	kept := m.effects[:0]
	for _, e := range m.effects {
		if e.State() == EffectActive {
			e.Update(delta)
		}
		if e.State() == EffectOver {
			e.Stop()
			m.log.Debug("effect expired", "effect", e.Name())
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(m.effects); i++ {
		m.effects[i] = nil
	}
	m.effects = kept
}

// Count returns number of tracked effects.
func (m *EffectManager) Count() int {
	return len(m.effects)
}

// Has reports whether an effect with the given name is tracked.
func (m *EffectManager) Has(name string) bool {
	for _, e := range m.effects {
		if e.Name() == name {
			return true
		}
	}
	return false
}
