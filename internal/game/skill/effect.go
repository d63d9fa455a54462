package skill

import (
	"time"

	"github.com/udisondev/labyrinth/internal/model"
)

// EffectState is the lifecycle state of an Effect.
type EffectState uint8

const (
	EffectActive EffectState = iota
	EffectOver
)

func (s EffectState) String() string {
	if s == EffectOver {
		return "OVER"
	}
	return "ACTIVE"
}

// Target is the unit an effect modifies.
// Implemented by world.Unit; kept as an interface so skill stays a leaf.
type Target interface {
	Name() string
	ObjectAttrs() *model.ObjectAttrs
	UnitAttrs() *model.UnitAttrs
	AddArmor(delta int16)
	AddMoveSpeed(delta float64)
}

// Effect is a timed, reversible stat modifier.
//
// Start applies the delta to the bound target, Stop reverts it. Update
// advances the timer only while the effect is ACTIVE and flips it to OVER
// once the remaining time is no longer positive. EffectManager calls Stop.
type Effect interface {
	Name() string
	Bind(t Target)
	Start()
	Update(delta time.Duration)
	Stop()
	State() EffectState
	Remaining() time.Duration
}

// timedEffect carries the bookkeeping shared by all concrete effects.
type timedEffect struct {
	name      string
	remaining time.Duration
	state     EffectState
	target    Target
}

func newTimedEffect(name string, duration time.Duration) timedEffect {
	return timedEffect{name: name, remaining: duration, state: EffectActive}
}

func (e *timedEffect) Name() string             { return e.name }
func (e *timedEffect) Bind(t Target)            { e.target = t }
func (e *timedEffect) State() EffectState       { return e.state }
func (e *timedEffect) Remaining() time.Duration { return e.remaining }

// Update decrements the timer. OVER is terminal.
func (e *timedEffect) Update(delta time.Duration) {
	if e.state != EffectActive {
		return
	}
	e.remaining -= delta
	if e.remaining <= 0 {
		e.state = EffectOver
	}
}
