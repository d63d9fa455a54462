package skill

import (
	"time"

	"github.com/udisondev/labyrinth/internal/model"
)

// MageFreeze blocks all input of the target.
type MageFreeze struct {
	timedEffect
}

func NewMageFreeze(duration time.Duration) *MageFreeze {
	return &MageFreeze{timedEffect: newTimedEffect("MageFreeze", duration)}
}

func (e *MageFreeze) Start() { e.target.UnitAttrs().Clear(model.UnitInput) }
func (e *MageFreeze) Stop()  { e.target.UnitAttrs().Set(model.UnitInput) }

// RogueInvisibility hides the target and makes it impossible to duel.
type RogueInvisibility struct {
	timedEffect
}

func NewRogueInvisibility(duration time.Duration) *RogueInvisibility {
	return &RogueInvisibility{timedEffect: newTimedEffect("RogueInvisibility", duration)}
}

func (e *RogueInvisibility) Start() {
	e.target.ObjectAttrs().Clear(model.AttrVisible)
	e.target.UnitAttrs().Clear(model.UnitDuelable)
}

func (e *RogueInvisibility) Stop() {
	e.target.ObjectAttrs().Set(model.AttrVisible)
	e.target.UnitAttrs().Set(model.UnitDuelable)
}
