package skill

import (
	"time"

	"github.com/udisondev/labyrinth/internal/model"
)

// DuelInvulnerability protects a unit from being challenged right after a duel.
type DuelInvulnerability struct {
	timedEffect
}

func NewDuelInvulnerability(duration time.Duration) *DuelInvulnerability {
	return &DuelInvulnerability{timedEffect: newTimedEffect("DuelInvulnerability", duration)}
}

func (e *DuelInvulnerability) Start() { e.target.UnitAttrs().Clear(model.UnitDuelable) }
func (e *DuelInvulnerability) Stop()  { e.target.UnitAttrs().Set(model.UnitDuelable) }

// RespawnInvulnerability protects a freshly respawned unit.
// Stop restores PASSABLE to exactly what it was before Start.
type RespawnInvulnerability struct {
	timedEffect
	wasPassable bool
}

func NewRespawnInvulnerability(duration time.Duration) *RespawnInvulnerability {
	return &RespawnInvulnerability{timedEffect: newTimedEffect("RespawnInvulnerability", duration)}
}

func (e *RespawnInvulnerability) Start() {
	attrs := e.target.ObjectAttrs()
	e.wasPassable = attrs.Passable()
	attrs.Clear(model.AttrPassable)
	e.target.UnitAttrs().Clear(model.UnitDuelable)
}

func (e *RespawnInvulnerability) Stop() {
	e.target.UnitAttrs().Set(model.UnitDuelable)
	if e.wasPassable {
		e.target.ObjectAttrs().Set(model.AttrPassable)
	}
}
