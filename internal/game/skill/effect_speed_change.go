package skill

import "time"

// WarriorDash boosts movement speed for a duration.
type WarriorDash struct {
	timedEffect
	bonus float64
}

func NewWarriorDash(duration time.Duration, bonus float64) *WarriorDash {
	return &WarriorDash{timedEffect: newTimedEffect("WarriorDash", duration), bonus: bonus}
}

func (e *WarriorDash) Start() { e.target.AddMoveSpeed(e.bonus) }
func (e *WarriorDash) Stop()  { e.target.AddMoveSpeed(-e.bonus) }
