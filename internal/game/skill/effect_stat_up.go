package skill

import "time"

// WarriorArmorUp raises armor for a duration.
type WarriorArmorUp struct {
	timedEffect
	bonus int16
}

func NewWarriorArmorUp(duration time.Duration, bonus int16) *WarriorArmorUp {
	return &WarriorArmorUp{timedEffect: newTimedEffect("WarriorArmorUp", duration), bonus: bonus}
}

func (e *WarriorArmorUp) Start() { e.target.AddArmor(e.bonus) }
func (e *WarriorArmorUp) Stop()  { e.target.AddArmor(-e.bonus) }
