package world

import (
	"time"

	"github.com/udisondev/labyrinth/internal/model"
)

// respawnTask is a dead unit waiting to be re-created.
type respawnTask struct {
	dead *Unit
	at   time.Duration // world clock
}

// Respawner re-materializes dead units once their delay has elapsed.
// Times are measured on the world clock, so the scheduler advances only
// when the world does.
type Respawner struct {
	world *World
	tasks []respawnTask
}

func newRespawner(w *World) *Respawner {
	return &Respawner{world: w}
}

// Enqueue schedules u to come back after delay.
func (r *Respawner) Enqueue(u *Unit, delay time.Duration) {
	at := r.world.clock + delay
	r.tasks = append(r.tasks, respawnTask{dead: u, at: at})
	r.world.log.Debug("respawn scheduled", "unit", u.ObjectID(), "delay", delay, "at", at)
}

// Pending returns the number of scheduled respawns.
func (r *Respawner) Pending() int {
	return len(r.tasks)
}

// Update respawns every unit whose time has come. A unit for which no
// free cell exists stays queued and is retried on the next tick.
func (r *Respawner) Update() {
	now := r.world.clock
	kept := r.tasks[:0]
	for _, task := range r.tasks {
		if now < task.at {
			kept = append(kept, task)
			continue
		}

		pos, ok := r.world.respawnPosition(task.dead.Position())
		if !ok {
			r.world.log.Warn("no free cell to respawn", "unit", task.dead.ObjectID())
			kept = append(kept, task)
			continue
		}

		fresh := task.dead.reincarnate()
		if err := r.world.storage.Insert(fresh); err != nil {
			r.world.log.Error("respawn insert", "unit", fresh.ObjectID(), "error", err)
			continue
		}
		fresh.Respawn(pos)
	}
	clear(r.tasks[len(kept):])
	r.tasks = kept
}

// reincarnate creates a new instance carrying the identity and base
// stats of a dead unit. Effects, cooldowns, inventory and duel state start
// fresh.
func (u *Unit) reincarnate() *Unit {
	stats := model.BaseStats{
		Name:          u.name,
		Damage:        u.baseDamage,
		MaxHealth:     u.maxHealth,
		Armor:         u.baseArmor(),
		MagResistance: u.baseMagResistance(),
		MoveSpeed:     u.baseMoveSpeed(),
	}
	fresh := newUnit(u.world, u.ObjectID(), u.kind, stats)
	fresh.hero = u.hero
	fresh.playerUID = u.playerUID
	fresh.SetPosition(u.Position())
	u.world.attachBehavior(fresh)
	return fresh
}

func (u *Unit) baseArmor() int16 {
	if u.IsMonster() {
		return model.MonsterStats.Armor
	}
	return model.HeroStats(u.hero).Armor
}

func (u *Unit) baseMagResistance() int16 {
	if u.IsMonster() {
		return model.MonsterStats.MagResistance
	}
	return model.HeroStats(u.hero).MagResistance
}

func (u *Unit) baseMoveSpeed() float64 {
	if u.IsMonster() {
		return model.MonsterStats.MoveSpeed
	}
	return model.HeroStats(u.hero).MoveSpeed
}

// respawnPosition picks the free graveyard nearest to near, falling back
// to the free cell nearest to near.
func (w *World) respawnPosition(near model.Point) (model.Point, bool) {
	best, found := model.Point{}, false
	var bestDist int64
	for _, c := range Subset[*Construction](w.storage) {
		if c.Type() != model.ConstructionGraveyard || !w.cellFree(c.Position()) {
			continue
		}
		d := c.Position().DistanceSquared(near)
		if !found || d < bestDist {
			best, bestDist, found = c.Position(), d, true
		}
	}
	if found {
		return best, true
	}

	for y := int32(1); y < w.mapSize-1; y++ {
		for x := int32(1); x < w.mapSize-1; x++ {
			p := model.NewPoint(x, y)
			if !w.cellFree(p) {
				continue
			}
			d := p.DistanceSquared(near)
			if !found || d < bestDist {
				best, bestDist, found = p, d, true
			}
		}
	}
	return best, found
}

// cellFree reports whether nothing but passable constructions occupies p.
func (w *World) cellFree(p model.Point) bool {
	for _, obj := range w.storage.ObjectsAt(p) {
		if c, ok := obj.(*Construction); ok && c.Type().Passable() {
			continue
		}
		return false
	}
	return true
}
