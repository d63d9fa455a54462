// Package ai drives monsters: it picks a hero to chase, follows an A*
// path to it and fights it in a duel.
package ai

import (
	"time"

	"github.com/udisondev/labyrinth/internal/game/geo"
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/world"
)

// Config tunes monster behavior.
type Config struct {
	// AggroRadius is the Euclidean distance within which heroes are chased.
	AggroRadius float64
	// MoveCooldown is the delay between two steps.
	MoveCooldown time.Duration
	// AttackSequence is the number of hits consumed before damage is dealt.
	AttackSequence int
	// CastTime is the time one hit of the sequence takes.
	CastTime time.Duration
}

// DefaultConfig returns the skeleton tuning.
func DefaultConfig() Config {
	return Config{
		AggroRadius:    6,
		MoveCooldown:   time.Second,
		AttackSequence: 5,
		CastTime:       600 * time.Millisecond,
	}
}

// NewFactory returns a world.BehaviorFactory building a MonsterAI for
// every monster instance.
func NewFactory(cfg Config) world.BehaviorFactory {
	return func(_ *world.World, u *world.Unit) world.Behavior {
		return NewMonsterAI(cfg, u)
	}
}

// MonsterAI is the brain of one monster instance.
//
// WALKING: acquire the nearest eligible hero, keep an A* path to it and
// step along it once per move cooldown; when the only remaining cell is
// the target's, challenge it. DUEL: consume the attack sequence one hit
// per cast time, then hit the duel target and refill the sequence.
type MonsterAI struct {
	cfg Config

	moveSlot int
	chase    model.Ref
	path     []model.Point // next cells to enter, target cell last

	hitsLeft int
	castLeft time.Duration
}

// NewMonsterAI creates the brain of u and registers its cooldown slot.
func NewMonsterAI(cfg Config, u *world.Unit) *MonsterAI {
	return &MonsterAI{
		cfg:      cfg,
		moveSlot: u.Cooldowns().AddSpell(cfg.MoveCooldown),
		hitsLeft: cfg.AttackSequence,
	}
}

// Target returns the unit being chased, if it is still in the world.
func (a *MonsterAI) Target(u *world.Unit) *world.Unit {
	if a.chase.IsZero() {
		return nil
	}
	return u.World().ResolveUnit(a.chase)
}

// Path returns the cached path. The slice must not be modified.
func (a *MonsterAI) Path() []model.Point { return a.path }

// Cast implements world.Behavior. Monsters have no spellbook.
func (a *MonsterAI) Cast(*world.Unit, uint8, *world.Unit) bool { return false }

// Update implements world.Behavior.
func (a *MonsterAI) Update(u *world.Unit, delta time.Duration) {
	a.castLeft = max(a.castLeft-delta, 0)

	if !u.UnitAttrs().Input() {
		return
	}

	switch u.State() {
	case model.StateWalking:
		a.walk(u)
	case model.StateDuel:
		a.duel(u)
	}
}

func (a *MonsterAI) walk(u *world.Unit) {
	target := a.Target(u)
	if !a.chase.IsZero() && (target == nil || !a.eligible(u, target)) {
		if IsDebugEnabled() {
			u.Logger().Debug("stop chasing", "target", a.chase.ID)
		}
		a.release()
		target = nil
	}

	if target == nil {
		target = a.acquire(u)
		if target == nil {
			return
		}
		a.chase = u.World().RefOf(target)
		u.Logger().Info("begin chasing", "target", target.Name())
	}

	goal := target.Position()
	if len(a.path) == 0 || a.path[len(a.path)-1] != goal {
		a.replan(u, goal)
	}
	if len(a.path) == 0 || !u.Cooldowns().SpellReady(a.moveSlot) {
		return
	}
	u.Cooldowns().Restart(a.moveSlot)

	if len(a.path) == 1 && a.path[0] == goal {
		if u.StartDuel(target) {
			a.path = nil
			a.hitsLeft = a.cfg.AttackSequence
			a.castLeft = a.cfg.CastTime
		}
		return
	}

	next := a.path[0]
	dir, ok := u.Position().DirectionTo(next)
	if !ok || !u.Move(dir) || u.Position() != next {
		if IsDebugEnabled() {
			u.Logger().Debug("path broken, replanning", "next", next)
		}
		a.path = nil
		return
	}
	a.path = a.path[1:]
}

func (a *MonsterAI) duel(u *world.Unit) {
	if a.castLeft > 0 {
		return
	}
	if a.hitsLeft <= 0 {
		a.hitsLeft = a.cfg.AttackSequence
	}

	a.hitsLeft--
	a.castLeft = a.cfg.CastTime
	if a.hitsLeft > 0 {
		return
	}

	if u.DuelTarget() != nil {
		u.Attack()
	}
	a.hitsLeft = a.cfg.AttackSequence
}

func (a *MonsterAI) release() {
	a.chase = model.Ref{}
	a.path = nil
}

// eligible reports whether target may be chased by u.
func (a *MonsterAI) eligible(u, target *world.Unit) bool {
	return target != u &&
		!target.IsMonster() &&
		target.Alive() &&
		target.Attrs().Visible() &&
		target.Position().Distance(u.Position()) <= a.cfg.AggroRadius
}

// acquire picks the nearest eligible unit; ties go to the lowest id.
func (a *MonsterAI) acquire(u *world.Unit) *world.Unit {
	var (
		best     *world.Unit
		bestDist int64
	)
	for _, cand := range world.Subset[*world.Unit](u.World().Storage()) {
		if !a.eligible(u, cand) {
			continue
		}
		d := cand.Position().DistanceSquared(u.Position())
		if best == nil || d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// replan recomputes the path to goal. The monster's own cell and the goal
// are forced passable. An unreachable goal leaves no path; the search is
// retried on the next tick.
func (a *MonsterAI) replan(u *world.Unit, goal model.Point) {
	from := u.Position()
	grid := u.World().PassabilityGrid(from, goal)

	path := geo.FindPath(grid, from, goal)
	if len(path) < 2 {
		a.path = nil
		if IsDebugEnabled() {
			u.Logger().Debug("no path to target", "from", from, "to", goal)
		}
		return
	}
	a.path = path[1:]
	if IsDebugEnabled() {
		u.Logger().Debug("path found", "from", from, "to", goal, "steps", len(a.path))
	}
}
