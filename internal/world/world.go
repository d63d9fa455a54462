// Package world runs the authoritative simulation of one match: object
// storage, units, items, combat, respawns and the command/event queues
// that connect it to the session.
//
// A World is driven by a single goroutine and is not safe for
// concurrent use.
package world

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/labyrinth/internal/game/geo"
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// Config is the deterministic configuration a world is built from.
type Config struct {
	Seed       uint32
	ChunkCount int
	ChunkSize  int
	Monsters   int
	Swords     int

	RespawnDelay           time.Duration
	RespawnInvulnerability time.Duration
	DuelInvulnerability    time.Duration

	// NewMonsterBrain builds the AI of every monster instance. Monsters
	// without a brain stand still.
	NewMonsterBrain BehaviorFactory

	Logger *slog.Logger
}

// DefaultConfig returns the stock match parameters.
func DefaultConfig() Config {
	return Config{
		ChunkCount:             3,
		ChunkSize:              10,
		Monsters:               4,
		Swords:                 3,
		RespawnDelay:           3 * time.Second,
		RespawnInvulnerability: 5 * time.Second,
		DuelInvulnerability:    3 * time.Second,
	}
}

// World owns all simulation state of one match.
type World struct {
	cfg Config
	log *slog.Logger
	rng *rand.Rand

	ids       *ObjectIDGenerator
	storage   *Storage
	respawner *Respawner

	incoming []protocol.Command
	outgoing []protocol.Event

	heroes          map[int32]model.ObjectID // player uid -> unit id
	pendingMonsters []model.Point

	mapSize int32
	clock   time.Duration
	winner  *protocol.GameEnd
}

// New creates an empty world. Call GenerateMap, AddHero and InitialSpawn
// before the first Update.
func New(cfg Config) *World {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	w := &World{
		cfg:     cfg,
		log:     log.With("seed", cfg.Seed),
		rng:     newRand(cfg.Seed),
		ids:     NewObjectIDGenerator(),
		storage: NewStorage(),
		heroes:  make(map[int32]model.ObjectID),
	}
	w.respawner = newRespawner(w)
	return w
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Storage returns the object storage.
func (w *World) Storage() *Storage { return w.storage }

// Respawner returns the respawn scheduler.
func (w *World) Respawner() *Respawner { return w.respawner }

// MapSize returns the side of the square map in cells.
func (w *World) MapSize() int32 { return w.mapSize }

// Clock returns the simulated time elapsed since the first update.
func (w *World) Clock() time.Duration { return w.clock }

// Logger returns the world logger.
func (w *World) Logger() *slog.Logger { return w.log }

// AddHero registers a player's hero. The unit enters storage but stays
// UNDEFINED until InitialSpawn.
func (w *World) AddHero(uid int32, nickname string, hero model.HeroType) (*Unit, error) {
	if !hero.Valid() {
		return nil, fmt.Errorf("adding hero for player %d: invalid hero type %d", uid, hero)
	}
	if _, exists := w.heroes[uid]; exists {
		return nil, fmt.Errorf("adding hero for player %d: already added", uid)
	}

	stats := model.HeroStats(hero)
	if nickname != "" {
		stats.Name = nickname
	}
	u := newUnit(w, w.ids.Next(), model.KindHero, stats)
	u.hero = hero
	u.playerUID = uid
	u.SetAttrs(u.Attrs() | model.AttrPassable)
	w.attachBehavior(u)

	if err := w.storage.Insert(u); err != nil {
		return nil, fmt.Errorf("adding hero for player %d: %w", uid, err)
	}
	w.heroes[uid] = u.ObjectID()
	return u, nil
}

// AddMonster creates a monster standing at p without spawning it.
func (w *World) AddMonster(p model.Point) (*Unit, error) {
	u := newUnit(w, w.ids.Next(), model.KindMonster, model.MonsterStats)
	u.SetPosition(p)
	u.SetAttrs(u.Attrs() | model.AttrPassable)
	w.attachBehavior(u)

	if err := w.storage.Insert(u); err != nil {
		return nil, fmt.Errorf("adding monster: %w", err)
	}
	return u, nil
}

// AddConstruction places a construction directly, bypassing map generation.
func (w *World) AddConstruction(typ model.ConstructionType, p model.Point) *Construction {
	return w.addConstruction(typ, p)
}

// AddItem places an item on the ground directly, bypassing map generation.
func (w *World) AddItem(typ model.ItemType, p model.Point) *Item {
	return w.addItem(typ, p)
}

// SetMapSize sets the map bounds for worlds assembled by hand.
func (w *World) SetMapSize(n int32) { w.mapSize = n }

func (w *World) attachBehavior(u *Unit) {
	if u.IsMonster() {
		if w.cfg.NewMonsterBrain != nil {
			u.behavior = w.cfg.NewMonsterBrain(w, u)
		}
		return
	}
	u.behavior = newSpellbook(u.hero, u)
}

// InitialSpawn spawns monsters and heroes and announces every non-wall
// object to the clients. Walls are rebuilt by clients from the seed.
func (w *World) InitialSpawn() error {
	for _, c := range Subset[*Construction](w.storage) {
		if c.Type() == model.ConstructionWall {
			continue
		}
		w.Emit(protocol.SpawnConstruction{Construction: c.ObjectID(), Type: c.Type(), Pos: c.Position()})
	}
	for _, it := range Subset[*Item](w.storage) {
		w.Emit(protocol.SpawnItem{Item: it.ObjectID(), Type: it.Type(), Pos: it.Position()})
	}

	for _, p := range w.pendingMonsters {
		m, err := w.AddMonster(p)
		if err != nil {
			return err
		}
		m.Spawn(p)
	}
	w.pendingMonsters = nil

	for _, u := range Subset[*Unit](w.storage) {
		if u.IsMonster() || u.State() != model.StateUndefined {
			continue
		}
		p, ok := w.randomFreeCell()
		if !ok {
			return fmt.Errorf("initial spawn of %s: no free cell", u.Name())
		}
		u.Spawn(p)
	}
	return nil
}

func (w *World) randomFreeCell() (model.Point, bool) {
	cc, cs := w.cfg.ChunkCount, w.cfg.ChunkSize
	if cc < 1 || cs < 2 {
		return model.Point{}, false
	}
	return w.randomCellWhere(cc, cs, w.cellFree)
}

// Push queues an inbound command for the next Update.
func (w *World) Push(cmd protocol.Command) {
	w.incoming = append(w.incoming, cmd)
}

// Emit queues an outbound event.
func (w *World) Emit(ev protocol.Event) {
	w.outgoing = append(w.outgoing, ev)
}

// Drain returns and clears the queued outbound events.
func (w *World) Drain() []protocol.Event {
	out := w.outgoing
	w.outgoing = nil
	return out
}

// Update advances the simulation by delta: drains the incoming queue,
// updates every live unit, then runs the respawn scheduler.
func (w *World) Update(delta time.Duration) {
	w.clock += delta

	cmds := w.incoming
	w.incoming = nil
	for _, cmd := range cmds {
		w.dispatch(cmd)
	}

	for _, u := range Subset[*Unit](w.storage) {
		// an earlier unit may have killed this one during the tick
		if !w.storage.Contains(u) || !u.Alive() {
			continue
		}
		u.Update(delta)
	}

	w.respawner.Update()
}

// Winner returns the game-end record once a hero escaped with the key.
func (w *World) Winner() (protocol.GameEnd, bool) {
	if w.winner == nil {
		return protocol.GameEnd{}, false
	}
	return *w.winner, true
}

// Hero returns the live unit of player uid.
func (w *World) Hero(uid int32) *Unit {
	id, ok := w.heroes[uid]
	if !ok {
		return nil
	}
	return w.UnitByID(id)
}

// UnitByID returns the live unit with the given id.
func (w *World) UnitByID(id model.ObjectID) *Unit {
	obj, ok := w.storage.Get(id)
	if !ok {
		return nil
	}
	u, _ := obj.(*Unit)
	return u
}

// ResolveUnit returns the unit behind ref if it is still the same instance.
func (w *World) ResolveUnit(ref model.Ref) *Unit {
	obj, ok := w.storage.Resolve(ref)
	if !ok {
		return nil
	}
	u, _ := obj.(*Unit)
	return u
}

// RefOf returns a weak reference to u.
func (w *World) RefOf(u *Unit) model.Ref {
	if !w.storage.Contains(u) {
		return model.Ref{}
	}
	return w.storage.Ref(u.ObjectID())
}

// PassabilityGrid builds a grid of the whole map where every cell
// holding a non-passable object is blocked. Cells in open are forced
// passable.
func (w *World) PassabilityGrid(open ...model.Point) *geo.Grid {
	g := geo.NewGrid(w.mapSize, w.mapSize, true)
	for _, obj := range w.storage.Objects() {
		if !obj.Attrs().Passable() {
			g.Set(obj.Position(), false)
		}
	}
	for _, p := range open {
		g.Set(p, true)
	}
	return g
}

// openDoor handles a unit walking into the exit door. A hero carrying
// the key wins the match. Reports whether p holds a door.
func (w *World) openDoor(u *Unit, p model.Point) bool {
	for _, obj := range w.storage.ObjectsAt(p) {
		c, ok := obj.(*Construction)
		if !ok || c.Type() != model.ConstructionDoor {
			continue
		}
		if !u.IsMonster() && u.CarriesKey() && w.winner == nil {
			w.winner = &protocol.GameEnd{Winner: u.ObjectID(), Name: u.Name()}
			w.log.Info("hero escaped", "unit", u.ObjectID(), "name", u.Name())
			w.Emit(*w.winner)
		}
		return true
	}
	return false
}
