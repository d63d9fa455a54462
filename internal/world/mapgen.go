package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/labyrinth/internal/model"
)

// MapSize returns the side of a square map built from chunkCount×chunkCount
// chunks of chunkSize cells, including the outer border.
func MapSize(chunkCount, chunkSize int) int32 {
	return int32(chunkCount*chunkSize + 2)
}

// newRand returns the generator a map is built from. Clients rebuild walls
// from the same seed, so the stream must be stable.
func newRand(seed uint32) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)<<32|0x6c616279))
}

// GenerateMap builds the labyrinth: border and chunk walls with one
// opening per spanning-tree edge between neighbouring chunks, pillars
// inside chunks, one graveyard per chunk, the exit door, the key,
// swords and monsters. Units are spawned separately by InitialSpawn.
func (w *World) GenerateMap() error {
	cc, cs := w.cfg.ChunkCount, w.cfg.ChunkSize
	if cc < 1 || cs < 4 {
		return fmt.Errorf("generating map: chunk count %d, chunk size %d: chunks too small", cc, cs)
	}
	w.mapSize = MapSize(cc, cs)
	n := w.mapSize

	walls := make([][]bool, n)
	for x := range walls {
		walls[x] = make([]bool, n)
	}
	for i := int32(0); i < n; i++ {
		walls[i][0], walls[i][n-1] = true, true
		walls[0][i], walls[n-1][i] = true, true
	}
	// separating walls between chunks
	for c := 1; c < cc; c++ {
		line := int32(c * cs)
		for i := int32(0); i < n; i++ {
			walls[line][i] = true
			walls[i][line] = true
		}
	}

	w.carveOpenings(walls, cc, cs)
	w.placePillars(walls, cc, cs)

	for x := int32(0); x < n; x++ {
		for y := int32(0); y < n; y++ {
			if walls[x][y] {
				w.addConstruction(model.ConstructionWall, model.NewPoint(x, y))
			}
		}
	}

	used := make(map[model.Point]bool)
	free := func(p model.Point) bool { return !walls[p.X][p.Y] && !used[p] }

	for cy := range cc {
		for cx := range cc {
			p, ok := w.randomCell(cx, cy, cs, free)
			if !ok {
				continue
			}
			used[p] = true
			w.addConstruction(model.ConstructionGraveyard, p)
		}
	}

	// The door keeps off the chunk's outer ring so it never seals an opening.
	door, ok := w.randomCellWhere(cc, cs, func(p model.Point) bool {
		ox, oy := int(p.X)%cs, int(p.Y)%cs
		if !free(p) || ox < 2 || oy < 2 || ox > cs-2 || oy > cs-2 {
			return false
		}
		for _, d := range []model.Direction{model.DirUp, model.DirDown, model.DirLeft, model.DirRight} {
			if q := p.Step(d); walls[q.X][q.Y] {
				return false
			}
		}
		return true
	})
	if !ok {
		return fmt.Errorf("generating map: no cell for the exit door")
	}
	used[door] = true
	w.addConstruction(model.ConstructionDoor, door)

	place := func(what string) (model.Point, error) {
		p, ok := w.randomCellWhere(cc, cs, free)
		if !ok {
			return p, fmt.Errorf("generating map: no free cell for %s", what)
		}
		used[p] = true
		return p, nil
	}

	keyPos, err := place("key")
	if err != nil {
		return err
	}
	w.addItem(model.ItemKey, keyPos)

	for range w.cfg.Swords {
		p, err := place("sword")
		if err != nil {
			return err
		}
		w.addItem(model.ItemSword, p)
	}

	for range w.cfg.Monsters {
		p, err := place("monster")
		if err != nil {
			return err
		}
		w.pendingMonsters = append(w.pendingMonsters, p)
	}

	w.log.Info("map generated",
		"seed", w.cfg.Seed,
		"size", n,
		"objects", w.storage.Len(),
		"door", door,
		"key", keyPos)
	return nil
}

// carveOpenings links all chunks with a randomized depth-first spanning
// tree, opening one wall cell per tree edge.
func (w *World) carveOpenings(walls [][]bool, cc, cs int) {
	visited := make([]bool, cc*cc)
	stack := []int{w.rng.IntN(cc * cc)}
	visited[stack[0]] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		cx, cy := cur%cc, cur/cc

		var next []int
		if cx > 0 && !visited[cur-1] {
			next = append(next, cur-1)
		}
		if cx < cc-1 && !visited[cur+1] {
			next = append(next, cur+1)
		}
		if cy > 0 && !visited[cur-cc] {
			next = append(next, cur-cc)
		}
		if cy < cc-1 && !visited[cur+cc] {
			next = append(next, cur+cc)
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		nb := next[w.rng.IntN(len(next))]
		visited[nb] = true
		stack = append(stack, nb)

		nx, ny := nb%cc, nb/cc
		// offset along the wall, never on a wall crossing
		off := int32(1 + w.rng.IntN(cs-1))
		if nx != cx {
			line := int32(max(cx, nx) * cs)
			walls[line][int32(cy*cs)+off] = false
		} else {
			line := int32(max(cy, ny) * cs)
			walls[int32(cx*cs)+off][line] = false
		}
	}
}

// placePillars drops isolated wall cells inside chunks. Pillars sit on
// even offsets at least two cells from chunk walls, so they never touch
// each other or a wall and cannot split a chunk.
func (w *World) placePillars(walls [][]bool, cc, cs int) {
	for cy := range cc {
		for cx := range cc {
			for ox := 2; ox <= cs-3; ox += 2 {
				for oy := 2; oy <= cs-3; oy += 2 {
					if w.rng.IntN(4) != 0 {
						continue
					}
					walls[cx*cs+ox][cy*cs+oy] = true
				}
			}
		}
	}
}

// randomCell picks a random cell of chunk (cx, cy) satisfying ok.
func (w *World) randomCell(cx, cy, cs int, ok func(model.Point) bool) (model.Point, bool) {
	var candidates []model.Point
	for ox := 1; ox < cs; ox++ {
		for oy := 1; oy < cs; oy++ {
			p := model.NewPoint(int32(cx*cs+ox), int32(cy*cs+oy))
			if ok(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return model.Point{}, false
	}
	return candidates[w.rng.IntN(len(candidates))], true
}

// randomCellWhere picks a random chunk and a random cell inside it
// satisfying ok, trying every chunk before giving up.
func (w *World) randomCellWhere(cc, cs int, ok func(model.Point) bool) (model.Point, bool) {
	start := w.rng.IntN(cc * cc)
	for i := range cc * cc {
		c := (start + i) % (cc * cc)
		if p, found := w.randomCell(c%cc, c/cc, cs, ok); found {
			return p, true
		}
	}
	return model.Point{}, false
}

func (w *World) addConstruction(typ model.ConstructionType, p model.Point) *Construction {
	c := NewConstruction(w.ids.Next(), typ, p)
	w.mustInsert(c)
	return c
}

func (w *World) addItem(typ model.ItemType, p model.Point) *Item {
	it := NewItem(w.ids.Next(), typ, p)
	w.mustInsert(it)
	return it
}

// mustInsert inserts a freshly generated object. Ids come from the
// world's own generator, so a collision is a programming error.
func (w *World) mustInsert(obj Object) {
	if err := w.storage.Insert(obj); err != nil {
		panic(err)
	}
}
