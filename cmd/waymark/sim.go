package main

import (
	"fmt"
	"math/rand"
	"sync"

	"waymark/core"
	"waymark/entity"
	"waymark/world"
)

const (
	simWidth    = 48
	simHeight   = 24
	simWallOdds = 0.12
	simEntities = 14
	simDebris   = 4
)

// simSpecies are the templates the simulated world spawns from
var simSpecies = []struct {
	name string
	cat  entity.Category
}{
	{"health potion", entity.CategoryItem},
	{"gold pile", entity.CategoryItem},
	{"old chest", entity.CategoryChest},
	{"villager", entity.CategoryNPC},
	{"merchant", entity.CategoryNPC},
	{"slime", entity.CategoryEnemy},
	{"bat", entity.CategoryEnemy},
	{"wooden door", entity.CategoryDoor},
	{"stairs down", entity.CategoryStairs},
	{"portal", entity.CategoryGateway},
}

type simEntity struct {
	name string
	cat  entity.Category
	pos  core.Point
	ref  *entity.Ref
}

// simWorld is a self-contained world.Source: a walled grid, a player, and a
// handful of wandering entities. Entities drift on every scan and
// occasionally die, exercising relocation and selection-loss paths
type simWorld struct {
	mu sync.Mutex

	rng   *rand.Rand
	grid  *world.Grid
	step  float64
	epoch uint64
	mapID string

	player          core.Point
	transitionsOpen bool

	ents []*simEntity
}

func newSimWorld(seed int64, step float64) *simWorld {
	s := &simWorld{
		rng:  rand.New(rand.NewSource(seed)),
		step: step,
	}
	s.generate()
	return s
}

// generate builds a fresh map: new epoch, new grid, new population
func (s *simWorld) generate() {
	s.epoch++
	s.mapID = fmt.Sprintf("floor %d", s.epoch)
	s.transitionsOpen = s.rng.Intn(4) != 0 // one floor in four seals its exits

	s.grid = world.NewGrid(simWidth, simHeight, 1.0)
	for y := 0; y < simHeight; y++ {
		for x := 0; x < simWidth; x++ {
			border := x == 0 || y == 0 || x == simWidth-1 || y == simHeight-1
			if border || s.rng.Float64() < simWallOdds {
				s.grid.SetBlocked(x, y, true)
			}
		}
	}

	s.player = s.freeSpot()
	s.grid.SetBlocked(int(s.player.X), int(s.player.Y), false)

	s.ents = s.ents[:0]
	for i := 0; i < simEntities; i++ {
		sp := simSpecies[s.rng.Intn(len(simSpecies))]
		s.ents = append(s.ents, &simEntity{
			name: sp.name,
			cat:  sp.cat,
			pos:  s.freeSpot(),
			ref:  entity.NewRef(),
		})
	}
	// Unclassified debris; the exclusion filter drops these at admission
	for i := 0; i < simDebris; i++ {
		s.ents = append(s.ents, &simEntity{
			name: "debris",
			cat:  entity.CategoryNone,
			pos:  s.freeSpot(),
			ref:  entity.NewRef(),
		})
	}
}

// freeSpot returns the center of a random walkable cell
func (s *simWorld) freeSpot() core.Point {
	for {
		x := s.rng.Intn(simWidth)
		y := s.rng.Intn(simHeight)
		if s.grid.Walkable(x, y) {
			return core.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
		}
	}
}

// Scan implements world.Source
// Each pull also advances the simulation a little: entities drift one cell,
// and rarely one dies and respawns elsewhere
func (s *simWorld) Scan() ([]entity.Entity, world.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wander()

	out := make([]entity.Entity, 0, len(s.ents))
	for _, se := range s.ents {
		if !se.ref.Alive() {
			continue
		}
		out = append(out, entity.New(se.cat, se.name, se.pos, s.epoch, s.step, se.ref))
	}

	return out, world.Snapshot{
		Player:          s.player,
		PlayerOK:        true,
		MapID:           s.mapID,
		Epoch:           s.epoch,
		TransitionsOpen: s.transitionsOpen,
		Grid:            s.grid,
	}
}

// wander drifts mobile entities and recycles the occasional casualty
func (s *simWorld) wander() {
	for _, se := range s.ents {
		// Doors and stairs stay put
		if entity.TransitionCategories[se.cat] || se.cat == entity.CategoryChest {
			continue
		}
		if s.rng.Intn(3) != 0 {
			continue
		}
		dx := float64(s.rng.Intn(3) - 1)
		dy := float64(s.rng.Intn(3) - 1)
		nx, ny := se.pos.X+dx, se.pos.Y+dy
		if s.grid.Walkable(int(nx), int(ny)) {
			se.pos = core.Point{X: nx, Y: ny}
		}
	}

	if s.rng.Intn(12) == 0 && len(s.ents) > 0 {
		victim := s.ents[s.rng.Intn(len(s.ents))]
		victim.ref.Invalidate()
		sp := simSpecies[s.rng.Intn(len(simSpecies))]
		s.ents = append(s.ents, &simEntity{
			name: sp.name,
			cat:  sp.cat,
			pos:  s.freeSpot(),
			ref:  entity.NewRef(),
		})
	}
}

// MovePlayer nudges the player one cell if the target is walkable
func (s *simWorld) MovePlayer(dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nx, ny := s.player.X+float64(dx), s.player.Y+float64(dy)
	if s.grid.Walkable(int(nx), int(ny)) {
		s.player = core.Point{X: nx, Y: ny}
	}
}

// NextFloor regenerates the map under a new epoch
func (s *simWorld) NextFloor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generate()
}
