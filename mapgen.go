// This file contains the level generation entry point.

package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
)

// RoughPlan describes the shape and loot of a level before generation.
type RoughPlan struct {
	RoomsX    int // rooms across, always odd
	RoomsY    int // rooms deep
	TotalLoot int // coins on the floor plus guard purses
}

// levelShape constrains the room counts of a level.
type levelShape struct {
	xmin, xmax int
	ymin, ymax int
	amin, amax int // area bounds
}

var levelShapes = []levelShape{
	{3, 3, 2, 2, 6, 6},
	{3, 5, 2, 5, 6, 12},
	{3, 5, 2, 6, 9, 15},
	{3, 5, 2, 6, 12, 18},
	{3, 7, 3, 6, 15, 21},
	{3, 7, 3, 6, 18, 24},
	{3, 7, 3, 6, 21, 30},
	{5, 7, 4, 6, 24, 36},
	{5, 9, 4, 6, 30, 42},
	{7, 9, 4, 6, 36, 48},
}

// MaxLevels is the number of levels with a planned shape.
const MaxLevels = 10

// levelSize returns random room counts for a level.
func levelSize(level int, rd *rand.Rand) (int, int) {
	ls := levelShapes[min(level, len(levelShapes)-1)]
	x := ls.xmin + 2*RandInRange(rd, 1+(ls.xmax-ls.xmin)/2)
	y := ls.ymin + RandInRange(rd, 1+ls.ymax-ls.ymin)
	y = min(ls.amax/x, y)
	y = max(y, (ls.amin+x-1)/x)
	return x, y
}

// RoughPlans returns plans for numLevels levels, distributing totalLoot in
// proportion to level area. The last level gets the remainder.
func RoughPlans(numLevels, totalLoot int, rd *rand.Rand) []RoughPlan {
	plans := make([]RoughPlan, numLevels)
	area := 0
	for i := range plans {
		plans[i].RoomsX, plans[i].RoomsY = levelSize(i, rd)
		area += plans[i].RoomsX * plans[i].RoomsY
	}
	placed := 0
	for i := range plans {
		loot := totalLoot * plans[i].RoomsX * plans[i].RoomsY / max(area, 1)
		plans[i].TotalLoot = loot
		placed += loot
	}
	if numLevels > 0 {
		plans[numLevels-1].TotalLoot += totalLoot - placed
	}
	return plans
}

// errLootShortfall is returned when a level has no room for all of its
// loot, or when some coin is out of the player's reach. Another seed usually
// works.
var errLootShortfall = errors.New("mapgen: not enough room for loot")

// levelGen holds the state of a level being generated.
type levelGen struct {
	*roomGraph
	m     *Map
	level int
}

// GenerateLevel generates a furnished level with its guards, from a plan
// and a seed. The same arguments always produce the same level.
func GenerateLevel(level int, plan RoughPlan, seed uint64) (*Map, error) {
	lg, err := generateLevel(level, plan, seed)
	if err != nil {
		return nil, err
	}
	return lg.m, nil
}

// generateLevel does the work of GenerateLevel, keeping the room graph
// around.
func generateLevel(level int, plan RoughPlan, seed uint64) (*levelGen, error) {
	switch {
	case level < 0:
		return nil, fmt.Errorf("mapgen: invalid level %d", level)
	case plan.RoomsX < 1 || plan.RoomsX > 9 || plan.RoomsY < 1 || plan.RoomsY > 9:
		return nil, fmt.Errorf("mapgen: invalid room counts %dx%d", plan.RoomsX, plan.RoomsY)
	case plan.TotalLoot < 0:
		return nil, fmt.Errorf("mapgen: invalid loot %d", plan.TotalLoot)
	}
	rd := newRand(seed)
	rg := newRoomGraph(plan.RoomsX, plan.RoomsY, rd)
	m := NewMap(rg.mapSize(), rd)
	m.Level = level
	m.PlayerStart = rg.start
	m.TotalLoot = plan.TotalLoot
	lg := &levelGen{roomGraph: rg, m: m, level: level}

	lg.plotWalls()
	lg.renderWalls()
	lg.renderRooms()
	lg.placeExteriorBushes()
	lg.placeFrontPillars()
	guardLoot := min(level/3, plan.TotalLoot)
	floorLoot := plan.TotalLoot - guardLoot
	if n := lg.placeLoot(floorLoot); n != floorLoot {
		return nil, fmt.Errorf("%w: placed %d of %d", errLootShortfall, n, floorLoot)
	}
	fixupWalls(m.Terrain)
	m.cacheCellInfo()

	routes := lg.placePatrolRoutes()
	if err := lg.placeGuards(routes, guardLoot); err != nil {
		return nil, err
	}
	for _, it := range m.Items {
		if it.Kind == ItemCoin && !m.PlayerReachable(m.PlayerStart, it.P) {
			return nil, fmt.Errorf("%w: coin at %v out of reach", errLootShortfall, it.P)
		}
	}
	lg.markExteriorAsSeen()

	m.ComputeLighting()
	m.RecomputeVisibility(m.PlayerStart)
	return lg, nil
}

// placeGuards puts one guard at the start of each patrol route, handing
// out torches and purses. Purses left over go to the floor.
func (lg *levelGen) placeGuards(routes [][]gruid.Point, purses int) error {
	if lg.level <= 0 {
		return nil
	}
	for _, route := range routes {
		if len(route) == 0 {
			log.Printf("mapgen: empty patrol route on level %d", lg.level)
			continue
		}
		g := NewGuard(route)
		if lg.level > 1 && RandInRange(lg.rand, 5+lg.level) < lg.level {
			g.HasTorch = true
		}
		if purses > 0 {
			g.HasPurse = true
			purses--
		}
		lg.m.Guards = append(lg.m.Guards, g)
	}
	if purses > 0 {
		log.Printf("mapgen: %d purses without a guard on level %d", purses, lg.level)
		if n := lg.placeLoot(purses); n != purses {
			return fmt.Errorf("%w: placed %d of %d purses", errLootShortfall, n, purses)
		}
	}
	return nil
}
