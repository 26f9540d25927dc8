package main

import (
	"log"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// unreachable is the distance field value of positions that cannot be
// reached.
const unreachable = 1 << 24

const (
	stepCostCardinal = 2
	stepCostDiagonal = 3
)

// stepCost returns the base cost of a move between two neighboring
// positions.
func stepCost(from, to gruid.Point) int {
	if from.X != to.X && from.Y != to.Y {
		return stepCostDiagonal
	}
	return stepCostCardinal
}

// GuardMoveCost returns the cost for a guard of entering position to from
// position from. Diagonal moves around an impassable corner are
// Impassable.
func (m *Map) GuardMoveCost(from, to gruid.Point) int {
	cost := m.Cells.At(to).MoveCost
	if cost >= Impassable {
		return Impassable
	}
	if from.X != to.X && from.Y != to.Y &&
		(m.Cells.At(gruid.Point{from.X, to.Y}).MoveCost >= Impassable ||
			m.Cells.At(gruid.Point{to.X, from.Y}).MoveCost >= Impassable) {
		return Impassable
	}
	return cost
}

// guardPath implements paths.Dijkstra for guard movement.
type guardPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (gp *guardPath) Neighbors(p gruid.Point) []gruid.Point {
	return gp.nbs.All(p, func(q gruid.Point) bool {
		return gp.m.InMap(q) && gp.m.GuardMoveCost(p, q) < Impassable
	})
}

func (gp *guardPath) Cost(from, to gruid.Point) int {
	return stepCost(from, to) + gp.m.GuardMoveCost(from, to)
}

// soundPath implements paths.Dijkstra for sound propagation: sound does not
// care about furniture, but walls stop it.
type soundPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (sp *soundPath) Neighbors(p gruid.Point) []gruid.Point {
	return sp.nbs.All(p, func(q gruid.Point) bool {
		return sp.m.InMap(q) && !sp.m.Cells.At(q).BlocksSound
	})
}

func (sp *soundPath) Cost(from, to gruid.Point) int {
	return stepCost(from, to)
}

// DistanceField computes the guard movement distance to the closest of the
// given sources. Unreachable positions get the unreachable value.
func (m *Map) DistanceField(sources []gruid.Point) Grid[int] {
	sz := m.Size()
	field := NewGrid(sz.X, sz.Y, unreachable)
	nodes := m.pr.DijkstraMap(&guardPath{m: m}, sources, unreachable-1)
	for _, n := range nodes {
		field.Set(n.P, n.Cost)
	}
	return field
}

// DistancesToPosition returns the distance field towards a single goal.
func (m *Map) DistancesToPosition(goal gruid.Point) Grid[int] {
	if !m.InMap(goal) {
		panic("paths: goal out of map")
	}
	return m.DistanceField([]gruid.Point{goal})
}

// DistancesToPatrolPath returns the distance field towards the nearest
// waypoint of a patrol path.
func (m *Map) DistancesToPatrolPath(path []gruid.Point) Grid[int] {
	return m.DistanceField(path)
}

// CoordsInEarshot returns the positions a sound at p can be heard from,
// within a cost radius.
func (m *Map) CoordsInEarshot(p gruid.Point, radius int) []gruid.Point {
	nodes := m.prSound.DijkstraMap(&soundPath{m: m}, []gruid.Point{p}, radius)
	ps := make([]gruid.Point, 0, len(nodes))
	for _, n := range nodes {
		ps = append(ps, n.P)
	}
	return ps
}

// GuardsInEarshot returns the guards that can hear a sound at p.
func (m *Map) GuardsInEarshot(p gruid.Point, radius int) []*Guard {
	heard := map[gruid.Point]bool{}
	for _, q := range m.CoordsInEarshot(p, radius) {
		heard[q] = true
	}
	var guards []*Guard
	for _, g := range m.Guards {
		if heard[g.P] {
			guards = append(guards, g)
		}
	}
	return guards
}

// posNextBest returns the neighbor of from (or from itself) with the lowest
// distance that a guard can step onto. Water and positions of guards that
// already moved this turn are avoided.
func (m *Map) posNextBest(field Grid[int], from gruid.Point) gruid.Point {
	best := from
	costBest := unreachable
	for p := range Around(from, m.Cells.Range()) {
		cost := field.At(p)
		if cost >= unreachable {
			continue
		}
		if m.GuardMoveCost(from, p) >= Impassable {
			continue
		}
		if m.Terrain.At(p) == GroundWater {
			continue
		}
		if m.IsGuardAt(p) {
			continue
		}
		if cost < costBest {
			costBest = cost
			best = p
		}
	}
	return best
}

// pathBetweenPoints returns the positions visited when walking down the
// distance field from from to to. The destination itself is not included.
func (m *Map) pathBetweenPoints(from, to gruid.Point) []gruid.Point {
	field := m.DistancesToPosition(to)
	var path []gruid.Point
	p := from
	for p != to {
		path = append(path, p)
		q := m.posNextBest(field, p)
		if q == p {
			log.Printf("mapgen: path from %v to %v failed to proceed at %v", from, to, p)
			break
		}
		p = q
	}
	return path
}

// playerPath implements paths.Pather for player movement. One-way windows
// make it directional.
type playerPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (pp *playerPath) Neighbors(p gruid.Point) []gruid.Point {
	if pp.m.Cells.At(p).BlocksPlayerMove {
		return nil
	}
	return pp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return !blocked(pp.m, p, q)
	})
}

// PlayerReachable reports whether the player could walk from one position
// to the other, ignoring guards and items.
func (m *Map) PlayerReachable(from, to gruid.Point) bool {
	m.pr.CCMap(&playerPath{m: m}, from)
	return m.pr.CCMapAt(to) != -1
}
