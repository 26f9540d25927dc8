package main

import (
	"slices"
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestGuardMoveCost(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#...#",
		"#.#.#",
		"#~..#",
		"#####",
	)
	if c := m.GuardMoveCost(gruid.Point{1, 2}, gruid.Point{2, 3}); c != Impassable {
		t.Errorf("diagonal around a wall corner: got %d", c)
	}
	if c := m.GuardMoveCost(gruid.Point{1, 3}, gruid.Point{2, 3}); c != 0 {
		t.Errorf("cardinal floor move: got %d", c)
	}
	if c := m.GuardMoveCost(gruid.Point{2, 1}, gruid.Point{1, 1}); c != waterCost {
		t.Errorf("move into water: got %d", c)
	}
	if c := m.GuardMoveCost(gruid.Point{1, 3}, gruid.Point{2, 2}); c != Impassable {
		t.Errorf("move into a wall: got %d", c)
	}
}

func TestDistanceField(t *testing.T) {
	m := mapFromRows(twoRooms...)
	field := m.DistancesToPosition(gruid.Point{1, 1})
	if d := field.At(gruid.Point{1, 1}); d != 0 {
		t.Errorf("distance at goal: %d", d)
	}
	if d := field.At(gruid.Point{2, 1}); d != stepCostCardinal {
		t.Errorf("distance of a neighbor: %d", d)
	}
	if d := field.At(gruid.Point{3, 1}); d != 2*stepCostCardinal {
		t.Errorf("distance two cells away: %d", d)
	}
	if d := field.At(gruid.Point{2, 2}); d != stepCostDiagonal {
		t.Errorf("diagonal distance: %d", d)
	}
	for _, p := range []gruid.Point{{4, 2}, {6, 2}} {
		if d := field.At(p); d != unreachable {
			t.Errorf("distance at %v: got %d, want unreachable", p, d)
		}
	}
}

func TestPosNextBest(t *testing.T) {
	m := mapFromRows(twoRooms...)
	field := m.DistancesToPosition(gruid.Point{1, 2})
	if p := m.posNextBest(field, gruid.Point{3, 2}); p != (gruid.Point{2, 2}) {
		t.Errorf("next best from (3,2): %v", p)
	}
	if p := m.posNextBest(field, gruid.Point{1, 2}); p != (gruid.Point{1, 2}) {
		t.Errorf("next best at goal: %v", p)
	}
	path := m.pathBetweenPoints(gruid.Point{3, 2}, gruid.Point{1, 2})
	want := []gruid.Point{{3, 2}, {2, 2}}
	if !slices.Equal(path, want) {
		t.Errorf("path: got %v, want %v", path, want)
	}
}

func TestEarshot(t *testing.T) {
	m := mapFromRows(twoRooms...)
	ps := m.CoordsInEarshot(gruid.Point{2, 2}, 100)
	if !slices.Contains(ps, gruid.Point{1, 1}) {
		t.Errorf("sound not heard in the same room")
	}
	if slices.Contains(ps, gruid.Point{6, 2}) {
		t.Errorf("sound heard through a wall")
	}
	near := NewGuard([]gruid.Point{{3, 3}})
	far := NewGuard([]gruid.Point{{6, 2}})
	m.Guards = []*Guard{near, far}
	gs := m.GuardsInEarshot(gruid.Point{2, 2}, 100)
	if len(gs) != 1 || gs[0] != near {
		t.Errorf("guards in earshot: %v", gs)
	}
	if gs := m.GuardsInEarshot(gruid.Point{1, 1}, 1); len(gs) != 0 {
		t.Errorf("guard heard a sound out of range")
	}
}
