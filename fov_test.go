package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

// mapFromRows builds a map from text rows, north first: '#' is a wall, '~'
// water, '>' a window open eastwards, ',' plain ground, '$' a coin, 'T' a
// lit torch, 'i' an unlit torch, 't' a table. Anything else is wood floor.
func mapFromRows(rows ...string) *Map {
	h := len(rows)
	w := len(rows[0])
	m := NewMap(gruid.Point{w, h}, newRand(1))
	for r, row := range rows {
		y := h - 1 - r
		for x, c := range []byte(row) {
			p := gruid.Point{x, y}
			t := GroundWood
			switch c {
			case '#':
				t = Wall0000
			case '~':
				t = GroundWater
			case '>':
				t = OneWayWindowE
			case ',':
				t = GroundNormal
			case '$':
				m.PlaceItem(p, ItemCoin)
			case 'T':
				m.PlaceItem(p, ItemTorchLit)
			case 'i':
				m.PlaceItem(p, ItemTorchUnlit)
			case 't':
				m.PlaceItem(p, ItemTable)
			}
			m.Terrain.Set(p, t)
		}
	}
	fixupWalls(m.Terrain)
	m.cacheCellInfo()
	return m
}

var twoRooms = []string{
	"#########",
	"#...#...#",
	"#...#...#",
	"#...#...#",
	"#########",
}

func TestVisibilityStopsAtWalls(t *testing.T) {
	m := mapFromRows(twoRooms...)
	m.RecomputeVisibility(gruid.Point{2, 2})
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if !m.Cells.At(gruid.Point{x, y}).Seen {
				t.Errorf("cell (%d,%d) in the same room not seen", x, y)
			}
		}
		for x := 5; x <= 7; x++ {
			if m.Cells.At(gruid.Point{x, y}).Seen {
				t.Errorf("cell (%d,%d) behind the wall seen", x, y)
			}
		}
	}
	if !m.Cells.At(gruid.Point{4, 2}).Seen {
		t.Errorf("wall in front of the player not seen")
	}
}

func TestVisibilityOneWayWindow(t *testing.T) {
	m := mapFromRows(
		"#########",
		"#...#...#",
		"#...>...#",
		"#...#...#",
		"#########",
	)
	m.RecomputeVisibility(gruid.Point{2, 2})
	if !m.Cells.At(gruid.Point{6, 2}).Seen {
		t.Errorf("cell through the window not seen from the west")
	}

	m = mapFromRows(
		"#########",
		"#...#...#",
		"#...>...#",
		"#...#...#",
		"#########",
	)
	m.RecomputeVisibility(gruid.Point{6, 2})
	for x := 1; x <= 3; x++ {
		if m.Cells.At(gruid.Point{x, 2}).Seen {
			t.Errorf("cell (%d,2) seen through the window from the east", x)
		}
	}
}

func TestLighting(t *testing.T) {
	rows := append([]string{}, twoRooms...)
	rows[2] = "#.T.#...#"
	m := mapFromRows(rows...)
	m.ComputeLighting()
	if !m.Cells.At(gruid.Point{1, 1}).Lit {
		t.Errorf("cell near the torch not lit")
	}
	if m.Cells.At(gruid.Point{6, 2}).Lit {
		t.Errorf("light went through the wall")
	}
	if !m.ToggleTorchAt(gruid.Point{2, 2}) {
		t.Fatalf("no torch toggled")
	}
	m.ComputeLighting()
	for p, c := range m.Cells.All() {
		if c.Lit {
			t.Errorf("cell %v lit with the torch out", p)
		}
	}
}

func TestLineOfSight(t *testing.T) {
	m := mapFromRows(twoRooms...)
	if !m.lineOfSight(gruid.Point{1, 1}, gruid.Point{3, 3}) {
		t.Errorf("no line of sight within a room")
	}
	if m.lineOfSight(gruid.Point{2, 2}, gruid.Point{6, 2}) {
		t.Errorf("line of sight through a wall")
	}
}

func TestPlayerCanSeeInDirection(t *testing.T) {
	m := mapFromRows(
		"#########",
		"#...#...#",
		"#...>...#",
		"#...#...#",
		"#########",
	)
	if !m.PlayerCanSeeInDirection(gruid.Point{3, 2}, gruid.Point{1, 0}) {
		t.Errorf("cannot see into the window eastwards")
	}
	if m.PlayerCanSeeInDirection(gruid.Point{5, 2}, gruid.Point{-1, 0}) {
		t.Errorf("can see into the window westwards")
	}
	if m.PlayerCanSeeInDirection(gruid.Point{3, 1}, gruid.Point{1, 0}) {
		t.Errorf("can see into a wall")
	}
}
