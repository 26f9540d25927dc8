package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestPlaceItemCachesCell(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#...#",
		"#...#",
		"#####",
	)
	table, door, gate := gruid.Point{1, 1}, gruid.Point{2, 1}, gruid.Point{3, 1}
	m.PlaceItem(table, ItemTable)
	m.PlaceItem(door, ItemDoorNS)
	m.PlaceItem(gate, ItemPortcullisNS)
	if c := m.CellAt(table); !c.HidesPlayer || c.MoveCost != 10 {
		t.Errorf("table cell: %+v", *c)
	}
	if c := m.CellAt(door); !c.BlocksPlayerSight || !c.BlocksSight {
		t.Errorf("door cell: %+v", *c)
	}
	if c := m.CellAt(gate); c.BlocksPlayerSight || !c.BlocksSight {
		t.Errorf("portcullis cell: %+v", *c)
	}
}

func TestCacheCellKeepsLitAndSeen(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#.$.#",
		"#####",
	)
	p := gruid.Point{2, 1}
	c := m.CellAt(p)
	c.Lit, c.Seen = true, true
	m.Terrain.Set(p, Wall0000)
	m.cacheCell(p)
	if !c.BlocksPlayerMove || c.MoveCost != Impassable || !c.Lit || !c.Seen {
		t.Errorf("cell after wall: %+v", *c)
	}
	m.Terrain.Set(p, GroundWood)
	if n := m.CollectLootAt(p); n != 1 {
		t.Fatalf("collected %d coins", n)
	}
	if c.BlocksPlayerMove || c.MoveCost != 0 || !c.Lit || !c.Seen {
		t.Errorf("cell after collecting loot: %+v", *c)
	}
}

func TestCacheCellDropsRemovedItem(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#...#",
		"#####",
	)
	p := gruid.Point{2, 1}
	m.PlaceItem(p, ItemBush)
	if c := m.CellAt(p); !c.HidesPlayer || !c.BlocksSight {
		t.Fatalf("bush cell: %+v", *c)
	}
	m.Items = m.Items[:0]
	m.cacheCell(p)
	if c := m.CellAt(p); c.HidesPlayer || c.BlocksSight || c.MoveCost != 0 {
		t.Errorf("cell after removing bush: %+v", *c)
	}
}

func TestToggleTorchAt(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#.i.#",
		"#####",
	)
	p := gruid.Point{2, 1}
	if !m.ToggleTorchAt(p) || m.Items[0].Kind != ItemTorchLit {
		t.Fatalf("torch not lit: %+v", m.Items)
	}
	if c := m.CellAt(p); c.MoveCost != Impassable {
		t.Errorf("lit torch cell: %+v", *c)
	}
	if !m.ToggleTorchAt(p) || m.Items[0].Kind != ItemTorchUnlit {
		t.Errorf("torch not put out: %+v", m.Items)
	}
	if m.ToggleTorchAt(gruid.Point{1, 1}) {
		t.Errorf("toggled a torch on an empty cell")
	}
	m.relightTorchAt(p)
	if m.Items[0].Kind != ItemTorchLit || m.CellAt(p).MoveCost != Impassable {
		t.Errorf("torch not relit: %+v", m.Items)
	}
}
