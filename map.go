// This file contains map-related code.

package main

import (
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
)

const (
	Impassable = 1 << 30 // move cost of walls, windows and torches
	waterCost  = 4096    // move cost of deep water for guards
)

// Cell holds information derived from the terrain and items at a map
// position, along with the per-turn lighting and visibility state.
type Cell struct {
	MoveCost          int  // guard move cost on entry: 0, positive or Impassable
	BlocksPlayerMove  bool // walls
	BlocksPlayerSight bool // walls and closed doors
	BlocksSight       bool // also portcullises and bushes (for guards and light)
	BlocksSound       bool
	HidesPlayer       bool // tables and bushes
	Lit               bool
	Seen              bool
}

// Map represents the rectangular map of a level. North is towards
// increasing Y.
type Map struct {
	Terrain     rl.Grid          // terrain
	Cells       Grid[Cell]       // cached cell information
	Items       []Item           // items on the map
	Guards      []*Guard         // guards, in acting order
	PlayerStart gruid.Point      // starting position, south of the front door
	TotalLoot   int              // coins on the floor plus guard purses
	Level       int              // level index
	rand        *rand.Rand       // shared level random source
	pr          *paths.PathRange // path range for distance fields
	prSound     *paths.PathRange // path range for earshot computations
}

// NewMap returns a new map of the given size, filled with ground.
func NewMap(size gruid.Point, rd *rand.Rand) *Map {
	rg := gruid.NewRange(0, 0, size.X, size.Y)
	m := &Map{
		Terrain: rl.NewGrid(size.X, size.Y),
		Cells:   NewGrid(size.X, size.Y, Cell{}),
		rand:    rd,
		pr:      paths.NewPathRange(rg),
		prSound: paths.NewPathRange(rg),
	}
	m.Terrain.Fill(GroundNormal)
	return m
}

// Size returns the map dimensions.
func (m *Map) Size() gruid.Point {
	return m.Cells.Size()
}

// InMap reports whether a position is within map bounds.
func (m *Map) InMap(p gruid.Point) bool {
	return m.Cells.InBounds(p)
}

// TerrainAt returns the terrain at p. Positions outside the map are plain
// ground.
func (m *Map) TerrainAt(p gruid.Point) rl.Cell {
	if !m.InMap(p) {
		return GroundNormal
	}
	return m.Terrain.At(p)
}

// CellAt returns the cached cell information at p.
func (m *Map) CellAt(p gruid.Point) *Cell {
	return m.Cells.Ptr(p)
}

// PlaceItem adds an item at p without any checks.
func (m *Map) PlaceItem(p gruid.Point, kind ItemKind) {
	m.Items = append(m.Items, Item{P: p, Kind: kind})
	if m.InMap(p) {
		cacheItem(m.Cells.Ptr(p), kind)
	}
}

// ItemAt returns the index of the first item at p, or -1 if there is none.
func (m *Map) ItemAt(p gruid.Point) int {
	for i, it := range m.Items {
		if it.P == p {
			return i
		}
	}
	return -1
}

// ItemsAt returns the items at p.
func (m *Map) ItemsAt(p gruid.Point) []Item {
	var items []Item
	for _, it := range m.Items {
		if it.P == p {
			items = append(items, it)
		}
	}
	return items
}

// isItemAt reports whether there is an item or a guard at p.
func (m *Map) isItemAt(p gruid.Point) bool {
	if m.ItemAt(p) >= 0 {
		return true
	}
	for _, g := range m.Guards {
		if g.P == p {
			return true
		}
	}
	return false
}

// cacheTerrain sets the terrain-derived information of a cell.
func cacheTerrain(c *Cell, t rl.Cell) {
	wall := isWallTerrain(t)
	switch {
	case wall || isWindowTerrain(t):
		c.MoveCost = Impassable
	case t == GroundWater:
		c.MoveCost = waterCost
	default:
		c.MoveCost = 0
	}
	c.BlocksPlayerMove = wall
	c.BlocksPlayerSight = wall
	c.BlocksSight = wall
	c.BlocksSound = wall
	c.HidesPlayer = false
}

// cacheItem adds the effect of an item to the cached information of its
// cell.
func cacheItem(c *Cell, kind ItemKind) {
	c.MoveCost = max(c.MoveCost, kind.guardMoveCost())
	switch {
	case kind.isDoor():
		c.BlocksPlayerSight = true
		c.BlocksSight = true
	case kind.isPortcullis(), kind == ItemBush:
		c.BlocksSight = true
	}
	if kind == ItemTable || kind == ItemBush {
		c.HidesPlayer = true
	}
}

// cacheCell recomputes the cached information at p after a change of its
// terrain or items. Lit and Seen are kept.
func (m *Map) cacheCell(p gruid.Point) {
	c := m.Cells.Ptr(p)
	cacheTerrain(c, m.Terrain.At(p))
	for _, it := range m.Items {
		if it.P == p {
			cacheItem(c, it.Kind)
		}
	}
}

// cacheCellInfo recomputes cached information for the whole map.
func (m *Map) cacheCellInfo() {
	for p, t := range m.Terrain.All() {
		cacheTerrain(m.Cells.Ptr(p), t)
	}
	for _, it := range m.Items {
		cacheItem(m.Cells.Ptr(it.P), it.Kind)
	}
}

// CollectLootAt removes the coins at p and returns how many there were.
func (m *Map) CollectLootAt(p gruid.Point) int {
	n := 0
	items := m.Items[:0]
	for _, it := range m.Items {
		if it.P == p && it.Kind == ItemCoin {
			n++
			continue
		}
		items = append(items, it)
	}
	m.Items = items
	if n > 0 {
		m.cacheCell(p)
	}
	return n
}

// AllLootCollected reports whether there is no more loot on the floor.
// Guard purses do not count.
func (m *Map) AllLootCollected() bool {
	for _, it := range m.Items {
		if it.Kind == ItemCoin {
			return false
		}
	}
	return true
}

// AllSeen reports whether every cell of the map has been seen.
func (m *Map) AllSeen() bool {
	for _, c := range m.Cells.All() {
		if !c.Seen {
			return false
		}
	}
	return true
}

// PercentSeen returns the rounded down percentage of seen cells.
func (m *Map) PercentSeen() int {
	n := 0
	total := 0
	for _, c := range m.Cells.All() {
		total++
		if c.Seen {
			n++
		}
	}
	return n * 100 / max(total, 1)
}

// MarkAllSeen marks every cell as seen.
func (m *Map) MarkAllSeen() {
	for p := range m.Cells.All() {
		m.Cells.Ptr(p).Seen = true
	}
}

// GuardAt returns the guard at p that has already moved this turn, if any.
func (m *Map) GuardAt(p gruid.Point) *Guard {
	for _, g := range m.Guards {
		if g.HasMoved && g.P == p {
			return g
		}
	}
	return nil
}

// IsGuardAt reports whether a guard that already moved this turn is at p.
func (m *Map) IsGuardAt(p gruid.Point) bool {
	return m.GuardAt(p) != nil
}

// AnyGuardAt reports whether any guard, moved or not, stands at p.
func (m *Map) AnyGuardAt(p gruid.Point) bool {
	for _, g := range m.Guards {
		if g.P == p {
			return true
		}
	}
	return false
}

// ToggleTorchAt switches the torch at p between lit and unlit, and reports
// whether there was one.
func (m *Map) ToggleTorchAt(p gruid.Point) bool {
	for i, it := range m.Items {
		if it.P != p {
			continue
		}
		switch it.Kind {
		case ItemTorchLit:
			m.Items[i].Kind = ItemTorchUnlit
		case ItemTorchUnlit:
			m.Items[i].Kind = ItemTorchLit
		default:
			continue
		}
		m.cacheCell(p)
		return true
	}
	return false
}

// AnyGuardChasing reports whether some guard is chasing the player.
func (m *Map) AnyGuardChasing() bool {
	for _, g := range m.Guards {
		if g.Mode == ModeChaseVisibleTarget {
			return true
		}
	}
	return false
}
