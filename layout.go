// This file renders a room graph into map terrain and furnishes it.

package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// plotWalls puts grass under every room, closing the gaps left by
// staggered walls, then draws the outer walls and the walls of solid rooms.
func (lg *levelGen) plotWalls() {
	sz := lg.inside.Size()
	mt := lg.m.Terrain
	for rx := range sz.X {
		for ry := range sz.Y {
			x0, y0, x1, y1 := lg.roomBounds(rx, ry)
			mt.Slice(gruid.NewRange(x0, y0, x1+1, y1+1)).Fill(GroundGrass)
		}
	}
	for rx := range sz.X {
		for ry := range sz.Y {
			inside := lg.inside.AtXY(rx, ry)
			x0, y0, x1, y1 := lg.roomBounds(rx, ry)
			if rx == 0 || inside {
				mt.Slice(gruid.NewRange(x0, y0, x0+1, y1+1)).Fill(Wall0000)
			}
			if rx == sz.X-1 || inside {
				mt.Slice(gruid.NewRange(x1, y0, x1+1, y1+1)).Fill(Wall0000)
			}
			if ry == 0 || inside {
				mt.Slice(gruid.NewRange(x0, y0, x1+1, y0+1)).Fill(Wall0000)
			}
			if ry == sz.Y-1 || inside {
				mt.Slice(gruid.NewRange(x0, y1, x1+1, y1+1)).Fill(Wall0000)
			}
		}
	}
}

// doorOffset chooses the door position shared by a segment and its mirror.
func (lg *levelGen) doorOffset(adj *Adjacency, mirrored bool) int {
	switch {
	case !mirrored:
		return adj.Length / 2
	case adj.Length > 2:
		return 1 + RandInRange(lg.rand, adj.Length-2)
	default:
		return RandInRange(lg.rand, adj.Length)
	}
}

// renderWalls carves doors and one-way windows into the walls between
// rooms. Mirrored segments get the same treatment.
func (lg *levelGen) renderWalls() {
	mt := lg.m.Terrain
	rtype := func(i int) RoomType { return lg.rooms[i].Type }

	for i := range lg.adjs {
		adj := &lg.adjs[i]
		if !rtype(adj.Left).IsCourtyard() || !rtype(adj.Right).IsCourtyard() {
			continue
		}
		for k := range adj.Length {
			mt.Set(adj.At(k), GroundGrass)
		}
	}

	for i := range lg.adjs {
		adj0 := &lg.adjs[i]
		j := adj0.Mirror
		if j < i {
			continue
		}
		type0, type1 := rtype(adj0.Left), rtype(adj0.Right)
		offset := lg.doorOffset(adj0, j != i)
		walls := []*Adjacency{adj0}
		if j != i {
			walls = append(walls, &lg.adjs[j])
		}

		if !adj0.Door && type0 != type1 {
			switch {
			case type0 == RoomExterior || type1 == RoomExterior:
				if adj0.Length%2 == 1 {
					k := adj0.Length / 2
					for _, a := range walls {
						dir := a.Dir
						if rtype(a.Right) == RoomExterior {
							dir = dir.Mul(-1)
						}
						mt.Set(a.At(k), windowTerrainForDir(dir))
					}
				}
			case type0.IsCourtyard() || type1.IsCourtyard():
				kend := (adj0.Length + 1) / 2
				for k := RandInRange(lg.rand, 2); k < kend; k += 2 {
					for _, a := range walls {
						dir := a.Dir
						if rtype(a.Right).IsCourtyard() {
							dir = dir.Mul(-1)
						}
						t := windowTerrainForDir(dir)
						mt.Set(a.At(k), t)
						mt.Set(a.At(a.Length-(k+1)), t)
					}
				}
			}
		}

		masterSuiteDoor := lg.rand.Float64() < 0.3333
		for _, a := range walls {
			if !a.Door {
				continue
			}
			a.DoorOffset = offset
			p := a.At(offset)
			ns := a.Dir.X == 0
			left, right := rtype(a.Left), rtype(a.Right)
			switch {
			case left == RoomExterior || right == RoomExterior:
				mt.Set(p, pick(ns, PortcullisNS, PortcullisEW))
				lg.m.PlaceItem(p, pick(ns, ItemPortcullisNS, ItemPortcullisEW))
			case left.IsCourtyard() && right.IsCourtyard():
				mt.Set(p, pick(ns, GardenDoorNS, GardenDoorEW))
			case left != RoomPrivateRoom || right != RoomPrivateRoom || masterSuiteDoor:
				mt.Set(p, pick(ns, DoorNS, DoorEW))
				lg.m.PlaceItem(p, pick(ns, ItemDoorNS, ItemDoorEW))
			default:
				// Open threshold between private rooms.
				mt.Set(p, pick(ns, DoorNS, DoorEW))
			}
		}
	}
}

// pick returns a if cond is true, and b otherwise.
func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// floorTerrain returns the floor terrain for a room type.
func floorTerrain(rt RoomType) rl.Cell {
	switch rt {
	case RoomPublicCourtyard, RoomPrivateCourtyard:
		return GroundGrass
	case RoomPublicRoom:
		return GroundWood
	case RoomPrivateRoom:
		return GroundMarble
	default:
		return GroundNormal
	}
}

// renderRooms lays floors and furnishes every room according to its type
// and size.
func (lg *levelGen) renderRooms() {
	mt := lg.m.Terrain
	for i := 1; i < len(lg.rooms); i++ {
		r := &lg.rooms[i]
		floor := floorTerrain(r.Type)
		for x := r.Min.X; x < r.Max.X; x++ {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				t := floor
				if floor == GroundWood && lg.level > 3 && lg.rand.Float64() < 0.02 {
					t = GroundWoodCreaky
				}
				mt.Set(gruid.Point{x, y}, t)
			}
		}
		if r.Type.IsCourtyard() {
			lg.furnishCourtyard(r)
		} else {
			lg.furnishRoom(r)
		}
	}
}

// corners returns the four inner corners of a room: south-west,
// south-east, north-west and north-east.
func (r *Room) corners() [4]gruid.Point {
	return [4]gruid.Point{
		{r.Min.X, r.Min.Y},
		{r.Max.X - 1, r.Min.Y},
		{r.Min.X, r.Max.Y - 1},
		{r.Max.X - 1, r.Max.Y - 1},
	}
}

func (lg *levelGen) furnishCourtyard(r *Room) {
	mt := lg.m.Terrain
	dx, dy := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	switch {
	case dx >= 5 && dy >= 5:
		mt.Slice(gruid.NewRange(r.Min.X+1, r.Min.Y+1, r.Max.X-1, r.Max.Y-1)).Fill(GroundWater)
	case dx >= 2 && dy >= 2:
		kinds := []ItemKind{ItemBush, ItemBush, ItemBush, ItemBush}
		if dx > 2 && dy > 2 {
			kinds = append(kinds, lg.randomlyLitTorch())
		}
		shuffle(lg.rand, kinds)
		for i, p := range r.corners() {
			if mt.At(p) != GroundGrass {
				continue
			}
			lg.tryPlaceItem(p, kinds[i])
		}
	}
}

func (lg *levelGen) furnishRoom(r *Room) {
	mt := lg.m.Terrain
	dx, dy := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	public := r.Type == RoomPublicRoom
	furniture := pick(public, ItemTable, ItemChair)
	switch {
	case dx >= 5 && dy >= 5:
		if !public {
			mt.Slice(gruid.NewRange(r.Min.X+2, r.Min.Y+2, r.Max.X-2, r.Max.Y-2)).Fill(GroundWater)
		}
		mt.Set(gruid.Point{r.Min.X + 1, r.Min.Y + 1}, Wall0000)
		mt.Set(gruid.Point{r.Max.X - 2, r.Min.Y + 1}, Wall0000)
		mt.Set(gruid.Point{r.Min.X + 1, r.Max.Y - 2}, Wall0000)
		mt.Set(gruid.Point{r.Max.X - 2, r.Max.Y - 2}, Wall0000)
	case dx == 5 && dy >= 3 && (public || lg.rand.Float64() < 0.33333):
		kinds := lg.tableRow(dy - 2)
		for y := 1; y < dy-1; y++ {
			lg.m.PlaceItem(gruid.Point{r.Min.X + 1, r.Min.Y + y}, ItemChair)
			lg.m.PlaceItem(gruid.Point{r.Min.X + 2, r.Min.Y + y}, kinds[y-1])
			lg.m.PlaceItem(gruid.Point{r.Min.X + 3, r.Min.Y + y}, ItemChair)
		}
	case dy == 5 && dx >= 3 && (public || lg.rand.Float64() < 0.33333):
		kinds := lg.tableRow(dx - 2)
		for x := 1; x < dx-1; x++ {
			lg.m.PlaceItem(gruid.Point{r.Min.X + x, r.Min.Y + 1}, ItemChair)
			lg.m.PlaceItem(gruid.Point{r.Min.X + x, r.Min.Y + 2}, kinds[x-1])
			lg.m.PlaceItem(gruid.Point{r.Min.X + x, r.Min.Y + 3}, ItemChair)
		}
	case dx > dy && dy%2 == 1 && lg.rand.Float64() < 0.66667:
		y := r.Min.Y + dy/2
		kinds := []ItemKind{lg.randomlyLitTorch(), furniture}
		shuffle(lg.rand, kinds)
		lg.tryPlaceItem(gruid.Point{r.Min.X + 1, y}, kinds[0])
		lg.tryPlaceItem(gruid.Point{r.Max.X - 2, y}, kinds[1])
	case dy > dx && dx%2 == 1 && lg.rand.Float64() < 0.66667:
		x := r.Min.X + dx/2
		kinds := []ItemKind{lg.randomlyLitTorch(), furniture}
		shuffle(lg.rand, kinds)
		lg.tryPlaceItem(gruid.Point{x, r.Min.Y + 1}, kinds[0])
		lg.tryPlaceItem(gruid.Point{x, r.Max.Y - 2}, kinds[1])
	case dx > 3 && dy > 3:
		kinds := []ItemKind{lg.randomlyLitTorch(), furniture, furniture, furniture}
		shuffle(lg.rand, kinds)
		for i, p := range r.corners() {
			lg.tryPlaceItem(p, kinds[i])
		}
	}
}

// tableRow returns n tables and a torch in random order, one more item than
// there are table places: the last one is left out.
func (lg *levelGen) tableRow(n int) []ItemKind {
	kinds := make([]ItemKind, 0, n+1)
	for range n {
		kinds = append(kinds, ItemTable)
	}
	kinds = append(kinds, lg.randomlyLitTorch())
	shuffle(lg.rand, kinds)
	return kinds
}

// randomlyLitTorch returns an unlit torch on the first level, and a torch
// lit half of the time otherwise.
func (lg *levelGen) randomlyLitTorch() ItemKind {
	if lg.level == 0 {
		return ItemTorchUnlit
	}
	return pick(lg.rand.Float64() < 0.5, ItemTorchUnlit, ItemTorchLit)
}

// tryPlaceItem places an item unless it would be next to a doorway, or, for
// torches, next to a window.
func (lg *levelGen) tryPlaceItem(p gruid.Point, kind ItemKind) {
	if lg.doorAdjacent(p) {
		return
	}
	if kind.IsTorch() && lg.windowAdjacent(p) {
		return
	}
	lg.m.PlaceItem(p, kind)
}

func (lg *levelGen) doorAdjacent(p gruid.Point) bool {
	for q := range Neighbors(p, lg.m.Terrain.Range()) {
		if isDoorwayTerrain(lg.m.Terrain.At(q)) {
			return true
		}
	}
	return false
}

func (lg *levelGen) windowAdjacent(p gruid.Point) bool {
	for q := range Neighbors(p, lg.m.Terrain.Range()) {
		if isWindowTerrain(lg.m.Terrain.At(q)) {
			return true
		}
	}
	return false
}

// placeLoot puts coins on room floors, first in dead-end rooms, then in
// private rooms, then anywhere. It returns the number of coins placed.
func (lg *levelGen) placeLoot(total int) int {
	placed := 0
	for i := range lg.rooms {
		if placed >= total {
			break
		}
		r := &lg.rooms[i]
		if r.Type != RoomPublicRoom && r.Type != RoomPrivateRoom {
			continue
		}
		exits := 0
		for _, e := range r.Edges {
			if lg.adjs[e].Door {
				exits++
			}
		}
		if exits < 2 && lg.tryPlaceLoot(r.Min, r.Max) {
			placed++
		}
	}
	for i := range lg.rooms {
		if placed >= total {
			break
		}
		r := &lg.rooms[i]
		if r.Type != RoomPrivateRoom {
			continue
		}
		if lg.rand.Float64() < 0.2 {
			continue
		}
		if lg.tryPlaceLoot(r.Min, r.Max) {
			placed++
		}
	}
	for i := 1000; i > 0 && placed < total; i-- {
		if lg.tryPlaceLoot(gruid.Point{}, lg.m.Size()) {
			placed++
		}
	}
	return placed
}

// tryPlaceLoot attempts to put a coin on a free wood or marble floor cell
// within [pmin, pmax).
func (lg *levelGen) tryPlaceLoot(pmin, pmax gruid.Point) bool {
	d := pmax.Sub(pmin)
	for range 1000 {
		p := pmin.Add(gruid.Point{RandInRange(lg.rand, d.X), RandInRange(lg.rand, d.Y)})
		t := lg.m.Terrain.At(p)
		if t != GroundWood && t != GroundMarble {
			continue
		}
		if lg.m.isItemAt(p) {
			continue
		}
		lg.m.PlaceItem(p, ItemCoin)
		return true
	}
	return false
}

// placeExteriorBushes turns the back and side exterior strips into seen
// grass, with bushes on alternating cells along the map edge.
func (lg *levelGen) placeExteriorBushes() {
	m := lg.m
	sz := m.Size()
	grass := func(p gruid.Point) {
		if m.Terrain.At(p) != GroundNormal {
			return
		}
		m.Terrain.Set(p, GroundGrass)
		m.Cells.Ptr(p).Seen = true
	}
	for x := range sz.X {
		for y := sz.Y - outerBorder + 1; y < sz.Y; y++ {
			grass(gruid.Point{x, y})
		}
		if x%2 == 0 && lg.rand.Float64() < 0.8 {
			m.PlaceItem(gruid.Point{x, sz.Y - 1}, ItemBush)
		}
	}
	for y := outerBorder; y < sz.Y-outerBorder+1; y++ {
		for x := 0; x < outerBorder-1; x++ {
			grass(gruid.Point{x, y})
		}
		for x := sz.X - outerBorder + 1; x < sz.X; x++ {
			grass(gruid.Point{x, y})
		}
		if (sz.Y-y)%2 == 1 {
			if lg.rand.Float64() < 0.8 {
				m.PlaceItem(gruid.Point{0, y}, ItemBush)
			}
			if lg.rand.Float64() < 0.8 {
				m.PlaceItem(gruid.Point{sz.X - 1, y}, ItemBush)
			}
		}
	}
}

// placeFrontPillars puts a row of pillars along the front of the house.
func (lg *levelGen) placeFrontPillars() {
	sz := lg.m.Size()
	for x := outerBorder; x < sz.X/2; x += 5 {
		lg.m.Terrain.Set(gruid.Point{x, 1}, Wall0000)
		lg.m.Terrain.Set(gruid.Point{sz.X - 1 - x, 1}, Wall0000)
	}
}

// markExteriorAsSeen marks as seen the plain ground and every cell next to
// it.
func (lg *levelGen) markExteriorAsSeen() {
	m := lg.m
	rg := m.Terrain.Range()
	for p := range m.Cells.All() {
		for q := range Around(p, rg) {
			if m.Terrain.At(q) == GroundNormal {
				m.Cells.Ptr(p).Seen = true
				break
			}
		}
	}
}

// fixupWalls replaces generic walls by the wall tile matching the
// surrounding walls.
func fixupWalls(mt rl.Grid) {
	rg := mt.Range()
	for p, t := range mt.All() {
		if t != Wall0000 {
			continue
		}
		mask := 0
		if q := p.Add(gruid.Point{0, 1}); q.In(rg) && joinsWalls(mt.At(q)) {
			mask |= wallBitN
		}
		if q := p.Add(gruid.Point{0, -1}); q.In(rg) && joinsWalls(mt.At(q)) {
			mask |= wallBitS
		}
		if q := p.Add(gruid.Point{1, 0}); q.In(rg) && joinsWalls(mt.At(q)) {
			mask |= wallBitE
		}
		if q := p.Add(gruid.Point{-1, 0}); q.In(rg) && joinsWalls(mt.At(q)) {
			mask |= wallBitW
		}
		mt.Set(p, Wall0000+rl.Cell(mask))
	}
}
