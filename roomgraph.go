// This file builds the room graph of a siheyuan (courtyard house) level: the
// room/courtyard layout, jittered wall lines, wall segments between rooms,
// doors and room privacy.

package main

import (
	"fmt"
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
)

const (
	roomSizeX   = 5 // distance between wall lines before jitter
	roomSizeY   = 5
	outerBorder = 3 // exterior margin around the house
)

// RoomType represents the privacy and openness of a room.
type RoomType int

const (
	RoomExterior RoomType = iota
	RoomPublicCourtyard
	RoomPublicRoom
	RoomPrivateCourtyard
	RoomPrivateRoom
)

// IsCourtyard reports whether the room is an open-air courtyard.
func (rt RoomType) IsCourtyard() bool {
	return rt == RoomPublicCourtyard || rt == RoomPrivateCourtyard
}

func (rt RoomType) String() string {
	switch rt {
	case RoomExterior:
		return "exterior"
	case RoomPublicCourtyard:
		return "public courtyard"
	case RoomPublicRoom:
		return "public room"
	case RoomPrivateCourtyard:
		return "private courtyard"
	default:
		return "private room"
	}
}

// Room represents a room or courtyard. Room 0 stands for the whole exterior
// and has no meaningful bounds.
type Room struct {
	Type  RoomType
	Group int         // connectivity group, valid after connectRooms
	Depth int         // door hops from the front row of rooms
	Min   gruid.Point // first floor cell
	Max   gruid.Point // first wall cell past the floor
	Edges []int       // indices of adjacencies bounding the room
}

// Adjacency represents a straight wall segment separating two rooms. The
// left room is on the left when walking from Origin along Dir.
type Adjacency struct {
	Origin     gruid.Point
	Dir        gruid.Point
	Length     int
	Left       int // room index
	Right      int // room index
	Mirror     int // index of the mirrored segment, itself if none
	Door       bool
	DoorOffset int // door position along the segment
}

// Other returns the room on the other side of the segment from room i.
func (adj *Adjacency) Other(i int) int {
	if adj.Left == i {
		return adj.Right
	}
	return adj.Left
}

// At returns the position at offset k along the segment.
func (adj *Adjacency) At(k int) gruid.Point {
	return adj.Origin.Add(adj.Dir.Mul(k))
}

// unionFind tracks connectivity groups of rooms.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	root := i
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[i] != root {
		i, uf.parent[i] = uf.parent[i], root
	}
	return root
}

// join merges the groups of i and j and reports whether they were distinct.
func (uf *unionFind) join(i, j int) bool {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return false
	}
	uf.parent[ri] = rj
	return true
}

// roomGraph gathers the room layout information used while generating a
// level.
type roomGraph struct {
	rand      *rand.Rand
	mirrorX   bool
	mirrorY   bool
	inside    Grid[bool] // true for solid rooms, false for courtyards
	offsetX   Grid[int]  // x of the wall line west of each room, (rx+1) by ry
	offsetY   Grid[int]  // y of the wall line south of each room, rx by (ry+1)
	roomIndex Grid[int]
	rooms     []Room
	adjs      []Adjacency
	edgeSets  [][]int // mirrored groups of adjacencies, processed as units
	groups    *unionFind
	frontDoor int     // adjacency index of the front door
	start     gruid.Point
}

// newRoomGraph builds the room layout, wall lines, adjacencies, doors and
// room types for a house of roomsX by roomsY rooms.
func newRoomGraph(roomsX, roomsY int, rd *rand.Rand) *roomGraph {
	rg := &roomGraph{rand: rd, mirrorX: true}
	rg.inside = siheyuanRoomGrid(roomsX, roomsY, rd)
	rg.offsetWalls()
	rg.makeRooms()
	rg.computeAdjacencies()
	for i := range rg.adjs {
		adj := &rg.adjs[i]
		rg.rooms[adj.Left].Edges = append(rg.rooms[adj.Left].Edges, i)
		rg.rooms[adj.Right].Edges = append(rg.rooms[adj.Right].Edges, i)
	}
	rg.connectRooms()
	rg.assignRoomTypes()
	return rg
}

// siheyuanRoomGrid scatters courtyards in the west half of the room grid
// and mirrors them onto the east half.
func siheyuanRoomGrid(sizeX, sizeY int, rd *rand.Rand) Grid[bool] {
	inside := NewGrid(sizeX, sizeY, true)
	halfX := (sizeX + 1) / 2
	for range sizeY * halfX / 4 {
		x := RandInRange(rd, halfX)
		y := RandInRange(rd, sizeY)
		inside.SetXY(x, y, false)
	}
	for y := range sizeY {
		for x := halfX; x < sizeX; x++ {
			inside.SetXY(x, y, inside.AtXY(sizeX-1-x, y))
		}
	}
	return inside
}

// jitter returns a random wall line offset in {-1, 0, 1}.
func (rg *roomGraph) jitter() int {
	return RandInRange(rg.rand, 3) - 1
}

// offsetWalls computes jittered absolute coordinates for the wall lines
// between rooms, symmetric along the mirror axes.
func (rg *roomGraph) offsetWalls() {
	sz := rg.inside.Size()
	roomsX, roomsY := sz.X, sz.Y
	ox := NewGrid(roomsX+1, roomsY, 0)
	oy := NewGrid(roomsX, roomsY+1, 0)

	// Outer walls are straight.
	i := rg.jitter()
	for y := range roomsY {
		ox.SetXY(0, y, i)
	}
	i = rg.jitter()
	for y := range roomsY {
		ox.SetXY(roomsX, y, i)
	}
	i = rg.jitter()
	for x := range roomsX {
		oy.SetXY(x, 0, i)
	}
	i = rg.jitter()
	for x := range roomsX {
		oy.SetXY(x, roomsY, i)
	}

	for x := 1; x < roomsX; x++ {
		for y := range roomsY {
			ox.SetXY(x, y, rg.jitter())
		}
	}
	for x := range roomsX {
		for y := 1; y < roomsY; y++ {
			oy.SetXY(x, y, rg.jitter())
		}
	}

	// Correlate offsets so that walls line up more often.
	for x := 1; x < roomsX; x++ {
		for y := 1; y < roomsY; y++ {
			if RandInRange(rg.rand, 2) == 0 {
				ox.SetXY(x, y, ox.AtXY(x, y-1))
			} else {
				oy.SetXY(x, y, oy.AtXY(x-1, y))
			}
		}
	}

	if rg.mirrorX {
		if roomsX%2 == 0 {
			for y := range roomsY {
				ox.SetXY(roomsX/2, y, 0)
			}
		}
		for x := range (roomsX + 1) / 2 {
			for y := range roomsY {
				ox.SetXY(roomsX-x, y, 1-ox.AtXY(x, y))
			}
		}
		for x := range roomsX / 2 {
			for y := range roomsY + 1 {
				oy.SetXY(roomsX-1-x, y, oy.AtXY(x, y))
			}
		}
	}
	if rg.mirrorY {
		if roomsY%2 == 0 {
			for x := range roomsX {
				oy.SetXY(x, roomsY/2, 0)
			}
		}
		for y := range (roomsY + 1) / 2 {
			for x := range roomsX {
				oy.SetXY(x, roomsY-y, 1-oy.AtXY(x, y))
			}
		}
		for y := range roomsY / 2 {
			for x := range roomsX + 1 {
				ox.SetXY(x, roomsY-1-y, ox.AtXY(x, y))
			}
		}
	}

	roomOffsetX, roomOffsetY := -1<<31, -1<<31
	for y := range roomsY {
		roomOffsetX = max(roomOffsetX, -ox.AtXY(0, y))
	}
	for x := range roomsX {
		roomOffsetY = max(roomOffsetY, -oy.AtXY(x, 0))
	}
	roomOffsetX += outerBorder
	roomOffsetY += outerBorder

	for p, v := range ox.All() {
		ox.Set(p, v+roomOffsetX+p.X*roomSizeX)
	}
	for p, v := range oy.All() {
		oy.Set(p, v+roomOffsetY+p.Y*roomSizeY)
	}
	rg.offsetX, rg.offsetY = ox, oy
}

// mapSize returns the terrain size needed for the house plus its outer
// border.
func (rg *roomGraph) mapSize() gruid.Point {
	sz := rg.inside.Size()
	var w, h int
	for y := range sz.Y {
		w = max(w, rg.offsetX.AtXY(sz.X, y))
	}
	for x := range sz.X {
		h = max(h, rg.offsetY.AtXY(x, sz.Y))
	}
	return gruid.Point{w + outerBorder + 1, h + outerBorder + 1}
}

// roomBounds returns the wall line coordinates around room (rx, ry): x0 and
// x1 are the west and east walls, y0 and y1 the south and north walls.
func (rg *roomGraph) roomBounds(rx, ry int) (x0, y0, x1, y1 int) {
	return rg.offsetX.AtXY(rx, ry), rg.offsetY.AtXY(rx, ry),
		rg.offsetX.AtXY(rx+1, ry), rg.offsetY.AtXY(rx, ry+1)
}

func (rg *roomGraph) makeRooms() {
	sz := rg.inside.Size()
	rg.roomIndex = NewGrid(sz.X, sz.Y, 0)
	rg.rooms = []Room{{Type: RoomExterior}}
	for rx := range sz.X {
		for ry := range sz.Y {
			i := len(rg.rooms)
			rg.roomIndex.SetXY(rx, ry, i)
			rt := RoomPublicCourtyard
			if rg.inside.AtXY(rx, ry) {
				rt = RoomPublicRoom
			}
			x0, y0, x1, y1 := rg.roomBounds(rx, ry)
			rg.rooms = append(rg.rooms, Room{
				Type:  rt,
				Group: i,
				Min:   gruid.Point{x0 + 1, y0 + 1},
				Max:   gruid.Point{x1, y1},
			})
		}
	}
	rg.groups = newUnionFind(len(rg.rooms))
}

// addAdjacency appends a new unmatched wall segment and returns its index.
func (rg *roomGraph) addAdjacency(origin, dir gruid.Point, length, left, right int) int {
	i := len(rg.adjs)
	rg.adjs = append(rg.adjs, Adjacency{
		Origin: origin,
		Dir:    dir,
		Length: length,
		Left:   left,
		Right:  right,
		Mirror: i,
	})
	return i
}

// flip reverses the direction of a wall segment, keeping the same cells.
func (rg *roomGraph) flip(i int) {
	adj := &rg.adjs[i]
	adj.Origin = adj.At(adj.Length - 1)
	adj.Dir = adj.Dir.Mul(-1)
	adj.Left, adj.Right = adj.Right, adj.Left
}

func (rg *roomGraph) linkMirrors(i, j int) {
	rg.adjs[i].Mirror = j
	rg.adjs[j].Mirror = i
}

// pairEnds links mirrored segments within each line, pairing them from both
// ends, and flips the second of each pair so that both describe the same
// physical layout.
func (rg *roomGraph) pairEnds(lines [][]int) {
	for _, line := range lines {
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			rg.linkMirrors(line[i], line[j])
			rg.flip(line[j])
		}
	}
}

// pairLines links mirrored lines index by index, from the outermost lines
// inwards.
func (rg *roomGraph) pairLines(lines [][]int) {
	for l0, l1 := 0, len(lines)-1; l0 < l1; l0, l1 = l0+1, l1-1 {
		if len(lines[l0]) != len(lines[l1]) {
			panic(fmt.Sprintf("mapgen: mirrored wall lines %d and %d have %d and %d segments",
				l0, l1, len(lines[l0]), len(lines[l1])))
		}
		for i := range lines[l0] {
			rg.linkMirrors(lines[l0][i], lines[l1][i])
		}
	}
}

// computeAdjacencies records every wall segment between two rooms, or
// between a room and the exterior. Staggered rooms produce up to three
// segments along a shared wall line.
func (rg *roomGraph) computeAdjacencies() {
	sz := rg.roomIndex.Size()
	roomsX, roomsY := sz.X, sz.Y
	room := rg.roomIndex.AtXY
	ox, oy := rg.offsetX.AtXY, rg.offsetY.AtXY
	east, north := gruid.Point{1, 0}, gruid.Point{0, 1}

	// Horizontal wall lines, from south to north.
	rows := [][]int{}
	row := []int{}
	for rx := range roomsX {
		x0, x1, y := ox(rx, 0), ox(rx+1, 0), oy(rx, 0)
		row = append(row, rg.addAdjacency(gruid.Point{x0 + 1, y}, east, x1-(x0+1), room(rx, 0), 0))
	}
	rows = append(rows, row)
	for ry := 1; ry < roomsY; ry++ {
		row := []int{}
		for rx := range roomsX {
			x0Upper, x0Lower := ox(rx, ry), ox(rx, ry-1)
			x1Upper, x1Lower := ox(rx+1, ry), ox(rx+1, ry-1)
			x0, x1 := max(x0Lower, x0Upper), min(x1Lower, x1Upper)
			y := oy(rx, ry)
			if rx > 0 && x0Lower-x0Upper > 1 {
				row = append(row, rg.addAdjacency(gruid.Point{x0Upper + 1, y}, east,
					x0Lower-(x0Upper+1), room(rx, ry), room(rx-1, ry-1)))
			}
			if x1-x0 > 1 {
				row = append(row, rg.addAdjacency(gruid.Point{x0 + 1, y}, east,
					x1-(x0+1), room(rx, ry), room(rx, ry-1)))
			}
			if rx+1 < roomsX && x1Upper-x1Lower > 1 {
				row = append(row, rg.addAdjacency(gruid.Point{x1Lower + 1, y}, east,
					x1Upper-(x1Lower+1), room(rx, ry), room(rx+1, ry-1)))
			}
		}
		rows = append(rows, row)
	}
	row = []int{}
	for rx := range roomsX {
		x0, x1, y := ox(rx, roomsY-1), ox(rx+1, roomsY-1), oy(rx, roomsY)
		row = append(row, rg.addAdjacency(gruid.Point{x0 + 1, y}, east, x1-(x0+1), 0, room(rx, roomsY-1)))
	}
	rows = append(rows, row)
	if rg.mirrorX {
		rg.pairEnds(rows)
	}
	if rg.mirrorY {
		rg.pairLines(rows)
	}

	// Vertical wall lines, from west to east.
	cols := [][]int{}
	col := []int{}
	for ry := range roomsY {
		y0, y1, x := oy(0, ry), oy(0, ry+1), ox(0, ry)
		col = append(col, rg.addAdjacency(gruid.Point{x, y0 + 1}, north, y1-(y0+1), 0, room(0, ry)))
	}
	cols = append(cols, col)
	for rx := 1; rx < roomsX; rx++ {
		col := []int{}
		for ry := range roomsY {
			y0Left, y0Right := oy(rx-1, ry), oy(rx, ry)
			y1Left, y1Right := oy(rx-1, ry+1), oy(rx, ry+1)
			y0, y1 := max(y0Left, y0Right), min(y1Left, y1Right)
			x := ox(rx, ry)
			if ry > 0 && y0Left-y0Right > 1 {
				col = append(col, rg.addAdjacency(gruid.Point{x, y0Right + 1}, north,
					y0Left-(y0Right+1), room(rx-1, ry-1), room(rx, ry)))
			}
			if y1-y0 > 1 {
				col = append(col, rg.addAdjacency(gruid.Point{x, y0 + 1}, north,
					y1-(y0+1), room(rx-1, ry), room(rx, ry)))
			}
			if ry+1 < roomsY && y1Right-y1Left > 1 {
				col = append(col, rg.addAdjacency(gruid.Point{x, y1Left + 1}, north,
					y1Right-(y1Left+1), room(rx-1, ry+1), room(rx, ry)))
			}
		}
		cols = append(cols, col)
	}
	col = []int{}
	for ry := range roomsY {
		y0, y1, x := oy(roomsX-1, ry), oy(roomsX-1, ry+1), ox(roomsX, ry)
		col = append(col, rg.addAdjacency(gruid.Point{x, y0 + 1}, north, y1-(y0+1), room(roomsX-1, ry), 0))
	}
	cols = append(cols, col)
	if rg.mirrorY {
		rg.pairEnds(cols)
	}
	if rg.mirrorX {
		rg.pairLines(cols)
	}
}

// computeEdgeSets groups adjacencies with their mirror and shuffles the
// groups.
func (rg *roomGraph) computeEdgeSets() {
	rg.edgeSets = nil
	for i := range rg.adjs {
		j := rg.adjs[i].Mirror
		switch {
		case j > i:
			rg.edgeSets = append(rg.edgeSets, []int{i, j})
		case j == i:
			rg.edgeSets = append(rg.edgeSets, []int{i})
		}
	}
	shuffle(rg.rand, rg.edgeSets)
}

// addDoor puts a door on adjacency i and merges the groups of its rooms.
func (rg *roomGraph) addDoor(i int) {
	adj := &rg.adjs[i]
	adj.Door = true
	rg.groups.join(adj.Left, adj.Right)
}

// connectEdgeSets adds doors to the edge sets whose first segment satisfies
// eligible: always when it joins two distinct groups, and sometimes
// otherwise to make loops.
func (rg *roomGraph) connectEdgeSets(eligible func(t0, t1 RoomType) bool) {
	for _, es := range rg.edgeSets {
		adj := &rg.adjs[es[0]]
		if !eligible(rg.rooms[adj.Left].Type, rg.rooms[adj.Right].Type) {
			continue
		}
		if rg.groups.find(adj.Left) == rg.groups.find(adj.Right) && rg.rand.Float64() >= 0.4 {
			continue
		}
		for _, i := range es {
			rg.addDoor(i)
		}
	}
}

// connectRooms places doors until every room is reachable, then places the
// front door to the exterior.
func (rg *roomGraph) connectRooms() {
	rg.computeEdgeSets()

	for i := range rg.adjs {
		adj := &rg.adjs[i]
		if rg.rooms[adj.Left].Type == RoomPublicCourtyard && rg.rooms[adj.Right].Type == RoomPublicCourtyard {
			rg.addDoor(i)
		}
	}
	rg.connectEdgeSets(func(t0, t1 RoomType) bool {
		return t0 == RoomPublicRoom && t1 == RoomPublicRoom
	})
	rg.connectEdgeSets(func(t0, t1 RoomType) bool {
		return t0 != t1 && t0 != RoomExterior && t1 != RoomExterior
	})

	i := rg.frontDoorIndex()
	adj := &rg.adjs[i]
	rg.start = gruid.Point{adj.Origin.X + adj.Dir.X*(adj.Length/2), outerBorder - 1}
	adj.Door = true
	rg.frontDoor = i
	// The front door need not be symmetric.
	if j := adj.Mirror; j != i {
		rg.adjs[j].Mirror = j
		adj.Mirror = i
	}
	for i := range rg.rooms {
		rg.rooms[i].Group = rg.groups.find(i)
	}
}

// frontDoorIndex returns the first south-facing exterior segment found in
// edge set order.
func (rg *roomGraph) frontDoorIndex() int {
	for _, es := range rg.edgeSets {
		for _, i := range es {
			adj := &rg.adjs[i]
			if adj.Dir.X == 0 || adj.Mirror > i {
				continue
			}
			exterior := adj.Left
			if adj.Mirror == i {
				exterior = adj.Right
			}
			if rg.rooms[exterior].Type != RoomExterior {
				continue
			}
			return i
		}
	}
	panic("mapgen: no front door candidate")
}

// assignRoomTypes makes the rooms farthest from the front private, then
// spreads privacy across adjacent courtyards.
func (rg *roomGraph) assignRoomTypes() {
	unvisited := len(rg.rooms)
	for i := 1; i < len(rg.rooms); i++ {
		rg.rooms[i].Depth = unvisited
	}
	sz := rg.roomIndex.Size()
	queue := []int{}
	for x := range sz.X {
		i := rg.roomIndex.AtXY(x, 0)
		rg.rooms[i].Depth = 1
		queue = append(queue, i)
	}
	for k := 0; k < len(queue); k++ {
		i := queue[k]
		for _, e := range rg.rooms[i].Edges {
			adj := &rg.adjs[e]
			if !adj.Door {
				continue
			}
			j := adj.Other(i)
			if rg.rooms[j].Depth == unvisited {
				rg.rooms[j].Depth = rg.rooms[i].Depth + 1
				queue = append(queue, j)
			}
		}
	}

	maxDepth := 0
	for _, r := range rg.rooms {
		maxDepth = max(maxDepth, r.Depth)
	}
	target := sz.X * sz.Y / 4
	nprivate := 0
	for depth := maxDepth; depth > 0; depth-- {
		for i := range rg.rooms {
			r := &rg.rooms[i]
			if r.Depth != depth {
				continue
			}
			switch r.Type {
			case RoomPublicRoom:
				r.Type = RoomPrivateRoom
				nprivate++
			case RoomPublicCourtyard:
				r.Type = RoomPrivateCourtyard
			}
		}
		if nprivate >= target {
			break
		}
	}

	for changed := true; changed; {
		changed = false
		for i := range rg.rooms {
			if rg.rooms[i].Type != RoomPublicCourtyard {
				continue
			}
			for _, e := range rg.rooms[i].Edges {
				if rg.rooms[rg.adjs[e].Other(i)].Type == RoomPrivateCourtyard {
					rg.rooms[i].Type = RoomPrivateCourtyard
					changed = true
					break
				}
			}
		}
	}
}
