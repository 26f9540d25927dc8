// This file builds guard patrol routes from the room graph.

package main

import (
	"codeberg.org/anaseto/gruid"
)

// patrolNode is a visit of a room along a patrol route. Nodes are linked by
// index. A room may be visited by several nodes.
type patrolNode struct {
	room    int
	next    int // -1 if none
	prev    int // -1 if none
	visited bool
}

// patrolBuilder links rooms into patrol chains and turns them into
// waypoint lists.
type patrolBuilder struct {
	*levelGen
	nodes []patrolNode
}

// placePatrolRoutes returns the patrol routes of the level, as lists of
// waypoints.
func (lg *levelGen) placePatrolRoutes() [][]gruid.Point {
	pb := &patrolBuilder{levelGen: lg}
	for i := range lg.rooms {
		pb.nodes = append(pb.nodes, patrolNode{room: i, next: -1, prev: -1})
	}
	doors := make([]int, 0, len(lg.adjs))
	for i := range lg.adjs {
		adj := &lg.adjs[i]
		if !adj.Door || adj.Left == 0 || adj.Right == 0 {
			continue
		}
		doors = append(doors, i)
	}
	shuffle(lg.rand, doors)

	pb.linkRooms(doors)
	pieceLength := max(3, 10-lg.level)
	for i := range pb.nodes {
		if pb.nodes[i].visited {
			continue
		}
		pb.visitRoute(i)
		if pb.isLooping(i) {
			continue
		}
		pb.splitRoute(i, pieceLength)
	}
	pb.spliceOrphans(doors)

	routes := pb.waypoints()
	if lg.level > 5 {
		route := lg.perimeterRoute()
		routes = append(routes, route, shiftedPathCopy(route, len(route)/2))
	}
	return routes
}

// linkRooms joins rooms connected by doors onto the start or end of
// chains, reversing a chain when needed.
func (pb *patrolBuilder) linkRooms(doors []int) {
	for _, i := range doors {
		adj := &pb.adjs[i]
		i0, i1 := adj.Left, adj.Right
		n0, n1 := &pb.nodes[i0], &pb.nodes[i1]
		switch {
		case n0.next == -1 && n1.prev == -1:
			n0.next, n1.prev = i1, i0
		case n1.next == -1 && n0.prev == -1:
			n1.next, n0.prev = i0, i1
		case n0.next == -1 && n1.next == -1:
			pb.flipReverse(i1)
			n0.next, n1.prev = i1, i0
		case n0.prev == -1 && n1.prev == -1:
			pb.flipForward(i0)
			n0.next, n1.prev = i1, i0
		}
	}
}

// flipReverse reverses the chain ending at node i, so that it starts at i.
func (pb *patrolBuilder) flipReverse(i int) {
	visited := -1
	for i != -1 {
		toVisit := pb.nodes[i].prev
		pb.nodes[i].next = toVisit
		pb.nodes[i].prev = visited
		visited = i
		i = toVisit
	}
}

// flipForward reverses the chain starting at node i, so that it ends at i.
func (pb *patrolBuilder) flipForward(i int) {
	visited := -1
	for i != -1 {
		toVisit := pb.nodes[i].next
		pb.nodes[i].prev = toVisit
		pb.nodes[i].next = visited
		visited = i
		i = toVisit
	}
}

// startingNode returns the first node of the route containing node i, or i
// itself for a loop.
func (pb *patrolBuilder) startingNode(i int) int {
	start := i
	for pb.nodes[start].prev != -1 {
		start = pb.nodes[start].prev
		if start == i {
			break
		}
	}
	return start
}

// isLooping reports whether following next links from node start comes
// back to it.
func (pb *patrolBuilder) isLooping(start int) bool {
	for i := pb.nodes[start].next; i != -1; i = pb.nodes[i].next {
		if i == start {
			return true
		}
	}
	return false
}

// routeLength returns the number of nodes in the route containing node i.
func (pb *patrolBuilder) routeLength(i int) int {
	n := 0
	start := pb.startingNode(i)
	for j := start; j != -1; j = pb.nodes[j].next {
		n++
		if pb.nodes[j].next == start {
			break
		}
	}
	return n
}

func (pb *patrolBuilder) visitRoute(i int) {
	start := pb.startingNode(i)
	for j := start; j != -1; j = pb.nodes[j].next {
		pb.nodes[j].visited = true
		if pb.nodes[j].next == start {
			break
		}
	}
}

// splitRoute cuts an open route into pieces of pieceLength nodes while the
// remaining route is at least two pieces long.
func (pb *patrolBuilder) splitRoute(i, pieceLength int) {
	start := pb.startingNode(i)
	j := start
	count := 0
	for {
		next := pb.nodes[j].next
		if next == -1 {
			break
		}
		if pb.routeLength(j) < 2*pieceLength {
			break
		}
		count++
		if count >= pieceLength {
			count = 0
			pb.nodes[j].next = -1
			pb.nodes[next].prev = -1
		}
		j = next
		if j == start {
			break
		}
	}
}

// spliceOrphans inserts rooms left out of every route into a neighboring
// route, as a detour through a duplicate node of the host room.
func (pb *patrolBuilder) spliceOrphans(doors []int) {
	orphan := func(n *patrolNode) bool { return n.next == -1 && n.prev == -1 }
	inner := func(n *patrolNode) bool { return n.next != -1 && n.prev != -1 }
	for _, i := range doors {
		adj := &pb.adjs[i]
		i0, i1 := adj.Left, adj.Right
		switch {
		case orphan(&pb.nodes[i0]) && inner(&pb.nodes[i1]):
			pb.splice(i1, i0)
		case inner(&pb.nodes[i0]) && orphan(&pb.nodes[i1]):
			pb.splice(i0, i1)
		}
	}
}

// splice turns host <-> after into host <-> orphan <-> copy <-> after, where
// copy is a new node for the host room.
func (pb *patrolBuilder) splice(host, orphan int) {
	after := pb.nodes[host].next
	cp := len(pb.nodes)
	pb.nodes = append(pb.nodes, patrolNode{room: pb.nodes[host].room, next: after, prev: orphan})
	pb.nodes[host].next = orphan
	pb.nodes[orphan].prev = host
	pb.nodes[orphan].next = cp
	pb.nodes[after].prev = cp
}

// waypoints materializes every route. Each room is responsible for the path
// from its incoming door to its outgoing door. Route ends without a door
// go to an activity station instead.
func (pb *patrolBuilder) waypoints() [][]gruid.Point {
	m := pb.m
	handled := make([]bool, len(pb.nodes))
	var routes [][]gruid.Point
	for it := range pb.nodes {
		if handled[it] {
			continue
		}
		if pb.nodes[it].next == -1 && pb.nodes[it].prev == -1 {
			handled[it] = true
			continue
		}
		var route []gruid.Point
		for i := pb.startingNode(it); i != -1; i = pb.nodes[i].next {
			if handled[i] {
				break
			}
			handled[i] = true
			n := &pb.nodes[i]
			room, roomNext, roomPrev := n.room, -1, -1
			if n.next != -1 {
				roomNext = pb.nodes[n.next].room
			}
			if n.prev != -1 {
				roomPrev = pb.nodes[n.prev].room
			}
			var start, end gruid.Point
			switch {
			case roomPrev == -1:
				start = pb.stationOrBesideDoor(room, roomNext)
				end = pb.posInDoor(room, roomNext)
				route = append(route, start, start)
			case roomNext == -1:
				start = pb.posInDoor(room, roomPrev)
				end = pb.stationOrBesideDoor(room, roomPrev)
			case roomNext == roomPrev:
				// Go to a station and back to the same door.
				start = pb.posInDoor(room, roomPrev)
				end = pb.stationOrBesideDoor(room, roomPrev)
				route = append(route, m.pathBetweenPoints(start, end)...)
				route = append(route, end, end, end)
				start = end
				end = pb.posInDoor(room, roomNext)
			default:
				start = pb.posInDoor(room, roomPrev)
				end = pb.posInDoor(room, roomNext)
			}
			route = append(route, m.pathBetweenPoints(start, end)...)
			if roomNext == -1 {
				route = append(route, end, end, end)
			}
		}
		routes = append(routes, route)
	}
	return routes
}

// perimeterRoute returns a loop around the house, in the exterior.
func (lg *levelGen) perimeterRoute() []gruid.Point {
	sz := lg.m.Size()
	xmin, ymin := 2, 2
	xmax, ymax := sz.X-3, sz.Y-3
	var route []gruid.Point
	for x := xmin; x < xmax; x++ {
		route = append(route, gruid.Point{x, ymin})
	}
	for y := ymin; y < ymax; y++ {
		route = append(route, gruid.Point{xmax, y})
	}
	for x := xmax; x > xmin; x-- {
		route = append(route, gruid.Point{x, ymax})
	}
	for y := ymax; y > ymin; y-- {
		route = append(route, gruid.Point{xmin, y})
	}
	return route
}

// shiftedPathCopy returns a copy of a looping path starting at offset.
func shiftedPathCopy(path []gruid.Point, offset int) []gruid.Point {
	cp := make([]gruid.Point, 0, len(path))
	cp = append(cp, path[offset:]...)
	cp = append(cp, path[:offset]...)
	return cp
}

// adjacencyBetween returns the wall segment between two rooms, preferring
// one with a door, or nil if the rooms are not adjacent.
func (pb *patrolBuilder) adjacencyBetween(i0, i1 int) *Adjacency {
	var found *Adjacency
	for _, e := range pb.rooms[i0].Edges {
		adj := &pb.adjs[e]
		if adj.Other(i0) != i1 {
			continue
		}
		if adj.Door {
			return adj
		}
		if found == nil {
			found = adj
		}
	}
	return found
}

// posInDoor returns the door position between two rooms.
func (pb *patrolBuilder) posInDoor(i0, i1 int) gruid.Point {
	adj := pb.adjacencyBetween(i0, i1)
	if adj == nil {
		return gruid.Point{}
	}
	return adj.At(adj.DoorOffset)
}

// posBesideDoor returns a position two cells into room i from the door
// towards room other, or one cell if the former is not free.
func (pb *patrolBuilder) posBesideDoor(i, other int) gruid.Point {
	adj := pb.adjacencyBetween(i, other)
	if adj == nil {
		return gruid.Point{}
	}
	cross := gruid.Point{-adj.Dir.Y, adj.Dir.X}
	if adj.Left != i {
		cross = cross.Mul(-1)
	}
	p := adj.At(adj.DoorOffset).Add(cross.Mul(2))
	if pb.m.Cells.At(p).MoveCost != 0 {
		p = p.Sub(cross)
	}
	return p
}

// stationOrBesideDoor returns a random activity station of room i, or a
// position beside the door towards room other if there is none.
func (pb *patrolBuilder) stationOrBesideDoor(i, other int) gruid.Point {
	ps := pb.activityStations(&pb.rooms[i])
	if len(ps) > 0 {
		return ps[RandInRange(pb.rand, len(ps))]
	}
	return pb.posBesideDoor(i, other)
}

// activityStations returns the positions where a guard may linger in a
// room: beside a window looking out, else beside loot, else on a chair.
func (pb *patrolBuilder) activityStations(r *Room) []gruid.Point {
	m := pb.m
	sz := m.Size()
	var ps []gruid.Point
	free := func(p gruid.Point) bool { return m.Cells.At(p).MoveCost == 0 }
	for x := r.Min.X; x < r.Max.X; x++ {
		if r.Min.Y > 0 {
			p := gruid.Point{x, r.Min.Y}
			if m.Terrain.At(gruid.Point{x, r.Min.Y - 1}) == OneWayWindowS && free(p) {
				ps = append(ps, p)
			}
		}
		if r.Max.Y < sz.Y {
			p := gruid.Point{x, r.Max.Y - 1}
			if m.Terrain.At(gruid.Point{x, r.Max.Y}) == OneWayWindowN && free(p) {
				ps = append(ps, p)
			}
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if r.Min.X > 0 {
			p := gruid.Point{r.Min.X, y}
			if m.Terrain.At(gruid.Point{r.Min.X - 1, y}) == OneWayWindowW && free(p) {
				ps = append(ps, p)
			}
		}
		if r.Max.X < sz.X {
			p := gruid.Point{r.Max.X - 1, y}
			if m.Terrain.At(gruid.Point{r.Max.X, y}) == OneWayWindowE && free(p) {
				ps = append(ps, p)
			}
		}
	}
	if len(ps) > 0 {
		return ps
	}

	inRoom := gruid.NewRange(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	for _, it := range m.Items {
		if it.Kind != ItemCoin || !it.P.In(inRoom) {
			continue
		}
		for q := range Neighbors(it.P, inRoom) {
			if free(q) {
				ps = append(ps, q)
			}
		}
	}
	if len(ps) > 0 {
		return ps
	}

	for _, it := range m.Items {
		if it.Kind == ItemChair && it.P.In(inRoom) {
			ps = append(ps, it.P)
		}
	}
	return ps
}
