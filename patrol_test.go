package main

import (
	"slices"
	"testing"
)

// chain returns patrol nodes for rooms 0..n-1 linked in order.
func chain(n int) *patrolBuilder {
	pb := &patrolBuilder{}
	for i := range n {
		pb.nodes = append(pb.nodes, patrolNode{room: i, next: i + 1, prev: i - 1})
	}
	pb.nodes[n-1].next = -1
	return pb
}

// roomsFrom returns the rooms visited following next links from node i.
func (pb *patrolBuilder) roomsFrom(i int) []int {
	var rs []int
	for j := i; j != -1; j = pb.nodes[j].next {
		rs = append(rs, pb.nodes[j].room)
		if len(rs) > len(pb.nodes) {
			break
		}
	}
	return rs
}

func TestPatrolFlip(t *testing.T) {
	pb := chain(3)
	pb.flipReverse(2)
	if got := pb.roomsFrom(2); !slices.Equal(got, []int{2, 1, 0}) {
		t.Errorf("flipReverse: %v", got)
	}
	if pb.nodes[2].prev != -1 || pb.nodes[0].next != -1 {
		t.Errorf("flipReverse: bad ends %+v", pb.nodes)
	}
	pb = chain(3)
	pb.flipForward(0)
	if got := pb.roomsFrom(2); !slices.Equal(got, []int{2, 1, 0}) {
		t.Errorf("flipForward: %v", got)
	}
	if s := pb.startingNode(0); s != 2 {
		t.Errorf("starting node: %d", s)
	}
}

func TestPatrolLooping(t *testing.T) {
	pb := chain(4)
	if pb.isLooping(0) {
		t.Errorf("open chain reported looping")
	}
	pb.nodes[3].next = 0
	pb.nodes[0].prev = 3
	if !pb.isLooping(2) {
		t.Errorf("loop not detected")
	}
	if n := pb.routeLength(1); n != 4 {
		t.Errorf("loop length: %d", n)
	}
}

func TestPatrolSplit(t *testing.T) {
	pb := chain(10)
	pb.splitRoute(0, 3)
	var lengths []int
	for i := range pb.nodes {
		if pb.nodes[i].prev == -1 {
			lengths = append(lengths, pb.routeLength(i))
		}
	}
	if !slices.Equal(lengths, []int{3, 3, 4}) {
		t.Errorf("piece lengths: %v", lengths)
	}
	pb = chain(5)
	pb.splitRoute(0, 3)
	if n := pb.routeLength(0); n != 5 {
		t.Errorf("short route split: length %d", n)
	}
}

func TestPatrolSplice(t *testing.T) {
	pb := chain(3)
	pb.nodes = append(pb.nodes, patrolNode{room: 3, next: -1, prev: -1})
	pb.splice(1, 3)
	if got := pb.roomsFrom(0); !slices.Equal(got, []int{0, 1, 3, 1, 2}) {
		t.Errorf("spliced route: %v", got)
	}
	if pb.nodes[2].prev != 4 {
		t.Errorf("route tail not linked back to the copy")
	}
}
