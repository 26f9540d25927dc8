package main

import (
	"iter"
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
)

// Directions contains the four cardinal directions in direct order (east,
// north, west, south). North is towards increasing Y.
var Directions = []gruid.Point{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

func abs(i int) int {
	if i < 0 {
		i = -i
	}
	return i
}

// dot returns the dot product of two vectors.
func dot(p, q gruid.Point) int {
	return p.X*q.X + p.Y*q.Y
}

// lengthSquared returns the squared euclidean length of a vector.
func lengthSquared(p gruid.Point) int {
	return p.X*p.X + p.Y*p.Y
}

// chebyshevAdjacent reports whether p and q are the same or neighboring
// positions (including diagonals).
func chebyshevAdjacent(p, q gruid.Point) bool {
	return abs(p.X-q.X) < 2 && abs(p.Y-q.Y) < 2
}

// RandInRange returns a random number in [0, n), or zero if n <= 0.
func RandInRange(rd *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rd.IntN(n)
}

// shuffle shuffles the given slice in place.
func shuffle[T any](rd *rand.Rand, s []T) {
	rd.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// newRand returns a deterministic random source for a given seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Neighbors returns an iterator over the cardinal neighbors of p that are
// within range rg.
func Neighbors(p gruid.Point, rg gruid.Range) iter.Seq[gruid.Point] {
	return func(yield func(gruid.Point) bool) {
		for _, d := range Directions {
			q := p.Add(d)
			if q.In(rg) && !yield(q) {
				return
			}
		}
	}
}

// Around returns an iterator over the positions of the 3x3 square centered
// on p that are within range rg, including p itself. Positions are visited
// column by column.
func Around(p gruid.Point, rg gruid.Range) iter.Seq[gruid.Point] {
	return func(yield func(gruid.Point) bool) {
		for x := p.X - 1; x <= p.X+1; x++ {
			for y := p.Y - 1; y <= p.Y+1; y++ {
				q := gruid.Point{x, y}
				if q.In(rg) && !yield(q) {
					return
				}
			}
		}
	}
}
