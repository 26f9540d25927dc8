// This file contains the dense grid type used by map generation and the
// per-turn algorithms.

package main

import (
	"fmt"
	"iter"

	"codeberg.org/anaseto/gruid"
)

// Grid is a dense two-dimensional array addressed by (x, y) positions and
// stored in row-major order. Unlike rl.Grid, it can hold any value type, and
// out of range accesses are programming errors.
type Grid[T any] struct {
	w, h   int
	values []T
}

// NewGrid returns a new grid of the given size filled with v.
func NewGrid[T any](w, h int, v T) Grid[T] {
	gd := Grid[T]{w: w, h: h, values: make([]T, w*h)}
	gd.Fill(v)
	return gd
}

// Size returns the grid dimensions.
func (gd Grid[T]) Size() gruid.Point {
	return gruid.Point{gd.w, gd.h}
}

// Range returns the grid range, with origin at (0, 0).
func (gd Grid[T]) Range() gruid.Range {
	return gruid.NewRange(0, 0, gd.w, gd.h)
}

// InBounds reports whether p is a valid grid position.
func (gd Grid[T]) InBounds(p gruid.Point) bool {
	return p.X >= 0 && p.X < gd.w && p.Y >= 0 && p.Y < gd.h
}

func (gd Grid[T]) idx(p gruid.Point) int {
	if !gd.InBounds(p) {
		panic(fmt.Sprintf("grid: position %v out of bounds %dx%d", p, gd.w, gd.h))
	}
	return p.Y*gd.w + p.X
}

// At returns the value at p.
func (gd Grid[T]) At(p gruid.Point) T {
	return gd.values[gd.idx(p)]
}

// AtXY is a shorthand for At(gruid.Point{x, y}).
func (gd Grid[T]) AtXY(x, y int) T {
	return gd.values[gd.idx(gruid.Point{x, y})]
}

// Ptr returns a pointer to the value at p, for in-place updates of struct
// values.
func (gd Grid[T]) Ptr(p gruid.Point) *T {
	return &gd.values[gd.idx(p)]
}

// Set sets the value at p.
func (gd Grid[T]) Set(p gruid.Point, v T) {
	gd.values[gd.idx(p)] = v
}

// SetXY is a shorthand for Set(gruid.Point{x, y}, v).
func (gd Grid[T]) SetXY(x, y int, v T) {
	gd.values[gd.idx(gruid.Point{x, y})] = v
}

// Fill sets every value of the grid to v.
func (gd Grid[T]) Fill(v T) {
	for i := range gd.values {
		gd.values[i] = v
	}
}

// All returns an iterator over positions and values in row-major order.
func (gd Grid[T]) All() iter.Seq2[gruid.Point, T] {
	return func(yield func(gruid.Point, T) bool) {
		for i, v := range gd.values {
			if !yield(gruid.Point{i % gd.w, i / gd.w}, v) {
				return
			}
		}
	}
}
