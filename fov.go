// This file contains the visibility and lighting code.

package main

import (
	"codeberg.org/anaseto/gruid"
)

const (
	sightRadiusSquared = 1600 // in half-cell units: 20 cells
	torchRadiusSquared = 180
)

// portal represents one of the four sides of a cell, through which view
// propagates to a neighbor. Corners are in half-cell units relative to the
// cell center, with the left corner first as seen from inside the cell.
type portal struct {
	l, r gruid.Point // left and right corners
	n    gruid.Point // neighbor through the portal
}

var portals = [4]portal{
	{l: gruid.Point{-1, -1}, r: gruid.Point{-1, 1}, n: gruid.Point{-1, 0}},
	{l: gruid.Point{-1, 1}, r: gruid.Point{1, 1}, n: gruid.Point{0, 1}},
	{l: gruid.Point{1, 1}, r: gruid.Point{1, -1}, n: gruid.Point{1, 0}},
	{l: gruid.Point{1, -1}, r: gruid.Point{-1, -1}, n: gruid.Point{0, -1}},
}

// aRightOfB reports whether vector a is strictly clockwise from vector b.
func aRightOfB(a, b gruid.Point) bool {
	return a.X*b.Y > a.Y*b.X
}

// castFrame is a pending cell to visit, along with the view wedge through
// which it is visited.
type castFrame struct {
	target gruid.Point
	l, r   gruid.Point // wedge edges relative to the source
}

// caster describes a kind of view propagation from a source.
type caster struct {
	radiusSquared int
	directional   bool // whether one-way windows restrict propagation
	blocks        func(*Cell) bool
	mark          func(*Cell)
}

// cast propagates view from src through portals, clipping the view wedge at
// every step, and marks every reached cell.
func (m *Map) cast(src gruid.Point, cs caster) {
	stack := make([]castFrame, 0, 64)
	for _, pt := range portals {
		stack = append(stack, castFrame{target: src, l: pt.l, r: pt.r})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !m.InMap(f.target) {
			continue
		}
		d := f.target.Sub(src).Mul(2)
		if lengthSquared(d) > cs.radiusSquared {
			continue
		}
		if cs.directional && f.target != src && !allowedDirection(m.Terrain.At(f.target), d.X, d.Y) {
			continue
		}
		c := m.Cells.Ptr(f.target)
		cs.mark(c)
		if cs.blocks(c) {
			continue
		}
		// Diagonal neighbors whose near corner is within the wedge.
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				off := gruid.Point{2*x - 1, 2*y - 1}
				n := f.target.Add(off)
				cd := d.Add(off)
				if m.InMap(n) && !aRightOfB(f.l, cd) && !aRightOfB(cd, f.r) {
					cs.mark(m.Cells.Ptr(n))
				}
			}
		}
		for _, pt := range portals {
			pl := d.Add(pt.l)
			pr := d.Add(pt.r)
			cl := pick(aRightOfB(f.l, pl), f.l, pl)
			cr := pick(aRightOfB(f.r, pr), pr, f.r)
			if aRightOfB(cr, cl) {
				stack = append(stack, castFrame{target: f.target.Add(pt.n), l: cl, r: cr})
			}
		}
	}
}

// RecomputeVisibility marks as seen every cell visible from p. Previously
// seen cells stay seen.
func (m *Map) RecomputeVisibility(p gruid.Point) {
	m.cast(p, caster{
		radiusSquared: sightRadiusSquared,
		directional:   true,
		blocks:        func(c *Cell) bool { return c.BlocksPlayerSight },
		mark:          func(c *Cell) { c.Seen = true },
	})
}

// castLight marks as lit every cell reached by a light at p.
func (m *Map) castLight(p gruid.Point, radiusSquared int) {
	m.cast(p, caster{
		radiusSquared: radiusSquared,
		blocks:        func(c *Cell) bool { return c.BlocksSight },
		mark:          func(c *Cell) { c.Lit = true },
	})
}

// ComputeLighting recomputes the lit state of every cell from the lit
// torches.
func (m *Map) ComputeLighting() {
	for p := range m.Cells.All() {
		m.Cells.Ptr(p).Lit = false
	}
	for _, it := range m.Items {
		if it.Kind == ItemTorchLit {
			m.castLight(it.P, torchRadiusSquared)
		}
	}
}

// PlayerCanSeeInDirection reports whether the player at p can see the
// neighbor cell in direction dir. The outside of the map is always visible.
func (m *Map) PlayerCanSeeInDirection(p, dir gruid.Point) bool {
	q := p.Add(dir)
	if !m.InMap(q) {
		return true
	}
	if !allowedDirection(m.Terrain.At(q), dir.X, dir.Y) {
		return false
	}
	return !m.Cells.At(q).BlocksPlayerSight
}

// lineOfSight reports whether no cell blocks sight strictly between from
// and to, along a Bresenham-like line.
func (m *Map) lineOfSight(from, to gruid.Point) bool {
	p := from
	d := to.Sub(from)
	ax, ay := abs(d.X), abs(d.Y)
	inc := gruid.Point{pick(d.X > 0, 1, -1), pick(d.Y > 0, 1, -1)}
	err := ay - ax
	ax *= 2
	ay *= 2
	for n := abs(d.X) + abs(d.Y) - 1; n > 0; n-- {
		if err > 0 {
			p.Y += inc.Y
			err -= ax
		} else {
			p.X += inc.X
			err += ay
		}
		if m.Cells.At(p).BlocksSight {
			return false
		}
	}
	return true
}
