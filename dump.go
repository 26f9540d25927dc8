package main

import (
	"strings"

	"codeberg.org/anaseto/gruid"
)

// Dump returns a text rendering of the whole map, north up, with items,
// guards and the player start.
func (m *Map) Dump() string {
	sz := m.Size()
	runes := make([]rune, sz.X*sz.Y)
	at := func(p gruid.Point) *rune {
		return &runes[(sz.Y-1-p.Y)*sz.X+p.X]
	}
	for p, t := range m.Terrain.All() {
		*at(p) = TerrainRune(t)
	}
	for _, it := range m.Items {
		*at(it.P) = it.Kind.Rune()
	}
	for _, g := range m.Guards {
		*at(g.P) = 'G'
	}
	if m.InMap(m.PlayerStart) {
		*at(m.PlayerStart) = '@'
	}
	var sb strings.Builder
	for y := range sz.Y {
		sb.WriteString(string(runes[y*sz.X : (y+1)*sz.X]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
