// This file handles drawing of the map and status lines.

package main

import (
	"strings"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

const (
	viewWidth  = UIWidth
	viewHeight = UIHeight - 3
)

// Draw implements Draw() for gruid.Model.
func (md *model) Draw() gruid.Grid {
	md.gd.Fill(gruid.Cell{Rune: ' '})
	if md.quitting {
		return md.gd.Slice(gruid.Range{})
	}
	md.drawMap(md.gd.Slice(gruid.NewRange(0, 0, viewWidth, viewHeight)))
	md.look.Content = ui.Text(describeCell(md.g.Map, md.g.Player.P, md.g.Player.Dir))
	md.look.Draw(md.gd.Slice(md.gd.Range().Line(UIHeight - 3)))
	md.status.Content = md.statusText()
	md.status.Draw(md.gd.Slice(md.gd.Range().Line(UIHeight - 2)))
	md.msg.Content = md.logs.Current()
	md.msg.Draw(md.gd.Slice(md.gd.Range().Line(UIHeight - 1)))
	return md.gd
}

// camera returns the map position shown at the bottom-left corner of the
// view, keeping the player in view.
func (md *model) camera() gruid.Point {
	sz := md.g.Map.Size()
	pp := md.g.Player.P
	cam := func(p, size, view int) int {
		if size <= view {
			return (size - view) / 2
		}
		return min(max(p-view/2, 0), size-view)
	}
	return gruid.Point{cam(pp.X, sz.X, viewWidth), cam(pp.Y, sz.Y, viewHeight)}
}

// toScreen converts a map position to a view position. North is up.
func toScreen(cam, p gruid.Point) gruid.Point {
	return gruid.Point{p.X - cam.X, viewHeight - 1 - (p.Y - cam.Y)}
}

func (md *model) drawMap(gd gruid.Grid) {
	m := md.g.Map
	cam := md.camera()
	visible := func(p gruid.Point) bool {
		return md.seeAll || m.Cells.At(p).Seen
	}
	for p, t := range m.Terrain.All() {
		if !visible(p) {
			continue
		}
		st := terrainStyle(t)
		if m.Cells.At(p).Lit {
			st.Bg = ColorBackgroundSecondary
		}
		gd.Set(toScreen(cam, p), gruid.Cell{Rune: TerrainRune(t), Style: st})
	}
	for _, it := range m.Items {
		if !visible(it.P) {
			continue
		}
		sp := toScreen(cam, it.P)
		c := gd.At(sp)
		c.Rune = it.Kind.Rune()
		c.Style.Fg = itemColor(it.Kind)
		gd.Set(sp, c)
	}
	if md.guardView {
		for _, g := range m.Guards {
			for _, p := range g.SightCells(m) {
				if !visible(p) {
					continue
				}
				sp := toScreen(cam, p)
				c := gd.At(sp)
				c.Style.Bg = ColorViolet
				gd.Set(sp, c)
			}
		}
	}
	for _, g := range m.Guards {
		if !visible(g.P) {
			continue
		}
		sp := toScreen(cam, g.P)
		c := gd.At(sp)
		c.Rune = 'G'
		c.Style.Fg = guardColor(g)
		gd.Set(sp, c)
		switch g.OverheadIcon() {
		case IconAlerted:
			gd.Set(sp.Add(gruid.Point{0, -1}), gruid.Cell{Rune: '?', Style: gruid.Style{Fg: ColorOrange}})
		case IconChasing:
			gd.Set(sp.Add(gruid.Point{0, -1}), gruid.Cell{Rune: '!', Style: gruid.Style{Fg: ColorRed}})
		}
	}
	pl := md.g.Player
	if m.InMap(pl.P) {
		sp := toScreen(cam, pl.P)
		c := gd.At(sp)
		c.Rune = '@'
		c.Style.Fg = ColorForegroundEmph
		if pl.Hidden(m) {
			c.Style.Fg = ColorForegroundSecondary
		}
		if pl.Dead() {
			c.Style.Fg = ColorRed
		}
		gd.Set(sp, c)
	}
}

func (md *model) statusText() ui.StyledText {
	g := md.g
	pl := g.Player
	breath := ""
	if g.Map.InMap(pl.P) && g.Map.Terrain.At(pl.P) == GroundWater {
		breath = ui.Textf("  Breath %d", pl.TurnsUnderwater).Text()
	}
	return ui.Textf("Health %d/%d  Gold %d/%d  Seen %d%%  Level %d%s",
		pl.Health, maxPlayerHealth, pl.Gold, g.Map.TotalLoot, g.Map.PercentSeen(), g.Level+1, breath)
}

// describeCell returns what the player standing at p and facing dir would
// notice about its cell.
func describeCell(m *Map, p, dir gruid.Point) string {
	var sb strings.Builder
	sb.WriteString(UpperFirst(TerrainName(m.TerrainAt(p))))
	if m.InMap(p) && m.CellAt(p).Lit {
		sb.WriteString(", lit")
	}
	for _, it := range m.ItemsAt(p) {
		sb.WriteString(", ")
		sb.WriteString(it.Kind.String())
	}
	sb.WriteByte('.')
	if !m.PlayerCanSeeInDirection(p, dir) {
		sb.WriteString(" No view ahead.")
	}
	return sb.String()
}
