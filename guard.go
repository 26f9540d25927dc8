// This file contains the guard behavior.

package main

import (
	"codeberg.org/anaseto/gruid"
)

// GuardMode is the state of a guard.
type GuardMode int

const (
	ModePatrol GuardMode = iota
	ModeLook
	ModeListen
	ModeChaseVisibleTarget
	ModeMoveToLastSighting
	ModeMoveToLastSound
	ModeMoveToGuardShout
	ModeRelightTorch
	ModePostRelightTorch
)

// Relaxed reports whether the mode is one where the guard does not suspect
// an intruder.
func (md GuardMode) Relaxed() bool {
	switch md {
	case ModePatrol, ModeRelightTorch, ModePostRelightTorch:
		return true
	default:
		return false
	}
}

func (md GuardMode) String() string {
	switch md {
	case ModePatrol:
		return "patrol"
	case ModeLook:
		return "look"
	case ModeListen:
		return "listen"
	case ModeChaseVisibleTarget:
		return "chase"
	case ModeMoveToLastSighting:
		return "last sighting"
	case ModeMoveToLastSound:
		return "last sound"
	case ModeMoveToGuardShout:
		return "guard shout"
	case ModeRelightTorch:
		return "relight torch"
	case ModePostRelightTorch:
		return "post relight"
	default:
		return "unknown"
	}
}

// trigger is a sensory or internal event that may change a guard's mode.
type trigger int

const (
	triggerSeeThief         trigger = iota // sight at turn start
	triggerLostThief                       // no sight while chasing
	triggerHeardGuard                      // a shout was heard last turn
	triggerHeardThief                      // noise from the intruder
	triggerHeardThiefAdjacent              // noise from an adjacent intruder
	triggerBumpedThief                     // walked into the intruder
	triggerSpotThief                       // sight after moving
	triggerSpotThiefAdjacent               // sight of an adjacent intruder after moving
	triggerUnlitTorch                      // an unlit torch is in view
	triggerTorchRelit
	triggerTimeout
)

// nextMode returns the mode a guard in mode md switches to on trigger t.
func nextMode(md GuardMode, t trigger) GuardMode {
	switch t {
	case triggerSeeThief:
		if md.Relaxed() {
			return md
		}
		return ModeChaseVisibleTarget
	case triggerLostThief:
		if md == ModeChaseVisibleTarget {
			return ModeMoveToLastSighting
		}
		return md
	case triggerHeardGuard:
		if md == ModeChaseVisibleTarget {
			return md
		}
		return ModeMoveToGuardShout
	case triggerHeardThief:
		switch {
		case md == ModeChaseVisibleTarget:
			return md
		case md.Relaxed():
			return ModeListen
		default:
			return ModeMoveToLastSound
		}
	case triggerHeardThiefAdjacent, triggerBumpedThief, triggerSpotThiefAdjacent:
		return ModeChaseVisibleTarget
	case triggerSpotThief:
		if md.Relaxed() {
			return ModeLook
		}
		return ModeChaseVisibleTarget
	case triggerUnlitTorch:
		if md == ModePatrol {
			return ModeRelightTorch
		}
		return md
	case triggerTorchRelit:
		if md == ModeRelightTorch {
			return ModePostRelightTorch
		}
		return md
	case triggerTimeout:
		switch md {
		case ModeLook, ModeListen, ModeMoveToLastSighting, ModeMoveToLastSound,
			ModeMoveToGuardShout, ModeRelightTorch, ModePostRelightTorch:
			return ModePatrol
		}
		return md
	}
	panic("guard: unknown trigger")
}

// GuardIcon is the overhead state shown above a guard.
type GuardIcon int

const (
	IconRelaxed GuardIcon = iota
	IconAlerted
	IconChasing
)

// Guard represents a guard of the house.
type Guard struct {
	P        gruid.Point // position
	Dir      gruid.Point // facing, a unit cardinal vector
	Mode     GuardMode
	HasTorch bool
	HasPurse bool
	Speaking bool
	HasMoved bool // whether the guard acted this turn

	heardThief    bool
	hearingGuard  bool // shout heard this turn, acted upon next turn
	heardGuard    bool
	heardGuardPos gruid.Point

	goal    gruid.Point
	timeout int

	path    []gruid.Point // patrol waypoints
	index   int           // current patrol waypoint
	reverse bool
	loops   bool
}

// NewGuard returns a patrolling guard placed at the start of the given
// patrol path.
func NewGuard(path []gruid.Point) *Guard {
	start := path[0]
	g := &Guard{
		P:             start,
		Dir:           gruid.Point{1, 0},
		Mode:          ModePatrol,
		heardGuardPos: start,
		goal:          start,
		path:          path,
		loops:         patrolPathLoops(path),
	}
	if len(path) > 1 {
		updateDir(&g.Dir, g.P, path[g.nextPatrolIndex()])
	}
	return g
}

// patrolPathLoops reports whether the end of the path is adjacent to its
// start, so that the guard can walk it in circles.
func patrolPathLoops(path []gruid.Point) bool {
	first, last := path[0], path[len(path)-1]
	return first != last && chebyshevAdjacent(first, last)
}

// Goal returns the position the guard is currently heading to.
func (g *Guard) Goal() gruid.Point {
	return g.goal
}

// PatrolPath returns the guard's patrol waypoints.
func (g *Guard) PatrolPath() []gruid.Point {
	return g.path
}

// OverheadIcon returns the icon describing the guard's state.
func (g *Guard) OverheadIcon() GuardIcon {
	switch {
	case g.Mode.Relaxed():
		return IconRelaxed
	case g.Mode == ModeChaseVisibleTarget:
		return IconChasing
	default:
		return IconAlerted
	}
}

// setMode switches to mode md, resetting the mode timeout if md has one,
// even when the guard already was in that mode.
func (g *Guard) setMode(m *Map, md GuardMode) {
	g.Mode = md
	switch md {
	case ModeLook, ModeListen, ModeMoveToLastSound, ModeMoveToGuardShout:
		g.timeout = 2 + RandInRange(m.rand, 4)
	case ModeMoveToLastSighting, ModeRelightTorch, ModePostRelightTorch:
		g.timeout = 3
	}
}

// fire applies trigger t to the guard.
func (g *Guard) fire(m *Map, t trigger) {
	g.setMode(m, nextMode(g.Mode, t))
}

// countdown decrements the mode timeout, firing triggerTimeout when it
// runs out.
func (g *Guard) countdown(m *Map) {
	g.timeout--
	if g.timeout <= 0 {
		g.fire(m, triggerTimeout)
	}
}

type moveResult int

const (
	stoodStill moveResult = iota
	moved
	bumpedPlayer
)

// act runs one turn of the guard, and reports whether it started chasing
// the player and shouted.
func (g *Guard) act(m *Map, pl *Player) (shouted bool) {
	modePrev := g.Mode
	posPrev := g.P

	// Senses may switch mode before acting.
	if !g.Mode.Relaxed() {
		if g.seesThief(m, pl) {
			g.goal = pl.P
			g.fire(m, triggerSeeThief)
		} else if g.Mode == ModeChaseVisibleTarget {
			g.goal = pl.P
			g.fire(m, triggerLostThief)
		}
	}
	if g.Mode != ModeChaseVisibleTarget {
		if g.heardGuard {
			g.fire(m, triggerHeardGuard)
			g.goal = g.heardGuardPos
		}
		if g.heardThief {
			switch {
			case g.adjacentTo(pl.P):
				g.fire(m, triggerHeardThiefAdjacent)
				g.goal = pl.P
			case g.Mode.Relaxed():
				g.fire(m, triggerHeardThief)
				updateDir(&g.Dir, g.P, pl.P)
			default:
				g.fire(m, triggerHeardThief)
				g.goal = pl.P
			}
		}
	}

	switch g.Mode {
	case ModePatrol:
		g.patrolStep(m, pl)
	case ModeLook, ModeListen:
		g.countdown(m)
	case ModeChaseVisibleTarget:
		if g.adjacentTo(pl.P) {
			updateDir(&g.Dir, g.P, g.goal)
			if modePrev == ModeChaseVisibleTarget {
				pl.ApplyDamage(1)
			}
		} else {
			g.moveToward(m, pl, g.goal)
		}
	case ModeMoveToLastSighting, ModeMoveToLastSound, ModeMoveToGuardShout:
		if g.moveToward(m, pl, g.goal) != moved {
			g.countdown(m)
		}
	case ModeRelightTorch:
		if g.adjacentTo(g.goal) {
			m.relightTorchAt(g.goal)
			g.fire(m, triggerTorchRelit)
		} else if g.moveToward(m, pl, g.goal) != moved {
			g.countdown(m)
		}
	case ModePostRelightTorch:
		g.countdown(m)
	}

	// Look again from the new position.
	if g.P != posPrev {
		switch {
		case g.seesThief(m, pl):
			if g.Mode.Relaxed() && !g.adjacentTo(pl.P) {
				g.fire(m, triggerSpotThief)
			} else {
				g.goal = pl.P
				updateDir(&g.Dir, g.P, g.goal)
				g.fire(m, triggerSpotThiefAdjacent)
			}
		case g.Mode == ModeChaseVisibleTarget:
			g.goal = pl.P
			g.fire(m, triggerLostThief)
		case g.Mode == ModePatrol:
			if torch, ok := m.torchNeedingRelighting(g.P); ok {
				g.goal = torch
				g.fire(m, triggerUnlitTorch)
			}
		}
	}

	g.heardThief = false

	return g.Mode == ModeChaseVisibleTarget && modePrev != ModeChaseVisibleTarget
}

func (g *Guard) adjacentTo(p gruid.Point) bool {
	d := p.Sub(g.P)
	return abs(d.X) < 2 && abs(d.Y) < 2
}

// sightCutoff returns the squared distance below which the guard can see a
// lit or unlit target.
func (g *Guard) sightCutoff(lit bool) int {
	relaxed := g.Mode.Relaxed()
	switch {
	case lit && relaxed:
		return 40
	case lit:
		return 75
	case relaxed:
		return 3
	default:
		return 33
	}
}

// seesThief reports whether the guard sees the player. An alert guard
// always notices an adjacent player.
func (g *Guard) seesThief(m *Map, pl *Player) bool {
	d := pl.P.Sub(g.P)
	if !g.Mode.Relaxed() && abs(d.X) < 2 && abs(d.Y) < 2 {
		return true
	}
	return !pl.Hidden(m) && g.canSee(m, pl.P)
}

// canSee reports whether a visible target at p would be seen, taking into
// account facing, distance, lighting and line of sight.
func (g *Guard) canSee(m *Map, p gruid.Point) bool {
	d := p.Sub(g.P)
	if dot(g.Dir, d) < 0 {
		return false
	}
	if lengthSquared(d) >= g.sightCutoff(m.Cells.At(p).Lit) {
		return false
	}
	return m.lineOfSight(g.P, p)
}

// SightCells returns the positions where the guard would see an unhidden
// player, excluding walls.
func (g *Guard) SightCells(m *Map) []gruid.Point {
	const radius = 9 // beyond the largest sight cutoff
	rg := gruid.NewRange(g.P.X-radius, g.P.Y-radius, g.P.X+radius+1, g.P.Y+radius+1).Intersect(m.Cells.Range())
	var ps []gruid.Point
	for y := rg.Min.Y; y < rg.Max.Y; y++ {
		for x := rg.Min.X; x < rg.Max.X; x++ {
			p := gruid.Point{x, y}
			if m.Cells.At(p).BlocksPlayerMove {
				continue
			}
			if g.canSee(m, p) {
				ps = append(ps, p)
			}
		}
	}
	return ps
}

// nextPatrolIndex returns the patrol waypoint following the current one,
// bouncing at the ends of non-looping paths.
func (g *Guard) nextPatrolIndex() int {
	last := len(g.path) - 1
	if g.reverse {
		switch {
		case g.index > 0:
			return g.index - 1
		case g.loops:
			return last
		default:
			return min(1, last)
		}
	}
	switch {
	case g.index < last:
		return g.index + 1
	case g.loops:
		return 0
	default:
		return max(last-1, 0)
	}
}

// patrolStep moves the guard along its patrol path, going back to the path
// first if it strayed from it.
func (g *Guard) patrolStep(m *Map, pl *Player) {
	var res moveResult
	if g.path[g.index] == g.P {
		next := g.nextPatrolIndex()
		if !g.loops {
			if g.reverse && g.index == 0 {
				g.reverse = false
			} else if !g.reverse && g.index == len(g.path)-1 {
				g.reverse = true
			}
		}
		g.index = next
		res = g.moveToward(m, pl, g.path[g.index])
	} else {
		res = g.moveAlong(m, pl, m.DistancesToPatrolPath(g.path))
		for i, p := range g.path {
			if p == g.P {
				g.index = i
				break
			}
		}
	}
	if res == bumpedPlayer {
		g.goal = pl.P
		updateDir(&g.Dir, g.P, g.goal)
		g.fire(m, triggerBumpedThief)
	}
}

// moveToward makes the guard take one step towards goal.
func (g *Guard) moveToward(m *Map, pl *Player, goal gruid.Point) moveResult {
	return g.moveAlong(m, pl, m.DistancesToPosition(goal))
}

// moveAlong makes the guard take one step down a distance field. The guard
// turns but stays in place when the step would hit the player.
func (g *Guard) moveAlong(m *Map, pl *Player, field Grid[int]) moveResult {
	next := m.posNextBest(field, g.P)
	if next == g.P {
		return stoodStill
	}
	updateDir(&g.Dir, g.P, next)
	if next == pl.P {
		return bumpedPlayer
	}
	g.P = next
	return moved
}

// updateDir turns dir to whichever of forward, left, backward and right
// best points at target. Ties keep the current facing.
func updateDir(dir *gruid.Point, p, target gruid.Point) {
	d := target.Sub(p)
	left := gruid.Point{-dir.Y, dir.X}
	dotForward := dot(*dir, d)
	dotLeft := dot(left, d)
	if abs(dotForward) >= abs(dotLeft) {
		if dotForward < 0 {
			*dir = dir.Mul(-1)
		}
		return
	}
	if dotLeft >= 0 {
		*dir = left
	} else {
		*dir = left.Mul(-1)
	}
}

// torchNeedingRelighting returns the position of the closest unlit torch in
// line of sight of p.
func (m *Map) torchNeedingRelighting(p gruid.Point) (gruid.Point, bool) {
	best := gruid.Point{}
	bestDist := -1
	for _, it := range m.Items {
		if it.Kind != ItemTorchUnlit {
			continue
		}
		d := lengthSquared(it.P.Sub(p))
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		if !m.lineOfSight(p, it.P) {
			continue
		}
		best, bestDist = it.P, d
	}
	return best, bestDist >= 0
}

// relightTorchAt lights the unlit torches at p.
func (m *Map) relightTorchAt(p gruid.Point) {
	for i, it := range m.Items {
		if it.P == p && it.Kind == ItemTorchUnlit {
			m.Items[i].Kind = ItemTorchLit
		}
	}
	m.cacheCell(p)
}

// shout is emitted by a guard starting a chase.
type shout struct {
	from   gruid.Point // shouter position
	target gruid.Point // where the intruder was reported
}

const shoutEarshot = 25

// guardActAll makes every guard act in order. Shouts are delivered to
// guards within earshot, who react to them on the next turn.
func (m *Map) guardActAll(pl *Player) {
	for _, g := range m.Guards {
		g.heardGuard = g.hearingGuard
		g.hearingGuard = false
		g.Speaking = false
		g.HasMoved = false
	}
	var shouts []shout
	for _, g := range m.Guards {
		if g.act(m, pl) {
			g.Speaking = true
			shouts = append(shouts, shout{from: g.P, target: pl.P})
		}
		g.HasMoved = true
	}
	for _, s := range shouts {
		m.alertNearbyGuards(s)
	}
}

func (m *Map) alertNearbyGuards(s shout) {
	for _, g := range m.GuardsInEarshot(s.from, shoutEarshot) {
		if g.P != s.from {
			g.hearingGuard = true
			g.heardGuardPos = s.from
		}
	}
}
