// This file contains the player and the turn loop.

package main

import (
	"errors"
	"fmt"
	"log"

	"codeberg.org/anaseto/gruid"
)

const (
	maxPlayerHealth = 5
	breathTurns     = 7  // turns the player can stay submerged
	creakEarshot    = 17 // cost radius of creaking floor noise
)

// Player represents the intruder.
type Player struct {
	P               gruid.Point
	Dir             gruid.Point
	Health          int
	Gold            int
	Noisy           bool // whether the player made noise this turn
	DamagedLastTurn bool
	TurnsUnderwater int // breath left while submerged
}

// NewPlayer returns a player at full health at p, facing south.
func NewPlayer(p gruid.Point) *Player {
	return &Player{P: p, Dir: gruid.Point{0, -1}, Health: maxPlayerHealth}
}

// ApplyDamage removes health from the player, at most once per turn.
func (pl *Player) ApplyDamage(d int) {
	if pl.DamagedLastTurn {
		return
	}
	pl.Health -= min(d, pl.Health)
	pl.DamagedLastTurn = true
}

// Dead reports whether the player has no health left.
func (pl *Player) Dead() bool {
	return pl.Health <= 0
}

// Hidden reports whether guards cannot see the player: in cover, or
// underwater with breath left. Nobody can hide while a guard is chasing.
func (pl *Player) Hidden(m *Map) bool {
	if m.AnyGuardChasing() {
		return false
	}
	if m.Cells.At(pl.P).HidesPlayer {
		return true
	}
	return m.Terrain.At(pl.P) == GroundWater && pl.TurnsUnderwater > 0
}

// TurnResult tells what happened when the player tried to act.
type TurnResult int

const (
	TurnNone      TurnResult = iota // nothing happened, no time passed
	TurnPassed                      // the player acted and guards moved
	TurnLevelExit                   // the player left the map
)

// AdvanceTurn makes the player move dist cells along dir, or wait if dir is
// zero, and then runs the rest of the turn.
func AdvanceTurn(m *Map, pl *Player, dir gruid.Point, dist int) TurnResult {
	if pl.Dead() {
		return TurnNone
	}
	if dir == (gruid.Point{}) || dist <= 0 {
		preTurn(pl)
		advanceTime(m, pl)
		return TurnPassed
	}
	pl.Dir = dir

	allowed := playerMoveDistAllowed(m, pl, dir, dist)
	if allowed <= 0 {
		bump := pl.P.Add(dir)
		if g := guardAtAny(m, bump); g != nil {
			preTurn(pl)
			g.heardThief = true
			advanceTime(m, pl)
			return TurnPassed
		}
		if m.InMap(bump) && m.ToggleTorchAt(bump) {
			preTurn(pl)
			m.ComputeLighting()
			advanceTime(m, pl)
			return TurnPassed
		}
		return TurnNone
	}

	preTurn(pl)
	for range allowed {
		pl.P = pl.P.Add(dir)
		if !m.InMap(pl.P) {
			return TurnLevelExit
		}
		pl.Gold += m.CollectLootAt(pl.P)
	}
	if m.Terrain.At(pl.P) == GroundWoodCreaky {
		makeNoise(m, pl, creakEarshot)
	}
	advanceTime(m, pl)
	return TurnPassed
}

func guardAtAny(m *Map, p gruid.Point) *Guard {
	for _, g := range m.Guards {
		if g.P == p {
			return g
		}
	}
	return nil
}

// playerMoveDistAllowed returns how many of the dist cells along dir the
// player can actually move. Leaving the map is allowed only once the level
// is complete.
func playerMoveDistAllowed(m *Map, pl *Player, dir gruid.Point, dist int) int {
	allowed := 0
	prev := pl.P
	for d := 1; d <= dist; d++ {
		p := pl.P.Add(dir.Mul(d))
		if !m.InMap(p) {
			if m.LevelComplete() {
				allowed = d
			}
			break
		}
		if blocked(m, prev, p) {
			break
		}
		allowed = d
		prev = p
	}
	if allowed == 0 {
		return 0
	}
	p := pl.P.Add(dir.Mul(allowed))
	if m.AnyGuardAt(p) {
		return 0
	}
	for _, it := range m.ItemsAt(p) {
		if it.Kind.IsTorch() {
			return allowed - 1
		}
	}
	return allowed
}

// blocked reports whether the player cannot step from from to the
// neighboring position to.
func blocked(m *Map, from, to gruid.Point) bool {
	if !m.InMap(to) {
		return true
	}
	if from == to {
		return false
	}
	if m.Cells.At(to).BlocksPlayerMove {
		return true
	}
	d := to.Sub(from)
	return !allowedDirection(m.Terrain.At(to), d.X, d.Y)
}

// makeNoise alerts the guards within a cost radius of the player.
func makeNoise(m *Map, pl *Player, radius int) {
	pl.Noisy = true
	for _, g := range m.GuardsInEarshot(pl.P, radius) {
		g.heardThief = true
	}
}

func preTurn(pl *Player) {
	pl.Noisy = false
	pl.DamagedLastTurn = false
}

// advanceTime runs the part of the turn after the player action.
func advanceTime(m *Map, pl *Player) {
	if m.Terrain.At(pl.P) == GroundWater {
		if pl.TurnsUnderwater > 0 {
			pl.TurnsUnderwater--
		}
	} else {
		pl.TurnsUnderwater = breathTurns
	}
	m.guardActAll(pl)
	m.ComputeLighting()
	m.RecomputeVisibility(pl.P)
}

// LevelComplete reports whether every cell has been seen and all the floor
// loot collected.
func (m *Map) LevelComplete() bool {
	return m.AllSeen() && m.AllLootCollected()
}

// Config holds the game settings.
type Config struct {
	Seed   uint64 // 0 means random
	Level  int    // starting level
	Levels int    // number of planned levels
	Loot   int    // total loot over all levels
}

// Validate checks the configuration.
func (cfg Config) Validate() error {
	switch {
	case cfg.Levels < 1 || cfg.Levels > MaxLevels:
		return fmt.Errorf("levels must be in 1..%d: %d", MaxLevels, cfg.Levels)
	case cfg.Level < 0 || cfg.Level >= cfg.Levels:
		return fmt.Errorf("starting level must be in 0..%d: %d", cfg.Levels-1, cfg.Level)
	case cfg.Loot < 0:
		return fmt.Errorf("loot must not be negative: %d", cfg.Loot)
	}
	return nil
}

// Game holds the state of a whole game.
type Game struct {
	Seed     uint64
	Plans    []RoughPlan
	Level    int
	Map      *Map
	Player   *Player
	Finished bool // current level complete
	Won      bool // last level left
}

// NewGame returns a game at the configured starting level.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{Seed: cfg.Seed, Level: cfg.Level}
	g.Plans = RoughPlans(cfg.Levels, cfg.Loot, newRand(cfg.Seed))
	if err := g.generate(); err != nil {
		return nil, err
	}
	g.Player = NewPlayer(g.Map.PlayerStart)
	return g, nil
}

// levelSeed derives the seed of a level generation attempt.
func levelSeed(seed uint64, level, attempt int) uint64 {
	return seed ^ uint64(level+1)*0x9e3779b97f4a7c15 + uint64(attempt)
}

// generate builds the map of the current level, trying other seeds when
// loot does not fit.
func (g *Game) generate() error {
	const attempts = 100
	for i := range attempts {
		m, err := GenerateLevel(g.Level, g.Plans[g.Level], levelSeed(g.Seed, g.Level, i))
		if err == nil {
			g.Map = m
			g.Finished = false
			return nil
		}
		if !errors.Is(err, errLootShortfall) {
			return err
		}
		log.Printf("level %d attempt %d: %v", g.Level, i, err)
	}
	return fmt.Errorf("level %d: no valid layout after %d attempts", g.Level, attempts)
}

// Move makes the player act. It returns the turn result, after switching to
// the next level if the player left the map.
func (g *Game) Move(dir gruid.Point, dist int) (TurnResult, error) {
	res := AdvanceTurn(g.Map, g.Player, dir, dist)
	switch res {
	case TurnLevelExit:
		if err := g.NextLevel(); err != nil {
			return res, err
		}
	case TurnPassed:
		g.Finished = g.Map.LevelComplete()
	}
	return res, nil
}

// NextLevel advances to the following level. After the last planned level,
// the game is won and the map stays.
func (g *Game) NextLevel() error {
	if g.Level+1 >= len(g.Plans) {
		g.Won = true
		return nil
	}
	g.Level++
	if err := g.generate(); err != nil {
		return err
	}
	pl := g.Player
	pl.P = g.Map.PlayerStart
	pl.Dir = gruid.Point{0, -1}
	pl.Gold = 0
	pl.Noisy = false
	pl.DamagedLastTurn = false
	pl.TurnsUnderwater = 0
	return nil
}

// Restart regenerates the current level and resets the player.
func (g *Game) Restart() error {
	if err := g.generate(); err != nil {
		return err
	}
	g.Player = NewPlayer(g.Map.PlayerStart)
	g.Won = false
	return nil
}
