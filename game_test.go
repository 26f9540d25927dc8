package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

var (
	east = gruid.Point{1, 0}
	west = gruid.Point{-1, 0}
)

func TestMoveThroughWindow(t *testing.T) {
	m := mapFromRows(
		"#########",
		"#...#...#",
		"#...>...#",
		"#...#...#",
		"#########",
	)
	pl := NewPlayer(gruid.Point{5, 2})
	if res := AdvanceTurn(m, pl, west, 1); res != TurnNone || pl.P != (gruid.Point{5, 2}) {
		t.Errorf("moved west through an east window: %v at %v", res, pl.P)
	}
	pl.P = gruid.Point{3, 2}
	if res := AdvanceTurn(m, pl, east, 1); res != TurnPassed || pl.P != (gruid.Point{4, 2}) {
		t.Errorf("could not move east into the window: %v at %v", res, pl.P)
	}
	if res := AdvanceTurn(m, pl, gruid.Point{0, 1}, 1); res != TurnNone {
		t.Errorf("moved into a wall: %v at %v", res, pl.P)
	}
}

func TestLeapAndTorch(t *testing.T) {
	m := mapFromRows(
		"#######",
		"#.....#",
		"#..T..#",
		"#.....#",
		"#######",
	)
	pl := NewPlayer(gruid.Point{1, 2})
	AdvanceTurn(m, pl, east, 2)
	if pl.P != (gruid.Point{2, 2}) {
		t.Fatalf("leap onto a torch not shortened: at %v", pl.P)
	}
	if res := AdvanceTurn(m, pl, east, 1); res != TurnPassed || pl.P != (gruid.Point{2, 2}) {
		t.Errorf("bumping a torch: %v at %v", res, pl.P)
	}
	if m.Items[0].Kind != ItemTorchUnlit {
		t.Errorf("torch not put out: %v", m.Items[0].Kind)
	}
	if m.Cells.At(gruid.Point{4, 2}).Lit {
		t.Errorf("lighting not updated after putting the torch out")
	}
	pl.P = gruid.Point{1, 1}
	AdvanceTurn(m, pl, east, 2)
	if pl.P != (gruid.Point{3, 1}) {
		t.Errorf("leap: at %v", pl.P)
	}
}

func TestCollectLoot(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#.$.#",
		"#####",
	)
	m.MarkAllSeen()
	pl := NewPlayer(gruid.Point{1, 1})
	if m.LevelComplete() {
		t.Errorf("level complete with loot on the floor")
	}
	AdvanceTurn(m, pl, east, 1)
	if pl.Gold != 1 || !m.AllLootCollected() {
		t.Errorf("coin not collected: gold %d", pl.Gold)
	}
	if !m.LevelComplete() {
		t.Errorf("level not complete")
	}
}

func TestLeaveMap(t *testing.T) {
	m := mapFromRows(
		",,,,",
		",,,,",
		",,,$",
	)
	pl := NewPlayer(gruid.Point{0, 1})
	if res := AdvanceTurn(m, pl, west, 1); res != TurnNone {
		t.Errorf("left an incomplete level: %v", res)
	}
	m.MarkAllSeen()
	m.CollectLootAt(gruid.Point{3, 0})
	if res := AdvanceTurn(m, pl, west, 1); res != TurnLevelExit {
		t.Errorf("could not leave a complete level: %v", res)
	}
}

func TestBreath(t *testing.T) {
	m := mapFromRows(
		"#####",
		"#.~.#",
		"#####",
	)
	pl := NewPlayer(gruid.Point{1, 1})
	AdvanceTurn(m, pl, gruid.Point{}, 0)
	if pl.TurnsUnderwater != breathTurns {
		t.Fatalf("breath on land: %d", pl.TurnsUnderwater)
	}
	AdvanceTurn(m, pl, east, 1)
	if !pl.Hidden(m) {
		t.Errorf("player not hidden underwater")
	}
	for range breathTurns - 1 {
		AdvanceTurn(m, pl, gruid.Point{}, 0)
	}
	if pl.TurnsUnderwater != 0 || pl.Hidden(m) {
		t.Errorf("player still hidden without breath: %d", pl.TurnsUnderwater)
	}
}

func TestApplyDamageOncePerTurn(t *testing.T) {
	pl := NewPlayer(gruid.Point{})
	pl.ApplyDamage(1)
	pl.ApplyDamage(1)
	if pl.Health != maxPlayerHealth-1 {
		t.Errorf("health: got %d, want %d", pl.Health, maxPlayerHealth-1)
	}
	preTurn(pl)
	pl.ApplyDamage(10)
	if pl.Health != 0 || !pl.Dead() {
		t.Errorf("player not dead: health %d", pl.Health)
	}
	m := mapFromRows("#...#")
	if res := AdvanceTurn(m, pl, east, 1); res != TurnNone {
		t.Errorf("dead player acted: %v", res)
	}
}

func TestBumpGuard(t *testing.T) {
	m := mapFromRows(twoRooms...)
	g := NewGuard([]gruid.Point{{2, 2}})
	m.Guards = []*Guard{g}
	pl := NewPlayer(gruid.Point{1, 2})
	if res := AdvanceTurn(m, pl, east, 1); res != TurnPassed {
		t.Errorf("bumping a guard: %v", res)
	}
	if pl.P != (gruid.Point{1, 2}) {
		t.Errorf("player moved onto a guard: %v", pl.P)
	}
	if g.Mode != ModeChaseVisibleTarget {
		t.Errorf("bumped guard not chasing: %v", g.Mode)
	}
	if pl.Health != maxPlayerHealth {
		t.Errorf("player hit on the bump turn")
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{Levels: 0},
		{Levels: MaxLevels + 1},
		{Levels: 3, Level: 3},
		{Levels: 3, Level: -1},
		{Levels: 3, Loot: -1},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("no error for %+v", cfg)
		}
	}
	if err := (Config{Levels: 3, Loot: 10}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
}

func TestGameLevels(t *testing.T) {
	g, err := NewGame(Config{Seed: 42, Levels: 3, Loot: 30})
	if err != nil {
		t.Fatal(err)
	}
	if g.Player.P != g.Map.PlayerStart || len(g.Plans) != 3 {
		t.Fatalf("bad new game: player at %v, %d plans", g.Player.P, len(g.Plans))
	}
	start := g.Map.Dump()
	g.Player.P = g.Player.P.Add(gruid.Point{1, 0})
	if err := g.Restart(); err != nil {
		t.Fatal(err)
	}
	if g.Map.Dump() != start || g.Player.P != g.Map.PlayerStart {
		t.Errorf("restart did not regenerate the same level")
	}
	for level := 1; level < 3; level++ {
		g.Player.Gold = 3
		if err := g.NextLevel(); err != nil {
			t.Fatal(err)
		}
		if g.Level != level || g.Won {
			t.Fatalf("level %d: got level %d, won %v", level, g.Level, g.Won)
		}
		if g.Player.P != g.Map.PlayerStart || g.Player.Gold != 0 {
			t.Errorf("level %d: player not reset", level)
		}
	}
	if err := g.NextLevel(); err != nil {
		t.Fatal(err)
	}
	if !g.Won || g.Level != 2 {
		t.Errorf("game not won after the last level")
	}
}

func TestGameMove(t *testing.T) {
	g, err := NewGame(Config{Seed: 7, Levels: 1, Loot: 5})
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Move(gruid.Point{}, 0)
	if err != nil || res != TurnPassed {
		t.Fatalf("waiting: %v, %v", res, err)
	}
	if g.Finished {
		t.Errorf("level finished after one turn")
	}
}
