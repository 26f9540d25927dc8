package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

const rounds = 50

var update = flag.Bool("update", false, "update golden files")

// generateTestLevel generates a level the way the game does, retrying
// other seeds when loot does not fit.
func generateTestLevel(t *testing.T, level int, seed uint64) *Map {
	t.Helper()
	plan := RoughPlans(level+1, 20*(level+1), newRand(seed))[level]
	for i := range 100 {
		m, err := GenerateLevel(level, plan, levelSeed(seed, level, i))
		if err == nil {
			return m
		}
		if !errors.Is(err, errLootShortfall) {
			t.Fatalf("level %d seed %d: %v", level, seed, err)
		}
	}
	t.Fatalf("level %d seed %d: no layout", level, seed)
	return nil
}

// connex reports whether every position the player can stand on is
// reachable from the player start.
func connex(m *Map) bool {
	m.pr.CCMap(&playerPath{m: m}, m.PlayerStart)
	for p, c := range m.Cells.All() {
		if !c.BlocksPlayerMove && m.pr.CCMapAt(p) == -1 {
			return false
		}
	}
	return true
}

func TestRoomGraphConnected(t *testing.T) {
	for i := range rounds {
		rd := newRand(uint64(i))
		level := i % MaxLevels
		x, y := levelSize(level, rd)
		rg := newRoomGraph(x, y, rd)
		if len(rg.rooms) != x*y+1 {
			t.Fatalf("%dx%d: %d rooms", x, y, len(rg.rooms))
		}
		seen := make([]bool, len(rg.rooms))
		queue := []int{rg.roomIndex.AtXY(x/2, 0)}
		seen[queue[0]] = true
		for len(queue) > 0 {
			r := queue[0]
			queue = queue[1:]
			for _, e := range rg.rooms[r].Edges {
				adj := &rg.adjs[e]
				if !adj.Door {
					continue
				}
				o := adj.Other(r)
				if o == 0 || seen[o] {
					continue
				}
				seen[o] = true
				queue = append(queue, o)
			}
		}
		for r := 1; r < len(rg.rooms); r++ {
			if !seen[r] {
				t.Errorf("seed %d: room %d (%v) not connected", i, r, rg.rooms[r].Type)
			}
		}
		front := &rg.adjs[rg.frontDoor]
		if !front.Door || (front.Left != 0 && front.Right != 0) {
			t.Errorf("seed %d: bad front door %+v", i, front)
		}
	}
}

func TestRoomGraphMirroredDoors(t *testing.T) {
	for i := range rounds {
		rd := newRand(uint64(i))
		x, y := levelSize(i%MaxLevels, rd)
		rg := newRoomGraph(x, y, rd)
		for j := range rg.adjs {
			adj := &rg.adjs[j]
			if adj.Mirror == j || j == rg.frontDoor {
				continue
			}
			if mirror := &rg.adjs[adj.Mirror]; mirror.Door != adj.Door {
				t.Errorf("seed %d: adjacency %d door %v, mirror %d door %v", i, j, adj.Door, adj.Mirror, mirror.Door)
			}
		}
	}
}

// mirrorTerrainX returns the terrain seen in an east-west mirror. Creaky
// floors are random, so they count as plain wood.
func mirrorTerrainX(t rl.Cell) rl.Cell {
	switch {
	case t == OneWayWindowE:
		return OneWayWindowW
	case t == OneWayWindowW:
		return OneWayWindowE
	case t == GroundWoodCreaky:
		return GroundWood
	case isWallTerrain(t):
		mask := int(t - Wall0000)
		swapped := mask &^ (wallBitE | wallBitW)
		if mask&wallBitE != 0 {
			swapped |= wallBitW
		}
		if mask&wallBitW != 0 {
			swapped |= wallBitE
		}
		return Wall0000 + rl.Cell(swapped)
	}
	return t
}

func TestGenerateLevelSymmetry(t *testing.T) {
	shapes := []gruid.Point{{3, 2}, {3, 3}, {5, 4}, {7, 5}, {9, 6}}
	for _, sh := range shapes {
		for seed := range 10 {
			level := seed % 6
			lg, err := generateLevel(level, RoughPlan{RoomsX: sh.X, RoomsY: sh.Y}, uint64(seed))
			if err != nil {
				t.Fatalf("%v seed %d: %v", sh, seed, err)
			}
			m := lg.m
			w := m.Size().X
			mirror := func(p gruid.Point) gruid.Point { return gruid.Point{w - 1 - p.X, p.Y} }
			front := &lg.adjs[lg.frontDoor]
			door := front.At(front.DoorOffset)
			for p, c := range m.Terrain.All() {
				if p == door || p == mirror(door) {
					continue
				}
				if c == GroundWoodCreaky {
					c = GroundWood
				}
				if mc := mirrorTerrainX(m.Terrain.At(mirror(p))); c != mc {
					t.Errorf("%v seed %d: terrain at %v is %v, mirrored %v", sh, seed, p, c, mc)
				}
			}
			for j := range lg.adjs {
				adj := &lg.adjs[j]
				if adj.Mirror == j {
					continue
				}
				other := &lg.adjs[adj.Mirror]
				if adj.Door != other.Door || adj.DoorOffset != other.DoorOffset {
					t.Errorf("%v seed %d: adjacency %d door %v at %d, mirror door %v at %d",
						sh, seed, j, adj.Door, adj.DoorOffset, other.Door, other.DoorOffset)
					continue
				}
				if !adj.Door {
					continue
				}
				p, q := adj.At(adj.DoorOffset), other.At(other.DoorOffset)
				if mirror(p) != q {
					t.Errorf("%v seed %d: doors at %v and %v not mirrored", sh, seed, p, q)
				}
				if m.Terrain.At(p) != mirrorTerrainX(m.Terrain.At(q)) {
					t.Errorf("%v seed %d: door tiles %v and %v differ", sh, seed, m.Terrain.At(p), m.Terrain.At(q))
				}
			}
		}
	}
}

func TestGenerateLevelReachable(t *testing.T) {
	for i := range rounds {
		level := i % MaxLevels
		m := generateTestLevel(t, level, uint64(i))
		if !connex(m) {
			t.Errorf("level %d seed %d: not connex:\n%s\n", level, i, m.Dump())
		}
		for _, it := range m.Items {
			if it.Kind == ItemCoin && !m.PlayerReachable(m.PlayerStart, it.P) {
				t.Errorf("level %d seed %d: coin at %v not reachable", level, i, it.P)
			}
		}
	}
}

func TestGenerateLevelLoot(t *testing.T) {
	for i := range rounds {
		level := i % MaxLevels
		m := generateTestLevel(t, level, uint64(i))
		loot := 0
		for _, it := range m.Items {
			if it.Kind == ItemCoin {
				loot++
			}
		}
		for _, g := range m.Guards {
			if g.HasPurse {
				loot++
			}
		}
		if loot != m.TotalLoot {
			t.Errorf("level %d seed %d: %d loot, want %d", level, i, loot, m.TotalLoot)
		}
	}
}

func TestGenerateLevelGuards(t *testing.T) {
	for i := range rounds {
		level := i % MaxLevels
		m := generateTestLevel(t, level, uint64(i))
		if level == 0 && len(m.Guards) > 0 {
			t.Errorf("seed %d: guards on the first level", i)
		}
		for _, g := range m.Guards {
			if !m.InMap(g.P) || m.Cells.At(g.P).BlocksPlayerMove {
				t.Errorf("level %d seed %d: guard on wall at %v:\n%s\n", level, i, g.P, m.Dump())
			}
			if g.Mode != ModePatrol || len(g.PatrolPath()) == 0 {
				t.Errorf("level %d seed %d: bad starting guard %+v", level, i, g)
			}
		}
		if !m.Cells.At(m.PlayerStart).Seen {
			t.Errorf("level %d seed %d: player start not seen", level, i)
		}
	}
}

func TestGenerateLevelDeterministic(t *testing.T) {
	for i := range 10 {
		level := i % MaxLevels
		m1 := generateTestLevel(t, level, uint64(i))
		m2 := generateTestLevel(t, level, uint64(i))
		if d1, d2 := m1.Dump(), m2.Dump(); d1 != d2 {
			t.Errorf("level %d seed %d: different maps:\n%s\n%s\n", level, i, d1, d2)
		}
	}
}

func TestGenerateLevelInvalid(t *testing.T) {
	plan := RoughPlan{RoomsX: 3, RoomsY: 2, TotalLoot: 5}
	if _, err := GenerateLevel(-1, plan, 1); err == nil {
		t.Errorf("no error for negative level")
	}
	bad := plan
	bad.RoomsX = 0
	if _, err := GenerateLevel(0, bad, 1); err == nil {
		t.Errorf("no error for zero rooms")
	}
	bad = plan
	bad.TotalLoot = -1
	if _, err := GenerateLevel(0, bad, 1); err == nil {
		t.Errorf("no error for negative loot")
	}
}

func TestRoughPlans(t *testing.T) {
	for i := range rounds {
		plans := RoughPlans(MaxLevels, 100+i, newRand(uint64(i)))
		total := 0
		for j, p := range plans {
			if p.RoomsX%2 != 1 || p.RoomsY < 1 || p.TotalLoot < 0 {
				t.Errorf("seed %d: bad plan %d: %+v", i, j, p)
			}
			total += p.TotalLoot
		}
		if total != 100+i {
			t.Errorf("seed %d: total loot %d, want %d", i, total, 100+i)
		}
	}
}

func TestGenerateLevelGolden(t *testing.T) {
	const seed = 1
	plan := RoughPlan{RoomsX: 3, RoomsY: 3, TotalLoot: 12}
	gen := func() string {
		for i := range 100 {
			m, err := GenerateLevel(2, plan, levelSeed(seed, 2, i))
			if err == nil {
				return m.Dump()
			}
			if !errors.Is(err, errLootShortfall) {
				t.Fatal(err)
			}
		}
		t.Fatal("no layout")
		return ""
	}
	got := gen()
	golden := filepath.Join("testdata", "level3x3.golden")
	if *update {
		if err := os.MkdirAll("testdata", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(golden, []byte(got), 0o644); err != nil {
			t.Fatal(err)
		}
		return
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("%v (run go test -update to create it)", err)
	}
	if got != string(want) {
		t.Errorf("level differs from %s:\n%s\nwant:\n%s\n", golden, got, want)
	}
}
