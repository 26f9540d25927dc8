package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestGrid(t *testing.T) {
	gd := NewGrid(4, 3, 7)
	if sz := gd.Size(); sz != (gruid.Point{4, 3}) {
		t.Fatalf("bad size: %v", sz)
	}
	for p, v := range gd.All() {
		if v != 7 {
			t.Errorf("value at %v: %d", p, v)
		}
	}
	gd.Set(gruid.Point{3, 2}, 1)
	gd.SetXY(0, 1, 2)
	*gd.Ptr(gruid.Point{1, 0}) = 3
	if gd.At(gruid.Point{3, 2}) != 1 || gd.AtXY(0, 1) != 2 || gd.AtXY(1, 0) != 3 {
		t.Errorf("bad values after set")
	}
	i := 0
	for p := range gd.All() {
		if want := (gruid.Point{i % 4, i / 4}); p != want {
			t.Errorf("iteration %d: got %v, want %v", i, p, want)
		}
		i++
	}
	if i != 12 {
		t.Errorf("iterated %d positions", i)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	gd := NewGrid(2, 2, false)
	if gd.InBounds(gruid.Point{2, 0}) || gd.InBounds(gruid.Point{0, -1}) {
		t.Errorf("out of bounds position reported in bounds")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on out of bounds access")
		}
	}()
	gd.At(gruid.Point{2, 0})
}
