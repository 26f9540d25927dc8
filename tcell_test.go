//go:build !sdl && !js

package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	tc "github.com/gdamore/tcell/v2"
)

func TestTermStyler(t *testing.T) {
	defer func(cm colorMode) { ColorMode = cm }(ColorMode)
	st := gruid.Style{Fg: ColorRed, Bg: gruid.ColorDefault}
	tests := []struct {
		mode   colorMode
		fg, bg tc.Color
	}{
		{ColorMode16, tc.PaletteColor(9), tc.ColorDefault},
		{ColorMode8, tc.PaletteColor(1), tc.ColorDefault},
		{ColorMode256, tc.PaletteColor(160), tc.PaletteColor(234)},
		{ColorMode24bit, tc.NewRGBColor(250, 87, 80), tc.NewRGBColor(16, 60, 72)},
	}
	for _, tt := range tests {
		ColorMode = tt.mode
		fg, bg, _ := termStyler{}.GetStyle(st).Decompose()
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("mode %d: got %v on %v, want %v on %v", tt.mode, fg, bg, tt.fg, tt.bg)
		}
	}
}
