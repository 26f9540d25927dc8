//go:build !sdl && !js

package main

import (
	"codeberg.org/anaseto/gruid"
	tcell "codeberg.org/anaseto/gruid-tcell"
	tc "github.com/gdamore/tcell/v2"
)

const Tiles = false

var driver gruid.Driver

func initDriver(_ bool) {
	driver = tcell.NewDriver(tcell.Config{StyleManager: termStyler{}})
}

// termColor is a palette color as shown by 256-color and true color
// terminals.
type termColor struct {
	xterm   int // index in the xterm 256-color palette
	r, g, b int32
}

var termPalette = map[gruid.Color]termColor{
	ColorBackgroundSecondary: {235, 24, 73, 86},
	ColorForegroundSecondary: {240, 114, 137, 143},
	ColorForegroundEmph:      {245, 202, 216, 217},
	ColorRed:                 {160, 250, 87, 80},
	ColorGreen:               {64, 117, 185, 56},
	ColorYellow:              {136, 219, 179, 45},
	ColorBlue:                {33, 88, 163, 255},
	ColorMagenta:             {125, 242, 117, 190},
	ColorCyan:                {37, 65, 199, 185},
	ColorOrange:              {166, 237, 134, 73},
	ColorViolet:              {61, 175, 136, 235},
}

// Colors used for the default foreground and background.
var (
	termFg = termColor{244, 173, 188, 188}
	termBg = termColor{234, 16, 60, 72}
)

func lookupTermColor(c gruid.Color, def termColor) termColor {
	if tcl, ok := termPalette[c]; ok {
		return tcl
	}
	return def
}

func (tcl termColor) color() tc.Color {
	if ColorMode == ColorMode24bit {
		return tc.NewRGBColor(tcl.r, tcl.g, tcl.b)
	}
	return tc.PaletteColor(tcl.xterm)
}

// ansiColor returns the basic terminal color of c. In 8-color mode, bright
// colors fall back to their dim variant.
func ansiColor(c gruid.Color) tc.Color {
	if c == gruid.ColorDefault {
		return tc.ColorDefault
	}
	if ColorMode == ColorMode8 && c > 8 {
		c -= 8
	}
	return tc.PaletteColor(int(c) - 1)
}

// termStyler implements the tcell.StyleManager interface.
type termStyler struct{}

func (termStyler) GetStyle(st gruid.Style) tc.Style {
	switch ColorMode {
	case ColorMode256, ColorMode24bit:
		fg, bg := lookupTermColor(st.Fg, termFg), lookupTermColor(st.Bg, termBg)
		return tc.StyleDefault.Foreground(fg.color()).Background(bg.color())
	default:
		return tc.StyleDefault.Foreground(ansiColor(st.Fg)).Background(ansiColor(st.Bg))
	}
}
