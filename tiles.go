//go:build js || sdl

package main

import (
	"image"
	"image/color"
	"image/draw"

	"codeberg.org/anaseto/gruid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const Tiles = true

// ColorToRGBA maps to colors from the dark selenized palette:
//
//	https://github.com/jan-warchol/selenized
func ColorToRGBA(c gruid.Color, fg bool) color.Color {
	opaque := uint8(255)
	switch c {
	case ColorBackgroundSecondary:
		return color.RGBA{24, 73, 86, opaque}
	case ColorRed:
		return color.RGBA{250, 87, 80, opaque}
	case ColorGreen:
		return color.RGBA{117, 185, 56, opaque}
	case ColorYellow:
		return color.RGBA{219, 179, 45, opaque}
	case ColorBlue:
		return color.RGBA{88, 163, 255, opaque}
	case ColorMagenta:
		return color.RGBA{242, 117, 190, opaque}
	case ColorCyan:
		return color.RGBA{65, 199, 185, opaque}
	case ColorOrange:
		return color.RGBA{237, 134, 73, opaque}
	case ColorViolet:
		return color.RGBA{175, 136, 235, opaque}
	case ColorForegroundEmph:
		return color.RGBA{202, 216, 217, opaque}
	case ColorForegroundSecondary:
		return color.RGBA{114, 137, 143, opaque}
	default:
		if fg {
			return color.RGBA{173, 188, 188, opaque}
		}
		return color.RGBA{16, 60, 72, opaque}
	}
}

// fallbackRunes replaces glyphs missing from the tile font.
var fallbackRunes = map[rune]rune{
	'♣': '*',
	'π': 'T',
	'■': '#',
	'·': '.',
}

// glyphTileManager draws tiles from a built-in bitmap font.
type glyphTileManager struct{}

func (tm *glyphTileManager) TileSize() gruid.Point {
	return gruid.Point{basicfont.Face7x13.Width, basicfont.Face7x13.Height}
}

func (tm *glyphTileManager) GetImage(gc gruid.Cell) image.Image {
	face := basicfont.Face7x13
	sz := tm.TileSize()
	img := image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y))
	bgc := ColorToRGBA(gc.Style.Bg, false)
	fgc := ColorToRGBA(gc.Style.Fg, true)
	draw.Draw(img, img.Bounds(), image.NewUniform(bgc), image.Point{}, draw.Src)
	r := gc.Rune
	if _, ok := face.GlyphAdvance(r); !ok {
		fr, ok := fallbackRunes[r]
		if !ok {
			fr = '?'
		}
		r = fr
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fgc),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(r))
	return img
}
