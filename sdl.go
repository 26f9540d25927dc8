//go:build sdl

package main

import (
	"codeberg.org/anaseto/gruid"
	sdl "codeberg.org/anaseto/gruid-sdl"
)

var driver gruid.Driver

func initDriver(fullscreen bool) {
	dr := sdl.NewDriver(sdl.Config{
		TileManager: &glyphTileManager{},
		Fullscreen:  fullscreen,
		WindowTitle: "Siheyuan",
	})
	dr.SetScale(2, 2)
	driver = dr
}
