package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// Thoses are the colors of the main palette. They are given 16-palette color
// numbers compatible with terminals, though they are then mapped to more
// precise colors depending on options and the driver.
const (
	ColorBackground          gruid.Color = gruid.ColorDefault // background
	ColorBackgroundSecondary gruid.Color = 1 + 0              // black
	ColorForeground          gruid.Color = gruid.ColorDefault
	ColorForegroundSecondary gruid.Color = 1 + 7  // white
	ColorForegroundEmph      gruid.Color = 1 + 15 // bright white
	ColorRed                 gruid.Color = 1 + 9  // bright red
	ColorGreen               gruid.Color = 1 + 2
	ColorYellow              gruid.Color = 1 + 3
	ColorBlue                gruid.Color = 1 + 4
	ColorMagenta             gruid.Color = 1 + 5
	ColorCyan                gruid.Color = 1 + 6
	ColorOrange              gruid.Color = 1 + 1  // red
	ColorViolet              gruid.Color = 1 + 12 // bright blue
)

// colorMode represents various color compatibility modes.
type colorMode int

const (
	ColorMode16    colorMode = iota
	ColorMode8               // use 8-color compatibility mode (default for windows)
	ColorMode256             // use solarized 256-color approximation
	ColorMode24bit           // use true color selenized palette
)

// ColorMode is the color mode used by the terminal driver.
var ColorMode = ColorMode16

// terrainStyle returns the style of a terrain cell.
func terrainStyle(t rl.Cell) gruid.Style {
	st := gruid.Style{Fg: ColorForeground, Bg: ColorBackground}
	switch {
	case t == GroundGrass:
		st.Fg = ColorGreen
	case t == GroundWater:
		st.Fg = ColorBlue
	case t == GroundMarble:
		st.Fg = ColorForegroundEmph
	case t == GroundWood:
		st.Fg = ColorOrange
	case t == GroundWoodCreaky:
		st.Fg = ColorYellow
	case isWallTerrain(t):
		st.Fg = ColorForegroundSecondary
	case isWindowTerrain(t):
		st.Fg = ColorCyan
	case t == PortcullisNS || t == PortcullisEW:
		st.Fg = ColorViolet
	case t == DoorNS || t == DoorEW:
		st.Fg = ColorOrange
	case t == GardenDoorNS || t == GardenDoorEW:
		st.Fg = ColorGreen
	}
	return st
}

// itemColor returns the foreground color of an item.
func itemColor(k ItemKind) gruid.Color {
	switch k {
	case ItemCoin, ItemTorchLit:
		return ColorYellow
	case ItemBush:
		return ColorGreen
	case ItemDoorNS, ItemDoorEW, ItemChair, ItemTable:
		return ColorOrange
	case ItemPortcullisNS, ItemPortcullisEW:
		return ColorViolet
	default:
		return ColorForegroundSecondary
	}
}

// guardColor returns the color of a guard, depending on its state.
func guardColor(g *Guard) gruid.Color {
	switch g.OverheadIcon() {
	case IconChasing:
		return ColorRed
	case IconAlerted:
		return ColorOrange
	default:
		return ColorMagenta
	}
}
