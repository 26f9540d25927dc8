// This file contains terrain and item kinds, along with their basic
// properties.

package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// These constants represent the different kind of map tiles. The wall
// variants encode their neighboring walls as a NSEW bit mask, in that order
// from high bit to low bit.
const (
	GroundNormal rl.Cell = iota // outside ground
	GroundGrass                 // courtyards and gardens
	GroundWater                 // pools: guards avoid it, the player can hide under it
	GroundMarble                // private room floor
	GroundWood                  // public room floor
	GroundWoodCreaky            // noisy public room floor

	Wall0000
	Wall0001
	Wall0010
	Wall0011
	Wall0100
	Wall0101
	Wall0110
	Wall0111
	Wall1000
	Wall1001
	Wall1010
	Wall1011
	Wall1100
	Wall1101
	Wall1110
	Wall1111

	OneWayWindowE // can be crossed and seen through only eastwards
	OneWayWindowW
	OneWayWindowN
	OneWayWindowS
	PortcullisNS
	PortcullisEW
	DoorNS
	DoorEW
	GardenDoorNS // opening between two courtyards
	GardenDoorEW
)

// Wall mask bits used by fixupWalls.
const (
	wallBitW = 1 << iota
	wallBitE
	wallBitS
	wallBitN
)

// isWallTerrain reports whether t is one of the sixteen oriented wall tiles.
func isWallTerrain(t rl.Cell) bool {
	return t >= Wall0000 && t <= Wall1111
}

// joinsWalls reports whether t counts as a wall when computing the wall mask
// of a neighbor: walls, windows and doorways all continue a wall line.
func joinsWalls(t rl.Cell) bool {
	return t >= Wall0000 && t <= GardenDoorEW
}

// isWindowTerrain reports whether t is a one-way window.
func isWindowTerrain(t rl.Cell) bool {
	return t >= OneWayWindowE && t <= OneWayWindowS
}

// isDoorwayTerrain reports whether t is a portcullis, door or garden door.
func isDoorwayTerrain(t rl.Cell) bool {
	return t >= PortcullisNS
}

// allowedDirection reports whether terrain t can be entered (or seen into)
// when moving along (dx, dy).
func allowedDirection(t rl.Cell, dx, dy int) bool {
	switch t {
	case OneWayWindowE:
		return dx > 0
	case OneWayWindowW:
		return dx < 0
	case OneWayWindowN:
		return dy > 0
	case OneWayWindowS:
		return dy < 0
	default:
		return true
	}
}

// windowTerrainForDir returns the one-way window terrain for a wall segment
// running along dir. The window lets view through towards the left of dir.
func windowTerrainForDir(dir gruid.Point) rl.Cell {
	switch dir {
	case gruid.Point{1, 0}:
		return OneWayWindowN
	case gruid.Point{-1, 0}:
		return OneWayWindowS
	case gruid.Point{0, 1}:
		return OneWayWindowW
	default:
		return OneWayWindowE
	}
}

// TerrainName returns a short description of the terrain.
func TerrainName(t rl.Cell) string {
	switch {
	case t == GroundNormal:
		return "ground"
	case t == GroundGrass:
		return "grass"
	case t == GroundWater:
		return "water"
	case t == GroundMarble:
		return "marble floor"
	case t == GroundWood:
		return "wooden floor"
	case t == GroundWoodCreaky:
		return "creaky wooden floor"
	case isWallTerrain(t):
		return "wall"
	case isWindowTerrain(t):
		return "one-way window"
	case t == PortcullisNS || t == PortcullisEW:
		return "portcullis"
	case t == DoorNS || t == DoorEW:
		return "doorway"
	default:
		return "garden gate"
	}
}

// wallRunes maps wall masks to box drawing characters.
var wallRunes = [16]rune{
	'■', '─', '─', '─',
	'│', '┐', '┌', '┬',
	'│', '┘', '└', '┴',
	'│', '┤', '├', '┼',
}

// TerrainRune returns the character rune representing a given terrain.
func TerrainRune(t rl.Cell) rune {
	switch {
	case t == GroundNormal:
		return '.'
	case t == GroundGrass:
		return '"'
	case t == GroundWater:
		return '~'
	case t == GroundMarble:
		return '·'
	case t == GroundWood, t == GroundWoodCreaky:
		return '.'
	case isWallTerrain(t):
		return wallRunes[t-Wall0000]
	case t == OneWayWindowE:
		return '>'
	case t == OneWayWindowW:
		return '<'
	case t == OneWayWindowN:
		return '^'
	case t == OneWayWindowS:
		return 'v'
	case t == PortcullisNS || t == PortcullisEW:
		return '#'
	case t == DoorNS:
		return '|'
	case t == DoorEW:
		return '-'
	default:
		return ':'
	}
}

// ItemKind represents the kinds of items that can be placed on the map.
type ItemKind int

const (
	ItemChair ItemKind = iota
	ItemTable
	ItemBush
	ItemCoin
	ItemDoorNS
	ItemDoorEW
	ItemPortcullisNS
	ItemPortcullisEW
	ItemTorchUnlit
	ItemTorchLit
)

// Item is an object placed at a given map position.
type Item struct {
	P    gruid.Point
	Kind ItemKind
}

// IsTorch reports whether the item is a torch, lit or not.
func (k ItemKind) IsTorch() bool {
	return k == ItemTorchUnlit || k == ItemTorchLit
}

// isDoor reports whether the item is a closed door (not a portcullis).
func (k ItemKind) isDoor() bool {
	return k == ItemDoorNS || k == ItemDoorEW
}

// isPortcullis reports whether the item is a portcullis.
func (k ItemKind) isPortcullis() bool {
	return k == ItemPortcullisNS || k == ItemPortcullisEW
}

// guardMoveCost returns the extra movement cost for guards through a cell
// containing an item of this kind.
func (k ItemKind) guardMoveCost() int {
	switch k {
	case ItemChair:
		return 4
	case ItemTable, ItemBush:
		return 10
	case ItemTorchUnlit, ItemTorchLit:
		return Impassable
	default:
		return 0
	}
}

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemChair:
		return "chair"
	case ItemTable:
		return "table"
	case ItemBush:
		return "bush"
	case ItemCoin:
		return "coin"
	case ItemDoorNS, ItemDoorEW:
		return "door"
	case ItemPortcullisNS, ItemPortcullisEW:
		return "portcullis"
	case ItemTorchUnlit:
		return "unlit torch"
	case ItemTorchLit:
		return "lit torch"
	default:
		return "unknown item"
	}
}

// Rune returns the character rune representing the item kind.
func (k ItemKind) Rune() rune {
	switch k {
	case ItemChair:
		return 'h'
	case ItemTable:
		return 'π'
	case ItemBush:
		return '♣'
	case ItemCoin:
		return '$'
	case ItemDoorNS:
		return '|'
	case ItemDoorEW:
		return '-'
	case ItemPortcullisNS, ItemPortcullisEW:
		return '#'
	case ItemTorchUnlit:
		return 'i'
	case ItemTorchLit:
		return '¡'
	default:
		return '?'
	}
}
