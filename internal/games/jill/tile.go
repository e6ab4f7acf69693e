package jill

import (
	"fmt"
	"image/color"
)

// TileKind is the content of one level cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileWall
	TilePlatform
	TileSpike
	TileGem
	TileKey
	TileDoor
	TileExit
)

// ParseTile converts a template digit ('0'..'7') into a TileKind.
func ParseTile(r rune) (TileKind, error) {
	if r < '0' || r > '7' {
		return TileEmpty, fmt.Errorf("%w: unknown tile code %q", ErrInvalidLevel, r)
	}
	return TileKind(r - '0'), nil
}

// Code returns the template digit for the kind.
func (k TileKind) Code() byte {
	return byte('0' + k)
}

// Valid reports whether k is one of the defined kinds.
func (k TileKind) Valid() bool {
	return k >= TileEmpty && k <= TileExit
}

// String returns the tile name.
func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TilePlatform:
		return "platform"
	case TileSpike:
		return "spike"
	case TileGem:
		return "gem"
	case TileKey:
		return "key"
	case TileDoor:
		return "door"
	case TileExit:
		return "exit"
	default:
		return fmt.Sprintf("tile(%d)", int(k))
	}
}

// Solid reports whether the player can stand on the tile.
// Doors are only blocking in the sense that they need a key to clear;
// the landing scan ignores them.
func (k TileKind) Solid() bool {
	switch k {
	case TileWall, TilePlatform:
		return true
	case TileEmpty, TileSpike, TileGem, TileKey, TileDoor, TileExit:
		return false
	default:
		return false
	}
}

// Hazard reports whether touching the tile kills the player.
func (k TileKind) Hazard() bool {
	switch k {
	case TileSpike:
		return true
	case TileEmpty, TileWall, TilePlatform, TileGem, TileKey, TileDoor, TileExit:
		return false
	default:
		return false
	}
}

// Terrain reports whether the tile pass of the renderer paints the kind.
// Gems, keys and doors are painted from their entity lists instead, so
// collected or opened ones disappear.
func (k TileKind) Terrain() bool {
	switch k {
	case TileWall, TilePlatform, TileSpike, TileExit:
		return true
	case TileEmpty, TileGem, TileKey, TileDoor:
		return false
	default:
		return false
	}
}

// Color returns the base fill color of the kind.
func (k TileKind) Color() color.RGBA {
	switch k {
	case TileEmpty:
		return color.RGBA{}
	case TileWall:
		return rgb(0x654321)
	case TilePlatform:
		return rgb(0x8B4513)
	case TileSpike:
		return rgb(0xFF0000)
	case TileGem:
		return rgb(0x00FFFF)
	case TileKey:
		return rgb(0xFFFF00)
	case TileDoor:
		return rgb(0x8B4513)
	case TileExit:
		return rgb(0x00FF00)
	default:
		return color.RGBA{}
	}
}

// rgb builds an opaque color from a 0xRRGGBB literal.
func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}
