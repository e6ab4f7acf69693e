package core

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit terminal color for a screen cell.
// Cells are rendered with truecolor escapes, so any RGB value is allowed.
type Color struct {
	R, G, B uint8
}

// Predefined colors for terminal chrome.
var (
	ColorBlack  = Color{0, 0, 0}
	ColorWhite  = Color{255, 255, 255}
	ColorGray   = Color{138, 138, 138}
	ColorGreen  = Color{74, 222, 128}
	ColorRed    = Color{248, 113, 113}
	ColorYellow = Color{250, 204, 21}
)

// ColorFrom converts any color.Color to a Color, dropping alpha.
func ColorFrom(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
