package jill

import (
	"fmt"
	"image/color"
)

// Surface is a 2D raster target measured in surface pixels.
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, lineWidth float64, c color.RGBA)
	FillTriangle(x1, y1, x2, y2, x3, y3 float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	// Text draws s with its baseline at y and the given pixel height.
	Text(x, y, size float64, s string, c color.RGBA)
}

var (
	colorClear      = rgb(0x000000)
	colorBackground = rgb(0x000033)
	colorWallStroke = rgb(0x3D2817)
	colorSpikeTooth = rgb(0xAA0000)
	colorExitInner  = rgb(0x005500)
	colorDoorHandle = rgb(0x000000)
	colorPlayer     = rgb(0xFF69B4)
	colorEye        = rgb(0xFFFFFF)
	colorHUD        = rgb(0xFFFFFF)
)

// hudFontSize is the HUD text height in world pixels.
const hudFontSize = 16

// Transform maps world pixels to surface pixels: uniform scale, then offset.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitTransform scales a world of the given size to fit the surface and
// centers it, leaving bars on the slack axis.
func FitTransform(surfaceW, surfaceH int, worldW, worldH float64) Transform {
	if worldW <= 0 || worldH <= 0 {
		return Transform{Scale: 1}
	}
	sw, sh := float64(surfaceW), float64(surfaceH)
	scale := min(sw/worldW, sh/worldH)
	return Transform{
		Scale:   scale,
		OffsetX: (sw - worldW*scale) / 2,
		OffsetY: (sh - worldH*scale) / 2,
	}
}

// Apply converts a world point to surface coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

// world draws onto a surface through a transform.
type world struct {
	dst Surface
	t   Transform
}

func (w world) fillRect(x, y, width, height float64, c color.RGBA) {
	sx, sy := w.t.Apply(x, y)
	w.dst.FillRect(sx, sy, width*w.t.Scale, height*w.t.Scale, c)
}

func (w world) strokeRect(x, y, width, height, line float64, c color.RGBA) {
	sx, sy := w.t.Apply(x, y)
	w.dst.StrokeRect(sx, sy, width*w.t.Scale, height*w.t.Scale, line*w.t.Scale, c)
}

func (w world) fillTriangle(x1, y1, x2, y2, x3, y3 float64, c color.RGBA) {
	ax, ay := w.t.Apply(x1, y1)
	bx, by := w.t.Apply(x2, y2)
	cx, cy := w.t.Apply(x3, y3)
	w.dst.FillTriangle(ax, ay, bx, by, cx, cy, c)
}

func (w world) fillCircle(cx, cy, r float64, c color.RGBA) {
	sx, sy := w.t.Apply(cx, cy)
	w.dst.FillCircle(sx, sy, r*w.t.Scale, c)
}

func (w world) text(x, y, size float64, s string, c color.RGBA) {
	sx, sy := w.t.Apply(x, y)
	w.dst.Text(sx, sy, size*w.t.Scale, s, c)
}

// Renderer paints a GameState onto a Surface.
type Renderer struct{}

// Render draws one frame. It reads the state and never modifies it.
// The HUD is drawn in world space, so it scales with the level.
func (Renderer) Render(dst Surface, s *GameState) {
	sw, sh := dst.Size()
	dst.FillRect(0, 0, float64(sw), float64(sh), colorClear)

	l := s.Level
	w := world{dst: dst, t: FitTransform(sw, sh, l.PixelWidth(), l.PixelHeight())}
	ts := l.TileSize

	w.fillRect(0, 0, l.PixelWidth(), l.PixelHeight(), colorBackground)

	for row := range l.Height {
		for col := range l.Width {
			k := l.Tiles[row][col]
			if !k.Terrain() {
				continue
			}
			drawTile(w, k, float64(col)*ts, float64(row)*ts, ts)
		}
	}

	for _, g := range s.Gems {
		if !g.Collected {
			w.fillCircle(g.X+ts/2, g.Y+ts/2, ts/3, TileGem.Color())
		}
	}

	for _, k := range s.Keys {
		if !k.Collected {
			c := TileKey.Color()
			w.fillRect(k.X+ts/4, k.Y+ts/3, ts/2, ts/6, c)
			w.fillRect(k.X+ts/2-ts/8, k.Y+ts/2, ts/4, ts/3, c)
		}
	}

	for _, d := range s.Doors {
		if !d.Opened {
			w.fillRect(d.X, d.Y, ts, ts, TileDoor.Color())
			w.fillRect(d.X+ts-ts/4, d.Y+ts/2, ts/8, ts/8, colorDoorHandle)
		}
	}

	p := s.Player
	w.fillRect(p.Position.X, p.Position.Y, p.Width, p.Height, colorPlayer)
	eyeX := p.Position.X + 4
	if p.FacingRight {
		eyeX = p.Position.X + p.Width - 10
	}
	w.fillRect(eyeX, p.Position.Y+6, 6, 6, colorEye)

	for i, line := range HUDLines(s) {
		w.text(10, float64(20*(i+1)), hudFontSize, line, colorHUD)
	}
}

// drawTile paints one terrain cell with its decorations.
func drawTile(w world, k TileKind, x, y, ts float64) {
	w.fillRect(x, y, ts, ts, k.Color())
	switch k {
	case TileWall:
		w.strokeRect(x, y, ts, ts, 1, colorWallStroke)
	case TileSpike:
		for i := range 4 {
			fi := float64(i)
			w.fillTriangle(
				x+fi*8+4, y+ts,
				x+fi*8+8, y+ts-12,
				x+fi*8+12, y+ts,
				colorSpikeTooth,
			)
		}
	case TileExit:
		w.fillRect(x+4, y+4, ts-8, ts-8, colorExitInner)
	case TileEmpty, TilePlatform, TileGem, TileKey, TileDoor:
	}
}

// HUDLines returns the status lines shown over the level.
func HUDLines(s *GameState) []string {
	return []string{
		fmt.Sprintf("Gems: %d/%d", s.CollectedGems, s.TotalGems),
		fmt.Sprintf("Keys: %d/%d", s.CollectedKeys, s.TotalKeys),
		fmt.Sprintf("Level: %d", s.Level.ID),
	}
}
