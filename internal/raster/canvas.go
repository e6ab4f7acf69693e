// Package raster implements a software 2D drawing surface over image.RGBA.
// Paths are filled with golang.org/x/image/vector and text is drawn with the
// 7x13 bitmap face, scaled to the requested pixel height.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas is an in-memory RGBA drawing surface.
type Canvas struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// NewCanvas creates a black canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
	c.Clear(color.RGBA{A: 0xFF})
	return c
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// FillRect fills an axis-aligned rectangle. Edges are rounded to whole pixels.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	r := pixelRect(x, y, w, h)
	xdraw.Draw(c.img, r, image.NewUniform(col), image.Point{}, xdraw.Over)
}

// StrokeRect outlines a rectangle with the given line width, drawn inside
// the rectangle's edges.
func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col color.RGBA) {
	lw := math.Max(1, math.Round(lineWidth))
	c.FillRect(x, y, w, lw, col)
	c.FillRect(x, y+h-lw, w, lw, col)
	c.FillRect(x, y, lw, h, col)
	c.FillRect(x+w-lw, y, lw, h, col)
}

// FillTriangle fills the triangle with the given corners.
func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col color.RGBA) {
	minX, maxX := min(x1, x2, x3), max(x1, x2, x3)
	minY, maxY := min(y1, y2, y3), max(y1, y2, y3)
	c.fillPath(minX, minY, maxX, maxY, col, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(float32(x1-ox), float32(y1-oy))
		z.LineTo(float32(x2-ox), float32(y2-oy))
		z.LineTo(float32(x3-ox), float32(y3-oy))
		z.ClosePath()
	})
}

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// FillCircle fills a circle centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	if r <= 0 {
		return
	}
	c.fillPath(cx-r, cy-r, cx+r, cy+r, col, func(z *vector.Rasterizer, ox, oy float64) {
		x, y := cx-ox, cy-oy
		k := r * kappa
		z.MoveTo(float32(x+r), float32(y))
		z.CubeTo(float32(x+r), float32(y+k), float32(x+k), float32(y+r), float32(x), float32(y+r))
		z.CubeTo(float32(x-k), float32(y+r), float32(x-r), float32(y+k), float32(x-r), float32(y))
		z.CubeTo(float32(x-r), float32(y-k), float32(x-k), float32(y-r), float32(x), float32(y-r))
		z.CubeTo(float32(x+k), float32(y-r), float32(x+r), float32(y-k), float32(x+r), float32(y))
		z.ClosePath()
	})
}

// fillPath rasterizes a path into a mask covering its bounding box and
// composites col through it. build receives the box origin to subtract.
func (c *Canvas) fillPath(minX, minY, maxX, maxY float64, col color.RGBA, build func(z *vector.Rasterizer, ox, oy float64)) {
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	if x1 <= x0 || y1 <= y0 {
		return
	}
	box := image.Rect(x0, y0, x1, y1)
	if box.Intersect(c.img.Bounds()).Empty() {
		return
	}

	w, h := box.Dx(), box.Dy()
	c.z.Reset(w, h)
	build(&c.z, float64(x0), float64(y0))

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	c.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	xdraw.DrawMask(c.img, box, image.NewUniform(col), image.Point{}, mask, image.Point{}, xdraw.Over)
}

// Text draws s with its baseline at y, scaled so glyph cells are size
// pixels tall. Sizes under one pixel draw nothing.
func (c *Canvas) Text(x, y, size float64, s string, col color.RGBA) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	cellH := float64(metrics.Height.Ceil())
	ascent := float64(metrics.Ascent.Ceil())
	scale := size / cellH
	if s == "" || scale*cellH < 1 {
		return
	}

	advance := font.MeasureString(face, s).Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, advance, int(cellH)))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, int(ascent)),
	}
	d.DrawString(s)

	dst := pixelRect(x, y-ascent*scale, float64(advance)*scale, cellH*scale)
	if dst.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return encodePNG(w, c.img)
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("raster: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := encodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// pixelRect rounds a float rectangle to the pixel grid.
func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
}
