package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	green = color.RGBA{G: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func TestNewCanvasIsBlack(t *testing.T) {
	c := NewCanvas(8, 4)
	w, h := c.Size()
	if w != 8 || h != 4 {
		t.Fatalf("Size() = %dx%d, expected 8x4", w, h)
	}
	if c.At(3, 2) != black {
		t.Errorf("At(3, 2) = %v, expected black", c.At(3, 2))
	}
}

func TestFillRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillRect(2, 2, 3, 3, red)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{2, 2, red},
		{4, 4, red},
		{5, 5, black},
		{1, 2, black},
	}
	for _, tc := range tests {
		if got := c.At(tc.x, tc.y); got != tc.expected {
			t.Errorf("At(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(-10, -10, 100, 100, green) // must not panic
	if c.At(0, 0) != green || c.At(3, 3) != green {
		t.Error("oversized rect should cover the whole canvas")
	}
}

func TestStrokeRect(t *testing.T) {
	c := NewCanvas(10, 10)
	c.StrokeRect(0, 0, 10, 10, 1, red)

	if c.At(0, 5) != red || c.At(9, 5) != red || c.At(5, 0) != red || c.At(5, 9) != red {
		t.Error("stroke should paint every edge")
	}
	if c.At(5, 5) != black {
		t.Errorf("stroke interior = %v, expected black", c.At(5, 5))
	}
}

func TestFillTriangle(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillTriangle(0, 19, 10, 0, 19, 19, red)

	if got := c.At(10, 15); got != red {
		t.Errorf("triangle interior = %v, expected red", got)
	}
	if got := c.At(1, 1); got != black {
		t.Errorf("outside triangle = %v, expected black", got)
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillCircle(10, 10, 6, green)

	if got := c.At(10, 10); got != green {
		t.Errorf("circle center = %v, expected green", got)
	}
	if got := c.At(1, 1); got != black {
		t.Errorf("circle corner = %v, expected black", got)
	}
	// Partly outside the canvas.
	c.FillCircle(0, 0, 5, red)
	if got := c.At(1, 1); got != red {
		t.Errorf("clipped circle = %v, expected red", got)
	}
}

func TestTextDrawsPixels(t *testing.T) {
	c := NewCanvas(100, 40)
	c.Text(2, 30, 26, "Gems", red)

	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if c.At(x, y) == red {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("Text should paint some pixels")
	}
	// Nothing below the descent area.
	for x := 0; x < 100; x++ {
		if c.At(x, 39) == red {
			t.Fatalf("Text painted below its cell at x=%d", x)
		}
	}
}

func TestTextTooSmallIsSkipped(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Text(0, 5, 0.5, "x", red)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.At(x, y) != black {
				t.Fatalf("sub-pixel text painted (%d, %d)", x, y)
			}
		}
	}
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(6, 3)
	c.FillRect(0, 0, 3, 3, red)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded size = %v, expected 6x3", img.Bounds())
	}
	r, _, _, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xFF {
		t.Errorf("decoded pixel red = %d, expected 255", r>>8)
	}
}

func TestSavePNG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 2, 2, green)
	path := filepath.Join(t.TempDir(), "shots", "frame.png")

	if err := SavePNG(path, c.Image()); err != nil {
		t.Fatalf("SavePNG() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v, expected 4x2", b)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r != 0 || g != 0xFFFF {
		t.Errorf("pixel (0,0) = %v, expected green", img.At(0, 0))
	}
}
