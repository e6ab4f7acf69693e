package jill

import (
	"image/color"
	"math"
	"testing"
)

type drawCall struct {
	op         string
	x, y, w, h float64
	text       string
	c          color.RGBA
}

// recordingSurface logs every primitive instead of drawing it.
type recordingSurface struct {
	w, h  int
	calls []drawCall
}

func (r *recordingSurface) Size() (int, int) { return r.w, r.h }

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "rect", x: x, y: y, w: w, h: h, c: c})
}

func (r *recordingSurface) StrokeRect(x, y, w, h, _ float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "stroke", x: x, y: y, w: w, h: h, c: c})
}

func (r *recordingSurface) FillTriangle(x1, y1, _, _, _, _ float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "triangle", x: x1, y: y1, c: c})
}

func (r *recordingSurface) FillCircle(cx, cy, rad float64, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "circle", x: cx, y: cy, w: rad, c: c})
}

func (r *recordingSurface) Text(x, y, size float64, s string, c color.RGBA) {
	r.calls = append(r.calls, drawCall{op: "text", x: x, y: y, h: size, text: s, c: c})
}

func (r *recordingSurface) count(op string, c color.RGBA) int {
	n := 0
	for _, call := range r.calls {
		if call.op == op && call.c == c {
			n++
		}
	}
	return n
}

func (r *recordingSurface) texts() []drawCall {
	var out []drawCall
	for _, call := range r.calls {
		if call.op == "text" {
			out = append(out, call)
		}
	}
	return out
}

func TestFitTransform(t *testing.T) {
	tests := []struct {
		name          string
		sw, sh        int
		ww, wh        float64
		scale, ox, oy float64
	}{
		{"exact fit", 640, 512, 640, 512, 1, 0, 0},
		{"wide surface", 1280, 512, 640, 512, 1, 320, 0},
		{"tall surface", 320, 512, 640, 512, 0.5, 0, 128},
		{"double", 1280, 1024, 640, 512, 2, 0, 0},
		{"empty world", 100, 100, 0, 0, 1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := FitTransform(tc.sw, tc.sh, tc.ww, tc.wh)
			if tr.Scale != tc.scale || tr.OffsetX != tc.ox || tr.OffsetY != tc.oy {
				t.Errorf("FitTransform = %+v, expected scale %v offset (%v,%v)", tr, tc.scale, tc.ox, tc.oy)
			}
		})
	}

	x, y := Transform{Scale: 2, OffsetX: 10, OffsetY: 5}.Apply(3, 4)
	if x != 16 || y != 13 {
		t.Errorf("Apply(3,4) = (%v,%v), expected (16,13)", x, y)
	}
}

func TestRenderOrder(t *testing.T) {
	s := freshState(t)
	surf := &recordingSurface{w: 640, h: 512}

	Renderer{}.Render(surf, s)

	if len(surf.calls) < 2 {
		t.Fatalf("only %d draw calls", len(surf.calls))
	}
	first := surf.calls[0]
	if first.op != "rect" || first.c != colorClear || first.w != 640 || first.h != 512 {
		t.Errorf("first call = %+v, expected full-surface clear", first)
	}
	if surf.calls[1].c != colorBackground {
		t.Errorf("second call color = %v, expected background", surf.calls[1].c)
	}

	// Each layer must come after the one below it. Doors share the platform
	// color, so they are matched by position.
	index := func(match func(drawCall) bool) int {
		for i, call := range surf.calls {
			if match(call) {
				return i
			}
		}
		return -1
	}
	is := func(op string, c color.RGBA) func(drawCall) bool {
		return func(call drawCall) bool { return call.op == op && call.c == c }
	}
	layers := []struct {
		name  string
		match func(drawCall) bool
	}{
		{"wall", is("rect", TileWall.Color())},
		{"gem", is("circle", TileGem.Color())},
		{"key", is("rect", TileKey.Color())},
		{"door", isDoorAt(256, 448)},
		{"player", is("rect", colorPlayer)},
		{"hud", is("text", colorHUD)},
	}
	prev := 0
	for _, l := range layers {
		i := index(l.match)
		if i < 0 {
			t.Errorf("%s layer not drawn", l.name)
			continue
		}
		if i < prev {
			t.Errorf("%s layer drawn at call %d, before the previous layer at %d", l.name, i, prev)
		}
		prev = i
	}
}

func isDoorAt(x, y float64) func(drawCall) bool {
	return func(call drawCall) bool {
		return call.op == "rect" && call.c == TileDoor.Color() && call.x == x && call.y == y
	}
}

func TestRenderTerrainOnly(t *testing.T) {
	s := freshState(t)
	surf := &recordingSurface{w: 640, h: 512}

	Renderer{}.Render(surf, s)

	walls, spikes, exits := 0, 0, 0
	for _, row := range s.Level.Tiles {
		for _, k := range row {
			switch k {
			case TileWall:
				walls++
			case TileSpike:
				spikes++
			case TileExit:
				exits++
			}
		}
	}
	if got := surf.count("stroke", colorWallStroke); got != walls {
		t.Errorf("wall strokes = %d, expected %d", got, walls)
	}
	if got := surf.count("triangle", colorSpikeTooth); got != spikes*4 {
		t.Errorf("spike teeth = %d, expected %d", got, spikes*4)
	}
	if got := surf.count("rect", colorExitInner); got != exits {
		t.Errorf("exit insets = %d, expected %d", got, exits)
	}
	// Gem cells are drawn only as circles, never as tile squares.
	if got := surf.count("rect", TileGem.Color()); got != 0 {
		t.Errorf("gem tile squares = %d, expected 0", got)
	}
}

func TestRenderSkipsCollected(t *testing.T) {
	s := freshState(t)
	s.collect(ItemGem, 0)
	s.collect(ItemKey, 0)
	s.openDoor(0)
	surf := &recordingSurface{w: 640, h: 512}

	Renderer{}.Render(surf, s)

	if got := surf.count("circle", TileGem.Color()); got != 1 {
		t.Errorf("gems drawn = %d, expected 1", got)
	}
	if got := surf.count("rect", TileKey.Color()); got != 0 {
		t.Errorf("key rects = %d, expected 0", got)
	}
	for _, call := range surf.calls {
		if isDoorAt(256, 448)(call) {
			t.Error("opened door was drawn")
		}
	}
}

func TestRenderHUDScales(t *testing.T) {
	s := freshState(t)
	s.collect(ItemGem, 1)
	surf := &recordingSurface{w: 1280, h: 1024}

	Renderer{}.Render(surf, s)

	texts := surf.texts()
	if len(texts) != 3 {
		t.Fatalf("HUD lines = %d, expected 3", len(texts))
	}
	expected := []string{"Gems: 1/2", "Keys: 0/1", "Level: 1"}
	for i, call := range texts {
		if call.text != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, call.text, expected[i])
		}
		if call.x != 20 || call.y != float64(40*(i+1)) {
			t.Errorf("line %d at (%v,%v), expected (20,%d)", i, call.x, call.y, 40*(i+1))
		}
		if call.h != 2*hudFontSize {
			t.Errorf("line %d size = %v, expected %v", i, call.h, 2*hudFontSize)
		}
	}
}

func TestRenderPlayerFacing(t *testing.T) {
	s := freshState(t)
	s.Player.Position = Vec{X: 100, Y: 50}

	eyeX := func(facingRight bool) float64 {
		s.Player.FacingRight = facingRight
		surf := &recordingSurface{w: 640, h: 512}
		Renderer{}.Render(surf, s)
		for _, call := range surf.calls {
			if call.op == "rect" && call.c == colorEye {
				return call.x
			}
		}
		return math.NaN()
	}

	if got := eyeX(true); got != 114 {
		t.Errorf("eye x facing right = %v, expected 114", got)
	}
	if got := eyeX(false); got != 104 {
		t.Errorf("eye x facing left = %v, expected 104", got)
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	s := freshState(t)
	before := s.Clone()

	Renderer{}.Render(&recordingSurface{w: 320, h: 200}, s)

	if s.Player != before.Player || s.CollectedGems != before.CollectedGems || s.Level.At(8, 14) != before.Level.At(8, 14) {
		t.Error("Render modified the state")
	}
}
