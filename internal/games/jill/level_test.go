package jill

import (
	"errors"
	"testing"
)

func TestLoadLevelOne(t *testing.T) {
	s, err := LoadLevel(1, DefaultParams())
	if err != nil {
		t.Fatalf("LoadLevel(1) error: %v", err)
	}

	if s.TotalGems != 2 {
		t.Errorf("TotalGems = %d, expected 2", s.TotalGems)
	}
	if s.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, expected 1", s.TotalKeys)
	}
	if s.Player.Position != (Vec{X: 64, Y: 64}) {
		t.Errorf("start position = %+v, expected (64,64)", s.Player.Position)
	}
	if s.Player.OnGround {
		t.Error("OnGround should be false on a fresh level")
	}
	if s.CollectedGems != 0 || s.CollectedKeys != 0 {
		t.Errorf("counters = %d/%d, expected 0/0", s.CollectedGems, s.CollectedKeys)
	}
	if s.Level.Width != 20 || s.Level.Height != 16 {
		t.Errorf("grid = %dx%d, expected 20x16", s.Level.Width, s.Level.Height)
	}
	if len(s.Doors) != 1 || !s.Doors[0].KeyRequired {
		t.Errorf("doors = %+v, expected one locked door", s.Doors)
	}
	if s.Gravity != 800 {
		t.Errorf("Gravity = %v, expected 800", s.Gravity)
	}
}

func TestLoadLevelDerivesPixelPositions(t *testing.T) {
	s, err := LoadLevel(1, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	expectedGems := []Collectable{{X: 160, Y: 64}, {X: 256, Y: 64}}
	for i, g := range expectedGems {
		if s.Gems[i] != g {
			t.Errorf("Gems[%d] = %+v, expected %+v", i, s.Gems[i], g)
		}
	}
	if s.Keys[0] != (Collectable{X: 64, Y: 416}) {
		t.Errorf("Keys[0] = %+v, expected (64,416)", s.Keys[0])
	}
	if s.Doors[0].X != 256 || s.Doors[0].Y != 448 {
		t.Errorf("Doors[0] at (%v,%v), expected (256,448)", s.Doors[0].X, s.Doors[0].Y)
	}
}

func TestLoadLevelUsesParams(t *testing.T) {
	p := DefaultParams()
	p.TileSize = 16
	p.Gravity = 500

	s, err := LoadLevel(1, p)
	if err != nil {
		t.Fatal(err)
	}
	if s.Player.Position != (Vec{X: 32, Y: 32}) {
		t.Errorf("start position = %+v, expected (32,32)", s.Player.Position)
	}
	if s.Level.PixelWidth() != 320 {
		t.Errorf("PixelWidth() = %v, expected 320", s.Level.PixelWidth())
	}
	if s.Gravity != 500 {
		t.Errorf("Gravity = %v, expected 500", s.Gravity)
	}
}

func TestLoadLevelUnknown(t *testing.T) {
	for _, id := range []int{0, 2, -1} {
		if _, err := LoadLevel(id, DefaultParams()); !errors.Is(err, ErrLevelNotFound) {
			t.Errorf("LoadLevel(%d) error = %v, expected ErrLevelNotFound", id, err)
		}
	}
}

func TestLoadLevelCopiesGrid(t *testing.T) {
	a, _ := LoadLevel(1, DefaultParams())
	a.Level.Set(8, 14, TileEmpty)

	b, _ := LoadLevel(1, DefaultParams())
	if b.Level.At(8, 14) != TileDoor {
		t.Error("mutating one loaded level leaked into the template")
	}
}

func TestLevelIDs(t *testing.T) {
	ids := LevelIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("LevelIDs() = %v, expected [1]", ids)
	}
	if !HasLevel(1) || HasLevel(2) {
		t.Error("HasLevel should report only level 1")
	}
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		ok   bool
	}{
		{
			name: "valid without items",
			yaml: "id: 9\nstart: {col: 1, row: 0}\nrows:\n  - \"000\"\n  - \"111\"\n",
			ok:   true,
		},
		{
			name: "no rows",
			yaml: "id: 9\nrows: []\n",
		},
		{
			name: "ragged rows",
			yaml: "id: 9\nrows:\n  - \"000\"\n  - \"11\"\n",
		},
		{
			name: "unknown tile",
			yaml: "id: 9\nrows:\n  - \"0x0\"\n",
		},
		{
			name: "start outside grid",
			yaml: "id: 9\nstart: {col: 5, row: 0}\nrows:\n  - \"000\"\n",
		},
		{
			name: "not yaml",
			yaml: "rows: [",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := parseTemplate([]byte(tc.yaml))
			if tc.ok {
				if err != nil {
					t.Fatalf("parseTemplate error: %v", err)
				}
				s := tmpl.instantiate(DefaultParams())
				if s.TotalGems != 0 || s.TotalKeys != 0 {
					t.Errorf("totals = %d/%d, expected 0/0", s.TotalGems, s.TotalKeys)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("parseTemplate error = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestTileKindBehaviour(t *testing.T) {
	tests := []struct {
		kind                   TileKind
		solid, hazard, terrain bool
	}{
		{TileEmpty, false, false, false},
		{TileWall, true, false, true},
		{TilePlatform, true, false, true},
		{TileSpike, false, true, true},
		{TileGem, false, false, false},
		{TileKey, false, false, false},
		{TileDoor, false, false, false},
		{TileExit, false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if tc.kind.Solid() != tc.solid {
				t.Errorf("Solid() = %v, expected %v", tc.kind.Solid(), tc.solid)
			}
			if tc.kind.Hazard() != tc.hazard {
				t.Errorf("Hazard() = %v, expected %v", tc.kind.Hazard(), tc.hazard)
			}
			if tc.kind.Terrain() != tc.terrain {
				t.Errorf("Terrain() = %v, expected %v", tc.kind.Terrain(), tc.terrain)
			}
			parsed, err := ParseTile(rune(tc.kind.Code()))
			if err != nil || parsed != tc.kind {
				t.Errorf("ParseTile(Code()) = %v, %v", parsed, err)
			}
		})
	}

	if TileKind(8).Valid() {
		t.Error("TileKind(8) should not be valid")
	}
}
