package jill

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrLevelNotFound is returned when no template has the requested id.
	ErrLevelNotFound = errors.New("jill: level not found")
	// ErrInvalidLevel is returned for malformed level templates.
	ErrInvalidLevel = errors.New("jill: invalid level")
)

//go:embed levels/*.yaml
var levelFiles embed.FS

// Level is the tile grid of one level. Tiles are indexed [row][col].
// The grid never changes size after load; only single cells are rewritten.
type Level struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Width         int          `json:"width"`  // columns
	Height        int          `json:"height"` // rows
	TileSize      float64      `json:"tileSize"`
	Tiles         [][]TileKind `json:"tiles"`
	StartPosition Vec          `json:"startPosition"`
}

// At returns the kind at (col, row), or TileEmpty outside the grid.
func (l *Level) At(col, row int) TileKind {
	if !l.InBounds(col, row) {
		return TileEmpty
	}
	return l.Tiles[row][col]
}

// Set rewrites one cell. Out-of-bounds writes are ignored.
func (l *Level) Set(col, row int, k TileKind) {
	if !l.InBounds(col, row) {
		return
	}
	l.Tiles[row][col] = k
}

// InBounds reports whether (col, row) lies inside the grid.
func (l *Level) InBounds(col, row int) bool {
	return row >= 0 && row < l.Height && col >= 0 && col < l.Width
}

// PixelWidth returns the level width in pixels.
func (l *Level) PixelWidth() float64 {
	return float64(l.Width) * l.TileSize
}

// PixelHeight returns the level height in pixels.
func (l *Level) PixelHeight() float64 {
	return float64(l.Height) * l.TileSize
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	clone := *l
	clone.Tiles = make([][]TileKind, len(l.Tiles))
	for i, row := range l.Tiles {
		clone.Tiles[i] = slices.Clone(row)
	}
	return &clone
}

// levelFile is the YAML layout of a level template.
type levelFile struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Start struct {
		Col int `yaml:"col"`
		Row int `yaml:"row"`
	} `yaml:"start"`
	Rows []string `yaml:"rows"`
}

// template is a parsed level file, still in tile units.
type template struct {
	id       int
	name     string
	startCol int
	startRow int
	tiles    [][]TileKind
}

// parseTemplate parses a YAML level template.
func parseTemplate(data []byte) (*template, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("%w: yaml unmarshal: %v", ErrInvalidLevel, err)
	}
	if len(lf.Rows) == 0 {
		return nil, fmt.Errorf("%w: level %d has no rows", ErrInvalidLevel, lf.ID)
	}

	width := len(lf.Rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: level %d has empty rows", ErrInvalidLevel, lf.ID)
	}

	tiles := make([][]TileKind, len(lf.Rows))
	for r, line := range lf.Rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: level %d row %d has %d cells, expected %d",
				ErrInvalidLevel, lf.ID, r, len(line), width)
		}
		tiles[r] = make([]TileKind, width)
		for c, ch := range line {
			k, err := ParseTile(ch)
			if err != nil {
				return nil, fmt.Errorf("level %d row %d col %d: %w", lf.ID, r, c, err)
			}
			tiles[r][c] = k
		}
	}

	if lf.Start.Col < 0 || lf.Start.Col >= width || lf.Start.Row < 0 || lf.Start.Row >= len(tiles) {
		return nil, fmt.Errorf("%w: level %d start (%d,%d) outside grid",
			ErrInvalidLevel, lf.ID, lf.Start.Col, lf.Start.Row)
	}

	return &template{
		id:       lf.ID,
		name:     lf.Name,
		startCol: lf.Start.Col,
		startRow: lf.Start.Row,
		tiles:    tiles,
	}, nil
}

// templates parses every embedded level once.
var templates = sync.OnceValues(func() (map[int]*template, error) {
	result := make(map[int]*template)
	paths, err := fs.Glob(levelFiles, "levels/*.yaml")
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		data, err := levelFiles.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		t, err := parseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if _, dup := result[t.id]; dup {
			return nil, fmt.Errorf("%w: duplicate level id %d in %s", ErrInvalidLevel, t.id, p)
		}
		result[t.id] = t
	}
	return result, nil
})

// LevelIDs returns the ids of all embedded levels in ascending order.
func LevelIDs() []int {
	all, err := templates()
	if err != nil {
		return nil
	}
	ids := make([]int, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// HasLevel reports whether a template with the id exists.
func HasLevel(id int) bool {
	all, err := templates()
	if err != nil {
		return false
	}
	_, ok := all[id]
	return ok
}

// Params are the tunable physical constants applied on level load.
type Params struct {
	TileSize     float64
	PlayerWidth  float64
	PlayerHeight float64
	Speed        float64 // horizontal px/s
	JumpPower    float64 // initial upward px/s
	Gravity      float64 // px/s²
}

// DefaultParams returns the classic tuning.
func DefaultParams() Params {
	return Params{
		TileSize:     32,
		PlayerWidth:  24,
		PlayerHeight: 32,
		Speed:        150,
		JumpPower:    350,
		Gravity:      800,
	}
}

// LoadLevel builds a fresh GameState from the template with the given id.
func LoadLevel(id int, p Params) (*GameState, error) {
	all, err := templates()
	if err != nil {
		return nil, err
	}
	t, ok := all[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}
	return t.instantiate(p), nil
}

// instantiate derives entity lists from the grid and places the player.
func (t *template) instantiate(p Params) *GameState {
	level := &Level{
		ID:       t.id,
		Name:     t.name,
		Width:    len(t.tiles[0]),
		Height:   len(t.tiles),
		TileSize: p.TileSize,
		Tiles:    make([][]TileKind, len(t.tiles)),
		StartPosition: Vec{
			X: float64(t.startCol) * p.TileSize,
			Y: float64(t.startRow) * p.TileSize,
		},
	}
	for i, row := range t.tiles {
		level.Tiles[i] = slices.Clone(row)
	}

	s := &GameState{
		Level:   level,
		Gravity: p.Gravity,
		Player: Player{
			Position:    level.StartPosition,
			Width:       p.PlayerWidth,
			Height:      p.PlayerHeight,
			Speed:       p.Speed,
			JumpPower:   p.JumpPower,
			FacingRight: true,
		},
		Gems:  []Collectable{},
		Keys:  []Collectable{},
		Doors: []Door{},
	}

	for row := range level.Height {
		for col := range level.Width {
			x := float64(col) * p.TileSize
			y := float64(row) * p.TileSize
			switch level.Tiles[row][col] {
			case TileGem:
				s.Gems = append(s.Gems, Collectable{X: x, Y: y})
			case TileKey:
				s.Keys = append(s.Keys, Collectable{X: x, Y: y})
			case TileDoor:
				s.Doors = append(s.Doors, Door{X: x, Y: y, KeyRequired: true})
			}
		}
	}

	s.TotalGems = len(s.Gems)
	s.TotalKeys = len(s.Keys)
	return s
}
