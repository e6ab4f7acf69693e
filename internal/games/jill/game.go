// Package jill implements Jill of the Jungle, a delta-time tile platformer.
// The simulation is pure: the host feeds elapsed seconds and held intents,
// and draws the state through the Surface interface.
package jill

import (
	"image"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/config"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/raster"
)

func init() {
	catalog.Register(catalog.Entry{
		ID:          GameID,
		Title:       "Jill of the Jungle",
		Description: "Help Jill navigate through dangerous platforming levels full of enemies and obstacles.",
		ReleaseYear: 1992,
		Genre:       "Platformer",
		CoverImage:  "/games/jill/cover.svg",
	}, func(env catalog.Env) catalog.Game {
		return New(env)
	})
}

// Game adapts a Controller to the catalog's Game interface.
type Game struct {
	env      catalog.Env
	ctrl     *Controller
	renderer Renderer
	canvas   *raster.Canvas
	event    string
}

// New creates a game. Reset must be called before Step or Render.
func New(env catalog.Env) *Game {
	return &Game{env: env}
}

// ID returns the catalog identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Jill of the Jungle" }

// Controller exposes the underlying controller.
func (g *Game) Controller() *Controller { return g.ctrl }

// Reset loads config and starts level 1.
func (g *Game) Reset(core.RuntimeConfig) error {
	params := g.loadParams()
	ctrl, err := NewController(1,
		WithLogger(g.env.Logger),
		WithCues(g.env.Cues),
		WithParams(params),
	)
	if err != nil {
		return err
	}
	g.ctrl = ctrl
	g.event = ""
	return nil
}

// loadParams reads the config file, falling back to defaults on error.
func (g *Game) loadParams() Params {
	cfg, err := config.LoadJill(g.env.ConfigPath)
	if err != nil {
		if g.env.Logger != nil {
			g.env.Logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultJillConfig()
	}
	return ParamsFromConfig(cfg)
}

// ParamsFromConfig converts file configuration into level parameters.
func ParamsFromConfig(cfg config.JillConfig) Params {
	return Params{
		TileSize:     cfg.Physics.TileSize,
		PlayerWidth:  cfg.Player.Width,
		PlayerHeight: cfg.Player.Height,
		Speed:        cfg.Player.Speed,
		JumpPower:    cfg.Player.JumpPower,
		Gravity:      cfg.Physics.Gravity,
	}
}

// ReloadConfig re-reads the config file. New values apply on the next
// level load (restart, death or exit).
func (g *Game) ReloadConfig() error {
	cfg, err := config.LoadJill(g.env.ConfigPath)
	if err != nil {
		return err
	}
	g.ctrl.SetParams(ParamsFromConfig(cfg))
	return nil
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	frame := g.ctrl.AdvanceFrame(dt, in)
	if frame.Transition != TransitionNone {
		g.event = frame.Transition.String()
	}
	return core.StepResult{Status: g.Status()}
}

// Status returns the level and HUD lines.
func (g *Game) Status() core.Status {
	s := g.ctrl.State()
	return core.Status{
		Level: s.Level.ID,
		Event: g.event,
		Info:  HUDLines(s),
	}
}

// Render paints the level into the screen, two raster rows per cell.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()*2
	if g.canvas == nil {
		g.canvas = raster.NewCanvas(w, h)
	} else if cw, ch := g.canvas.Size(); cw != w || ch != h {
		g.canvas = raster.NewCanvas(w, h)
	}
	g.renderer.Render(g.canvas, g.ctrl.State())
	dst.Blit(g.canvas.Image())
}

// Frame renders the current state at full resolution.
func (g *Game) Frame(width, height int) image.Image {
	c := raster.NewCanvas(width, height)
	g.renderer.Render(c, g.ctrl.State())
	return c.Image()
}

// SnapshotVersion returns the schema version of saves.
func (g *Game) SnapshotVersion() int { return SnapshotVersion }

// ValidateSnapshot checks that data would restore cleanly.
func (g *Game) ValidateSnapshot(data []byte) error {
	_, err := DecodeSnapshot(data)
	return err
}

// SaveTo writes the current state into a slot.
func (g *Game) SaveTo(store core.SlotStore, slot string) error {
	return g.ctrl.Save(store, slot)
}

// LoadFrom restores a slot. It returns false when the slot is empty.
func (g *Game) LoadFrom(store core.SlotStore, slot string) (bool, error) {
	ok, err := g.ctrl.Load(store, slot)
	if ok {
		g.event = ""
	}
	return ok, err
}

var (
	_ catalog.Game       = (*Game)(nil)
	_ catalog.Persistent = (*Game)(nil)
	_ catalog.Reloader   = (*Game)(nil)
	_ catalog.Rasterizer = (*Game)(nil)
	_ Surface            = (*raster.Canvas)(nil)
)
