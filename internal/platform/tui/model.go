package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/config"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/raster"
)

// Screenshot size in pixels. Games scale their world to fit.
const (
	screenshotW = 1280
	screenshotH = 1024
)

// chromeRows is the number of rows below the game area: status and help.
const chromeRows = 2

// GameOptions configures a GameModel.
type GameOptions struct {
	// Store holds save slots. Nil disables save and load.
	Store core.SlotStore
	// Slot is the slot used by the save and load keys.
	Slot string
	// Resume loads Slot right after the game starts.
	Resume bool
	// Watcher reports config file changes. The model does not close it.
	Watcher *config.Watcher
	// ScreenshotDir receives PNG screenshots. Defaults to ~/.showcase/screenshots.
	ScreenshotDir string
	// Renderer styles output. Nil uses the local terminal.
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
}

// configChangedMsg is sent when the watched config file was written.
type configChangedMsg string

// configErrorMsg is sent when the config watcher fails.
type configErrorMsg struct{ err error }

// GameModel hosts one running game: it samples held keys, measures frame
// time, steps the game and draws it with a status bar.
type GameModel struct {
	game     catalog.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     GameOptions
	keys     GameKeyMap
	help     help.Model
	sampler  *core.Sampler
	holds    *HoldTracker
	clock    *core.FrameClock
	status   core.Status
	message  string
	paused   bool
	quitting bool
	back     bool
}

// NewGameModel resets the game and wraps it in a model.
func NewGameModel(game catalog.Game, cfg core.RuntimeConfig, opts GameOptions) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Slot == "" {
		opts.Slot = "quick"
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(config.DataDir(), "screenshots")
	}

	if err := game.Reset(cfg); err != nil {
		return GameModel{}, fmt.Errorf("tui: start %s: %w", game.ID(), err)
	}

	m := GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-chromeRows)),
		config:  cfg,
		opts:    opts,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		sampler: core.NewSampler(),
		holds:   NewHoldTracker(DefaultInitialHold, DefaultRepeatHold),
		clock:   &core.FrameClock{},
		status:  game.Status(),
	}
	m.help.Width = cfg.ScreenW

	if opts.Resume {
		m.message = m.load()
	}
	return m, nil
}

// Init starts the frame loop and the config watch.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), m.waitForConfig())
}

// waitForConfig blocks on the next watcher event.
func (m GameModel) waitForConfig() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configChangedMsg(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// The level keeps running; only the view is resized.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-chromeRows))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.quitting || m.back {
			return m, nil
		}
		return m.handleTick(time.Time(msg))

	case configChangedMsg:
		m.message = m.reloadConfig()
		return m, m.waitForConfig()

	case configErrorMsg:
		m.opts.Logger.Warn("config watch failed", "err", msg.err)
		m.message = "config watch: " + msg.err.Error()
		return m, m.waitForConfig()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back) && m.paused:
		m.leave()
		m.back = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.sampler.Reset()
		m.holds.Reset()
		// The first frame after a pause must not see the paused time.
		m.clock.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if err := m.game.Reset(m.config); err != nil {
			m.message = "restart failed: " + err.Error()
			return m, nil
		}
		m.sampler.Reset()
		m.holds.Reset()
		m.clock.Reset()
		m.status = m.game.Status()
		m.message = "restarted"
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.message = m.save()
		return m, nil

	case key.Matches(msg, m.keys.Load):
		m.message = m.load()
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.message = m.screenshot(now)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.paused {
		return m, nil
	}
	if code, ok := m.keys.Code(msg); ok {
		if m.holds.Press(code, now) {
			m.sampler.Press(code)
		}
	}
	return m, nil
}

// handleTick runs one frame and schedules the next.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, c := range m.holds.Expire(now) {
		m.sampler.Release(c)
	}

	dt := m.clock.Tick(now)
	if !m.paused {
		res := m.game.Step(m.sampler.Intents(), dt)
		m.status = res.Status
	}

	return m, tickCmd(m.config.TickRate)
}

// leave stops input so nothing stays held after the view closes.
func (m *GameModel) leave() {
	m.sampler.Reset()
	m.holds.Reset()
}

func (m *GameModel) persistent() (catalog.Persistent, string) {
	if m.opts.Store == nil {
		return nil, "saves disabled: no database"
	}
	p, ok := m.game.(catalog.Persistent)
	if !ok {
		return nil, m.game.Title() + " cannot be saved"
	}
	return p, ""
}

// save writes the game into the session slot and returns a status message.
func (m *GameModel) save() string {
	p, msg := m.persistent()
	if p == nil {
		return msg
	}
	if err := p.SaveTo(m.opts.Store, m.opts.Slot); err != nil {
		m.opts.Logger.Error("save failed", "game", m.game.ID(), "slot", m.opts.Slot, "err", err)
		return "save failed: " + err.Error()
	}
	m.status = m.game.Status()
	return "saved to slot " + m.opts.Slot
}

// load restores the session slot and returns a status message.
func (m *GameModel) load() string {
	p, msg := m.persistent()
	if p == nil {
		return msg
	}
	found, err := p.LoadFrom(m.opts.Store, m.opts.Slot)
	switch {
	case err != nil:
		m.opts.Logger.Error("load failed", "game", m.game.ID(), "slot", m.opts.Slot, "err", err)
		return "load failed: " + err.Error()
	case !found:
		return "slot " + m.opts.Slot + " is empty"
	}
	m.clock.Reset()
	m.status = m.game.Status()
	return "loaded slot " + m.opts.Slot
}

// screenshot writes the current frame as PNG.
func (m *GameModel) screenshot(now time.Time) string {
	r, ok := m.game.(catalog.Rasterizer)
	if !ok {
		return "screenshots not supported by " + m.game.Title()
	}
	name := fmt.Sprintf("%s_%s.png", m.game.ID(), now.Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := raster.SavePNG(path, r.Frame(screenshotW, screenshotH)); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "screenshot " + path
}

// reloadConfig applies a changed config file to games that support it.
func (m *GameModel) reloadConfig() string {
	r, ok := m.game.(catalog.Reloader)
	if !ok {
		return ""
	}
	if err := r.ReloadConfig(); err != nil {
		m.opts.Logger.Warn("config reload failed", "err", err)
		return "config reload failed: " + err.Error()
	}
	m.opts.Logger.Info("config reloaded", "game", m.game.ID())
	return "config reloaded; applies on next level"
}

func (m GameModel) renderer() *lipgloss.Renderer {
	if m.opts.Renderer != nil {
		return m.opts.Renderer
	}
	return lipgloss.DefaultRenderer()
}

// statusLine renders the HUD info, pause marker and last message.
func (m GameModel) statusLine() string {
	parts := append([]string{m.game.Title()}, m.status.Info...)
	line := strings.Join(parts, "  |  ")
	if m.paused {
		line += "  |  PAUSED"
	}
	r := m.renderer()
	out := r.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).Render(line)
	if m.message != "" {
		out += "  " + r.NewStyle().Foreground(lipgloss.Color("241")).Render(m.message)
	}
	return out
}

// drawPauseBox frames the pause hints in the middle of the playfield.
func drawPauseBox(s *core.Screen) {
	lines := []string{"PAUSED", "p resume", "b menu  q quit"}
	w, h := 20, len(lines)+2
	if s.Width() < w || s.Height() < h {
		return
	}
	box := core.NewRect((s.Width()-w)/2, (s.Height()-h)/2, w, h)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			s.SetCell(x, y, core.Cell{Rune: ' ', FG: core.ColorWhite, BG: core.ColorBlack})
		}
	}
	s.DrawBox(box)
	for i, line := range lines {
		s.DrawTextCentered(box.Y+1+i, line)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		drawPauseBox(m.screen)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.opts.Renderer, m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.renderer().NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.back
}

// Paused reports whether the simulation is paused.
func (m GameModel) Paused() bool {
	return m.paused
}

// Message returns the last status message.
func (m GameModel) Message() string {
	return m.message
}

// Run starts a Bubble Tea program for a single game.
func Run(game catalog.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model, err := NewGameModel(game, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
