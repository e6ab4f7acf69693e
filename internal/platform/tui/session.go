package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

// sessionMode is the view a session is showing.
type sessionMode int

const (
	modeMenu sessionMode = iota
	modeSaves
	modeGame
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	// Catalog lists the games. Defaults to catalog.Default.
	Catalog *catalog.Catalog
	// Store holds save slots. Nil disables saves.
	Store *storage.Store
	// Env is passed to every game the session creates.
	Env catalog.Env
	// Slot is the quick save slot. Defaults to "quick".
	Slot          string
	ScreenshotDir string
	Renderer      *lipgloss.Renderer
	Logger        *log.Logger
}

// SessionModel manages the full showcase flow: menu -> game -> menu, with
// the saves board reachable from the menu. It is the top-level model of
// both the local menu and SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	mode      sessionMode
	menu      MenuModel
	saves     SavesModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Slot == "" {
		opts.Slot = "quick"
	}
	if opts.Env.Logger == nil {
		opts.Env.Logger = opts.Logger
	}

	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Catalog.List(), cfg, opts.Renderer),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeSaves:
		return m.updateSaves(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Leftover frame from a game that just ended.
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsSaves():
		m.saves = NewSavesModel(m.opts.Catalog.List(), m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.opts.Renderer)
		m.mode = modeSaves
		return m, m.saves.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().ID, m.opts.Slot, false)
	}

	return m, cmd
}

// updateSaves handles updates when the saves board is shown.
func (m SessionModel) updateSaves(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newSaves, cmd := m.saves.Update(msg)
	if savesModel, ok := newSaves.(SavesModel); ok {
		m.saves = savesModel
	}

	switch {
	case m.saves.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.saves.IsGoingBack():
		return m.backToMenu("")

	case m.saves.Resume() != nil:
		slot := m.saves.Resume()
		return m.startGame(slot.GameID, slot.Slot, true)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		return m.backToMenu("")
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// startGame creates a game from the catalog and switches to it.
func (m SessionModel) startGame(id, slot string, resume bool) (tea.Model, tea.Cmd) {
	game, err := m.opts.Catalog.Create(id, m.opts.Env)
	if err != nil {
		m.opts.Logger.Error("cannot create game", "game", id, "err", err)
		return m.backToMenu(err.Error())
	}

	opts := GameOptions{
		Slot:          slot,
		Resume:        resume,
		ScreenshotDir: m.opts.ScreenshotDir,
		Renderer:      m.opts.Renderer,
		Logger:        m.opts.Logger,
	}
	// A nil *storage.Store must stay a nil interface.
	if m.opts.Store != nil {
		opts.Store = m.opts.Store
	}

	gameModel, err := NewGameModel(game, m.config, opts)
	if err != nil {
		m.opts.Logger.Error("cannot start game", "game", id, "err", err)
		return m.backToMenu(err.Error())
	}

	m.opts.Logger.Info("game started", "game", id, "slot", slot, "resume", resume)
	m.gameModel = &gameModel
	m.mode = modeGame
	return m, m.gameModel.Init()
}

// backToMenu resets the menu with an optional notice.
func (m SessionModel) backToMenu(notice string) (tea.Model, tea.Cmd) {
	m.gameModel = nil
	m.mode = modeMenu
	m.menu = NewMenuModel(m.opts.Catalog.List(), m.config, m.opts.Renderer)
	m.menu.notice = notice
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.gameModel.View()
	case modeSaves:
		return m.saves.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.mode == modeGame
}

// Game returns the running game model, or nil.
func (m SessionModel) Game() *GameModel {
	return m.gameModel
}

// RunSession starts a Bubble Tea program with the full menu flow.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: session: %w", err)
	}
	return nil
}
