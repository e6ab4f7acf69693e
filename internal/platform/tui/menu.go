package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/core"
)

// MenuModel is the Bubble Tea model for the catalog menu.
type MenuModel struct {
	entries   []catalog.Entry
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keys      MenuKeyMap
	help      help.Model
	renderer  *lipgloss.Renderer
	notice    string
	quitting  bool
	selected  *catalog.Entry // Set when user picks a playable game
	wantSaves bool           // True if user pressed Tab for the saves board
}

// NewMenuModel creates a menu over the given catalog entries.
func NewMenuModel(entries []catalog.Entry, cfg core.RuntimeConfig, r *lipgloss.Renderer) MenuModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		entries:  entries,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		config:   cfg,
		keys:     DefaultMenuKeyMap(),
		help:     h,
		renderer: r,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		m.notice = ""

	case key.Matches(msg, m.keys.Select):
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		if !e.Playable {
			m.notice = fmt.Sprintf("%s is coming soon", e.Title)
			return m, nil
		}
		m.selected = &e
		return m, tea.Quit // Exit menu to start game

	case key.Matches(msg, m.keys.Saves):
		m.wantSaves = true
		return m, tea.Quit // Exit menu to show saves
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	r := m.renderer
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("R E T R O   S H O W C A S E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-20s %d  %s", cursor, e.Title, e.ReleaseYear, e.Genre)
		if !e.Playable {
			line += "  (coming soon)"
		}
		line = centerText(line, m.width)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case !e.Playable:
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.entries) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(centerText(m.entries[m.cursor].Description, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.help.View(m.keys), m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected entry, or nil if none selected.
func (m MenuModel) Selected() *catalog.Entry {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSaves returns true if user requested the saves board.
func (m MenuModel) WantsSaves() bool {
	return m.wantSaves
}

// Notice returns the message shown under the list.
func (m MenuModel) Notice() string {
	return m.notice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
