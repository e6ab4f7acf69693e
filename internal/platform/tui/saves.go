package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

// SavesKeyMap defines the key bindings for the saves board.
type SavesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Resume   key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Resume, k.Delete, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Resume, k.Delete, k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel lists the save slots of the playable games in a table.
type SavesModel struct {
	games      []catalog.Entry
	gameCursor int
	store      *storage.Store
	slots      []storage.SlotInfo
	err        error
	table      table.Model
	help       help.Model
	keys       SavesKeyMap
	renderer   *lipgloss.Renderer
	width      int
	height     int
	quitting   bool
	goingBack  bool
	resume     *storage.SlotInfo // Set when user picks a slot to resume
}

// NewSavesModel creates a saves board for the playable entries.
func NewSavesModel(entries []catalog.Entry, store *storage.Store, width, height int, r *lipgloss.Renderer) SavesModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	games := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Playable {
			games = append(games, e)
		}
	}

	h := help.New()
	h.Width = width

	m := SavesModel{
		games:    games,
		store:    store,
		keys:     DefaultSavesKeyMap(),
		help:     h,
		renderer: r,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadSlots()
	return m
}

// createTable creates a new table sized to the window.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Slot", Width: 16},
		{Title: "Version", Width: 8},
		{Title: "Size", Width: 8},
		{Title: "Saved", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentGame returns the ID of the selected game, or "" when none is playable.
func (m *SavesModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// loadSlots reloads the slots of the selected game.
func (m *SavesModel) loadSlots() {
	m.slots, m.err = nil, nil
	if m.store != nil && m.currentGame() != "" {
		m.slots, m.err = m.store.ListSlots(m.currentGame())
	}

	rows := make([]table.Row, len(m.slots))
	for i, s := range m.slots {
		rows[i] = table.Row{
			s.Slot,
			fmt.Sprintf("v%d", s.SchemaVersion),
			fmt.Sprintf("%d B", s.Size),
			s.UpdatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the saves model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves board.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadSlots()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadSlots()
			}
			return m, nil

		case key.Matches(msg, m.keys.Resume):
			if i := m.table.Cursor(); i >= 0 && i < len(m.slots) {
				slot := m.slots[i]
				m.resume = &slot
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if i := m.table.Cursor(); m.store != nil && i >= 0 && i < len(m.slots) {
				if _, err := m.store.DeleteSlot(m.slots[i].GameID, m.slots[i].Slot); err != nil {
					m.err = err
					return m, nil
				}
				m.loadSlots()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadSlots()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the saves board.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack || m.resume != nil {
		return ""
	}

	r := m.renderer
	var b strings.Builder

	title := "SAVES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("SAVES - %s", m.games[m.gameCursor].Title)
	}
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.tableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

// tableContent renders the table or an empty message.
func (m SavesModel) tableContent() string {
	emptyStyle := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Saves are disabled: no database.")
	case m.err != nil:
		return emptyStyle.Render("Could not read saves:\n" + m.err.Error())
	case len(m.slots) == 0:
		return emptyStyle.Render("No saves yet.\nPress ctrl+s while playing to save.")
	}
	return m.table.View()
}

// Resume returns the slot picked for resuming, or nil.
func (m SavesModel) Resume() *storage.SlotInfo {
	return m.resume
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SavesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavesModel) IsQuitting() bool {
	return m.quitting
}
