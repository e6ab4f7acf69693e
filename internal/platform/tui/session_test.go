package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/games/jill"
	"github.com/vovakirdan/retro-showcase/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60}, SessionOptions{
		Store:         store,
		ScreenshotDir: t.TempDir(),
	})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update() returned %T, expected SessionModel", next)
		}
		m = sm
	}
	return m
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func TestMenuComingSoon(t *testing.T) {
	m := NewMenuModel(catalog.List(), core.DefaultConfig(), nil)

	// Entries are ordered by year: Commander Keen comes first.
	next, cmd := m.Update(enterKey)
	m = next.(MenuModel)
	if m.Selected() != nil {
		t.Fatalf("Selected() = %+v, expected nil for a placeholder", m.Selected())
	}
	if cmd != nil {
		t.Error("placeholder select returned a command")
	}
	if !strings.HasSuffix(m.Notice(), "is coming soon") {
		t.Errorf("Notice() = %q", m.Notice())
	}
	if !strings.Contains(m.View(), "(coming soon)") {
		t.Error("View() does not mark placeholders")
	}
}

func TestMenuSelectJill(t *testing.T) {
	m := NewMenuModel(catalog.List(), core.DefaultConfig(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(enterKey)
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().ID != jill.GameID {
		t.Fatalf("Selected() = %+v, expected %s", m.Selected(), jill.GameID)
	}
	if cmd == nil {
		t.Error("select returned no command")
	}
}

func TestSessionPlayAndBack(t *testing.T) {
	m := newTestSession(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, enterKey)
	if !m.InGame() {
		t.Fatal("InGame() = false after selecting jill")
	}
	if m.Game().game.ID() != jill.GameID {
		t.Errorf("game = %s, expected %s", m.Game().game.ID(), jill.GameID)
	}

	m = send(t, m, runeKey('p'), runeKey('b'))
	if m.InGame() {
		t.Fatal("InGame() = true after pause and back")
	}
	if m.Game() != nil {
		t.Error("Game() not nil after back")
	}

	// A frame left over from the game must not reach the menu.
	m = send(t, m, TickMsg(time.Now()))
	if !strings.Contains(m.View(), "R E T R O") {
		t.Error("View() is not the menu after back")
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newTestSession(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, enterKey)

	next, cmd := m.Update(runeKey('q'))
	if next.(SessionModel).View() != "" {
		t.Error("View() not empty after quit")
	}
	if cmd == nil {
		t.Error("quit returned no command")
	}
}

func TestSessionSavesBoard(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, store)

	// Play, save, and come back to the menu.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, enterKey)
	m.Game().game.(*jill.Game).Controller().SetPlayerPosition(300, 64)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, runeKey('p'), runeKey('b'))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeSaves {
		t.Fatalf("mode = %d after tab, expected saves", m.mode)
	}
	if len(m.saves.slots) != 1 || m.saves.slots[0].Slot != "quick" {
		t.Fatalf("slots = %+v, expected the quick slot", m.saves.slots)
	}

	m = send(t, m, enterKey)
	if !m.InGame() {
		t.Fatal("InGame() = false after resuming a slot")
	}
	state := m.Game().game.(*jill.Game).Controller().State()
	if state.Player.Position.X != 300 {
		t.Errorf("Position.X = %v after resume, expected 300", state.Player.Position.X)
	}
}

func TestSavesDelete(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveSlot(jill.GameID, "one", 1, []byte(`{}`)); err != nil {
		t.Fatalf("SaveSlot() error: %v", err)
	}

	m := NewSavesModel(catalog.List(), store, 80, 24, nil)
	if len(m.slots) != 1 {
		t.Fatalf("slots = %d, expected 1", len(m.slots))
	}

	next, _ := m.Update(runeKey('x'))
	m = next.(SavesModel)
	if len(m.slots) != 0 {
		t.Errorf("slots = %d after delete, expected 0", len(m.slots))
	}
	if !strings.Contains(m.View(), "No saves yet") {
		t.Error("View() does not show the empty message")
	}
}

func TestSavesWithoutStore(t *testing.T) {
	m := NewSavesModel(catalog.List(), nil, 80, 24, nil)
	if !strings.Contains(m.View(), "Saves are disabled") {
		t.Error("View() does not report missing store")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(SavesModel).IsGoingBack() || cmd == nil {
		t.Error("esc did not go back")
	}
}
