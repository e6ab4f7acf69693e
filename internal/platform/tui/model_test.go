package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/core"
	"github.com/vovakirdan/retro-showcase/internal/games/jill"
)

// memorySlots is an in-memory SlotStore.
type memorySlots struct {
	data map[string][]byte
}

func newMemorySlots() *memorySlots {
	return &memorySlots{data: make(map[string][]byte)}
}

func (s *memorySlots) SaveSlot(gameID, slot string, _ int, data []byte) error {
	s.data[gameID+"/"+slot] = append([]byte(nil), data...)
	return nil
}

func (s *memorySlots) LoadSlot(gameID, slot string) ([]byte, bool, error) {
	d, ok := s.data[gameID+"/"+slot]
	return d, ok, nil
}

func newTestGameModel(t *testing.T, opts GameOptions) GameModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	game, err := catalog.Create(jill.GameID, catalog.Env{})
	if err != nil {
		t.Fatalf("catalog.Create() error: %v", err)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = t.TempDir()
	}
	m, err := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 34, TickRate: 60}, opts)
	if err != nil {
		t.Fatalf("NewGameModel() error: %v", err)
	}
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func jillState(m GameModel) *jill.GameState {
	return m.game.(*jill.Game).Controller().State()
}

func TestGameModelScreenLeavesRoomForChrome(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	if m.screen.Width() != 80 || m.screen.Height() != 32 {
		t.Errorf("screen = %dx%d, expected 80x32", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelHeldKeyMovesPlayer(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	startX := jillState(m).Player.Position.X

	now := time.Now()
	m = update(t, m, runeKey('d'))
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(100*time.Millisecond)))

	if x := jillState(m).Player.Position.X; x <= startX {
		t.Errorf("Position.X = %v, expected more than %v", x, startX)
	}
	if !jillState(m).Player.FacingRight {
		t.Error("FacingRight = false after moving right")
	}
}

func TestGameModelPause(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	m = update(t, m, runeKey('p'))
	if !m.Paused() {
		t.Fatal("Paused() = false after p")
	}

	before := jillState(m).Player.Position
	now := time.Now()
	m = update(t, m, runeKey('d'))
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(200*time.Millisecond)))
	if after := jillState(m).Player.Position; after != before {
		t.Errorf("Position = %+v while paused, expected %+v", after, before)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() does not show PAUSED")
	}

	m = update(t, m, runeKey('p'))
	if m.Paused() {
		t.Error("Paused() = true after second p")
	}
}

func TestGameModelPauseBox(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	m.View()
	if strings.Contains(m.screen.String(), "┌") {
		t.Fatal("screen has a box while running")
	}

	m = update(t, m, runeKey('p'))
	m.View()
	frame := m.screen.String()
	for _, want := range []string{"┌", "┘", "PAUSED", "p resume", "b menu  q quit"} {
		if !strings.Contains(frame, want) {
			t.Errorf("paused screen is missing %q", want)
		}
	}
}

func TestGameModelBackOnlyWhenPaused(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("BackToMenu() = true while running")
	}

	m = update(t, m, runeKey('p'))
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after pause and b")
	}
	if m.View() != "" {
		t.Error("View() not empty after leaving")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if cmd == nil {
		t.Error("quit returned no command")
	}
}

func TestGameModelSaveWithoutStore(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Message() != "saves disabled: no database" {
		t.Errorf("Message() = %q", m.Message())
	}
}

func TestGameModelSaveAndLoad(t *testing.T) {
	store := newMemorySlots()
	m := newTestGameModel(t, GameOptions{Store: store, Slot: "test"})

	m.game.(*jill.Game).Controller().SetPlayerPosition(300, 64)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Message() != "saved to slot test" {
		t.Fatalf("Message() = %q after save", m.Message())
	}
	if _, ok := store.data[jill.GameID+"/test"]; !ok {
		t.Fatal("store has no jill/test entry")
	}

	m.game.(*jill.Game).Controller().SetPlayerPosition(100, 100)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.Message() != "loaded slot test" {
		t.Fatalf("Message() = %q after load", m.Message())
	}
	if p := jillState(m).Player.Position; p.X != 300 || p.Y != 64 {
		t.Errorf("Position = %+v after load, expected (300, 64)", p)
	}
}

func TestGameModelLoadEmptySlot(t *testing.T) {
	m := newTestGameModel(t, GameOptions{Store: newMemorySlots()})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.Message() != "slot quick is empty" {
		t.Errorf("Message() = %q", m.Message())
	}
}

func TestGameModelResume(t *testing.T) {
	store := newMemorySlots()
	first := newTestGameModel(t, GameOptions{Store: store})
	first.game.(*jill.Game).Controller().SetPlayerPosition(200, 64)
	first = update(t, first, tea.KeyMsg{Type: tea.KeyCtrlS})

	m := newTestGameModel(t, GameOptions{Store: store, Resume: true})
	if p := jillState(m).Player.Position; p.X != 200 {
		t.Errorf("Position.X = %v after resume, expected 200", p.X)
	}
}

func TestGameModelResizeKeepsLevel(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	m.game.(*jill.Game).Controller().SetPlayerPosition(300, 64)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 42})
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
	if p := jillState(m).Player.Position; p.X != 300 {
		t.Errorf("Position.X = %v after resize, expected 300", p.X)
	}
}

func TestGameModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestGameModel(t, GameOptions{ScreenshotDir: dir})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !strings.HasPrefix(m.Message(), "screenshot ") {
		t.Fatalf("Message() = %q", m.Message())
	}

	files, err := filepath.Glob(filepath.Join(dir, "jill_*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v, %v, expected one PNG", files, err)
	}
	info, err := os.Stat(files[0])
	if err != nil || info.Size() == 0 {
		t.Errorf("screenshot %s is empty: %v", files[0], err)
	}
}

func TestGameModelStatusLine(t *testing.T) {
	m := newTestGameModel(t, GameOptions{})
	line := m.statusLine()
	for _, want := range []string{"Jill of the Jungle", "Gems: 0/2", "Keys: 0/1", "Level: 1"} {
		if !strings.Contains(line, want) {
			t.Errorf("statusLine() = %q, missing %q", line, want)
		}
	}
}
