package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapCode(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		code core.Code
		ok   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.CodeArrowLeft, true},
		{"a", runeKey('a'), core.CodeArrowLeft, true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.CodeArrowRight, true},
		{"d", runeKey('d'), core.CodeArrowRight, true},
		{"w", runeKey('w'), core.CodeArrowUp, true},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.CodeArrowDown, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.CodeSpace, true},
		{"x", runeKey('x'), core.CodeControlLeft, true},
		{"pause is not a code", runeKey('p'), "", false},
		{"unbound", runeKey('z'), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := keys.Code(tt.msg)
			if code != tt.code || ok != tt.ok {
				t.Errorf("Code(%q) = (%q, %v), expected (%q, %v)", tt.msg.String(), code, ok, tt.code, tt.ok)
			}
		})
	}
}

func TestRenderScreenPlain(t *testing.T) {
	// A renderer on a non-terminal writer has no color profile, so only the
	// runes remain.
	t.Setenv("CLICOLOR_FORCE", "0")
	r := lipgloss.NewRenderer(io.Discard)

	s := core.NewScreen(4, 2)
	s.SetCell(0, 0, core.Cell{Rune: 'a', FG: core.ColorWhite, BG: core.ColorBlack})
	s.SetCell(1, 0, core.Cell{Rune: 'b', FG: core.ColorWhite, BG: core.ColorBlack})
	s.SetCell(2, 0, core.Cell{Rune: 'c', FG: core.ColorBlack, BG: core.ColorWhite})
	s.DrawText(0, 1, "wxyz")

	got := RenderScreen(r, s)
	if got != s.String() {
		t.Errorf("RenderScreen() = %q, expected %q", got, s.String())
	}
	if n := strings.Count(got, "\n"); n != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", n)
	}
}
