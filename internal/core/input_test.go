package core

import (
	"slices"
	"testing"
)

func TestSamplerPressRelease(t *testing.T) {
	s := NewSampler()

	s.Press(CodeArrowLeft)
	s.Press(CodeSpace)
	s.Press(CodeSpace) // repeat is harmless

	if !s.IsHeld(CodeArrowLeft) {
		t.Error("ArrowLeft should be held after Press")
	}
	if !s.IsHeld(CodeSpace) {
		t.Error("Space should be held after Press")
	}

	s.Release(CodeSpace)
	if s.IsHeld(CodeSpace) {
		t.Error("Space should not be held after Release")
	}
	if !s.IsHeld(CodeArrowLeft) {
		t.Error("Releasing Space should not release ArrowLeft")
	}

	got := s.Held()
	if !slices.Equal(got, []Code{CodeArrowLeft}) {
		t.Errorf("Held() = %v, expected [ArrowLeft]", got)
	}

	s.Reset()
	if len(s.Held()) != 0 {
		t.Errorf("Held() after Reset = %v, expected empty", s.Held())
	}
}

func TestSamplerIntents(t *testing.T) {
	tests := []struct {
		name     string
		codes    []Code
		expected []Action
	}{
		{"nothing held", nil, nil},
		{"left", []Code{CodeArrowLeft}, []Action{ActionLeft}},
		{"left and right", []Code{CodeArrowLeft, CodeArrowRight}, []Action{ActionLeft, ActionRight}},
		{"space is jump", []Code{CodeSpace}, []Action{ActionJump}},
		{"either control is action", []Code{CodeControlRight}, []Action{ActionAction}},
		{"unknown code ignored", []Code{"KeyZ", CodeArrowDown}, []Action{ActionDown}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSampler()
			for _, c := range tc.codes {
				s.Press(c)
			}
			frame := s.Intents()

			count := 0
			for _, held := range frame.Actions {
				if held {
					count++
				}
			}
			if count != len(tc.expected) {
				t.Errorf("Intents() has %d actions, expected %d", count, len(tc.expected))
			}
			for _, a := range tc.expected {
				if !frame.Has(a) {
					t.Errorf("Intents() missing %v", a)
				}
			}
		})
	}
}

func TestCaptures(t *testing.T) {
	for _, c := range []Code{CodeArrowUp, CodeArrowDown, CodeArrowLeft, CodeArrowRight, CodeSpace} {
		if !Captures(c) {
			t.Errorf("Captures(%s) = false, expected true", c)
		}
	}
	for _, c := range []Code{CodeControlLeft, "KeyA"} {
		if Captures(c) {
			t.Errorf("Captures(%s) = true, expected false", c)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q, expected Jump", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
