package main

import (
	"errors"
	"io"
	"testing"

	"github.com/vovakirdan/retro-showcase/internal/catalog"
)

func TestPlayGameRejectsUnplayable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tests := []struct {
		id  string
		err error
	}{
		{"doom", catalog.ErrNotFound},
		{"jazz", catalog.ErrNotPlayable},
		{"commander", catalog.ErrNotPlayable},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if err := playGame(tt.id); !errors.Is(err, tt.err) {
				t.Errorf("playGame(%q) error = %v, expected %v", tt.id, err, tt.err)
			}
		})
	}
}

func TestServeNeedsAnAddress(t *testing.T) {
	oldSSH, oldHTTP := flagSSHAddr, flagHTTPAddr
	t.Cleanup(func() { flagSSHAddr, flagHTTPAddr = oldSSH, oldHTTP })
	flagSSHAddr, flagHTTPAddr = "", ""

	if err := serve(newLogger(io.Discard)); err == nil {
		t.Error("serve() error = nil with both addresses empty")
	}
}
