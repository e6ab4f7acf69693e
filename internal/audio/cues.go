package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/retro-showcase/internal/core"
)

const (
	jumpDuration = 120 * time.Millisecond
	noteDuration = 100 * time.Millisecond
)

// successNotes is a C major arpeggio (C5, E5, G5).
var successNotes = []float64{523.25, 659.25, 783.99}

// CueStreamer returns a finite streamer for the cue, or nil for unknown cues.
func CueStreamer(cue core.Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case core.CueJump:
		s = sweep(300, 600, jumpDuration)
	case core.CueSuccess:
		notes := make([]beep.Streamer, len(successNotes))
		for i, f := range successNotes {
			notes[i] = sweep(f, f, noteDuration)
		}
		s = beep.Seq(notes...)
	default:
		return nil
	}
	return withVolume(s, volume)
}

// sweep is a square wave gliding linearly from f0 to f1 with a linear fade out.
func sweep(f0, f1 float64, d time.Duration) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(total)
			freq := f0 + (f1-f0)*t
			phase += freq / float64(sampleRate)
			phase -= math.Floor(phase)

			v := 0.25
			if phase >= 0.5 {
				v = -0.25
			}
			v *= 1 - t

			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// withVolume scales a streamer. Zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
