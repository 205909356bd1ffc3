package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

// note is one step of a synthesized cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
	gain float64 // linear, 0..1
}

// synthNotes are the fallback tones used when a cue has no sample file.
var synthNotes = map[sim.Cue][]note{
	sim.CueJump:      {{440, 40 * time.Millisecond, 0.4}, {660, 60 * time.Millisecond, 0.4}},
	sim.CueSuperJump: {{523, 50 * time.Millisecond, 0.5}, {784, 50 * time.Millisecond, 0.5}, {1047, 90 * time.Millisecond, 0.5}},
	sim.CueHit:       {{110, 250 * time.Millisecond, 0.7}},
	sim.CueBoost:     {{660, 60 * time.Millisecond, 0.4}, {880, 120 * time.Millisecond, 0.4}},
	sim.CueFreeze:    {{1200, 80 * time.Millisecond, 0.3}, {900, 160 * time.Millisecond, 0.3}},
	sim.CueAlert:     {{880, 100 * time.Millisecond, 0.5}, {0, 60 * time.Millisecond, 0}, {880, 100 * time.Millisecond, 0.5}},
	sim.CueDanger:    {{220, 200 * time.Millisecond, 0.3}, {0, 300 * time.Millisecond, 0}},
	sim.CueGamble:    {{523, 70 * time.Millisecond, 0.4}, {659, 70 * time.Millisecond, 0.4}, {784, 70 * time.Millisecond, 0.4}},
	sim.CueInvert:    {{784, 90 * time.Millisecond, 0.4}, {523, 140 * time.Millisecond, 0.4}},
	sim.CueClear:     {{523, 120 * time.Millisecond, 0.5}, {659, 120 * time.Millisecond, 0.5}, {784, 120 * time.Millisecond, 0.5}, {1047, 300 * time.Millisecond, 0.5}},
	sim.CueFirework:  {{150, 120 * time.Millisecond, 0.5}},
	sim.CueMusic: {
		{262, 250 * time.Millisecond, 0.15}, {330, 250 * time.Millisecond, 0.15},
		{392, 250 * time.Millisecond, 0.15}, {330, 250 * time.Millisecond, 0.15},
		{294, 250 * time.Millisecond, 0.15}, {349, 250 * time.Millisecond, 0.15},
		{440, 250 * time.Millisecond, 0.15}, {0, 250 * time.Millisecond, 0},
	},
}

// synthesize renders the fallback tone for a cue into a buffer.
func synthesize(cue sim.Cue, rate beep.SampleRate) (*beep.Buffer, error) {
	notes, ok := synthNotes[cue]
	if !ok {
		return nil, fmt.Errorf("audio: no synth tone for cue %q", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := rate.N(n.dur)
		if n.freq <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: synth %q: %w", cue, err)
		}
		parts = append(parts, newVolume(beep.Take(samples, tone), n.gain))
	}

	buf := beep.NewBuffer(format(rate))
	buf.Append(beep.Seq(parts...))
	return buf, nil
}

// newVolume scales a stream by a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}
