package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

// resampleQuality trades CPU for fidelity when a file's rate differs.
const resampleQuality = 4

// loadWAV decodes a wav file into a buffer at the engine rate.
func loadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	s, fmtIn, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if fmtIn.SampleRate != rate {
		src = beep.Resample(resampleQuality, fmtIn.SampleRate, rate, s)
	}
	buf := beep.NewBuffer(format(rate))
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot read %s: %w", path, err)
	}
	return buf, nil
}

// loadCues resolves every cue to a buffer: <dir>/<cue>.wav first, then the
// synthesized fallback when synth is set. Cues with neither stay silent.
// Each failure is logged once.
func loadCues(dir string, synth bool, rate beep.SampleRate, logger *log.Logger) map[sim.Cue]*beep.Buffer {
	out := make(map[sim.Cue]*beep.Buffer, len(sim.AllCues))
	for _, cue := range sim.AllCues {
		if dir != "" {
			path := filepath.Join(dir, string(cue)+".wav")
			buf, err := loadWAV(path, rate)
			if err == nil {
				out[cue] = buf
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("cue load failed", "cue", cue, "error", err)
			}
		}
		if !synth {
			continue
		}
		buf, err := synthesize(cue, rate)
		if err != nil {
			logger.Warn("cue synth failed", "cue", cue, "error", err)
			continue
		}
		out[cue] = buf
	}
	return out
}
