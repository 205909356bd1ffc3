package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gopxl/beep/wav"
	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

func synthConfig() config.AudioConfig {
	return config.AudioConfig{Synth: true, SampleRate: 22050}
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func TestEngineSynthFallback(t *testing.T) {
	e := NewEngine(synthConfig(), nil)
	for cue, ok := range e.Sources() {
		if !ok {
			t.Errorf("cue %q has no source with synth enabled", cue)
		}
	}

	e = NewEngine(config.AudioConfig{SampleRate: 22050}, nil)
	for cue, ok := range e.Sources() {
		if ok {
			t.Errorf("cue %q has a source with synth disabled and no files", cue)
		}
	}
}

func TestEngineOneShotMixes(t *testing.T) {
	e := NewEngine(synthConfig(), nil)
	buf := make([][2]float64, 1000)

	e.render(buf)
	if p := peak(buf); p != 0 {
		t.Fatalf("idle mixer peak = %v, expected silence", p)
	}

	e.PlayOneShot(sim.CueJump)
	e.render(buf)
	if p := peak(buf); p < 0.01 {
		t.Errorf("peak after one-shot = %v, expected audible output", p)
	}
}

func TestEngineMuteGatesTransient(t *testing.T) {
	e := NewEngine(synthConfig(), nil)
	e.MuteTransient(true)

	e.PlayOneShot(sim.CueHit)
	e.StartLoop(sim.CueDanger)
	if e.mixer.Len() != 0 || e.LoopActive(sim.CueDanger) {
		t.Errorf("muted engine mixed %d streams, loop active %v", e.mixer.Len(), e.LoopActive(sim.CueDanger))
	}

	e.PlayMusic(sim.CueMusic)
	if cue, ok := e.Music(); !ok || cue != sim.CueMusic {
		t.Errorf("Music() = %q, %v, expected music to ignore the transient mute", cue, ok)
	}

	e.MuteTransient(false)
	e.PlayOneShot(sim.CueHit)
	if e.mixer.Len() != 2 {
		t.Errorf("mixer has %d streams, expected music and one-shot", e.mixer.Len())
	}
}

func TestEngineLoopLifecycle(t *testing.T) {
	e := NewEngine(synthConfig(), nil)
	buf := make([][2]float64, 256)

	e.StartLoop(sim.CueDanger)
	e.StartLoop(sim.CueDanger)
	if !e.LoopActive(sim.CueDanger) || e.mixer.Len() != 1 {
		t.Fatalf("loop active %v with %d streams, expected one loop", e.LoopActive(sim.CueDanger), e.mixer.Len())
	}

	e.StopLoop(sim.CueDanger)
	e.StopLoop(sim.CueDanger)
	if e.LoopActive(sim.CueDanger) {
		t.Error("loop still active after StopLoop")
	}
	e.render(buf)
	if e.mixer.Len() != 0 {
		t.Errorf("mixer has %d streams after the loop drained, expected 0", e.mixer.Len())
	}
}

func TestEngineMusicIdempotent(t *testing.T) {
	e := NewEngine(synthConfig(), nil)

	e.PlayMusic(sim.CueMusic)
	e.PlayMusic(sim.CueMusic)
	if e.mixer.Len() != 1 {
		t.Errorf("mixer has %d streams, expected music once", e.mixer.Len())
	}

	e.StopMusic()
	if _, ok := e.Music(); ok {
		t.Error("music still reported after StopMusic")
	}
	e.StopMusic()
}

func TestEngineMasterMute(t *testing.T) {
	cfg := synthConfig()
	cfg.Mute = true
	e := NewEngine(cfg, nil)
	buf := make([][2]float64, 1000)

	e.PlayOneShot(sim.CueJump)
	e.render(buf)
	if p := peak(buf); p != 0 {
		t.Errorf("peak = %v with master mute, expected silence", p)
	}
}

func TestEngineSilentStartStop(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()

	e := NewEngine(synthConfig(), nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := e.Start(); err == nil {
		t.Error("second Start() should fail")
	}
	if e.Backend() != "" {
		t.Errorf("Backend() = %q, expected silent", e.Backend())
	}

	// Cue calls still track state in silent mode
	e.StartLoop(sim.CueDanger)
	if !e.LoopActive(sim.CueDanger) {
		t.Error("loop not tracked in silent mode")
	}

	e.Stop()
	e.Stop()
}

func TestEncodeS16LE(t *testing.T) {
	in := [][2]float64{{0.5, -0.5}, {1.0, -3.0}}
	out := make([]byte, len(in)*4)
	encodeS16LE(in, out)

	sample := func(i int) int16 {
		return int16(uint16(out[i*2]) | uint16(out[i*2+1])<<8)
	}
	tests := []struct {
		idx  int
		want int16
	}{
		{0, 16383},
		{1, -16383},
		{2, 29490}, // soft limited to 0.9
	}
	for _, tt := range tests {
		if got := sample(tt.idx); got != tt.want {
			t.Errorf("sample %d = %d, expected %d", tt.idx, got, tt.want)
		}
	}
	if got := sample(3); got > -26214 || got < -32767 {
		t.Errorf("sample 3 = %d, expected a limited negative peak", got)
	}
}

func TestLoadCuesFromDir(t *testing.T) {
	dir := t.TempDir()
	rate := synthConfig().SampleRate

	// Write a short tone as jump.wav at a different rate to force resampling
	buf, err := synthesize(sim.CueJump, 11025)
	if err != nil {
		t.Fatalf("synthesize() failed: %v", err)
	}
	f, err := os.Create(filepath.Join(dir, "jump.wav"))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := wav.Encode(f, buf.Streamer(0, buf.Len()), buf.Format()); err != nil {
		t.Fatalf("wav.Encode() failed: %v", err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "hit.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	e := NewEngine(config.AudioConfig{Dir: dir, SampleRate: rate}, nil)
	sources := e.Sources()
	if !sources[sim.CueJump] {
		t.Error("jump.wav was not loaded")
	}
	if sources[sim.CueHit] {
		t.Error("a broken hit.wav should leave the cue silent without synth")
	}
	if sources[sim.CueClear] {
		t.Error("clear has no file and should stay silent without synth")
	}
}

func TestDetectBackend(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(name string) (string, error) {
		if name == "aplay" {
			return "/usr/bin/aplay", nil
		}
		return "", errors.New("not found")
	}
	b, err := DetectBackend(22050)
	if err != nil {
		t.Fatalf("DetectBackend() failed: %v", err)
	}
	if b.Type != BackendALSA || b.Path != "/usr/bin/aplay" {
		t.Errorf("DetectBackend() = %+v, expected aplay", b)
	}
	found := false
	for _, a := range b.Args {
		if a == "22050" {
			found = true
		}
	}
	if !found {
		t.Errorf("args %v do not carry the sample rate", b.Args)
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if _, err := DetectBackend(44100); !errors.Is(err, ErrNoBackend) {
		t.Errorf("DetectBackend() error = %v, expected ErrNoBackend", err)
	}
}

// fakeBackend installs a shell script as the pacat backend.
func fakeBackend(t *testing.T, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("backend scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "pacat")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if name == "pacat" {
			return path, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

// stopWithin fails the test if Stop does not return in time.
func stopWithin(t *testing.T, e *Engine, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("Stop() did not return")
	}
}

func TestEngineBackendStartStop(t *testing.T) {
	fakeBackend(t, "cat > /dev/null")

	e := NewEngine(synthConfig(), nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if e.Backend() != "pacat" {
		t.Fatalf("Backend() = %q, expected pacat", e.Backend())
	}

	e.PlayMusic(sim.CueMusic)
	time.Sleep(5 * pumpPeriod)

	stopWithin(t, e, 2*time.Second)
	if e.Backend() != "" {
		t.Errorf("Backend() = %q after Stop, expected silent", e.Backend())
	}
	e.Stop()
}

func TestEngineBackendExitsEarly(t *testing.T) {
	fakeBackend(t, "exit 0")

	e := NewEngine(synthConfig(), nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for e.Backend() != "" && time.Now().Before(deadline) {
		time.Sleep(pumpPeriod)
	}
	if e.Backend() != "" {
		t.Errorf("Backend() = %q after the backend exited, expected silent", e.Backend())
	}

	// The pump already closed stdin; Stop must still reap cleanly.
	stopWithin(t, e, 2*time.Second)
}
