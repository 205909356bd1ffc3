package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

// pumpPeriod is how much audio the pump writes per wakeup.
const pumpPeriod = 20 * time.Millisecond

// Engine implements sim.CueSink on a beep mixer. Without a backend it runs
// in silent mode: loop and music state still change, nothing is written.
type Engine struct {
	logger  *log.Logger
	rate    beep.SampleRate
	sources map[sim.Cue]*beep.Buffer

	mu       sync.Mutex // guards everything the pump reads
	mixer    *beep.Mixer
	master   *effects.Volume
	loops    map[sim.Cue]*beep.Ctrl
	music    *beep.Ctrl
	musicCue sim.Cue
	muted    bool // transient mute

	backend *BackendConfig
	cmd     *exec.Cmd

	running  atomic.Bool
	silent   atomic.Bool
	stop     chan struct{}
	pumpDone chan struct{} // closed after the pump has closed stdin
	wg       sync.WaitGroup
}

// NewEngine loads cue sources and builds the mixer. Call Start to open an
// output backend.
func NewEngine(cfg config.AudioConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	mixer := &beep.Mixer{}
	e := &Engine{
		logger:  logger,
		rate:    rate,
		sources: loadCues(cfg.Dir, cfg.Synth, rate, logger),
		mixer:   mixer,
		master:  &effects.Volume{Streamer: mixer, Base: 2, Volume: cfg.Volume, Silent: cfg.Mute},
		loops:   make(map[sim.Cue]*beep.Ctrl),
		stop:    make(chan struct{}),
	}
	e.silent.Store(true)
	return e
}

// Start launches the backend process and the pump goroutine. A missing
// backend is not an error: the engine stays silent.
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("audio: engine already running")
	}

	backend, err := DetectBackend(int(e.rate))
	if err != nil {
		e.logger.Info("no audio backend, running silent")
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		e.logger.Warn("audio backend pipe failed", "backend", backend.Name, "error", err)
		return nil
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		e.logger.Warn("audio backend failed to start", "backend", backend.Name, "error", err)
		return nil
	}

	e.backend = backend
	e.cmd = cmd
	e.pumpDone = make(chan struct{})
	e.silent.Store(false)
	e.logger.Info("audio backend started", "backend", backend.Name)

	e.wg.Add(2)
	go e.monitorProcess()
	go e.pump(stdin)
	return nil
}

// stopGrace is how long Stop waits for a blocked pump before killing the
// backend to unblock its write.
const stopGrace = 200 * time.Millisecond

// Stop terminates the pump and the backend. The pump closes stdin itself,
// so the pipe is never closed under a pending write.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	close(e.stop)
	if e.pumpDone != nil {
		select {
		case <-e.pumpDone:
		case <-time.After(stopGrace):
			e.kill()
			<-e.pumpDone
		}
	}
	e.kill()
	e.wg.Wait()
}

func (e *Engine) kill() {
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
}

// Backend returns the active backend name, or "" when silent.
func (e *Engine) Backend() string {
	if e.silent.Load() || e.backend == nil {
		return ""
	}
	return e.backend.Name
}

// monitorProcess reaps the backend. Wait closes the stdin pipe, so it only
// runs once the pump has stopped writing.
func (e *Engine) monitorProcess() {
	defer e.wg.Done()
	<-e.pumpDone
	if err := e.cmd.Wait(); err != nil && e.running.Load() {
		e.logger.Warn("audio backend exited", "error", err)
	}
	e.silent.Store(true)
}

// pump streams the mixer into w as s16le stereo. It owns w and closes it
// on return.
func (e *Engine) pump(w io.WriteCloser) {
	defer e.wg.Done()
	defer close(e.pumpDone)
	defer w.Close()
	ticker := time.NewTicker(pumpPeriod)
	defer ticker.Stop()

	samples := make([][2]float64, e.rate.N(pumpPeriod))
	out := make([]byte, len(samples)*4)
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.render(samples)
			encodeS16LE(samples, out)
			if _, err := w.Write(out); err != nil {
				if e.running.Load() {
					e.logger.Warn("audio write failed", "error", fmt.Errorf("%w: %v", ErrPipeClosed, err))
				}
				e.silent.Store(true)
				return
			}
		}
	}
}

// render mixes the next len(samples) frames.
func (e *Engine) render(samples [][2]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, _ := e.master.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
}

// encodeS16LE converts float frames to interleaved int16 little endian,
// soft limiting above 0.8 before the hard clip.
func encodeS16LE(in [][2]float64, out []byte) {
	for i, frame := range in {
		for c, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			binary.LittleEndian.PutUint16(out[i*4+c*2:], uint16(int16(v*32767)))
		}
	}
}

// PlayOneShot mixes a cue once.
func (e *Engine) PlayOneShot(cue sim.Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.muted {
		return
	}
	if buf := e.sources[cue]; buf != nil {
		e.mixer.Add(buf.Streamer(0, buf.Len()))
	}
}

// StartLoop starts a looping cue. A loop already running is left alone.
func (e *Engine) StartLoop(cue sim.Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.muted {
		return
	}
	if _, ok := e.loops[cue]; ok {
		return
	}
	ctrl := e.newLoop(cue)
	e.loops[cue] = ctrl
	e.mixer.Add(ctrl)
}

// StopLoop stops a looping cue. Stopping a silent loop is a no-op.
func (e *Engine) StopLoop(cue sim.Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ctrl, ok := e.loops[cue]; ok {
		detach(ctrl)
		delete(e.loops, cue)
	}
}

// PlayMusic starts the music loop. Music already playing the same cue keeps
// its position.
func (e *Engine) PlayMusic(cue sim.Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music != nil && e.musicCue == cue {
		return
	}
	if e.music != nil {
		detach(e.music)
	}
	e.music = e.newLoop(cue)
	e.musicCue = cue
	e.mixer.Add(e.music)
}

// StopMusic stops the music loop.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music != nil {
		detach(e.music)
		e.music = nil
		e.musicCue = ""
	}
}

// MuteTransient gates one-shots and loop starts. Music is unaffected.
func (e *Engine) MuteTransient(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
}

// LoopActive reports whether a loop is running for cue.
func (e *Engine) LoopActive(cue sim.Cue) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.loops[cue]
	return ok
}

// Music returns the playing music cue.
func (e *Engine) Music() (sim.Cue, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.musicCue, e.music != nil
}

// Sources reports which cues have audio.
func (e *Engine) Sources() map[sim.Cue]bool {
	out := make(map[sim.Cue]bool, len(sim.AllCues))
	for _, cue := range sim.AllCues {
		out[cue] = e.sources[cue] != nil
	}
	return out
}

// newLoop wraps a cue source in a looping control. A cue without a source
// loops silence so loop bookkeeping stays uniform. Callers hold mu.
func (e *Engine) newLoop(cue sim.Cue) *beep.Ctrl {
	buf := e.sources[cue]
	if buf == nil || buf.Len() == 0 {
		return &beep.Ctrl{Streamer: beep.Silence(-1)}
	}
	return &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
}

// detach drains a control so the mixer drops it on the next pass.
func detach(ctrl *beep.Ctrl) {
	ctrl.Streamer = nil
}

var _ sim.CueSink = (*Engine)(nil)
