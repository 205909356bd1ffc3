package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

// Op names a cue sink call.
type Op string

const (
	OpPlay      Op = "play"
	OpStartLoop Op = "start_loop"
	OpStopLoop  Op = "stop_loop"
	OpMusic     Op = "music"
	OpStopMusic Op = "stop_music"
	OpMute      Op = "mute"
	OpUnmute    Op = "unmute"
)

// Call is one recorded cue sink call.
type Call struct {
	Op  Op
	Cue sim.Cue
}

func (c Call) String() string {
	if c.Cue == "" {
		return string(c.Op)
	}
	return fmt.Sprintf("%s %s", c.Op, c.Cue)
}

// Recorder logs cue calls in order and optionally forwards them.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	next  sim.CueSink
}

// NewRecorder creates a recorder that forwards to next, which may be nil.
func NewRecorder(next sim.CueSink) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) record(op Op, cue sim.Cue) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Cue: cue})
	r.mu.Unlock()
}

func (r *Recorder) PlayOneShot(cue sim.Cue) {
	r.record(OpPlay, cue)
	if r.next != nil {
		r.next.PlayOneShot(cue)
	}
}

func (r *Recorder) StartLoop(cue sim.Cue) {
	r.record(OpStartLoop, cue)
	if r.next != nil {
		r.next.StartLoop(cue)
	}
}

func (r *Recorder) StopLoop(cue sim.Cue) {
	r.record(OpStopLoop, cue)
	if r.next != nil {
		r.next.StopLoop(cue)
	}
}

func (r *Recorder) PlayMusic(cue sim.Cue) {
	r.record(OpMusic, cue)
	if r.next != nil {
		r.next.PlayMusic(cue)
	}
}

func (r *Recorder) StopMusic() {
	r.record(OpStopMusic, "")
	if r.next != nil {
		r.next.StopMusic()
	}
}

func (r *Recorder) MuteTransient(muted bool) {
	op := OpUnmute
	if muted {
		op = OpMute
	}
	r.record(op, "")
	if r.next != nil {
		r.next.MuteTransient(muted)
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many times op was called for cue.
func (r *Recorder) Count(op Op, cue sim.Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op && c.Cue == cue {
			n++
		}
	}
	return n
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// String renders the log one call per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.Calls() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

var _ sim.CueSink = (*Recorder)(nil)
