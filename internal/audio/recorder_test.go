package audio

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

func TestRecorderOrderAndForward(t *testing.T) {
	inner := NewRecorder(nil)
	r := NewRecorder(inner)

	r.PlayMusic(sim.CueMusic)
	r.PlayOneShot(sim.CueJump)
	r.StartLoop(sim.CueDanger)
	r.MuteTransient(true)
	r.StopLoop(sim.CueDanger)
	r.StopMusic()

	want := []Call{
		{OpMusic, sim.CueMusic},
		{OpPlay, sim.CueJump},
		{OpStartLoop, sim.CueDanger},
		{OpMute, ""},
		{OpStopLoop, sim.CueDanger},
		{OpStopMusic, ""},
	}
	if got := r.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Calls() = %v, expected %v", got, want)
	}
	if got := inner.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("forwarded calls = %v, expected %v", got, want)
	}
	if n := r.Count(OpStopLoop, sim.CueDanger); n != 1 {
		t.Errorf("Count() = %d, expected 1", n)
	}

	r.Reset()
	if len(r.Calls()) != 0 || r.String() != "" {
		t.Error("Reset() left calls behind")
	}
}
