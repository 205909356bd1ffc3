package sim

// Cue names a sound the simulation asks the host to play.
type Cue string

const (
	CueJump      Cue = "jump"
	CueSuperJump Cue = "super_jump"
	CueHit       Cue = "hit"
	CueBoost     Cue = "boost"
	CueFreeze    Cue = "freeze"
	CueAlert     Cue = "alert"
	CueDanger    Cue = "danger_loop"
	CueGamble    Cue = "gamble"
	CueInvert    Cue = "invert"
	CueClear     Cue = "clear"
	CueMusic     Cue = "bgm"
	CueFirework  Cue = "firework"
)

// AllCues lists every cue the simulation can emit.
var AllCues = []Cue{
	CueJump, CueSuperJump, CueHit, CueBoost, CueFreeze, CueAlert,
	CueDanger, CueGamble, CueInvert, CueClear, CueMusic, CueFirework,
}

// CueSink receives audio requests. Implementations must not block the tick.
type CueSink interface {
	PlayOneShot(cue Cue)
	StartLoop(cue Cue)
	StopLoop(cue Cue) // idempotent
	PlayMusic(cue Cue)
	StopMusic()
	MuteTransient(muted bool) // gates one-shots and loop starts, never music
}

// NopCues discards every request.
type NopCues struct{}

func (NopCues) PlayOneShot(Cue) {}
func (NopCues) StartLoop(Cue) {}
func (NopCues) StopLoop(Cue) {}
func (NopCues) PlayMusic(Cue) {}
func (NopCues) StopMusic() {}
func (NopCues) MuteTransient(bool) {}
