package sim

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Time is simulation time elapsed since the session started.
type Time = time.Duration

// Input is the player's intent for one tick.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool // edge-triggered: true only on the tick the key went down
	Reset     bool // wipe progress and restart from stage 1
}

// Effect is a timed status flag with an absolute expiry.
type Effect struct {
	Active bool
	Until  Time
}

// On reports whether the effect applies at now.
func (e Effect) On(now Time) bool {
	return e.Active && now < e.Until
}

// Set activates the effect until now+d. Re-triggering refreshes the expiry.
func (e *Effect) Set(now Time, d time.Duration) {
	e.Active = true
	e.Until = now + d
}

// Expire clears the flag once now reaches the expiry. It reports whether
// the flag was cleared by this call.
func (e *Effect) Expire(now Time) bool {
	if e.Active && now >= e.Until {
		e.Active = false
		return true
	}
	return false
}

// Effects groups the player's timed states.
type Effects struct {
	Frozen   Effect
	Boosted  Effect
	Inverted Effect
}

// Expire runs the expiry pass over all effects.
func (e *Effects) Expire(now Time) {
	e.Frozen.Expire(now)
	e.Boosted.Expire(now)
	e.Inverted.Expire(now)
}

// Player is the single player body. It is created once and reset in place.
type Player struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Radius   float64
	OnGround bool
	Standing PlatformHandle
	Rotation float64 // cosmetic
	Effects  Effects
	Dead     bool

	jumpQueued bool
	jumpAt     Time
	grounded   bool // a coyote stamp exists
	groundedAt Time

	HighestX float64
}

// Phase is the stage state machine state.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseCleared
	PhaseDead
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCleared:
		return "cleared"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Stats are session counters.
type Stats struct {
	Deaths int
	Clears int
}

// State is all mutable simulation state. One value of it is owned by a
// Simulation and mutated only inside Tick.
type State struct {
	Now   Time
	Stage int
	Best  int // highest stage known to be saved
	Phase Phase
	Seed  uint32
	Life  uint64 // bumped on every (re)initialization

	World        World
	Player       Player
	Camera       cp.Vector // top-left of the view in world units
	Collectibles []Collectible
	Waves        []Wave
	Projectiles  []Projectile
	Particles    []Particle
	Rockets      []Rocket

	NextSpawnAt Time
	nextWaveID  uint64

	Stats Stats
}
