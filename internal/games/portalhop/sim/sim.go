// Package sim is the deterministic simulation core of portalhop: player
// physics, level generation, timed effects, hazards and stage progression.
//
// A Simulation advances on a fixed tick driven by the host. All randomness
// comes from the session seed, so a session replays identically given the
// same seed and input sequence. Audio and persistence are reached only
// through the CueSink and ProgressStore interfaces.
package sim

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/vovakirdan/portalhop/internal/config"
)

// Options configures a new Simulation.
type Options struct {
	Config   config.PortalHopConfig
	Curve    *config.StageCurve // nil builds one from Config
	Cues     CueSink            // nil discards cues
	Progress ProgressStore      // nil stores nothing
	Seed     int64              // session seed for layouts and spawns
}

// Simulation owns the simulation state and advances it one tick at a time.
// It is not safe for concurrent use.
type Simulation struct {
	cfg      config.PortalHopConfig
	curve    *config.StageCurve
	cues     CueSink
	progress ProgressStore
	rand     *rand.Rand
	sched    Scheduler
	state    State
	started  bool

	pendingCfg   *config.PortalHopConfig
	pendingCurve *config.StageCurve
}

// New creates a simulation. Call Start before the first Tick.
func New(opts Options) *Simulation {
	s := &Simulation{
		cfg:      opts.Config,
		curve:    opts.Curve,
		cues:     opts.Cues,
		progress: opts.Progress,
		rand:     rand.New(rand.NewSource(opts.Seed)),
	}
	if s.curve == nil {
		s.curve = config.NewStageCurve(s.cfg.Curve, s.cfg.Difficulty)
	}
	if s.cues == nil {
		s.cues = NopCues{}
	}
	if s.progress == nil {
		s.progress = nopProgress{}
	}
	s.state.Player.Radius = s.cfg.Player.Radius
	return s
}

// Start begins the session at the highest saved stage.
func (s *Simulation) Start() {
	stage := s.loadProgress()
	s.state.Best = stage
	s.state.NextSpawnAt = s.state.Now + s.cfg.Collectibles.SpawnInterval()
	s.init(stage, true)
	s.updateCamera()
	s.started = true
}

// Started reports whether Start has run.
func (s *Simulation) Started() bool {
	return s.started
}

// SetConfig queues a new configuration. It takes effect at the next full
// reinitialization so a stage in progress keeps a consistent layout.
func (s *Simulation) SetConfig(cfg config.PortalHopConfig, curve *config.StageCurve) {
	if curve == nil {
		curve = config.NewStageCurve(cfg.Curve, cfg.Difficulty)
	}
	s.pendingCfg = &cfg
	s.pendingCurve = curve
}

// Config returns the configuration in effect.
func (s *Simulation) Config() config.PortalHopConfig {
	return s.cfg
}

// State exposes the live state for inspection. Callers must not mutate it.
func (s *Simulation) State() *State {
	return &s.state
}

// Scheduler exposes the pending deferred events for inspection.
func (s *Simulation) Scheduler() *Scheduler {
	return &s.sched
}

// Tick advances the simulation to now. now must not decrease between calls.
//
// Order within a tick:
//  1. Reset requests restart the session and end the tick
//  2. Due scheduled events fire (gamble, wave loop, reinit, firework)
//  3. The spawn manager runs on its interval
//  4. The player moves, collides and collects (active phase only)
//  5. Collectibles, waves, projectiles and particles advance
//  6. Effects expire
//  7. Terminal conditions resolve: portal clears, falling or a hit kills
//  8. The camera centers on the player
func (s *Simulation) Tick(now Time, in Input) {
	if !s.started {
		s.Start()
	}
	st := &s.state
	if now > st.Now {
		st.Now = now
	}
	now = st.Now

	if in.Reset {
		s.resetGame()
		return
	}
	if in.Jump {
		st.Player.queueJump(now)
	}

	s.drainEvents(now)

	if now >= st.NextSpawnAt {
		s.runSpawnCheck()
		st.NextSpawnAt = now + s.cfg.Collectibles.SpawnInterval()
	}

	var m motion
	if st.Phase == PhaseActive && !st.Player.Dead {
		m = s.updatePlayer(now, in)
	}
	s.updateCollectibles()
	s.updateWaves(now)
	hit := s.updateProjectiles()
	s.updateParticles()

	st.Player.Effects.Expire(now)

	switch {
	case m.reachedPortal:
		s.clearStage()
	case m.fell || hit:
		s.die(hit)
	}

	s.updateCamera()
}

func (s *Simulation) drainEvents(now Time) {
	for {
		ev, ok := s.sched.PopDue(now)
		if !ok {
			return
		}
		switch ev.Kind {
		case EventGamble:
			s.resolveGamble(ev)
		case EventWaveLoop:
			s.startWaveLoop(ev)
		case EventReinit:
			if ev.Life == s.state.Life {
				s.init(ev.Stage, ev.Full)
			}
		case EventFirework:
			if ev.Life == s.state.Life && s.state.Phase == PhaseCleared {
				s.launchRocket()
			}
		}
	}
}

func (s *Simulation) updateCamera() {
	st := &s.state
	st.Camera = st.Player.Pos.Sub(cp.Vector{X: s.cfg.View.Width() / 2, Y: s.cfg.View.Height() / 2})
}
