package sim

import "github.com/jakecoffman/cp"

// die ends the current life. Only an active stage can be lost, so a second
// death in the same life is a no-op.
func (s *Simulation) die(explode bool) {
	st := &s.state
	if st.Phase != PhaseActive || st.Player.Dead {
		return
	}
	st.Player.Dead = true
	st.Phase = PhaseDead
	st.Stats.Deaths++

	s.cues.PlayOneShot(CueHit)
	s.cues.MuteTransient(true)
	s.stopAllWaves()
	st.Projectiles = st.Projectiles[:0]
	if explode {
		s.explode(st.Player.Pos, hueHit)
	}

	s.sched.Schedule(Event{
		At:    st.Now + s.cfg.Stage.DeathDelay(),
		Kind:  EventReinit,
		Life:  st.Life,
		Stage: st.Stage,
	})
}

// clearStage completes the stage: progress is saved, fireworks are queued
// and the next stage is scheduled.
func (s *Simulation) clearStage() {
	st := &s.state
	if st.Phase != PhaseActive {
		return
	}
	st.Phase = PhaseCleared
	st.Stats.Clears++

	s.cues.PlayOneShot(CueClear)
	s.stopAllWaves()

	next := st.Stage + 1
	if err := s.progress.SaveHighestStage(next); err == nil && next > st.Best {
		st.Best = next
	}
	if rec, ok := s.progress.(ClearRecorder); ok {
		_ = rec.RecordClear(st.Stage, st.Seed)
	}

	pc := s.cfg.Particles
	for i := 0; i < pc.Rockets; i++ {
		s.sched.Schedule(Event{
			At:   st.Now + pc.RocketInterval()*Time(i),
			Kind: EventFirework,
			Life: st.Life,
		})
	}
	s.sched.Schedule(Event{
		At:    st.Now + s.cfg.Stage.ClearDelay(),
		Kind:  EventReinit,
		Life:  st.Life,
		Stage: next,
		Full:  true,
	})
}

// init (re)builds a stage. A full init also picks a new layout seed, drops
// collectibles, restarts music and applies any queued configuration.
func (s *Simulation) init(stage int, full bool) {
	st := &s.state
	if stage < 1 {
		stage = 1
	}
	if full {
		if s.pendingCfg != nil {
			s.cfg = *s.pendingCfg
			s.curve = s.pendingCurve
			s.pendingCfg, s.pendingCurve = nil, nil
			st.Player.Radius = s.cfg.Player.Radius
		}
		st.Seed = s.rand.Uint32()
		st.Collectibles = st.Collectibles[:0]
		s.stopAllWaves()
		s.cues.PlayMusic(CueMusic)
	}

	st.Stage = stage
	st.World.Replace(GenerateLevel(s.cfg, s.curve.Params(stage), st.Seed))
	st.Rockets = st.Rockets[:0]
	st.Particles = st.Particles[:0]
	st.Projectiles = st.Projectiles[:0]
	s.sched.Clear()
	st.Phase = PhaseActive
	st.Life++
	s.resetPlayer()
}

// resetPlayer puts the player on the spawn point with no momentum or effects.
func (s *Simulation) resetPlayer() {
	p := &s.state.Player
	p.Pos = s.state.World.Level.Spawn
	p.Vel = cp.Vector{}
	p.Rotation = 0
	p.OnGround = false
	p.Standing = NoPlatform
	p.Effects = Effects{}
	p.Dead = false
	p.HighestX = 0
	p.clearJumpTimers()
	s.cues.MuteTransient(false)
}

// resetGame wipes saved progress and restarts from stage 1.
func (s *Simulation) resetGame() {
	_ = s.progress.ClearHighestStage()
	s.state.Best = 1
	s.cues.StopMusic()
	s.stopAllWaves()
	s.init(1, true)
	s.updateCamera()
}

// loadProgress returns the stage to start at.
func (s *Simulation) loadProgress() int {
	stage, err := s.progress.LoadHighestStage()
	if err != nil || stage < 1 {
		return 1
	}
	return stage
}
