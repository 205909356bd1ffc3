package sim

import "github.com/jakecoffman/cp"

// startWaveLoop starts a wave's loop cue if the player is alive and the wave
// still exists.
func (s *Simulation) startWaveLoop(ev Event) {
	st := &s.state
	if st.Player.Dead || ev.Life != st.Life {
		return
	}
	for _, w := range st.Waves {
		if w.ID == ev.WaveID {
			s.cues.StartLoop(w.LoopCue)
			return
		}
	}
}

// updateWaves spawns due projectiles and retires finished waves. A wave's
// loop cue is stopped exactly once, when the wave is removed.
func (s *Simulation) updateWaves(now Time) {
	st := &s.state
	hz := s.cfg.Hazards
	kept := st.Waves[:0]
	for _, w := range st.Waves {
		if w.Remaining > 0 && now >= w.NextAt {
			w.Remaining--
			w.NextAt = now + hz.WaveInterval()
			st.Projectiles = append(st.Projectiles, Projectile{
				Pos:    cp.Vector{X: st.Player.Pos.X, Y: st.Camera.Y - hz.SpawnAbove},
				Vel:    cp.Vector{X: 0, Y: hz.ProjectileSpeed},
				Radius: hz.ProjectileRadius,
				Life:   hz.ProjectileLife,
			})
		}
		if w.Remaining <= 0 {
			s.cues.StopLoop(w.LoopCue)
			continue
		}
		kept = append(kept, w)
	}
	st.Waves = kept
}

// updateProjectiles steers projectiles toward the player. It reports
// whether one of them hit a live player.
//
// Per projectile: age, gravity, steer toward the player (vertical pull only
// while the player is below), clamp speed, integrate, test the hit.
func (s *Simulation) updateProjectiles() (hit bool) {
	st := &s.state
	hz := s.cfg.Hazards
	p := &st.Player
	m := st.World.Level.Params.ProjectileMult
	maxSpeed := hz.MaxSpeed * m

	kept := st.Projectiles[:0]
	for _, pr := range st.Projectiles {
		pr.Life--
		if pr.Life <= 0 {
			continue
		}
		pr.Vel.Y += hz.Gravity
		dir := p.Pos.Sub(pr.Pos)
		if dist := dir.Length(); dist > 1 {
			pr.Vel.X += dir.X / dist * hz.SteerX * m
			if dir.Y > 0 {
				pr.Vel.Y += dir.Y / dist * hz.SteerY * m
			}
		}
		if speed := pr.Vel.Length(); speed > maxSpeed {
			pr.Vel = cp.Vector{X: pr.Vel.X / speed * maxSpeed, Y: pr.Vel.Y / speed * maxSpeed}
		}
		pr.Pos = pr.Pos.Add(pr.Vel)
		kept = append(kept, pr)

		if !hit && st.Phase == PhaseActive && !p.Dead && circlesOverlap(p.Pos, p.Radius, pr.Pos, pr.Radius) {
			hit = true
		}
	}
	st.Projectiles = kept
	return hit
}

// stopAllWaves stops each distinct loop cue once and drops every wave.
func (s *Simulation) stopAllWaves() {
	st := &s.state
	stopped := make(map[Cue]bool, len(st.Waves))
	for _, w := range st.Waves {
		if stopped[w.LoopCue] {
			continue
		}
		stopped[w.LoopCue] = true
		s.cues.StopLoop(w.LoopCue)
	}
	st.Waves = st.Waves[:0]
}
