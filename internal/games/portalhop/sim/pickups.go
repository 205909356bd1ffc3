package sim

// GambleOutcome is the effect a gamble collectible resolves to.
type GambleOutcome int

const (
	GambleBoost GambleOutcome = iota
	GambleInvert
	GambleClearProjectiles
	gambleOutcomes
)

// String returns the outcome name.
func (g GambleOutcome) String() string {
	switch g {
	case GambleBoost:
		return "boost"
	case GambleInvert:
		return "invert"
	case GambleClearProjectiles:
		return "clear-projectiles"
	default:
		return "unknown"
	}
}

// Explosion hues.
const (
	hueGamble = 60
	hueHit    = 0
)

// collectPickups deactivates every collectible touching the player and
// applies its effect.
func (s *Simulation) collectPickups(now Time) {
	st := &s.state
	p := &st.Player
	for i := range st.Collectibles {
		c := &st.Collectibles[i]
		if !c.Active || !circlesOverlap(p.Pos, p.Radius, c.Pos, c.Radius) {
			continue
		}
		c.Active = false
		s.applyPickup(now, c.Kind)
	}
}

func (s *Simulation) applyPickup(now Time, kind Kind) {
	st := &s.state
	p := &st.Player
	switch kind {
	case KindFreeze:
		p.Effects.Frozen.Set(now, s.cfg.Effects.Freeze())
		p.Vel.X, p.Vel.Y = 0, 0
		s.cues.PlayOneShot(CueFreeze)
	case KindBoost:
		p.Effects.Boosted.Set(now, s.cfg.Effects.Boost())
		s.cues.PlayOneShot(CueBoost)
	case KindAlert:
		s.cues.PlayOneShot(CueAlert)
		st.nextWaveID++
		hz := s.cfg.Hazards
		wave := Wave{
			ID:        st.nextWaveID,
			Remaining: hz.WaveCount,
			NextAt:    now + hz.WaveDelay(),
			LoopCue:   Cue(hz.LoopCue),
		}
		st.Waves = append(st.Waves, wave)
		s.sched.Schedule(Event{At: now + hz.WaveDelay(), Kind: EventWaveLoop, Life: st.Life, WaveID: wave.ID})
	case KindGamble:
		s.cues.PlayOneShot(CueGamble)
		outcome := GambleOutcome(s.rand.Intn(int(gambleOutcomes)))
		s.sched.Schedule(Event{
			At:       now + s.cfg.Effects.GambleDelay(),
			Kind:     EventGamble,
			Life:     st.Life,
			Outcome:  outcome,
			PickedAt: now,
		})
	case KindBackdrop, KindPlatform, KindRainbowPlatform, KindPortal, KindProjectile:
		// not collectible
	}
}

// resolveGamble applies a gamble outcome if the player is still alive in
// the life it was picked up in.
func (s *Simulation) resolveGamble(ev Event) {
	st := &s.state
	p := &st.Player
	if p.Dead || ev.Life != st.Life {
		return
	}
	switch ev.Outcome {
	case GambleBoost:
		p.Effects.Boosted.Set(ev.PickedAt, s.cfg.Effects.Boost())
		s.cues.PlayOneShot(CueBoost)
	case GambleInvert:
		p.Effects.Inverted.Set(ev.PickedAt, s.cfg.Effects.Invert())
		s.cues.PlayOneShot(CueInvert)
	case GambleClearProjectiles:
		st.Projectiles = st.Projectiles[:0]
		s.explode(p.Pos, hueGamble)
		s.cues.PlayOneShot(CueHit)
	}
}

// updateCollectibles moves collectibles and bounces them off the view edges.
func (s *Simulation) updateCollectibles() {
	st := &s.state
	viewW, viewH := s.cfg.View.Width(), s.cfg.View.Height()
	for i := range st.Collectibles {
		c := &st.Collectibles[i]
		if !c.Active {
			continue
		}
		c.Pos = c.Pos.Add(c.Vel)

		left, right := st.Camera.X+c.Radius, st.Camera.X+viewW-c.Radius
		top, bottom := st.Camera.Y+c.Radius, st.Camera.Y+viewH-c.Radius
		if c.Pos.X < left || c.Pos.X > right {
			c.Vel.X = -c.Vel.X
			c.Pos.X = clamp(c.Pos.X, left, right)
		}
		if c.Pos.Y < top || c.Pos.Y > bottom {
			c.Vel.Y = -c.Vel.Y
			c.Pos.Y = clamp(c.Pos.Y, top, bottom)
		}
	}
}

// clamp matches max(lo, min(v, hi)), so lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
