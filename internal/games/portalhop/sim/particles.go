package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Particle is one spark of an explosion.
type Particle struct {
	Pos  cp.Vector
	Vel  cp.Vector
	Life float64 // ticks remaining
	Size float64
	Hue  float64
}

// Rocket is a firework climbing toward its burst height.
type Rocket struct {
	Pos     cp.Vector
	Vel     cp.Vector
	TargetY float64
	Hue     float64
}

// explode spawns a burst of particles around hue.
func (s *Simulation) explode(at cp.Vector, hue float64) {
	pc := s.cfg.Particles
	n := pc.MinCount
	if pc.CountRange > 0 {
		n += s.rand.Intn(pc.CountRange)
	}
	for i := 0; i < n; i++ {
		angle := s.rand.Float64() * 2 * math.Pi
		speed := s.rand.Float64()*pc.SpeedRange + pc.MinSpeed
		s.state.Particles = append(s.state.Particles, Particle{
			Pos:  at,
			Vel:  cp.ForAngle(angle).Mult(speed),
			Life: s.rand.Float64()*pc.LifeRange + pc.MinLife,
			Size: s.rand.Float64()*5 + 4,
			Hue:  hue + (s.rand.Float64()*2-1)*pc.HueSpread,
		})
	}
}

// launchRocket adds one firework rising from the bottom of the view.
func (s *Simulation) launchRocket() {
	pc := s.cfg.Particles
	st := &s.state
	viewW, viewH := s.cfg.View.Width(), s.cfg.View.Height()
	st.Rockets = append(st.Rockets, Rocket{
		Pos: cp.Vector{X: st.Camera.X + s.rand.Float64()*viewW, Y: st.Camera.Y + viewH},
		Vel: cp.Vector{
			X: s.rand.Float64()*2*pc.RocketDrift - pc.RocketDrift,
			Y: -(s.rand.Float64()*pc.RocketLiftRange + pc.RocketMinLift),
		},
		TargetY: st.Camera.Y + s.rand.Float64()*(viewH/2.5),
		Hue:     s.rand.Float64() * 360,
	})
}

// updateParticles advances rockets and sparks. Rockets burst when they pass
// their target height or stop climbing.
func (s *Simulation) updateParticles() {
	pc := s.cfg.Particles
	st := &s.state

	rockets := st.Rockets[:0]
	var bursts []Rocket
	for _, r := range st.Rockets {
		r.Pos = r.Pos.Add(r.Vel)
		r.Vel.Y += pc.RocketGravity
		if r.Pos.Y <= r.TargetY || r.Vel.Y >= 0 {
			bursts = append(bursts, r)
			continue
		}
		rockets = append(rockets, r)
	}
	st.Rockets = rockets
	for _, r := range bursts {
		s.explode(r.Pos, r.Hue)
		s.cues.PlayOneShot(CueFirework)
	}

	sparks := st.Particles[:0]
	for _, p := range st.Particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += pc.Gravity
		p.Vel.X *= pc.Drag
		p.Life--
		if p.Life <= 0 {
			continue
		}
		sparks = append(sparks, p)
	}
	st.Particles = sparks
}
