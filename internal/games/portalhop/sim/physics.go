package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// queueJump latches a jump request at the tick time.
func (p *Player) queueJump(now Time) {
	p.jumpQueued = true
	p.jumpAt = now
}

// touchGround refreshes the coyote stamp.
func (p *Player) touchGround(now Time) {
	p.grounded = true
	p.groundedAt = now
}

// clearJumpTimers zeroes both the buffer and the coyote stamp.
func (p *Player) clearJumpTimers() {
	p.jumpQueued = false
	p.grounded = false
}

// motion is the per-tick outcome of the player update.
type motion struct {
	reachedPortal bool
	fell          bool
}

// updatePlayer integrates the player for one tick and resolves collisions.
//
// Order:
//  1. Frozen players skip the whole update
//  2. Modifiers are re-derived from boost and rainbow footing
//  3. Input acceleration (reversed when inverted), then the buffered jump
//  4. Friction, stop snap, speed clamp, gravity while airborne
//  5. Move X and push out of platforms; then move Y and land or head-bump
//  6. Pickups, portal and fall checks
func (s *Simulation) updatePlayer(now Time, in Input) motion {
	st := &s.state
	p := &st.Player
	pc := s.cfg.Physics

	if p.Effects.Frozen.On(now) {
		return motion{}
	}

	accel, maxSpeed, jump := pc.Acceleration, pc.MaxSpeed, pc.JumpForce
	if p.Effects.Boosted.On(now) {
		maxSpeed = pc.MaxSpeed * pc.BoostFactor
		jump = pc.JumpForce * pc.BoostFactor
	}
	standing, ok := st.World.Resolve(p.Standing)
	onRainbow := ok && standing.IsRainbow()
	if p.OnGround && onRainbow {
		accel = pc.Acceleration * pc.RainbowSpeedFactor
		maxSpeed = pc.MaxSpeed * pc.RainbowSpeedFactor
	}

	left, right := in.MoveLeft, in.MoveRight
	if p.Effects.Inverted.On(now) {
		left, right = right, left
	}
	if left {
		p.Vel.X -= accel
	}
	if right {
		p.Vel.X += accel
	}

	bufferOK := p.jumpQueued && now-p.jumpAt < pc.JumpBuffer()
	coyoteOK := p.grounded && now-p.groundedAt < pc.Coyote()
	if bufferOK && coyoteOK {
		if onRainbow {
			s.cues.PlayOneShot(CueSuperJump)
			p.Vel.Y = pc.JumpForce * pc.SuperJumpFactor
		} else {
			s.cues.PlayOneShot(CueJump)
			p.Vel.Y = jump
		}
		p.clearJumpTimers()
	}

	p.Vel.X *= pc.Friction
	if math.Abs(p.Vel.X) < pc.StopThreshold {
		p.Vel.X = 0
	}
	if math.Abs(p.Vel.X) > maxSpeed {
		p.Vel.X = math.Copysign(maxSpeed, p.Vel.X)
	}
	wasGrounded := p.OnGround
	if !p.OnGround {
		p.Vel.Y += pc.Gravity
	}

	s.moveAndCollide(now, wasGrounded)

	var m motion
	s.collectPickups(now)
	if st.World.Level.Portal.Box.CircleOverlaps(p.Pos, p.Radius) {
		m.reachedPortal = true
	}

	p.Rotation += p.Vel.X * pc.RotationFactor
	if p.Pos.X > p.HighestX {
		p.HighestX = p.Pos.X
	}
	if p.Pos.Y > s.cfg.View.Height()/2+s.cfg.View.ScreenHeight+pc.FallMargin {
		m.fell = true
	}
	return m
}

// moveAndCollide performs the axis-separated move, X first.
func (s *Simulation) moveAndCollide(now Time, wasGrounded bool) {
	st := &s.state
	p := &st.Player
	objects := st.World.Level.Objects
	r := p.Radius
	prevY := p.Pos.Y

	p.Pos.X += p.Vel.X
	for _, o := range objects {
		if !o.Physical || !o.Box.CircleOverlaps(p.Pos, r) {
			continue
		}
		if p.Vel.X > 0 {
			p.Pos.X = o.Box.X - r
		} else if p.Vel.X < 0 {
			p.Pos.X = o.Box.X + o.Box.W + r
		}
		p.Vel.X = 0
	}

	p.OnGround = false
	p.Standing = NoPlatform
	p.Pos.Y += p.Vel.Y
	for i, o := range objects {
		if !o.Physical || !o.Box.CircleOverlaps(p.Pos, r) {
			continue
		}
		if p.Vel.Y >= 0 && prevY+r <= o.Box.Y+1 {
			p.Pos.Y = o.Box.Y - r
			p.Vel.Y = 0
			p.OnGround = true
			p.Standing = st.World.Handle(i)
			p.touchGround(now)
		} else if p.Vel.Y < 0 {
			p.Pos.Y = o.Box.Y + o.Box.H + r
			p.Vel.Y = 0
		}
	}

	// A body resting exactly on a top edge does not overlap it. Probe one
	// unit down so resting contact stays grounded on every tick.
	if !p.OnGround && wasGrounded && p.Vel.Y == 0 {
		probe := cp.Vector{X: p.Pos.X, Y: p.Pos.Y + 1}
		for i, o := range objects {
			if o.Physical && o.Box.CircleOverlaps(probe, r) && p.Pos.Y+r <= o.Box.Y+1 {
				p.Pos.Y = o.Box.Y - r
				p.OnGround = true
				p.Standing = st.World.Handle(i)
				break
			}
		}
	}

	if p.OnGround {
		p.touchGround(now)
	}
}
