package sim

import "github.com/jakecoffman/cp"

// Snapshot is a read-only copy of what a renderer needs for one frame.
// It shares nothing with the live state.
type Snapshot struct {
	Now      Time
	Stage    int
	Best     int
	Phase    Phase
	Seed     uint32
	Stats    Stats
	Camera   cp.Vector
	ViewW    float64
	ViewH    float64
	Player   PlayerView
	Objects  []Object
	Portal   Object
	Coins    []Collectible
	Shots    []Projectile
	Sparks   []Particle
	Rockets  []Rocket
	Progress float64 // 0..1 along the level toward the portal
}

// PlayerView is the player's drawable state.
type PlayerView struct {
	Pos       cp.Vector
	Vel       cp.Vector
	Radius    float64
	Rotation  float64
	OnGround  bool
	OnRainbow bool
	Frozen    bool
	Boosted   bool
	Inverted  bool
	Dead      bool
	HighestX  float64
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	st := &s.state
	p := st.Player
	now := st.Now
	standing, ok := st.World.Resolve(p.Standing)

	snap := Snapshot{
		Now:    now,
		Stage:  st.Stage,
		Best:   st.Best,
		Phase:  st.Phase,
		Seed:   st.Seed,
		Stats:  st.Stats,
		Camera: st.Camera,
		ViewW:  s.cfg.View.Width(),
		ViewH:  s.cfg.View.Height(),
		Player: PlayerView{
			Pos:       p.Pos,
			Vel:       p.Vel,
			Radius:    p.Radius,
			Rotation:  p.Rotation,
			OnGround:  p.OnGround,
			OnRainbow: p.OnGround && ok && standing.IsRainbow(),
			Frozen:    p.Effects.Frozen.On(now),
			Boosted:   p.Effects.Boosted.On(now),
			Inverted:  p.Effects.Inverted.On(now),
			Dead:      p.Dead,
			HighestX:  p.HighestX,
		},
		Objects: append([]Object(nil), st.World.Level.Objects...),
		Portal:  st.World.Level.Portal,
		Shots:   append([]Projectile(nil), st.Projectiles...),
		Sparks:  append([]Particle(nil), st.Particles...),
		Rockets: append([]Rocket(nil), st.Rockets...),
	}
	for _, c := range st.Collectibles {
		if c.Active {
			snap.Coins = append(snap.Coins, c)
		}
	}

	start := st.World.Level.Spawn.X
	end := st.World.Level.Portal.Box.X
	if end > start {
		snap.Progress = clamp((p.HighestX-start)/(end-start), 0, 1)
	}
	return snap
}
