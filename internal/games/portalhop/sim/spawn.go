package sim

import "github.com/jakecoffman/cp"

// runSpawnCheck rolls the spawn table once. Each rule is checked in table
// order; the chance is only rolled while the kind is under its cap.
func (s *Simulation) runSpawnCheck() {
	st := &s.state
	s.pruneCollectibles()

	for _, rule := range s.cfg.Collectibles.Spawns {
		kind, ok := ParseCollectibleKind(rule.Kind)
		if !ok || st.Stage < rule.MinStage {
			continue
		}
		if s.activeCollectibles(kind) >= rule.Cap {
			continue
		}
		if s.rand.Float64() < rule.Chance(st.Stage) {
			s.spawnCollectible(kind)
		}
	}
}

// spawnCollectible places a collectible at a random point in the view.
func (s *Simulation) spawnCollectible(kind Kind) {
	st := &s.state
	cc := s.cfg.Collectibles
	k := st.World.Level.Params.CoinSpeedMult

	vel := cp.Vector{
		X: (s.rand.Float64() - 0.5) * cc.SpeedX * k,
		Y: (s.rand.Float64() - 0.5) * cc.SpeedY * k,
	}
	pos := cp.Vector{
		X: st.Camera.X + s.rand.Float64()*s.cfg.View.Width(),
		Y: st.Camera.Y + s.rand.Float64()*s.cfg.View.Height(),
	}
	st.Collectibles = append(st.Collectibles, Collectible{
		Kind:   kind,
		Pos:    pos,
		Vel:    vel,
		Radius: cc.Radius,
		Active: true,
	})
}

func (s *Simulation) activeCollectibles(kind Kind) int {
	n := 0
	for _, c := range s.state.Collectibles {
		if c.Active && c.Kind == kind {
			n++
		}
	}
	return n
}

// pruneCollectibles drops picked-up collectibles.
func (s *Simulation) pruneCollectibles() {
	st := &s.state
	kept := st.Collectibles[:0]
	for _, c := range st.Collectibles {
		if c.Active {
			kept = append(kept, c)
		}
	}
	st.Collectibles = kept
}
