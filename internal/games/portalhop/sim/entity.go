package sim

import "github.com/jakecoffman/cp"

// Kind tags every world object and mover.
type Kind int

const (
	KindBackdrop Kind = iota
	KindPlatform
	KindRainbowPlatform
	KindPortal
	KindFreeze // collectible: freezes the player
	KindBoost  // collectible: speed and jump boost
	KindAlert  // collectible: starts an attack wave
	KindGamble // collectible: random outcome
	KindProjectile
)

// String returns the kind name used in config files and dumps.
func (k Kind) String() string {
	switch k {
	case KindBackdrop:
		return "backdrop"
	case KindPlatform:
		return "platform"
	case KindRainbowPlatform:
		return "rainbow"
	case KindPortal:
		return "portal"
	case KindFreeze:
		return "freeze"
	case KindBoost:
		return "boost"
	case KindAlert:
		return "alert"
	case KindGamble:
		return "gamble"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// IsCollectible reports whether the kind is a pickup.
func (k Kind) IsCollectible() bool {
	switch k {
	case KindFreeze, KindBoost, KindAlert, KindGamble:
		return true
	default:
		return false
	}
}

// ParseCollectibleKind converts a config name to a collectible kind.
func ParseCollectibleKind(s string) (Kind, bool) {
	for _, k := range CollectibleKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// CollectibleKinds lists the pickup kinds in spawn check order.
var CollectibleKinds = []Kind{KindBoost, KindFreeze, KindAlert, KindGamble}

// Box is an axis-aligned rectangle. Y grows downward, so Y is the top edge.
type Box struct {
	X, Y, W, H float64
}

// BB returns the box as a chipmunk bounding box.
func (b Box) BB() cp.BB {
	return cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}
}

// Center returns the box center.
func (b Box) Center() cp.Vector {
	return cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// CircleOverlaps reports whether a circle intersects the box, by clamping the
// center into the box and comparing the squared distance to r².
func (b Box) CircleOverlaps(center cp.Vector, r float64) bool {
	bb := b.BB()
	closest := cp.Vector{
		X: cp.Clamp(center.X, bb.L, bb.R),
		Y: cp.Clamp(center.Y, bb.B, bb.T),
	}
	return center.DistanceSq(closest) < r*r
}

// Object is a static world object: backdrop, platform or portal.
type Object struct {
	Kind     Kind
	Box      Box
	Physical bool
}

// IsRainbow reports whether the object is a rainbow platform.
func (o Object) IsRainbow() bool {
	return o.Kind == KindRainbowPlatform
}

// PlatformHandle refers to an object in a specific world generation.
// A handle from an older generation resolves to nothing.
type PlatformHandle struct {
	Index      int
	Generation uint64
}

// NoPlatform is the zero handle; generations start at 1.
var NoPlatform = PlatformHandle{Index: -1}

// Collectible is a moving pickup.
type Collectible struct {
	Kind   Kind
	Pos    cp.Vector
	Vel    cp.Vector
	Radius float64
	Active bool
}

// Projectile is a homing hazard.
type Projectile struct {
	Pos    cp.Vector
	Vel    cp.Vector
	Radius float64
	Life   int // ticks remaining
}

// Wave is an attack event that drops projectiles on a fixed interval.
type Wave struct {
	ID        uint64
	Remaining int
	NextAt    Time
	LoopCue   Cue
}

func circlesOverlap(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	r := ra + rb
	return a.DistanceSq(b) < r*r
}
