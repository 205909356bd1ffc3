package sim

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/vovakirdan/portalhop/internal/config"
)

// Level is the static world of one stage.
type Level struct {
	Stage   int
	Seed    uint32
	Params  config.StageParams
	Objects []Object // backdrop first, then start platforms, then generated platforms
	Portal  Object
	StartY  float64   // top of the start platforms
	Spawn   cp.Vector // player spawn point
}

// Platforms returns the physical objects in layout order.
func (l Level) Platforms() []Object {
	out := make([]Object, 0, len(l.Objects))
	for _, o := range l.Objects {
		if o.Physical {
			out = append(out, o)
		}
	}
	return out
}

// GenerateLevel builds the world for a stage. The result depends only on
// the config, the stage parameters and the seed.
//
// Layout:
//  1. A non-physical backdrop covering the whole play area
//  2. A row of contiguous start platforms, independent of seed and stage
//  3. params.PlatformCount generated platforms; per platform the generator
//     draws gap, height change, width and, after the first, the rainbow roll
//  4. The portal, one max gap plus a margin past the last platform
func GenerateLevel(cfg config.PortalHopConfig, params config.StageParams, seed uint32) Level {
	lc := cfg.Level
	viewH := cfg.View.Height()
	startY := viewH - lc.StartBottomOffset

	objects := make([]Object, 0, 1+lc.StartPlatforms+params.PlatformCount)
	objects = append(objects, Object{
		Kind: KindBackdrop,
		Box:  Box{X: -100000, Y: -10000, W: 200000, H: 20000},
	})

	x, prevY := lc.StartX, startY
	for i := 0; i < lc.StartPlatforms; i++ {
		objects = append(objects, Object{
			Kind:     KindPlatform,
			Box:      Box{X: x, Y: prevY, W: lc.StartWidth, H: lc.StartWidth / lc.AspectRatio},
			Physical: true,
		})
		x += lc.StartWidth
	}

	rng := NewSeededRNG(seed)
	prevRainbow := false
	for i := 0; i < params.PlatformCount; i++ {
		minGap, maxGap := params.MinGap, params.MaxGap
		if prevRainbow {
			minGap *= lc.RainbowMinGap
			maxGap *= lc.RainbowMaxGap
		}
		// Explicit conversions keep the compiler from fusing multiply-adds,
		// so layouts are identical on every architecture.
		gap := minGap + float64(rng.Next()*(maxGap-minGap))
		yChange := float64(float64(rng.Next()-lc.YBias)*2) * params.MaxYChange
		w := params.MinWidth + float64(rng.Next()*(params.MaxWidth-params.MinWidth))
		if prevRainbow {
			w = math.Min(w*lc.WiderFactor, params.MaxWidth*lc.WiderCap)
		}
		h := w / lc.AspectRatio

		x += gap
		y := prevY + yChange
		if y > viewH-h-lc.BottomMargin {
			y = viewH - h - lc.BottomMargin
		}
		if y < lc.MinY {
			y = lc.MinY
		}

		// The roll is drawn for every platform after the first so the stream
		// stays aligned; a roll right after a rainbow platform is discarded.
		kind := KindPlatform
		if i > 0 && rng.Next() < lc.RainbowChance && !prevRainbow {
			kind = KindRainbowPlatform
		}
		prevRainbow = kind == KindRainbowPlatform

		objects = append(objects, Object{
			Kind:     kind,
			Box:      Box{X: x, Y: y, W: w, H: h},
			Physical: true,
		})
		prevY = y
	}

	return Level{
		Stage:   params.Stage,
		Seed:    seed,
		Params:  params,
		Objects: objects,
		Portal: Object{
			Kind: KindPortal,
			Box: Box{
				X: x + params.MaxGap + lc.PortalGap,
				Y: prevY - lc.PortalRise,
				W: lc.PortalWidth,
				H: lc.PortalHeight,
			},
		},
		StartY: startY,
		Spawn:  cp.Vector{X: cfg.Player.SpawnX, Y: startY - cfg.Player.SpawnHeight},
	}
}

// World is the current level plus a generation counter that invalidates
// platform handles whenever the level is replaced.
type World struct {
	Level      Level
	Generation uint64
}

// Replace installs a new level and bumps the generation.
func (w *World) Replace(l Level) {
	w.Level = l
	w.Generation++
}

// Handle returns a handle to the object at index in the current generation.
func (w *World) Handle(index int) PlatformHandle {
	return PlatformHandle{Index: index, Generation: w.Generation}
}

// Resolve looks up a handle. Stale or empty handles resolve to false.
func (w *World) Resolve(h PlatformHandle) (Object, bool) {
	if h.Generation != w.Generation || h.Index < 0 || h.Index >= len(w.Level.Objects) {
		return Object{}, false
	}
	return w.Level.Objects[h.Index], true
}
