package config

import (
	"math"
	"sync"
)

// StageParams are the level and hazard parameters for one stage.
type StageParams struct {
	Stage          int
	PlatformCount  int
	MinGap         float64
	MaxGap         float64
	MaxYChange     float64
	MinWidth       float64
	MaxWidth       float64
	ProjectileMult float64 // scales projectile steering and speed cap
	CoinSpeedMult  float64 // scales spawned collectible velocity
}

// StageCurve calculates stage parameters from the curve config, scaled by
// the difficulty stage factor and optionally overridden by a script.
type StageCurve struct {
	cfg    CurveConfig
	factor float64
	script *CurveScript

	mu        sync.Mutex
	scriptErr error
}

// NewStageCurve creates a curve for the given config.
func NewStageCurve(cfg CurveConfig, difficulty DifficultyConfig) *StageCurve {
	return &StageCurve{
		cfg:    cfg,
		factor: clampF(difficulty.StageFactor, 0, 4),
	}
}

// SetScript installs a script override. Nil removes it.
func (c *StageCurve) SetScript(s *CurveScript) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.script = s
	c.scriptErr = nil
}

// ScriptErr returns the first script failure since the script was set.
func (c *StageCurve) ScriptErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scriptErr
}

// Params returns the parameters for a stage. Stages below 1 count as 1.
func (c *StageCurve) Params(stage int) StageParams {
	if stage < 1 {
		stage = 1
	}
	s := float64(stage-1) * c.factor
	cfg := c.cfg

	p := StageParams{
		Stage:          stage,
		PlatformCount:  cfg.PlatformsBase + int(float64(cfg.PlatformsStep)*s),
		MinGap:         capped(cfg.MinGapBase+cfg.MinGapStep*s, cfg.MinGapCap),
		MaxGap:         capped(cfg.MaxGapBase+cfg.MaxGapStep*s, cfg.MaxGapCap),
		MaxYChange:     cfg.MaxYBase + cfg.MaxYStep*s,
		MaxWidth:       math.Max(cfg.MaxWidthFloor, cfg.MaxWidthBase-cfg.MaxWidthStep*s),
		MinWidth:       math.Max(cfg.MinWidthFloor, cfg.MinWidthBase-cfg.MinWidthStep*s),
		ProjectileMult: 1 + cfg.ProjectileStep*s,
		CoinSpeedMult:  1 + cfg.CoinSpeedStep*s,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.script == nil {
		return p
	}
	out, err := c.script.Apply(s, p)
	if err != nil {
		if c.scriptErr == nil {
			c.scriptErr = err
		}
		return p
	}
	return out.sanitized(p)
}

// sanitized keeps script output usable: counts non-negative and ranges ordered.
func (p StageParams) sanitized(fallback StageParams) StageParams {
	if p.PlatformCount < 0 {
		p.PlatformCount = 0
	}
	if p.MinGap <= 0 || p.MaxGap < p.MinGap {
		p.MinGap, p.MaxGap = fallback.MinGap, fallback.MaxGap
	}
	if p.MinWidth <= 0 || p.MaxWidth < p.MinWidth {
		p.MinWidth, p.MaxWidth = fallback.MinWidth, fallback.MaxWidth
	}
	if p.ProjectileMult <= 0 {
		p.ProjectileMult = fallback.ProjectileMult
	}
	if p.CoinSpeedMult <= 0 {
		p.CoinSpeedMult = fallback.CoinSpeedMult
	}
	return p
}

func capped(v, limit float64) float64 {
	if limit > 0 {
		return math.Min(limit, v)
	}
	return v
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// BuildStageCurve creates the curve for cfg and loads its script, if any.
// A script that fails to load is returned as an error alongside a usable
// curve without the override.
func BuildStageCurve(cfg PortalHopConfig) (*StageCurve, error) {
	curve := NewStageCurve(cfg.Curve, cfg.Difficulty)
	if cfg.Curve.Script == "" {
		return curve, nil
	}
	script, err := LoadCurveScript(cfg.Curve.Script)
	if err != nil {
		return curve, err
	}
	curve.SetScript(script)
	return curve, nil
}
