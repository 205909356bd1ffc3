package config

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// CurveScript is a compiled tengo script that adjusts stage parameters.
//
// The script sees `stage` (int) and `s` (float, stage-1 scaled by the
// difficulty factor) plus every parameter pre-set to its built-in value:
//
//	platform_count, min_gap, max_gap, max_y_change,
//	min_width, max_width, projectile_mult, coin_speed_mult
//
// Assigning to any of them overrides it, e.g. `max_gap = max_gap * 1.1`.
type CurveScript struct {
	path     string
	compiled *tengo.Compiled
}

var curveScriptVars = []string{
	"platform_count", "min_gap", "max_gap", "max_y_change",
	"min_width", "max_width", "projectile_mult", "coin_speed_mult",
}

// LoadCurveScript reads and compiles a curve script.
func LoadCurveScript(path string) (*CurveScript, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curve script %s: %w", path, err)
	}
	cs, err := CompileCurveScript(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile curve script %s: %w", path, err)
	}
	cs.path = path
	return cs, nil
}

// CompileCurveScript compiles script source.
func CompileCurveScript(src []byte) (*CurveScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("stage", 0)
	_ = script.Add("s", 0.0)
	_ = script.Add("platform_count", 0)
	for _, name := range curveScriptVars[1:] {
		_ = script.Add(name, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &CurveScript{compiled: compiled}, nil
}

// Path returns the file the script was loaded from, if any.
func (cs *CurveScript) Path() string {
	return cs.path
}

// Apply runs the script for one stage starting from the built-in params.
func (cs *CurveScript) Apply(s float64, p StageParams) (StageParams, error) {
	c := cs.compiled
	inputs := map[string]any{
		"stage":           p.Stage,
		"s":               s,
		"platform_count":  p.PlatformCount,
		"min_gap":         p.MinGap,
		"max_gap":         p.MaxGap,
		"max_y_change":    p.MaxYChange,
		"min_width":       p.MinWidth,
		"max_width":       p.MaxWidth,
		"projectile_mult": p.ProjectileMult,
		"coin_speed_mult": p.CoinSpeedMult,
	}
	for name, v := range inputs {
		if err := c.Set(name, v); err != nil {
			return p, fmt.Errorf("curve script: set %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return p, fmt.Errorf("curve script: %w", err)
	}

	out := p
	out.PlatformCount = c.Get("platform_count").Int()
	out.MinGap = c.Get("min_gap").Float()
	out.MaxGap = c.Get("max_gap").Float()
	out.MaxYChange = c.Get("max_y_change").Float()
	out.MinWidth = c.Get("min_width").Float()
	out.MaxWidth = c.Get("max_width").Float()
	out.ProjectileMult = c.Get("projectile_mult").Float()
	out.CoinSpeedMult = c.Get("coin_speed_mult").Float()
	return out, nil
}
