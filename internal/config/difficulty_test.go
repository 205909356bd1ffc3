package config

import (
	"os"
	"path/filepath"
	"testing"
)

func normalCurve() *StageCurve {
	cfg := DefaultPortalHopConfig()
	return NewStageCurve(cfg.Curve, cfg.Difficulty)
}

func TestStageCurveFirstStage(t *testing.T) {
	p := normalCurve().Params(1)

	if p.PlatformCount != 10 {
		t.Errorf("PlatformCount = %d, expected 10", p.PlatformCount)
	}
	if p.MinGap != 110 || p.MaxGap != 160 {
		t.Errorf("gaps = [%v, %v], expected [110, 160]", p.MinGap, p.MaxGap)
	}
	if p.MaxYChange != 40 {
		t.Errorf("MaxYChange = %v, expected 40", p.MaxYChange)
	}
	if p.MinWidth != 100 || p.MaxWidth != 200 {
		t.Errorf("widths = [%v, %v], expected [100, 200]", p.MinWidth, p.MaxWidth)
	}
	if p.ProjectileMult != 1 || p.CoinSpeedMult != 1 {
		t.Errorf("multipliers = %v, %v, expected 1, 1", p.ProjectileMult, p.CoinSpeedMult)
	}
}

func TestStageCurveCaps(t *testing.T) {
	p := normalCurve().Params(40)

	if p.MinGap != 250 {
		t.Errorf("MinGap = %v, expected cap 250", p.MinGap)
	}
	if p.MaxGap != 300 {
		t.Errorf("MaxGap = %v, expected cap 300", p.MaxGap)
	}
	if p.MaxWidth != 60 {
		t.Errorf("MaxWidth = %v, expected floor 60", p.MaxWidth)
	}
	if p.MinWidth != 40 {
		t.Errorf("MinWidth = %v, expected floor 40", p.MinWidth)
	}
	if p.PlatformCount != 10+39*5 {
		t.Errorf("PlatformCount = %d, expected %d", p.PlatformCount, 10+39*5)
	}
}

func TestStageCurveMonotonic(t *testing.T) {
	curve := normalCurve()
	prev := curve.Params(1)
	for stage := 2; stage <= 60; stage++ {
		p := curve.Params(stage)
		if p.PlatformCount < prev.PlatformCount {
			t.Errorf("stage %d: PlatformCount decreased %d -> %d", stage, prev.PlatformCount, p.PlatformCount)
		}
		if p.MinWidth > prev.MinWidth || p.MaxWidth > prev.MaxWidth {
			t.Errorf("stage %d: width caps increased", stage)
		}
		if p.ProjectileMult < prev.ProjectileMult {
			t.Errorf("stage %d: projectile multiplier decreased", stage)
		}
		prev = p
	}
}

func TestStageCurveBelowOne(t *testing.T) {
	p := normalCurve().Params(0)
	if p.Stage != 1 || p.PlatformCount != 10 {
		t.Errorf("Params(0) = %+v, expected stage 1 parameters", p)
	}
}

func TestStageCurveFixedPreset(t *testing.T) {
	cfg := DefaultPortalHopConfig()
	ApplyPortalHopPreset(&cfg, DifficultyFixed)
	curve := NewStageCurve(cfg.Curve, cfg.Difficulty)

	first, later := curve.Params(1), curve.Params(25)
	later.Stage = first.Stage
	if first != later {
		t.Errorf("fixed preset should play every stage like stage 1: %+v vs %+v", first, later)
	}
	if later.ProjectileMult != 1 || later.CoinSpeedMult != 1 {
		t.Errorf("multipliers = %v, %v, expected 1, 1", later.ProjectileMult, later.CoinSpeedMult)
	}
}

func TestStageCurvePresetScalesMultipliers(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		factor float64
	}{
		{DifficultyEasy, 0.75},
		{DifficultyNormal, 1},
		{DifficultyHard, 1.25},
		{DifficultyFixed, 0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPortalHopConfig()
			ApplyPortalHopPreset(&cfg, tc.preset)
			curve := NewStageCurve(cfg.Curve, cfg.Difficulty)

			s := float64(10) * tc.factor
			p := curve.Params(11)
			if want := 1 + cfg.Curve.ProjectileStep*s; p.ProjectileMult != want {
				t.Errorf("ProjectileMult = %v, expected %v", p.ProjectileMult, want)
			}
			if want := 1 + cfg.Curve.CoinSpeedStep*s; p.CoinSpeedMult != want {
				t.Errorf("CoinSpeedMult = %v, expected %v", p.CoinSpeedMult, want)
			}
		})
	}
}

func TestStageCurveScript(t *testing.T) {
	script, err := CompileCurveScript([]byte(`
max_gap = max_gap * 2
platform_count = platform_count + stage
`))
	if err != nil {
		t.Fatalf("CompileCurveScript() failed: %v", err)
	}

	curve := normalCurve()
	curve.SetScript(script)
	p := curve.Params(3)

	if p.MaxGap != 2*(160+16) {
		t.Errorf("MaxGap = %v, expected %v", p.MaxGap, 2*(160+16))
	}
	if p.PlatformCount != 20+3 {
		t.Errorf("PlatformCount = %d, expected 23", p.PlatformCount)
	}
	if p.MinWidth != 100-16 {
		t.Errorf("MinWidth = %v, expected untouched 84", p.MinWidth)
	}
	if err := curve.ScriptErr(); err != nil {
		t.Errorf("ScriptErr() = %v, expected nil", err)
	}
}

func TestStageCurveScriptFailureFallsBack(t *testing.T) {
	script, err := CompileCurveScript([]byte(`max_gap = 1 / (stage - stage)`))
	if err != nil {
		t.Fatalf("CompileCurveScript() failed: %v", err)
	}

	curve := normalCurve()
	curve.SetScript(script)
	if p := curve.Params(1); p.MaxGap != 160 {
		t.Errorf("MaxGap = %v, expected built-in 160 after script failure", p.MaxGap)
	}
	if curve.ScriptErr() == nil {
		t.Error("ScriptErr() should report the runtime failure")
	}
}

func TestLoadCurveScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curve.tengo")
	if err := os.WriteFile(path, []byte("min_width = 10\nmax_width = 20\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	script, err := LoadCurveScript(path)
	if err != nil {
		t.Fatalf("LoadCurveScript() failed: %v", err)
	}
	if script.Path() != path {
		t.Errorf("Path() = %q, expected %q", script.Path(), path)
	}

	if _, err := CompileCurveScript([]byte("min_gap = ")); err == nil {
		t.Error("expected compile error for broken source")
	}
}

func TestBuildStageCurve(t *testing.T) {
	cfg := DefaultPortalHopConfig()
	curve, err := BuildStageCurve(cfg)
	if err != nil {
		t.Fatalf("BuildStageCurve() failed: %v", err)
	}
	if p := curve.Params(1); p.PlatformCount != 10 {
		t.Errorf("PlatformCount = %d, expected 10", p.PlatformCount)
	}

	cfg.Curve.Script = filepath.Join(t.TempDir(), "missing.tengo")
	curve, err = BuildStageCurve(cfg)
	if err == nil {
		t.Error("expected an error for a missing script")
	}
	if curve == nil || curve.Params(1).PlatformCount != 10 {
		t.Error("a failed script should still yield the built-in curve")
	}
}
