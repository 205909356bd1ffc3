package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	if got, want := Embedded(), DefaultPortalHopConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded YAML and DefaultPortalHopConfig differ:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadPortalHopPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
physics:
  max_speed: 12
curve:
  script: curve.tengo
`)

	cfg, err := LoadPortalHop(path)
	if err != nil {
		t.Fatalf("LoadPortalHop() failed: %v", err)
	}
	if cfg.Physics.MaxSpeed != 12 {
		t.Errorf("MaxSpeed = %v, expected 12", cfg.Physics.MaxSpeed)
	}
	if cfg.Physics.Gravity != 1.0 {
		t.Errorf("Gravity = %v, expected default 1.0 to survive a partial file", cfg.Physics.Gravity)
	}
	if want := filepath.Join(dir, "curve.tengo"); cfg.Curve.Script != want {
		t.Errorf("Script = %q, expected %q relative to the config file", cfg.Curve.Script, want)
	}
}

func TestLoadPortalHopErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPortalHop(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}

	bad := writeFile(t, dir, "bad.yaml", "physics: [1, 2")
	if _, err := LoadPortalHop(bad); err == nil {
		t.Error("expected parse error for malformed YAML")
	}

	invalid := writeFile(t, dir, "invalid.yaml", "player:\n  radius: 0\n")
	if _, err := LoadPortalHop(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadPortalHop() error = %v, expected ErrInvalidConfig", err)
	}

	kind := writeFile(t, dir, "kind.yaml", "collectibles:\n  spawns:\n    - kind: lava\n")
	if _, err := LoadPortalHop(kind); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadPortalHop() error = %v, expected ErrInvalidConfig for unknown kind", err)
	}
}

func TestApplyPortalHopPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		factor float64
	}{
		{DifficultyEasy, 0.75},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 1.25},
		{DifficultyFixed, 0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPortalHopConfig()
			ApplyPortalHopPreset(&cfg, tc.preset)
			if cfg.Difficulty.StageFactor != tc.factor {
				t.Errorf("StageFactor = %v, expected %v", cfg.Difficulty.StageFactor, tc.factor)
			}
			if cfg.Difficulty.Preset != string(tc.preset) {
				t.Errorf("Preset = %q, expected %q", cfg.Difficulty.Preset, tc.preset)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSpawnRuleChance(t *testing.T) {
	cfg := DefaultPortalHopConfig()
	rules := map[string]SpawnRule{}
	for _, r := range cfg.Collectibles.Spawns {
		rules[r.Kind] = r
	}

	tests := []struct {
		kind     string
		stage    int
		expected float64
	}{
		{"boost", 1, 0.05},
		{"boost", 40, 0.05},
		{"freeze", 3, 0.10},
		{"freeze", 8, 0.20},
		{"freeze", 100, 0.5},
		{"alert", 5, 0.15},
		{"alert", 100, 0.6},
		{"gamble", 8, 0.20},
	}
	for _, tc := range tests {
		got := rules[tc.kind].Chance(tc.stage)
		if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s.Chance(%d) = %v, expected %v", tc.kind, tc.stage, got, tc.expected)
		}
	}
}

func TestResolvePathPrefersCustom(t *testing.T) {
	if got := ResolvePath("my.yaml"); got != "my.yaml" {
		t.Errorf("ResolvePath(my.yaml) = %q, expected my.yaml", got)
	}

	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if got := ResolvePath(""); got != "" {
		t.Errorf("ResolvePath(\"\") = %q, expected embedded default", got)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, "configs", ConfigFile, "view:\n  zoom: 1\n")
	if got, want := ResolvePath(""), filepath.Join("configs", ConfigFile); got != want {
		t.Errorf("ResolvePath(\"\") = %q, expected %q", got, want)
	}
}
