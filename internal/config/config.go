// Package config provides YAML-based game configuration loading, the
// stage difficulty curve and config file watching for portalhop.
package config

import "time"

// PortalHopConfig contains every tunable of the simulation.
// Distances are world units, velocities are world units per tick and
// durations are milliseconds of simulation time.
type PortalHopConfig struct {
	View         ViewConfig         `yaml:"view"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Player       PlayerConfig       `yaml:"player"`
	Effects      EffectsConfig      `yaml:"effects"`
	Level        LevelConfig        `yaml:"level"`
	Curve        CurveConfig        `yaml:"curve"`
	Hazards      HazardsConfig      `yaml:"hazards"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Stage        StageConfig        `yaml:"stage"`
	Particles    ParticlesConfig    `yaml:"particles"`
	Audio        AudioConfig        `yaml:"audio"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// ViewConfig describes the visible window. The camera sees the screen
// scaled by Zoom.
type ViewConfig struct {
	ScreenWidth  float64 `yaml:"screen_width"`
	ScreenHeight float64 `yaml:"screen_height"`
	Zoom         float64 `yaml:"zoom"`
}

// Width returns the camera view width in world units.
func (v ViewConfig) Width() float64 { return v.ScreenWidth * v.Zoom }

// Height returns the camera view height in world units.
func (v ViewConfig) Height() float64 { return v.ScreenHeight * v.Zoom }

// PhysicsConfig defines player motion parameters.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	Friction           float64 `yaml:"friction"`
	StopThreshold      float64 `yaml:"stop_threshold"`
	Acceleration       float64 `yaml:"acceleration"`
	MaxSpeed           float64 `yaml:"max_speed"`
	JumpForce          float64 `yaml:"jump_force"` // negative is up
	SuperJumpFactor    float64 `yaml:"super_jump_factor"`
	RainbowSpeedFactor float64 `yaml:"rainbow_speed_factor"`
	BoostFactor        float64 `yaml:"boost_factor"`
	JumpBufferMs       int     `yaml:"jump_buffer_ms"`
	CoyoteMs           int     `yaml:"coyote_ms"`
	FallMargin         float64 `yaml:"fall_margin"`
	RotationFactor     float64 `yaml:"rotation_factor"`
}

// JumpBuffer returns how long a jump request stays valid.
func (p PhysicsConfig) JumpBuffer() time.Duration { return ms(p.JumpBufferMs) }

// Coyote returns how long after leaving ground a jump is still honored.
func (p PhysicsConfig) Coyote() time.Duration { return ms(p.CoyoteMs) }

// PlayerConfig defines the player body and spawn point.
type PlayerConfig struct {
	Radius      float64 `yaml:"radius"`
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnHeight float64 `yaml:"spawn_height"` // above the start platforms
}

// EffectsConfig defines status effect durations.
type EffectsConfig struct {
	FreezeMs      int `yaml:"freeze_ms"`
	BoostMs       int `yaml:"boost_ms"`
	InvertMs      int `yaml:"invert_ms"`
	GambleDelayMs int `yaml:"gamble_delay_ms"`
}

func (e EffectsConfig) Freeze() time.Duration { return ms(e.FreezeMs) }
func (e EffectsConfig) Boost() time.Duration { return ms(e.BoostMs) }
func (e EffectsConfig) Invert() time.Duration { return ms(e.InvertMs) }
func (e EffectsConfig) GambleDelay() time.Duration { return ms(e.GambleDelayMs) }

// LevelConfig defines the fixed parts of level layout.
type LevelConfig struct {
	StartPlatforms    int     `yaml:"start_platforms"`
	StartX            float64 `yaml:"start_x"`
	StartWidth        float64 `yaml:"start_width"`
	StartBottomOffset float64 `yaml:"start_bottom_offset"`
	AspectRatio       float64 `yaml:"aspect_ratio"` // width / height
	MinY              float64 `yaml:"min_y"`
	BottomMargin      float64 `yaml:"bottom_margin"`
	YBias             float64 `yaml:"y_bias"`
	RainbowChance     float64 `yaml:"rainbow_chance"`
	RainbowMinGap     float64 `yaml:"rainbow_min_gap"`
	RainbowMaxGap     float64 `yaml:"rainbow_max_gap"`
	WiderFactor       float64 `yaml:"wider_factor"`
	WiderCap          float64 `yaml:"wider_cap"`
	PortalWidth       float64 `yaml:"portal_width"`
	PortalHeight      float64 `yaml:"portal_height"`
	PortalGap         float64 `yaml:"portal_gap"`
	PortalRise        float64 `yaml:"portal_rise"`
}

// CurveConfig defines how level parameters grow with the stage number.
// Each value is base + step*s, optionally bounded by a cap or floor.
type CurveConfig struct {
	PlatformsBase  int     `yaml:"platforms_base"`
	PlatformsStep  int     `yaml:"platforms_step"`
	MinGapBase     float64 `yaml:"min_gap_base"`
	MinGapStep     float64 `yaml:"min_gap_step"`
	MinGapCap      float64 `yaml:"min_gap_cap"`
	MaxGapBase     float64 `yaml:"max_gap_base"`
	MaxGapStep     float64 `yaml:"max_gap_step"`
	MaxGapCap      float64 `yaml:"max_gap_cap"`
	MaxYBase       float64 `yaml:"max_y_base"`
	MaxYStep       float64 `yaml:"max_y_step"`
	MaxWidthBase   float64 `yaml:"max_width_base"`
	MaxWidthStep   float64 `yaml:"max_width_step"`
	MaxWidthFloor  float64 `yaml:"max_width_floor"`
	MinWidthBase   float64 `yaml:"min_width_base"`
	MinWidthStep   float64 `yaml:"min_width_step"`
	MinWidthFloor  float64 `yaml:"min_width_floor"`
	ProjectileStep float64 `yaml:"projectile_step"`
	CoinSpeedStep  float64 `yaml:"coin_speed_step"`
	Script         string  `yaml:"script"` // optional tengo override
}

// HazardsConfig defines attack waves and homing projectiles.
type HazardsConfig struct {
	WaveCount        int     `yaml:"wave_count"`
	WaveDelayMs      int     `yaml:"wave_delay_ms"`
	WaveIntervalMs   int     `yaml:"wave_interval_ms"`
	LoopCue          string  `yaml:"loop_cue"`
	ProjectileRadius float64 `yaml:"projectile_radius"`
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileLife   int     `yaml:"projectile_life"` // ticks
	SpawnAbove       float64 `yaml:"spawn_above"`
	Gravity          float64 `yaml:"gravity"`
	SteerX           float64 `yaml:"steer_x"`
	SteerY           float64 `yaml:"steer_y"`
	MaxSpeed         float64 `yaml:"max_speed"`
}

func (h HazardsConfig) WaveDelay() time.Duration { return ms(h.WaveDelayMs) }
func (h HazardsConfig) WaveInterval() time.Duration { return ms(h.WaveIntervalMs) }

// CollectiblesConfig defines coin size, motion and the spawn table.
type CollectiblesConfig struct {
	Radius          float64     `yaml:"radius"`
	SpawnIntervalMs int         `yaml:"spawn_interval_ms"`
	SpeedX          float64     `yaml:"speed_x"`
	SpeedY          float64     `yaml:"speed_y"`
	Spawns          []SpawnRule `yaml:"spawns"`
}

// SpawnInterval returns the spawn manager period.
func (c CollectiblesConfig) SpawnInterval() time.Duration { return ms(c.SpawnIntervalMs) }

// SpawnRule controls when one collectible kind may appear.
type SpawnRule struct {
	Kind       string  `yaml:"kind"` // freeze, boost, alert, gamble
	MinStage   int     `yaml:"min_stage"`
	Cap        int     `yaml:"cap"`
	BaseChance float64 `yaml:"base_chance"`
	ChanceStep float64 `yaml:"chance_step"`
	StepFrom   int     `yaml:"step_from"`
	MaxChance  float64 `yaml:"max_chance"`
}

// Chance returns the per-check spawn probability at the given stage.
func (r SpawnRule) Chance(stage int) float64 {
	c := r.BaseChance + float64(stage-r.StepFrom)*r.ChanceStep
	if r.MaxChance > 0 && c > r.MaxChance {
		c = r.MaxChance
	}
	if c < 0 {
		c = 0
	}
	return c
}

// StageConfig defines transition delays.
type StageConfig struct {
	DeathDelayMs int `yaml:"death_delay_ms"`
	ClearDelayMs int `yaml:"clear_delay_ms"`
}

func (s StageConfig) DeathDelay() time.Duration { return ms(s.DeathDelayMs) }
func (s StageConfig) ClearDelay() time.Duration { return ms(s.ClearDelayMs) }

// ParticlesConfig defines explosions and clear fireworks.
type ParticlesConfig struct {
	MinCount         int     `yaml:"min_count"`
	CountRange       int     `yaml:"count_range"`
	MinSpeed         float64 `yaml:"min_speed"`
	SpeedRange       float64 `yaml:"speed_range"`
	MinLife          float64 `yaml:"min_life"`
	LifeRange        float64 `yaml:"life_range"`
	HueSpread        float64 `yaml:"hue_spread"`
	Gravity          float64 `yaml:"gravity"`
	Drag             float64 `yaml:"drag"`
	Rockets          int     `yaml:"rockets"`
	RocketIntervalMs int     `yaml:"rocket_interval_ms"`
	RocketGravity    float64 `yaml:"rocket_gravity"`
	RocketMinLift    float64 `yaml:"rocket_min_lift"`
	RocketLiftRange  float64 `yaml:"rocket_lift_range"`
	RocketDrift      float64 `yaml:"rocket_drift"`
}

// RocketInterval returns the delay between firework launches.
func (p ParticlesConfig) RocketInterval() time.Duration { return ms(p.RocketIntervalMs) }

// AudioConfig selects cue assets and output.
type AudioConfig struct {
	Dir        string  `yaml:"dir"` // directory of <cue>.wav files
	Volume     float64 `yaml:"volume"`
	Mute       bool    `yaml:"mute"`
	Synth      bool    `yaml:"synth"` // synthesize tones for missing files
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyConfig scales the stage curve.
type DifficultyConfig struct {
	Preset      string  `yaml:"preset"`
	StageFactor float64 `yaml:"stage_factor"` // multiplies s = stage-1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StageFactorForPreset returns the stage_factor for a difficulty preset.
func StageFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	case DifficultyFixed:
		return 0
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables stage progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
