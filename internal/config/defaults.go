package config

import (
	_ "embed"
)

//go:embed defaults/portalhop.yaml
var defaultPortalHopYAML []byte

// DefaultPortalHopConfig returns the built-in configuration. It mirrors
// defaults/portalhop.yaml and backs the loader if the embedded file is unreadable.
func DefaultPortalHopConfig() PortalHopConfig {
	return PortalHopConfig{
		View: ViewConfig{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			Zoom:         1.5,
		},
		Physics: PhysicsConfig{
			Gravity:            1.0,
			Friction:           0.90,
			StopThreshold:      0.1,
			Acceleration:       1.0,
			MaxSpeed:           8,
			JumpForce:          -18,
			SuperJumpFactor:    2.0,
			RainbowSpeedFactor: 1.5,
			BoostFactor:        1.5,
			JumpBufferMs:       150,
			CoyoteMs:           100,
			FallMargin:         800,
			RotationFactor:     0.02,
		},
		Player: PlayerConfig{
			Radius:      24,
			SpawnX:      150,
			SpawnHeight: 150,
		},
		Effects: EffectsConfig{
			FreezeMs:      2000,
			BoostMs:       5000,
			InvertMs:      5000,
			GambleDelayMs: 100,
		},
		Level: LevelConfig{
			StartPlatforms:    10,
			StartX:            -200,
			StartWidth:        100,
			StartBottomOffset: 100,
			AspectRatio:       1.7,
			MinY:              150,
			BottomMargin:      20,
			YBias:             0.45,
			RainbowChance:     0.0375,
			RainbowMinGap:     1.6,
			RainbowMaxGap:     1.8,
			WiderFactor:       1.5,
			WiderCap:          1.2,
			PortalWidth:       120,
			PortalHeight:      300,
			PortalGap:         100,
			PortalRise:        150,
		},
		Curve: CurveConfig{
			PlatformsBase:  10,
			PlatformsStep:  5,
			MinGapBase:     110,
			MinGapStep:     6,
			MinGapCap:      250,
			MaxGapBase:     160,
			MaxGapStep:     8,
			MaxGapCap:      300,
			MaxYBase:       40,
			MaxYStep:       8,
			MaxWidthBase:   200,
			MaxWidthStep:   10,
			MaxWidthFloor:  60,
			MinWidthBase:   100,
			MinWidthStep:   8,
			MinWidthFloor:  40,
			ProjectileStep: 0.08,
			CoinSpeedStep:  0.05,
		},
		Hazards: HazardsConfig{
			WaveCount:        10,
			WaveDelayMs:      2000,
			WaveIntervalMs:   1500,
			LoopCue:          "danger_loop",
			ProjectileRadius: 8,
			ProjectileSpeed:  5,
			ProjectileLife:   400,
			SpawnAbove:       30,
			Gravity:          0.2,
			SteerX:           0.225,
			SteerY:           0.1125,
			MaxSpeed:         15,
		},
		Collectibles: CollectiblesConfig{
			Radius:          15,
			SpawnIntervalMs: 4000,
			SpeedX:          2.8,
			SpeedY:          1.4,
			Spawns: []SpawnRule{
				{Kind: "boost", MinStage: 1, Cap: 1, BaseChance: 0.05},
				{Kind: "freeze", MinStage: 3, Cap: 3, BaseChance: 0.10, ChanceStep: 0.02, StepFrom: 3, MaxChance: 0.5},
				{Kind: "alert", MinStage: 5, Cap: 2, BaseChance: 0.15, ChanceStep: 0.025, StepFrom: 5, MaxChance: 0.6},
				{Kind: "gamble", MinStage: 8, Cap: 1, BaseChance: 0.10, ChanceStep: 0.02, StepFrom: 3, MaxChance: 0.5},
			},
		},
		Stage: StageConfig{
			DeathDelayMs: 500,
			ClearDelayMs: 3000,
		},
		Particles: ParticlesConfig{
			MinCount:         40,
			CountRange:       20,
			MinSpeed:         4,
			SpeedRange:       12,
			MinLife:          60,
			LifeRange:        60,
			HueSpread:        30,
			Gravity:          0.08,
			Drag:             0.98,
			Rockets:          12,
			RocketIntervalMs: 150,
			RocketGravity:    0.2,
			RocketMinLift:    15,
			RocketLiftRange:  8,
			RocketDrift:      3,
		},
		Audio: AudioConfig{
			Synth:      true,
			SampleRate: 44100,
		},
		Difficulty: DifficultyConfig{
			Preset:      string(DifficultyNormal),
			StageFactor: 1.0,
		},
	}
}
