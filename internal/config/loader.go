package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "portalhop.yaml"

// LoadPortalHop loads the game configuration. Files are decoded over the
// built-in defaults, so a partial file only overrides what it names.
// Search order: customPath -> ~/.portalhop/configs/portalhop.yaml -> ./configs/portalhop.yaml -> embedded default
func LoadPortalHop(customPath string) (PortalHopConfig, error) {
	// Try custom path first; errors surface because the user asked for it.
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", ConfigFile)); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	return Embedded(), nil
}

// ResolvePath returns the file LoadPortalHop would read, or "" when the
// embedded default is used.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if _, err := os.Stat(userCfgPath); err == nil {
			return userCfgPath
		}
	}
	local := filepath.Join("configs", ConfigFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

// Embedded returns the embedded default configuration.
func Embedded() PortalHopConfig {
	cfg := DefaultPortalHopConfig()
	if err := yaml.Unmarshal(defaultPortalHopYAML, &cfg); err != nil {
		return DefaultPortalHopConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

func loadFile(path string) (PortalHopConfig, error) {
	cfg := DefaultPortalHopConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Curve.Script != "" && !filepath.IsAbs(cfg.Curve.Script) {
		cfg.Curve.Script = filepath.Join(filepath.Dir(path), cfg.Curve.Script)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".portalhop", "configs", filename)
}

// Validate checks the values the simulation divides by or loops over.
func (c PortalHopConfig) Validate() error {
	switch {
	case c.View.ScreenWidth <= 0 || c.View.ScreenHeight <= 0 || c.View.Zoom <= 0:
		return fmt.Errorf("%w: view dimensions must be positive", ErrInvalidConfig)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player radius must be positive", ErrInvalidConfig)
	case c.Collectibles.Radius <= 0:
		return fmt.Errorf("%w: collectible radius must be positive", ErrInvalidConfig)
	case c.Level.AspectRatio <= 0:
		return fmt.Errorf("%w: level aspect_ratio must be positive", ErrInvalidConfig)
	case c.Level.StartPlatforms < 1:
		return fmt.Errorf("%w: at least one start platform is required", ErrInvalidConfig)
	case c.Hazards.ProjectileLife <= 0:
		return fmt.Errorf("%w: projectile_life must be positive", ErrInvalidConfig)
	case c.Collectibles.SpawnIntervalMs <= 0:
		return fmt.Errorf("%w: spawn_interval_ms must be positive", ErrInvalidConfig)
	}
	for _, rule := range c.Collectibles.Spawns {
		switch rule.Kind {
		case "freeze", "boost", "alert", "gamble":
		default:
			return fmt.Errorf("%w: unknown collectible kind %q", ErrInvalidConfig, rule.Kind)
		}
	}
	return nil
}

// ApplyPortalHopPreset modifies the config based on a difficulty preset.
func ApplyPortalHopPreset(cfg *PortalHopConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = string(preset)
	cfg.Difficulty.StageFactor = StageFactorForPreset(preset)

	// Adjust effect lengths based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Effects.FreezeMs = 1500
		cfg.Physics.CoyoteMs = 150
	case DifficultyHard:
		cfg.Effects.FreezeMs = 2500
		cfg.Effects.BoostMs = 4000
	}
}

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}
