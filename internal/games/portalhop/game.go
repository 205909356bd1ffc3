// Package portalhop adapts the portalhop simulation to the terminal platform:
// fixed-step clock, input mapping and terminal rendering.
package portalhop

import (
	"time"

	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/core"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
	"github.com/vovakirdan/portalhop/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// cues and progress are the host collaborators set via CLI.
var (
	cues     sim.CueSink
	progress sim.ProgressStore
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetCueSink sets the audio sink used by new games.
func SetCueSink(sink sim.CueSink) {
	cues = sink
}

// SetProgressStore sets the progress store used by new games.
func SetProgressStore(store sim.ProgressStore) {
	progress = store
}

// LoadConfig resolves the configuration the way Reset does.
func LoadConfig() (config.PortalHopConfig, *config.StageCurve, error) {
	cfg, err := config.LoadPortalHop(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if difficultyPreset != "" {
		config.ApplyPortalHopPreset(&cfg, difficultyPreset)
	}
	curve, err := config.BuildStageCurve(cfg)
	return cfg, curve, err
}

// Game implements registry.Game around a sim.Simulation.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.PortalHopConfig
	sim     *sim.Simulation
	clock   sim.Time
	paused  bool
	frame   int
	snap    sim.Snapshot
	loadErr error

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new portalhop game instance.
func New() *Game {
	return &Game{minScreenW: 40, minScreenH: 12}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "portalhop"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Portal Hop"
}

// Reset starts a new session. Stored progress decides the first stage.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	cfg, curve, err := LoadConfig()
	g.loadErr = err
	if curve == nil {
		cfg = config.DefaultPortalHopConfig()
		curve = config.NewStageCurve(cfg.Curve, cfg.Difficulty)
	}
	g.cfg = cfg

	g.sim = sim.New(sim.Options{
		Config:   cfg,
		Curve:    curve,
		Cues:     cues,
		Progress: progress,
		Seed:     runtime.Seed,
	})
	g.sim.Start()
	g.clock = 0
	g.paused = false
	g.frame = 0
	g.snap = g.sim.Snapshot()
}

// Resize adapts the layout without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// ApplyConfig queues a new configuration for the next full stage start.
func (g *Game) ApplyConfig(cfg config.PortalHopConfig, curve *config.StageCurve) {
	if g.sim == nil {
		return
	}
	g.sim.SetConfig(cfg, curve)
}

// LoadErr returns the config or script error from the last Reset, if any.
func (g *Game) LoadErr() error {
	return g.loadErr
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.clock += time.Second / time.Duration(g.runtime.TickRate)
	g.frame++
	g.sim.Tick(g.clock, MapInput(in))
	g.snap = g.sim.Snapshot()
	return core.StepResult{State: g.State()}
}

// MapInput converts platform actions to simulation intent.
func MapInput(in core.InputFrame) sim.Input {
	return sim.Input{
		MoveLeft:  in.Has(core.ActionLeft),
		MoveRight: in.Has(core.ActionRight),
		Jump:      in.Has(core.ActionJump),
		Reset:     in.Has(core.ActionReset),
	}
}

// Snapshot returns the last rendered simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// State returns the current game state. The score is the current stage;
// a portalhop session never ends on its own.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.snap.Stage,
		Paused: g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("portalhop", func() registry.Game {
		return New()
	})
}
