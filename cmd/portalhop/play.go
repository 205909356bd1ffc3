package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/portalhop/internal/audio"
	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/core"
	"github.com/vovakirdan/portalhop/internal/games/portalhop"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
	"github.com/vovakirdan/portalhop/internal/platform/tui"
	"github.com/vovakirdan/portalhop/internal/registry"
	"github.com/vovakirdan/portalhop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagSounds     string
	flagMute       bool
	flagNoSynth    bool
	flagDryAudio   bool
	flagHoldMs     int
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play Portal Hop",
	Long: `Start playing. Progress resumes at the highest stage reached.

Controls:
  ←/→ or A/D   - Run (held)
  Space/W/Up   - Jump
  R            - Reset progress to stage 1
  P/Esc        - Pause
  Ctrl+S       - Save a text screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - Stage curve grows at 75% speed
  normal  - Default curve
  hard    - Stage curve grows at 125% speed
  fixed   - Layouts and hazard speeds stay at stage 1

Examples:
  portalhop play
  portalhop play --difficulty hard
  portalhop play --config ./portalhop.yaml --watch
  portalhop play --sounds ./sounds --no-sound-synth
  portalhop play --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file and curve script when they change")
	playCmd.Flags().StringVar(&flagSounds, "sounds", "", "Directory of <cue>.wav files")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
	playCmd.Flags().BoolVar(&flagNoSynth, "no-sound-synth", false, "Keep cues without a file silent")
	playCmd.Flags().BoolVar(&flagDryAudio, "dry-audio", false, "Record cue calls instead of playing them and print them on exit")
	playCmd.Flags().IntVar(&flagHoldMs, "hold-ms", int(tui.DefaultHoldWindow/time.Millisecond), "How long a run key stays held after its last key event")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "portalhop"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'portalhop list')", gameID)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	portalhop.SetConfigPath(flagConfig)
	portalhop.SetDifficultyPreset(flagDifficulty)

	gameCfg, curve, err := portalhop.LoadConfig()
	if err != nil {
		if curve == nil {
			return err
		}
		logger.Warn("curve script failed, using built-in curve", "error", err)
	}

	progress, closeStore := openProgress()
	defer closeStore()
	portalhop.SetProgressStore(newLoggedProgress(progress, tuiLogger("progress")))

	sink, stopAudio := startAudio(gameCfg.Audio)
	portalhop.SetCueSink(sink)

	opts := tui.Options{
		HoldWindow: time.Duration(flagHoldMs) * time.Millisecond,
		Reload:     reloadConfig,
		Logger:     tuiLogger("tui"),
	}
	if flagWatch {
		w, err := watchConfig(gameCfg)
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		} else if w != nil {
			defer w.Close()
			opts.Watcher = w
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		stopAudio()
		return err
	}

	logger.Debug("starting", "game", gameID, "seed", rt.Seed, "size", fmt.Sprintf("%dx%d", width, height))
	runErr := tui.Run(game, rt, opts)
	stopAudio()

	if rec, ok := sink.(*audio.Recorder); ok {
		fmt.Print(rec.String())
	}
	return runErr
}

// openProgress opens the database, falling back to an in-memory store so
// the game stays playable.
func openProgress() (storage.Progress, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database, progress will not persist", "error", err)
		return storage.NewMemory(), func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing progress database", "error", err)
		}
	}
}

// startAudio builds the cue sink from the audio config and flags.
func startAudio(cfg config.AudioConfig) (sim.CueSink, func()) {
	if flagSounds != "" {
		cfg.Dir = flagSounds
	}
	if flagMute {
		cfg.Mute = true
	}
	if flagNoSynth {
		cfg.Synth = false
	}

	if flagDryAudio {
		return audio.NewRecorder(nil), func() {}
	}

	engine := audio.NewEngine(cfg, tuiLogger("audio"))
	if err := engine.Start(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return sim.NopCues{}, func() {}
	}
	logger.Debug("audio started", "backend", engine.Backend())
	return engine, engine.Stop
}

// watchConfig watches the resolved config file and its curve script.
// It returns nil when there is no file to watch.
func watchConfig(cfg config.PortalHopConfig) (*config.Watcher, error) {
	path := config.ResolvePath(flagConfig)
	if path == "" && cfg.Curve.Script == "" {
		logger.Warn("--watch: using the embedded config, nothing to watch")
		return nil, nil
	}
	return config.NewWatcher(path, cfg.Curve.Script)
}

// reloadConfig loads the config again and queues it on the running game.
func reloadConfig(g registry.Game) error {
	ph, ok := g.(*portalhop.Game)
	if !ok {
		return fmt.Errorf("game %q does not support config reload", g.ID())
	}
	cfg, curve, err := portalhop.LoadConfig()
	if curve == nil {
		return err
	}
	ph.ApplyConfig(cfg, curve)
	return err
}
