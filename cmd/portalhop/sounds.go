package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/portalhop/internal/audio"
	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/games/portalhop/sim"
)

var (
	flagSoundsDir     string
	flagSoundsGapMs   int
	flagSoundsLoopMs  int
	flagSoundsNoSynth bool
)

var soundsCmd = &cobra.Command{
	Use:   "sounds [cue...]",
	Short: "Play sound cues (sound test)",
	Long: `Play each named cue, or all of them, through the audio engine.
Looping cues and music play for --loop-ms before stopping.

Cues: ` + strings.Join(cueNames(), ", ") + `

Examples:
  portalhop sounds
  portalhop sounds jump hit clear
  portalhop sounds --sounds ./sounds bgm`,
	RunE: runSounds,
}

func init() {
	soundsCmd.Flags().StringVar(&flagSoundsDir, "sounds", "", "Directory of <cue>.wav files")
	soundsCmd.Flags().IntVar(&flagSoundsGapMs, "gap-ms", 600, "Pause after each one-shot cue")
	soundsCmd.Flags().IntVar(&flagSoundsLoopMs, "loop-ms", 2000, "How long loops and music play")
	soundsCmd.Flags().BoolVar(&flagSoundsNoSynth, "no-sound-synth", false, "Keep cues without a file silent")
}

func cueNames() []string {
	names := make([]string, len(sim.AllCues))
	for i, c := range sim.AllCues {
		names[i] = string(c)
	}
	sort.Strings(names)
	return names
}

// parseCues maps names to cues; no names selects every cue.
func parseCues(names []string) ([]sim.Cue, error) {
	if len(names) == 0 {
		return append([]sim.Cue(nil), sim.AllCues...), nil
	}
	known := make(map[string]sim.Cue, len(sim.AllCues))
	for _, c := range sim.AllCues {
		known[string(c)] = c
	}
	cues := make([]sim.Cue, 0, len(names))
	for _, n := range names {
		c, ok := known[n]
		if !ok {
			return nil, fmt.Errorf("unknown cue %q (known: %s)", n, strings.Join(cueNames(), ", "))
		}
		cues = append(cues, c)
	}
	return cues, nil
}

func runSounds(cmd *cobra.Command, args []string) error {
	cues, err := parseCues(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadPortalHop(flagConfig)
	if err != nil {
		return err
	}
	ac := cfg.Audio
	ac.Mute = false
	if flagSoundsDir != "" {
		ac.Dir = flagSoundsDir
	}
	if flagSoundsNoSynth {
		ac.Synth = false
	}

	engine := audio.NewEngine(ac, logger.WithPrefix("audio"))
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Stop()

	if engine.Backend() == "" {
		logger.Warn("no audio backend found, cues will be silent")
	}
	sources := engine.Sources()

	gap := time.Duration(flagSoundsGapMs) * time.Millisecond
	loop := time.Duration(flagSoundsLoopMs) * time.Millisecond
	for _, c := range cues {
		fmt.Printf("%-12s %s\n", c, sourceLabel(sources, c))
		switch c {
		case sim.CueMusic:
			engine.PlayMusic(c)
			time.Sleep(loop)
			engine.StopMusic()
		case sim.CueDanger:
			engine.StartLoop(c)
			time.Sleep(loop)
			engine.StopLoop(c)
		default:
			engine.PlayOneShot(c)
			time.Sleep(gap)
		}
	}
	return nil
}

func sourceLabel(sources map[sim.Cue]bool, c sim.Cue) string {
	if sources[c] {
		return "(ready)"
	}
	return "(silent)"
}
