// portalhop is a terminal platformer: hop across generated platforms to
// reach the portal at the end of each stage.
//
// Usage:
//
//	portalhop play             - Play (default game: portalhop)
//	portalhop progress         - Show best stage and recent clears
//	portalhop progress reset   - Forget the best stage
//	portalhop progress table   - Browse clears interactively
//	portalhop gen              - Print a generated level
//	portalhop sounds [cue...]  - Play sound cues
//	portalhop list             - List registered games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.portalhop/progress.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/portalhop/internal/games/portalhop"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured by the root command before any subcommand runs.
var logger = log.New(os.Stderr)

func main() {
	defer closeLogFile()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		closeLogFile()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portalhop",
	Short: "Portal Hop - a stage-based platformer in your terminal",
	Long: `Portal Hop is a platformer played in the terminal. Each stage is a
generated run of platforms ending in a portal; reaching it unlocks the next
stage. Pickups freeze, boost or gamble, and alerts send homing projectiles.

Examples:
  portalhop play
  portalhop play --difficulty hard --seed 42
  portalhop play --config ./portalhop.yaml --watch
  portalhop gen --stage 10 --seed 7
  portalhop progress`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(flagLogLevel, flagLogFile)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.portalhop/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(soundsCmd)
}
