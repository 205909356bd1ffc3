package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/portalhop/internal/platform/tui"
	"github.com/vovakirdan/portalhop/internal/storage"
)

var flagRecent int

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Display the highest stage reached and the most recent stage clears.

Examples:
  portalhop progress
  portalhop progress --recent 20
  portalhop progress reset
  portalhop progress table`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the highest stage (the clear history is kept)",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

var progressTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Browse stage clears interactively",
	Args:  cobra.NoArgs,
	RunE:  runProgressTable,
}

func init() {
	progressCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent clears to show")
	progressCmd.AddCommand(progressResetCmd)
	progressCmd.AddCommand(progressTableCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := storage.Summarize(store, flagRecent)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	printProgress(os.Stdout, summary, stats)
	return nil
}

// printProgress writes the plain-text progress report.
func printProgress(w io.Writer, summary storage.Summary, stats *storage.ClearStats) {
	fmt.Fprintln(w, "Portal Hop Progress")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best stage:    %d\n", summary.HighestStage)
	if stats != nil {
		fmt.Fprintf(w, "Total clears:  %d\n", stats.TotalClears)
		fmt.Fprintf(w, "Highest clear: %d\n", stats.HighestClear)
		fmt.Fprintf(w, "Last clear:    %s\n", storage.FormatClearedAt(stats.LastClearAt))
	}
	fmt.Fprintln(w)

	if len(summary.Recent) == 0 {
		fmt.Fprintln(w, "No stages cleared yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'portalhop play' and reach the portal!")
		return
	}

	fmt.Fprintf(w, "  %-6s  %-6s  %-10s  %s\n", "#", "Stage", "Seed", "Cleared")
	fmt.Fprintf(w, "  %-6s  %-6s  %-10s  %s\n", "-", "-----", "----", "-------")
	for _, c := range summary.Recent {
		fmt.Fprintf(w, "  %-6d  %-6d  %-10d  %s\n", c.ID, c.Stage, c.Seed, storage.FormatClearedAt(c.ClearedAt))
	}
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearHighestStage(); err != nil {
		return err
	}
	logger.Info("progress reset", "db", flagDBPath)
	fmt.Println("Best stage reset to 1.")
	return nil
}

func runProgressTable(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunProgress(store, width, height)
}
