// hexfall plays, replays and scores ICFP 2015 style hex puzzles in the
// terminal.
//
// Usage:
//
//	hexfall list                 - List problems
//	hexfall play <problem>       - Play a problem interactively
//	hexfall replay [file]        - Score or animate solutions
//	hexfall seq <problem>        - Print the unit sequence of a seed
//	hexfall scores [problem]     - Show stored solutions
//	hexfall menu                 - Pick problems and seeds interactively
//	hexfall serve                - Start the SSH server for remote play
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.hexfall, ./configs, built-in)
//	--problems <dir>   - Problem directory (default: built-in samples)
//	--db <path>        - Solutions database (default: ~/.hexfall/hexfall.db)
//	--fps <rate>       - UI tick rate
//	--verbose          - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nya3jp/icfpc2015/internal/config"
)

var (
	// Global flags
	flagConfig      string
	flagProblemsDir string
	flagDBPath      string
	flagFPS         int
	flagVerbose     bool

	cfg    config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexfall",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexfall",
	Short: "hexfall - falling hex units in your terminal",
	Long: `hexfall is a hex-board falling-unit puzzle engine.

Units spawn one at a time from a seeded sequence. Move them west, east,
south-west or south-east, rotate them, and lock them in place to clear
full rows. Every game produces a solution string that can be replayed,
stored and submitted.

Available commands:
  list     - Show the loaded problems
  play     - Play a problem
  replay   - Score or animate solution files
  seq      - Print a seed's unit sequence
  scores   - View stored solutions
  menu     - Interactive problem picker
  serve    - Start SSH server for remote play

Examples:
  hexfall list --units
  hexfall play 0 --seed-index 2
  hexfall replay solutions.json
  hexfall serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProblemsDir, "problems", "", "Problem directory (overrides problems_dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Solutions database (overrides database_path)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI tick rate (overrides tui.tick_rate)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(seqCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagProblemsDir != "" {
		cfg.ProblemsDir = flagProblemsDir
	}
	if flagDBPath != "" {
		cfg.DatabasePath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.TUI.TickRate = flagFPS
	}
	logger.Debug("config loaded", "command", cmd.Name(), "problems", cfg.ProblemsDir, "db", cfg.DatabasePath, "sink", cfg.Submit.Sink)
	return nil
}

// exitf reports a fatal error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
