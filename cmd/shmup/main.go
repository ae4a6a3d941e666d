// shmup is a terminal bullet-hell shooter built on a deterministic
// fixed-step simulation.
//
// Usage:
//
//	shmup list              - List available stages
//	shmup play <stage>      - Play a stage in the terminal
//	shmup run <stage>       - Run a stage headless with the autopilot
//	shmup scores <stage>    - Show the best runs for a stage
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.shmup/runs.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logFile *os.File
)

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shmup",
	Short: "TUI Shmup - Dodge bullets in your terminal",
	Long: `TUI Shmup is a terminal shooter: clear waves of orbs,
then survive the boss.

Available commands:
  list     - Show all available stages
  play     - Play a stage
  run      - Simulate a stage with the autopilot
  scores   - View the best runs

Examples:
  shmup list
  shmup play orb-field
  shmup run warden --log-level debug
  shmup scores warden`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shmup/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogger builds the shared logger from the global flags.
// The interactive commands draw on the terminal, so without a log
// file they get a discarding logger.
func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}

	var logger *log.Logger
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		logger = logging.New(f, level)
	case cmd == playCmd || (cmd == scoresCmd && flagInteractive):
		logger = logging.Discard()
	default:
		logger = logging.New(os.Stderr, level)
	}
	cmd.SetContext(logging.NewContext(cmd.Context(), logger))
	return nil
}
