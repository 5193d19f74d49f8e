// blockdash is an endless runner for the terminal: jump over blocks or dash
// straight through them.
//
// Usage:
//
//	blockdash                 - Play (same as "blockdash play")
//	blockdash play            - Play in the current terminal
//	blockdash scores          - Show the best runs and stats
//	blockdash simulate        - Run the autopilot headless and print a summary
//	blockdash serve           - Start an SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Frame rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Database path (default: ~/.blockdash/blockdash.db)
//	--config <path>       - Custom YAML config
//	--difficulty <name>   - easy, normal or hard
//	--mute                - Disable sound cues
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockdash",
	Short: "Block Dash - an endless runner in your terminal",
	Long: `Block Dash is an endless runner. Your block runs on its own:
jump over obstacles or dash through them while the world speeds up.

Controls:
  Up/W              - Jump
  Space/D/S-Right   - Dash (invulnerable burst, then a cooldown)
  Enter             - Start
  R                 - Restart after game over
  Tab               - Scoreboard (title and game over screens)
  Mouse             - Tap to dash, swipe up to jump
  Q/Ctrl+C          - Quit

Examples:
  blockdash
  blockdash --difficulty hard --mute
  blockdash scores
  blockdash simulate --seed 42
  blockdash serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom YAML config")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound cues")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs nothing otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockdash",
		Level:           level,
	}), nil
}

// logOutput returns the --log-file writer, or fallback when none is set.
// The returned close function is always safe to call.
func logOutput(fallback io.Writer) (io.Writer, func(), error) {
	if flagLogFile == "" {
		return fallback, func() {}, nil
	}
	path, err := storage.ExpandPath(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// loadConfig loads the YAML config and applies --difficulty.
func loadConfig() (config.DashConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.DashConfig{}, err
	}
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return config.DashConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.DashConfig{}, err
	}
	return cfg, nil
}

// openStore opens the database. Failure is logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
