package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdash/internal/core"
	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/storage"
)

var (
	flagFrames int
	flagDT     float64
	flagRuns   int
	flagWidth  int
	flagHeight int
	flagRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless runs",
	Long: `Play runs without a terminal UI, driven by the built-in autopilot,
and print a summary of each. Runs are deterministic for a given seed,
frame time and screen size.

Examples:
  blockdash simulate --seed 42
  blockdash simulate --runs 5 --frames 7200 --dt 0.02
  blockdash simulate --difficulty hard --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&flagFrames, "frames", 60*60*5, "Frame budget per run")
	f.Float64Var(&flagDT, "dt", 1.0/60, "Seconds per frame")
	f.IntVar(&flagRuns, "runs", 1, "Number of runs (seeds increase by one)")
	f.IntVar(&flagWidth, "width", 80, "Screen width in cells")
	f.IntVar(&flagHeight, "height", 24, "Screen height in cells")
	f.BoolVar(&flagRecord, "record", false, "Save finished runs to the scores database")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if flagFrames <= 0 || flagDT <= 0 || flagRuns <= 0 {
		return fmt.Errorf("--frames, --dt and --runs must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagRecord {
		if store = openStore(logger); store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pilot := dash.NewAutopilot(cfg)
	for i := range flagRuns {
		runSeed := seed + int64(i)

		var opts []dash.Option
		if store != nil {
			opts = append(opts, dash.WithBestKeeper(store.BestKeeper(dash.GameID)))
		}
		game := dash.NewGame(cfg, opts...)
		game.Reset(core.RuntimeConfig{ScreenW: flagWidth, ScreenH: flagHeight, TickRate: flagFPS, Seed: runSeed})

		start := time.Now()
		sum := pilot.Drive(game, flagFrames, flagDT)
		logger.Debug("run simulated", "seed", runSeed, "wall", time.Since(start))

		printSummary(runSeed, sum)

		if store != nil && sum.Ended {
			run := storage.Run{
				GameID:   dash.GameID,
				Score:    sum.Score,
				Distance: sum.Distance,
				Duration: time.Duration(sum.Elapsed * float64(time.Second)),
			}
			if _, err := store.SaveRun(run); err != nil {
				logger.Warn("could not record run", "seed", runSeed, "err", err)
			}
		}
	}
	return nil
}

func printSummary(seed int64, s dash.RunSummary) {
	outcome := "crashed"
	if !s.Ended {
		outcome = "survived"
	}
	fmt.Printf("seed %d: %s after %d frames (%.1fs)\n", seed, outcome, s.Frames, s.Elapsed)
	fmt.Printf("  score %d  best %d  distance %.1fm\n", s.Score, s.Best, s.Distance)
	fmt.Printf("  patterns %d  jumps %d  dashes %d\n", s.Spawned, s.Jumps, s.Dashes)
}
