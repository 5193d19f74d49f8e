package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdash/internal/audio"
	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Block Dash in this terminal",
	Long: `Start Block Dash in the current terminal.

Difficulty options:
  easy   - Slower world, gentler spawn ramp
  normal - The configured values
  hard   - Faster world, tighter spawn floor

Examples:
  blockdash play
  blockdash play --difficulty easy
  blockdash play --config ./my-blockdash.yaml --log-file /tmp/blockdash.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	out, closeLog, err := logOutput(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := newLogger(out)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cues, closeAudio := startAudio(cfg, logger)
	defer closeAudio()

	opts := []dash.Option{dash.WithCues(cues)}
	if store != nil {
		opts = append(opts, dash.WithBestKeeper(store.BestKeeper(dash.GameID)))
	}
	game := dash.NewGame(cfg, opts...)

	logger.Info("starting run", "size", fmt.Sprintf("%dx%d", width, height), "fps", flagFPS, "difficulty", flagDifficulty)
	if err := tui.Run(game, tui.Options{Config: cfg, Store: store, Runtime: rt, Logger: logger}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startAudio returns the cue sink for this session. Muted, disabled or
// failing audio falls back to the silent sink.
func startAudio(cfg config.DashConfig, logger *log.Logger) (dash.CueSink, func()) {
	if flagMute || !cfg.Audio.Enabled {
		return audio.Nop{}, func() {}
	}

	player, err := audio.NewPlayer(cfg.Audio, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}, func() {}
	}
	if err := player.Start(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}, func() {}
	}

	return player, func() {
		played, dropped := player.Stats()
		if err := player.Close(); err != nil {
			logger.Warn("audio shutdown", "err", err)
		}
		logger.Debug("audio stopped", "played", played, "dropped", dropped)
	}
}
