package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdash/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Block Dash SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own run. Scores are stored per server,
so all players share the same board and best score. Sound is off for
remote sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blockdash/host_key

Examples:
  blockdash serve                           # Listen on :23234
  blockdash serve --ssh :2222               # Listen on port 2222
  blockdash serve --host-key ./my_host_key  # Use a specific host key
  blockdash serve --db ./scores.db          # Use a specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	out, closeLog, err := logOutput(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := newLogger(out)
	if err != nil {
		return err
	}
	logger.SetPrefix("blockdash-ssh")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.DBPath = flagDBPath
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.TickRate = flagFPS
	srvCfg.Game = cfg
	srvCfg.Logger = logger

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Block Dash SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
