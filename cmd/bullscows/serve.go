package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivymerfe/bullscows/internal/config"
	"github.com/ivymerfe/bullscows/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bulls & cows SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with its own secret, using the
settings from the config file and --difficulty as defaults. With --seed N
the first connection uses seed N, the next N+1, and so on.
A terminal is required: plain "ssh host cmd" without -t is refused.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key_path from the config
  - Otherwise, auto-generates a key at ~/.bullscows/host_key

Examples:
  bullscows serve                           # Listen on :23235 with auto-generated key
  bullscows serve --ssh :2222               # Listen on port 2222
  bullscows serve --host-key ./my_host_key  # Use specific host key
  bullscows serve --difficulty hard         # Everyone plays hard by default

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("bullscows-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	serverCfg, err := sshServerConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	serverCfg.Logger = logger

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting bulls & cows SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// sshServerConfig merges the ssh section of the config with command-line flags.
func sshServerConfig(cfg config.Config) (tui.SSHServerConfig, error) {
	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Defaults = cfg.Parameters()
	serverCfg.Seed = flagSeed
	serverCfg.MaxAttempts = cfg.Limits.MaxAttempts
	serverCfg.MaxTimeToGuess = cfg.Limits.MaxTimeToGuess
	serverCfg.RedrawInterval = cfg.RedrawInterval()
	serverCfg.PollInterval = cfg.PollInterval()

	if cfg.SSH.Address != "" {
		serverCfg.Address = cfg.SSH.Address
	}
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}

	hostKey := cfg.SSH.HostKeyPath
	if flagHostKey != "" {
		hostKey = flagHostKey
	}
	if hostKey != "" {
		path, err := config.ExpandHome(hostKey)
		if err != nil {
			return serverCfg, err
		}
		serverCfg.HostKeyPath = path
	}

	if cfg.SSH.IdleTimeoutMinutes > 0 {
		serverCfg.IdleTimeout = cfg.IdleTimeout()
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	return serverCfg, nil
}
