package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nya3jp/icfpc2015/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hexfall SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the problem menu and its
own engines. Finished games go to the configured submit sink and to the
shared solutions database, tagged with the configured tag.

Host key handling:
  - --host-key, then server.host_key_path
  - otherwise a key is generated at ~/.hexfall/host_key

Examples:
  hexfall serve                           # Listen on server.host:server.port
  hexfall serve --ssh :2222               # Listen on port 2222
  hexfall serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: server.host:server.port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: server.host_key_path)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default: server.idle_timeout_minutes)")
}

func runServe(_ *cobra.Command, _ []string) {
	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	sshCfg.HostKeyPath = cfg.Server.HostKeyPath
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	sshCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutMinutes) * time.Minute
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	list := loadProblems()
	store := openStore(false)
	if store != nil {
		defer store.Close()
	}
	sub, err := newSubmitter(store, os.Stdout)
	if err != nil {
		exitf("creating submit sink: %v", err)
	}
	defer sub.Close()

	server, err := tui.NewSSHServer(sshCfg, newEnv(list, store, sub), logger.WithPrefix("ssh"))
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting hexfall SSH server on %s with %d problems\n", sshCfg.Address, len(list))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
