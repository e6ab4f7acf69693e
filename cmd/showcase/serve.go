package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/retro-showcase/internal/api"
	"github.com/vovakirdan/retro-showcase/internal/catalog"
	"github.com/vovakirdan/retro-showcase/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the HTTP API",
	Long: `Start an SSH server that lets users connect and play, and an HTTP
API that serves the catalog and save slots.

Each SSH connection gets its own session with a game picker menu and its
own quick save slot. Both servers share the saves database.

HTTP routes:
  GET  /api/games              - Catalog
  GET  /api/games/{id}         - One catalog entry
  GET  /api/games/{id}/save    - Read a save (?slot=name, default quick)
  POST /api/games/{id}/save    - Write a save, body {"state": ...}

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.showcase/host_key

Pass an empty address to disable a server.

Examples:
  showcase serve                          # SSH on :23234, HTTP on :8080
  showcase serve --ssh :2222 --http ""    # SSH only
  showcase serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	if err := serve(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

// serve runs the enabled servers until a signal arrives or one fails.
// The store is closed before it returns.
func serve(logger *log.Logger) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
			ConfigPath:  flagConfig,
		}
		server, err := tui.NewSSHServer(cfg, catalog.Default, store, logger.WithPrefix("showcase-ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		g.Go(func() error { return server.ListenAndServe(ctx) })
	}

	if flagHTTPAddr != "" {
		// A nil *storage.Store must stay a nil interface.
		var slots api.SaveStore
		if store != nil {
			slots = store
		}
		server := api.NewServer(catalog.Default, slots, logger.WithPrefix("showcase-http"))
		g.Go(func() error { return server.ListenAndServe(ctx, flagHTTPAddr) })
	}

	logger.Info("press Ctrl+C to stop")
	return g.Wait()
}
