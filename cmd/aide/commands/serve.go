// ABOUTME: Serve command runs the HTTP API and WebSocket endpoint
// ABOUTME: Binds to the configured address and shuts down on SIGINT/SIGTERM
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pmcavoy/aide/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Exposes the assistant over a JSON API and a WebSocket endpoint for
interactive clients. The bind address comes from HOST and PORT.`,
		Example: `  # Start on the default address (localhost:5000)
  aide serve

  # Start on a different port
  PORT=8080 aide serve`,
		RunE: runServe,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	assistant, cfg, err := buildAssistant()
	if err != nil {
		return err
	}

	srv := server.New(assistant, cfg.CORSOrigins, cfg.HistoryLimit)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Printf("aide API listening on http://%s", cfg.Addr())
	}

	if err := srv.ListenAndServe(ctx, cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	if !quiet {
		log.Println("Shutdown complete")
	}
	return nil
}
