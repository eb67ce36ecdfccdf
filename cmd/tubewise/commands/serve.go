// ABOUTME: Serve command runs the HTTP API
// ABOUTME: Listens on the configured address until interrupted
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/tubewise/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON HTTP API.

Endpoints: POST /transcript, /blog, /question, /sentiment, /word-cloud;
GET /health, /metrics; DELETE /sessions/{video_id}.

Examples:
  tubewise serve
  tubewise serve --addr 127.0.0.1:9000`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from HTTP_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, cfg, err := buildService()
	if err != nil {
		return err
	}

	addr := cfg.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.Serve(ctx, addr, api.NewRouter(svc))
}
