package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm/internal/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool interface over HTTP",
		Long: `Serve starts the HTTP tool server.

  POST /tool     handle a tool call
  GET  /schema   tool schema for agent registration
  GET  /health   liveness check
  GET  /metrics  Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cc.logger.Info("starting polynorm server",
				slog.String("version", Version),
				slog.String("commit", GitCommit))

			return server.New(cc.cfg.Server, cc.cfg.Engine, cc.logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("host", "", "Interface to listen on")
	cmd.Flags().Int("port", 0, "Port to listen on")
	return cmd
}
