// Command mcp-server runs the polynorm tool interface as a standalone HTTP
// service for agent frameworks.
//
// Usage:
//
//	mcp-server --port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
//
// Settings come from ./polynorm.yaml (or --config) and POLYNORM_* variables;
// flags override both.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/njchilds90/polynorm/internal/config"
	"github.com/njchilds90/polynorm/internal/logging"
	"github.com/njchilds90/polynorm/internal/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("mcp-server", pflag.ContinueOnError)
	cfgFile := flags.String("config", "", "config file (default: ./polynorm.yaml)")
	flags.String("host", "", "Interface to listen on")
	flags.Int("port", 0, "Port to listen on")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (json|text|pretty)")
	flags.Int("max-depth", 0, "Maximum expression nesting accepted in tool calls")
	flags.Int("max-terms", 0, "Maximum terms in any polynomial built by a tool call")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cfg.Log.LoggerConfig())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, cfg.Engine, logger).ListenAndServe(ctx)
}
