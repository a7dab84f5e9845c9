// Package cli provides the polynorm command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/config"
	"github.com/njchilds90/polynorm/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "polynorm",
		Short: "Normalize expression trees into canonical polynomials",
		Long: `polynorm turns arithmetic expression trees built from variables, rational
constants, addition and multiplication into canonical polynomials, so that
structurally different trees can be compared and evaluated.

Expressions are read from YAML or JSON documents:

  env:
    x: 2
  expressions:
    e1: {type: times, left: {type: var, name: x}, right: {type: const, value: 3}}`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.NewWithWriter(cfg.Log.LoggerConfig(), cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = logging.WithContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("command", cmd.Name()),
				slog.String("output", cfg.Output.Format),
				slog.Int("max_depth", cfg.Engine.MaxDepth))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./polynorm.yaml)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (json|text|pretty)")
	pf.StringP("output", "o", "", "Output format (auto|table|text|json)")
	pf.Int("max-depth", 0, "Maximum expression nesting accepted from documents")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newEvalCommand())
	rootCmd.AddCommand(newEqualCommand())
	rootCmd.AddCommand(newTermsCommand())
	rootCmd.AddCommand(newDemoCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand(Version, GitCommit))

	return rootCmd
}

// Execute runs the root command with ctx and args, writing to stdout/stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// commandContext holds the dependencies shared by subcommands.
type commandContext struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *output.Renderer
}

func newCommandContext(cmd *cobra.Command) (*commandContext, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("%s: configuration not loaded", cmd.Name())
	}
	return &commandContext{
		cfg:      cfg,
		logger:   logging.FromContext(cmd.Context()),
		renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output.Format)),
	}, nil
}
