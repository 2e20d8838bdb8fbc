// Package cli implements the draftkit command line: an interactive draft
// loop and one-shot queries over the same draft service the HTTP API uses.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/config"
	"github.com/okian/draftkit/pkg/logger"
)

type rootFlags struct {
	config   string
	logLevel string
}

// NewRootCommand builds the draftkit command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "draftkit",
		Short: "Salary-cap fantasy draft assistant",
		Long: `draftkit tracks a fantasy draft against a budget and proposes the
highest-scoring team that still fits it.

Configuration is read from the file named by --config or DRAFTKIT_CONFIG,
then overridden by DRAFTKIT_* environment variables.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "config file (default $DRAFTKIT_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")

	root.AddCommand(
		newREPLCommand(flags),
		newBestTeamCommand(flags),
		newLookupCommand(flags),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// openService loads configuration, points logs at the command's error
// stream and starts a draft service. The caller stops it.
func openService(cmd *cobra.Command, flags *rootFlags) (*service.Service, error) {
	ctx := cmd.Context()
	path := flags.config
	if path == "" {
		path = os.Getenv("DRAFTKIT_CONFIG")
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(cfg.LogJSON)); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	svc := service.New(
		service.WithConfig(cfg),
		service.WithLogger(logger.Named("draftkit")),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
