package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the analyze endpoint is up",
		Long: `Health calls the /health route next to the analyze endpoint
(http://127.0.0.1:8000/health for http://127.0.0.1:8000/analyze) and
fails unless it answers with a 2xx status.

Examples:
  reviewlens health
  reviewlens health -e https://reviews.example/analyze`,
		Args: cobra.NoArgs,
		RunE: runHealthCmd,
	}

	addEndpointFlags(cmd)

	return cmd
}

func runHealthCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	client, err := newAnalyzeClient(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("checking endpoint health", "endpoint", client.Endpoint(), "health", client.HealthURL())
	if err := client.Health(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", client.HealthURL())
	return nil
}
