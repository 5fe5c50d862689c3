package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/reviewlens/internal/config"
	"github.com/nao1215/reviewlens/internal/controller"
	"github.com/nao1215/reviewlens/internal/model"
	"github.com/nao1215/reviewlens/internal/notify"
	"github.com/nao1215/reviewlens/internal/report"
	"github.com/nao1215/reviewlens/internal/ui"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <product-url>...",
		Short: "Analyze product links from the terminal",
		Long: `Analyze submits each product link to the analyze endpoint the same way the
page's analyze button does, then prints the final page: the latest
summary and the history of analyzed links, most recent first.

Notifications (blank links, endpoint errors, network failures) are
printed to stderr as they happen. The command exits with an error if any
submit did not succeed.

Examples:
  # Analyze one product
  reviewlens analyze https://shop.example/item/123

  # Analyze several products, three at a time
  reviewlens analyze -p 3 https://shop.example/item/1 https://shop.example/item/2 https://shop.example/item/3

  # Print the result as JSON and keep a copy
  reviewlens analyze --json -o report.json https://shop.example/item/123`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addEndpointFlags(cmd)
	cmd.Flags().IntP("parallel", "p", config.DefaultParallel,
		"Number of overlapping submits")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Also write the report to this file")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// runAnalyze submits every input and writes the report to out.
func runAnalyze(ctx context.Context, cfg *config.Config, inputs []string, out, errOut io.Writer, logger *slog.Logger) error {
	client, err := newAnalyzeClient(cfg, logger)
	if err != nil {
		return err
	}

	view := ui.NewView()
	recorder := notify.NewRecorder()
	c := controller.New(view, client,
		notify.Multi{notify.NewWriter(errOut), recorder},
		controller.WithLogger(logger),
		controller.WithMessages(newMessages(cfg)),
	)

	outcomes, err := c.SubmitAll(ctx, inputs, cfg.Parallel)
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}
	logger.Info("analysis finished", "outcomes", outcomeCounts(outcomes))

	writer := newReportWriter(cfg, out)
	if cfg.ReportFile != "" {
		f, err := createReportFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		writer = report.NewMultiWriter(writer, newReportWriter(cfg, f))
	}
	if _, err := writer.Write(view.Snapshot(), recorder.Drain()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d submits did not succeed", failed, len(outcomes))
	}
	return nil
}

func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewTextWriter(out)
	}
}

// createReportFile creates path and its parent directories. Reports list
// every analyzed link, so the file is readable by the owner only.
func createReportFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// outcomeCounts tallies outcomes by kind for logging.
func outcomeCounts(outcomes []model.Outcome) map[string]int {
	counts := make(map[string]int, 4)
	for _, o := range outcomes {
		counts[o.String()]++
	}
	return counts
}
