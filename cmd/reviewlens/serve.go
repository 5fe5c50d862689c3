package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/reviewlens/internal/config"
	"github.com/nao1215/reviewlens/internal/controller"
	"github.com/nao1215/reviewlens/internal/notify"
	"github.com/nao1215/reviewlens/internal/web"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight submits may finish after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the review analysis page",
		Long: `Serve starts the browser front end.

The page has a product link input, an analyze button, a loading indicator,
a summary area and the list of links analyzed in this browser session.
Each submit calls the analyze endpoint and updates the page.

Examples:
  # Serve on :8080 against a local endpoint
  reviewlens serve

  # Use a remote endpoint with a 2 minute timeout
  reviewlens serve -e https://reviews.example/analyze -t 2m

  # Turkish notifications on a custom port
  reviewlens serve -l 127.0.0.1:9090 --lang tr`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"Listen address of the web page")
	addEndpointFlags(cmd)

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	handler, err := newWebHandler(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (endpoint %s)\n", listener.Addr(), cfg.Endpoint)

	return serve(ctx, listener, handler, logger)
}

// newWebHandler wires the endpoint client into a web server whose
// sessions each get their own controller.
func newWebHandler(cfg *config.Config, logger *slog.Logger) (*web.Server, error) {
	client, err := newAnalyzeClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	messages := newMessages(cfg)

	factory := func(elements controller.Elements, notifier notify.Notifier) *controller.Controller {
		return controller.New(elements, client, notifier,
			controller.WithLogger(logger),
			controller.WithMessages(messages),
		)
	}

	return web.NewServer(factory,
		web.WithLogger(logger),
		web.WithSessionTTL(cfg.SessionTTL),
		web.WithLanguage(messages.Language()),
	)
}

// serve runs an HTTP server on listener until ctx is done, then shuts it
// down gracefully.
func serve(ctx context.Context, listener net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("received shutdown signal, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
