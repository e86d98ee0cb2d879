package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/templates"
	"github.com/aretw0/templates/internal/cli"
	"github.com/aretw0/templates/internal/presentation/tui"
	httpAdapter "github.com/aretw0/templates/pkg/adapters/http"
	"github.com/aretw0/templates/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const envStateToken = "TEMPLATES_STATE_TOKEN"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the component in server mode, exposing a JSON API over HTTP with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")
		stateToken, _ := cmd.Flags().GetString("state-token")
		if stateToken == "" {
			stateToken = os.Getenv(envStateToken)
		}

		logger, err := cli.CreateLogger(globalOpts)
		if err != nil {
			return err
		}
		store, err := cli.CreateStore(globalOpts, true)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics()
		if err := metrics.Register(reg); err != nil {
			return fmt.Errorf("error registering metrics: %w", err)
		}

		c, err := cli.CreateComponent(globalOpts, logger, store, metrics)
		if err != nil {
			return err
		}

		if stateToken == "" {
			logger.Warn("State routes are not protected; set --state-token when the port is reachable by untrusted clients")
		}

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewHandler(c,
				httpAdapter.WithStateStore(store),
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithLogger(logger),
				httpAdapter.WithStateToken(stateToken),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if !quiet && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), templates.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting templates server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Shutdown signal received")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				return srv.Close()
			}
			logger.Info("Templates server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	serveCmd.Flags().String("state-token", "", "Bearer token required by the /state routes (env "+envStateToken+")")
}
