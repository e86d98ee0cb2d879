package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/templates/internal/cli"
	"github.com/aretw0/templates/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve JSON-Lines invocations on stdin/stdout",
	Long: `Run reads one request per line from stdin and writes one response per line to stdout:

  {"id": "1", "operation": "text", "invocation": {...}}
  {"id": "1", "result": {...}}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stdio, _ := cmd.Flags().GetBool("stdio")
		if !stdio {
			return errors.New("run requires --stdio")
		}

		logger, err := cli.CreateLogger(globalOpts)
		if err != nil {
			return err
		}
		store, err := cli.CreateStore(globalOpts, false)
		if err != nil {
			return err
		}
		c, err := cli.CreateComponent(globalOpts, logger, store, nil)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := c.Start(ctx); err != nil {
			return err
		}
		defer c.Stop(context.Background())

		h := runner.NewJSONHandler(c, cmd.InOrStdin(), cmd.OutOrStdout(), runner.WithHandlerLogger(logger))
		if err := h.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("stdio", false, "Read JSON-Lines requests from stdin")
}
