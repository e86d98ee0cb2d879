package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/templates/internal/cli"
	mcpAdapter "github.com/aretw0/templates/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes the render_template tool and the templates://describe resource over the Model Context Protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

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

		srv := mcpAdapter.NewServer(c, logger)
		if transport == "sse" {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		}
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport (stdio, sse)")
	mcpCmd.Flags().Int("port", 8081, "Port for the sse transport")
}
