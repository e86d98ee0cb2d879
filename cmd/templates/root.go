package main

import (
	"fmt"
	"os"

	"github.com/aretw0/templates/internal/cli"
	"github.com/spf13/cobra"
)

var globalOpts cli.GlobalOptions

var rootCmd = &cobra.Command{
	Use:           "templates",
	Short:         "Render Handlebars templates as a pipeline component",
	Long:          `templates renders a template against a message, payload and prior state, and returns the component result envelope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&globalOpts.LogFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&globalOpts.Profile, "profile", "full", "Capability profile (legacy, stateful, full)")
	flags.StringVar(&globalOpts.RedisURL, "redis-url", "", "Redis URL for the state store (e.g. redis://localhost:6379/0)")
	flags.DurationVar(&globalOpts.RedisTTL, "redis-ttl", 0, "Expiry of stored state (0 keeps it forever)")
	flags.StringVar(&globalOpts.StateKey, "state-key", "", "Base64 AES-256 key sealing stored state (env "+cli.EnvStateKey+")")
	flags.StringSliceVar(&globalOpts.MaskKeys, "mask-keys", nil, "Regular expressions of state keys masked before saving")
}
