package main

import (
	"fmt"

	"github.com/aretw0/templates/internal/cli"
	"github.com/aretw0/templates/pkg/describe"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the component self-description",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := describe.Describe()
		if err != nil {
			return err
		}
		return cli.WriteJSON(cmd.OutOrStdout(), d)
	},
}

var schemaCmd = &cobra.Command{
	Use:       "schema <input|output|config>",
	Short:     "Print one of the published schemas",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(describe.SchemaInput), string(describe.SchemaOutput), string(describe.SchemaConfig)},
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := describe.SchemaFor(describe.SchemaKind(args[0]))
		if err != nil {
			return fmt.Errorf("unknown schema: %w", err)
		}
		return cli.WriteJSON(cmd.OutOrStdout(), schema)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(schemaCmd)
}
