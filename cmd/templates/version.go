package main

import (
	"fmt"

	"github.com/aretw0/templates"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of templates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "templates version %s (%s)\n", templates.Version, templates.TargetMarker)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
