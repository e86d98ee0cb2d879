package main

import (
	"fmt"

	"github.com/aretw0/templates/internal/cli"
	"github.com/aretw0/templates/internal/presentation/tui"
	"github.com/aretw0/templates/pkg/describe"
	"github.com/aretw0/templates/pkg/qa"
	"github.com/spf13/cobra"
)

var qaCmd = &cobra.Command{
	Use:   "qa [default|setup|upgrade|remove]",
	Short: "Ask the configuration questions and print the resulting config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		mode, err := qa.ParseMode(name)
		if err != nil {
			return err
		}

		spec := qa.SpecFor(mode)
		if specOnly, _ := cmd.Flags().GetBool("spec"); specOnly {
			return cli.WriteJSON(cmd.OutOrStdout(), spec)
		}

		answers, err := tui.AskQuestions(cmd.Context(), tui.SurveyAsker{}, spec)
		if err != nil {
			return err
		}
		config := qa.ConfigFromAnswers(answers)
		if err := describe.ValidateScopedConfig(config); err != nil {
			return fmt.Errorf("answers do not form a valid config: %w", err)
		}
		return cli.WriteJSON(cmd.OutOrStdout(), qa.ApplyAnswers(mode, nil, config))
	},
}

func init() {
	rootCmd.AddCommand(qaCmd)
	qaCmd.Flags().Bool("spec", false, "Print the questions instead of asking them")
}
