package main

import (
	"errors"
	"os"

	"github.com/aretw0/templates/internal/cli"
	"github.com/aretw0/templates/internal/presentation/tui"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/spf13/cobra"
)

var renderOpts cli.RenderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one invocation and print the result",
	Long: `Render builds an invocation from an invocation file (JSON or YAML, "-" for stdin)
and/or flags, runs the text operation and prints the result envelope.

  templates render -t 'Hello {{payload.name}}' --payload '{"name":"Alice"}'
  templates render -f invocation.yaml --pretty`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderOpts.File == "" && renderOpts.Template == "" {
			return errors.New("either --file or --template is required")
		}
		pretty, _ := cmd.Flags().GetBool("pretty")

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

		input, err := cli.BuildInvocation(renderOpts, cmd.InOrStdin())
		if err != nil {
			return err
		}
		out, err := c.Invoke(cmd.Context(), domain.OperationText, input)
		if err != nil {
			return err
		}
		return cli.WriteResult(cmd.OutOrStdout(), out, pretty && tui.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.File, "file", "f", "", "Invocation file (JSON or YAML, - for stdin)")
	f.StringVarP(&renderOpts.Template, "template", "t", "", "Template text")
	f.StringVar(&renderOpts.Payload, "payload", "", "Payload (JSON or YAML)")
	f.StringVar(&renderOpts.State, "state", "", "Prior state (JSON or YAML)")
	f.StringVar(&renderOpts.TenantID, "tenant", "", "Tenant id (default \"local\")")
	f.StringVar(&renderOpts.EnvID, "env", "", "Environment id (default \"dev\")")
	f.StringVar(&renderOpts.SessionID, "session", "", "Session id (default \"cli\")")
	f.StringVar(&renderOpts.NodeID, "node", "", "Node id addressing state.nodes")
	f.StringVarP(&renderOpts.OutputPath, "output-path", "o", "", "Dotted path to nest the rendered text under")
	f.BoolVar(&renderOpts.NoWrap, "no-wrap", false, "Return the rendered text as a bare string")
	f.StringVar(&renderOpts.Routing, "routing", "", "Routing emitted in control.routing")
	f.Bool("pretty", false, "Render the result as markdown when stdout is a terminal")
}
