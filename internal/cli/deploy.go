package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewDeployCmd creates the deploy command with one subcommand per task
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy contracts with a registered task",
		Long: `Deploy contracts with one of the registered tasks.

Each task deploys one or more contracts, records them in
deployments/<env>/<network>/contracts.json and writes what is needed to
verify them later to verify.json.

Run 'nftops tasks' to see every task with its parameters.`,
	}

	for _, spec := range usecase.TaskSpecs() {
		cmd.AddCommand(newTaskCmd(spec))
	}

	return cmd
}

func newTaskCmd(spec domain.TaskSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.Name,
		Short:   spec.Description,
		Example: spec.Example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := map[string]string{}
			for _, p := range spec.Params {
				if f := cmd.Flags().Lookup(p.Name); f != nil && f.Changed {
					params[p.Name] = f.Value.String()
				}
			}

			network := app.Config.Network
			if network != nil && !network.IsLocal() {
				ok, err := app.Selector.Confirm(cmd.Context(),
					fmt.Sprintf("Deploy %s to %s (chain %d) in env %s", spec.Name, network.Name, network.ChainID, app.Config.Env))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("deployment cancelled")
				}
			}

			result, err := app.RunTask.Run(cmd.Context(), usecase.RunTaskParams{
				Task:   spec.Name,
				Params: params,
			})
			stopProgress(app)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	if short := strings.TrimPrefix(spec.Name, "deploy-"); short != spec.Name {
		cmd.Aliases = []string{short}
	}

	for _, p := range spec.Params {
		usage := p.Usage
		if p.Required {
			usage += " (required)"
		}
		if p.Env != "" {
			usage += fmt.Sprintf(" [$%s]", p.Env)
		}
		cmd.Flags().String(p.Name, p.Default, usage)
	}

	return cmd
}
