package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewPlanCmd creates the plan command group
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run multi-task deployment plans",
	}
	cmd.AddCommand(newPlanRunCmd())
	return cmd
}

func newPlanRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Execute a deployment plan",
		Long: `Execute the steps of a YAML plan in dependency order.

Step params may reference addresses deployed by earlier steps with
${step-id.ContractName}. Execution stops at the first failing step;
steps that already ran stay recorded.`,
		Example: `  nftops plan run plans/launch.yaml -n mumbai
  nftops plan run plans/launch.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.RunPlan.Run(cmd.Context(), usecase.RunPlanParams{
				Path:   args[0],
				DryRun: dryRun,
			})
			stopProgress(app)

			// partial results are still worth showing
			if result != nil {
				var err error
				if app.Config.JSON {
					err = render.RenderJSON(cmd.OutOrStdout(), result)
				} else {
					err = render.NewPlanRenderer(cmd.OutOrStdout()).Render(result)
				}
				if err != nil && runErr == nil {
					runErr = err
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the execution order only")

	return cmd
}
