package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var allEnvs bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the contracts recorded in deployments/<env>/<network>/contracts.json.

Use --network to restrict the listing to one network folder and
--all-envs to include every environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{AllEnvs: allEnvs}
			if app.Config.Network != nil {
				params.ChainAlias = app.Config.Network.Alias
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&allEnvs, "all-envs", false, "List every environment")

	return cmd
}
