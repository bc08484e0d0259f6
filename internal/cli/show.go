package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [contract-key]",
		Short: "Show a recorded deployment",
		Long: `Show one contracts.json record with its verify.json entry.

The key is either the full record key (ERC721Mintable_V1) or a contract
name with exactly one recorded version. Without a key an interactive
picker is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ShowDeploymentParams{}
			if len(args) > 0 {
				params.Key = args[0]
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
