package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
)

// NewAccountsCmd lists the signer accounts of the selected network
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the configured accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
