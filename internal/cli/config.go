package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage nftops local config",
		Long: `Show or change the defaults stored in .nftops/config.local.json.

The stored env and network apply whenever --env or --network is not
given. Without a subcommand the stored defaults are printed along with
the settings the current invocation resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}
			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a config value (env, network)",
			Example: `  nftops config set env stage
  nftops config set network mumbai`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := getApp(cmd)
				if err != nil {
					return err
				}

				result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{Key: args[0], Value: args[1]})
				if err != nil {
					return err
				}
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
			},
		},
		&cobra.Command{
			Use:   "remove <key>",
			Short: "Remove a config value",
			Long: `Remove a stored default. Removing env reverts to 'develop'; removing
network means --network is required again.`,
			Example: `  nftops config remove network`,
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := getApp(cmd)
				if err != nil {
					return err
				}

				result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{Key: args[0]})
				if err != nil {
					return err
				}
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
			},
		},
	)

	return cmd
}
