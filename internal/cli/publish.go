package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewPublishCmd uploads deployment records to the configured bucket
func NewPublishCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload deployment records to object storage",
		Long: `Upload deployments/<env> to the S3 compatible bucket configured in the
[storage] section of nftops.toml, so other services can read the
addresses and ABIs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.PublishDeployments.Run(cmd.Context(), usecase.PublishParams{DryRun: dryRun})
			stopProgress(app)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewPublishRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files without uploading")

	return cmd
}
