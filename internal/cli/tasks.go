package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewTasksCmd lists the deploy tasks, or the params of one task
func NewTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [task]",
		Short: "List deploy tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := render.NewTasksRenderer(cmd.OutOrStdout())
			if len(args) == 0 {
				if flagBool(cmd, "json") {
					return render.RenderJSON(cmd.OutOrStdout(), usecase.TaskSpecs())
				}
				return renderer.Render(usecase.TaskSpecs())
			}

			spec, err := usecase.LookupTaskSpec(args[0])
			if err != nil {
				return err
			}
			if flagBool(cmd, "json") {
				return render.RenderJSON(cmd.OutOrStdout(), spec)
			}
			return renderer.RenderParams(spec)
		},
	}
}
