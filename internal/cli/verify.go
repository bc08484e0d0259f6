package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		all        bool
		task       string
		taskParams map[string]string
		ver        string
	)

	cmd := &cobra.Command{
		Use:   "verify [contract-key...]",
		Short: "Verify deployed contracts on the block explorer",
		Long: `Verify contract sources on the network's block explorer.

Without --task the arguments recorded in verify.json are used. With
--task the constructor arguments are rebuilt from the task parameters
and the addresses recorded in contracts.json.

Upgradeable contracts verify the implementation first and then link the
proxy.`,
		Example: `  nftops verify --all -n mumbai
  nftops verify ERC721PresetMintableURI_V1 -n matic
  nftops verify --task deploy-erc1155 -p name=Example -p symbol=EX -p fee-in-beeps=1000 \
    -p signer=0x70997970C51812dc3A010C7d01b50e0d17dc79C8 --ver 1 -n mumbai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all && task == "" {
				return fmt.Errorf("specify contract keys, --all or --task")
			}
			if all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with contract keys")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.VerifyParams{Keys: args, Task: task, TaskParams: map[string]string{}}
			for k, v := range taskParams {
				params.TaskParams[k] = v
			}
			if ver != "" {
				params.TaskParams["ver"] = ver
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), params)
			stopProgress(app)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				if err := render.RenderJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else if err := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if failed := result.Failed(); failed > 0 {
				return fmt.Errorf("%d contracts failed verification", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Verify every contract in verify.json")
	cmd.Flags().StringVar(&task, "task", "", "Rebuild verify arguments from this deploy task")
	cmd.Flags().StringToStringVarP(&taskParams, "param", "p", nil, "Task parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&ver, "ver", "", "Contract version, shorthand for -p ver=<v>")

	return cmd
}
