package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/nftops/internal/cli/render"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NewSignCmd creates the sign command for EIP-712 mint signatures
func NewSignCmd() *cobra.Command {
	var params usecase.SignTypedDataParams

	cmd := &cobra.Command{
		Use:   "sign <schema>",
		Short: "Create an EIP-712 signature for a lazy mint",
		Long: fmt.Sprintf(`Sign typed data accepted by the lazy mint contracts.

Available schemas:
%s
The key defaults to the first account of the selected network.`, schemaList()),
		Example: `  nftops sign erc721 --contract 0x5FbD... --name Example --ver 1 \
    -f nonce=1 -f uri=ipfs://... -f creator=0xf39F... -n localhost`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.Schema = args[0]
			sig, err := app.SignTypedData.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.RenderJSON(cmd.OutOrStdout(), sig)
		},
	}

	cmd.Flags().StringVar(&params.Contract, "contract", "", "Verifying contract address")
	cmd.Flags().StringVar(&params.Name, "name", "", "EIP-712 domain name")
	cmd.Flags().StringVar(&params.Version, "ver", "", "EIP-712 domain version")
	cmd.Flags().Uint64Var(&params.ChainID, "chain-id", 0, "Chain ID (defaults to the selected network)")
	cmd.Flags().StringToStringVarP(&params.Fields, "field", "f", nil, "Message field as key=value (repeatable)")
	cmd.Flags().StringVar(&params.Key, "key", "", "Hex private key to sign with")

	return cmd
}

func schemaList() string {
	var b strings.Builder
	for _, s := range domain.SigningSchemas() {
		fmt.Fprintf(&b, "  %-16s %s (%s)\n", s.Name, s.Description, strings.Join(s.FieldNames(), ", "))
	}
	return b.String()
}
