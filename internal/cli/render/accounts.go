package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// AccountsRenderer renders the configured signer accounts
type AccountsRenderer struct {
	out io.Writer
}

func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

func (r *AccountsRenderer) Render(result *usecase.ListAccountsResult) error {
	fmt.Fprintf(r.out, "🌐 %s (chain %d)\n\n", result.Network, result.ChainID)
	if len(result.Accounts) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No accounts configured for this network"))
		return nil
	}

	t := newTable("#", "ADDRESS", "BALANCE", "NONCE")
	for i, a := range result.Accounts {
		t.AppendRow([]interface{}{i, color.New(color.FgCyan).Sprint(a.Address), FormatEther(a.Balance), a.Nonce})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
