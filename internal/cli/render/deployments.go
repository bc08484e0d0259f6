package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// DeploymentsRenderer renders contracts.json listings grouped by env and network
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments list renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

func (r *DeploymentsRenderer) Render(result *usecase.ListDeploymentsResult) error {
	if result.Total == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	envColor := color.New(color.FgMagenta, color.Bold)
	netColor := color.New(color.FgCyan, color.Bold)
	for i, group := range result.Groups {
		if len(group.Contracts) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		chain := ""
		if group.Network != nil {
			chain = fmt.Sprintf(" (chain %d)", group.Network.ChainID)
		}
		fmt.Fprintf(r.out, "%s / %s%s\n", envColor.Sprint(group.Env), netColor.Sprint(group.ChainAlias), chain)

		t := newTable("CONTRACT", "ADDRESS", "BLOCK", "VERIFY")
		for _, key := range group.Contracts.Keys() {
			entry := group.Contracts[key]
			verify := ""
			if v, ok := group.Verify[key]; ok {
				verify = v.Task
				if v.Proxy {
					verify += " (proxy)"
				}
			}
			t.AppendRow([]interface{}{key, entry.Address, entry.StartingBlock, verify})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	fmt.Fprintf(r.out, "\nTotal: %d contracts\n", result.Total)
	return nil
}
