package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/domain"
)

// DeployRenderer renders the outcome of a deploy task
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

func (r *DeployRenderer) Render(result *domain.TaskResult) error {
	color.New(color.FgGreen, color.Bold).Fprintf(r.out, "✅ %s completed on %s (chain %d)\n",
		result.Task, result.Network.Name, result.Network.ChainID)
	fmt.Fprintf(r.out, "Env: %s  Version: %s\n\n", result.Env, result.Version)

	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No contracts deployed")
		return nil
	}

	t := newTable("CONTRACT", "ADDRESS", "BLOCK", "TX")
	for _, c := range result.Contracts {
		name := c.Contract
		if c.Verify.Proxy {
			name += " (proxy)"
		}
		t.AppendRow([]interface{}{
			color.New(color.FgCyan).Sprint(name),
			c.Address,
			c.Block,
			color.New(color.Faint).Sprint(c.TxHash),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	for _, c := range result.Contracts {
		if c.Verify.Implementation != "" {
			fmt.Fprintf(r.out, "%s implementation: %s\n", c.Contract, c.Verify.Implementation)
		}
	}
	return nil
}
