package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// DeploymentRenderer renders a single contracts.json record
type DeploymentRenderer struct {
	out io.Writer
}

func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

func (r *DeploymentRenderer) Render(result *usecase.ShowDeploymentResult) error {
	bold := color.New(color.Bold)
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "%s\n", result.Key)
	fmt.Fprintln(r.out, strings.Repeat("=", len(result.Key)))

	fmt.Fprintf(r.out, "%s %s/%s", bold.Sprint("Location:"), result.Env, result.ChainAlias)
	if result.Network != nil {
		fmt.Fprintf(r.out, " (%s, chain %d)", result.Network.Name, result.Network.ChainID)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Address:"), color.New(color.FgGreen).Sprint(result.Entry.Address))
	if result.Entry.Name != "" {
		fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Name:"), result.Entry.Name)
	}
	fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Version:"), result.Entry.Version)
	fmt.Fprintf(r.out, "%s %d\n", bold.Sprint("Starting block:"), result.Entry.StartingBlock)

	if v := result.Verify; v != nil {
		fmt.Fprintln(r.out)
		color.New(color.FgYellow, color.Bold).Fprintln(r.out, "Verification")
		fmt.Fprintf(r.out, "  Task:      %s\n", v.Task)
		fmt.Fprintf(r.out, "  Artifact:  %s\n", v.Artifact)
		if len(v.Args) > 0 {
			fmt.Fprintf(r.out, "  Args:      %s\n", strings.Join(v.Args, " "))
		}
		if v.Proxy {
			fmt.Fprintf(r.out, "  Proxy:     yes\n")
			if v.Implementation != "" {
				fmt.Fprintf(r.out, "  Impl:      %s\n", v.Implementation)
			}
		}
	}
	return nil
}
