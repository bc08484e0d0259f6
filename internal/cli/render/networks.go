package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NetworksRenderer renders network information
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworkList renders the list of networks with their details
func (r *NetworksRenderer) RenderNetworkList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable("NETWORK", "CHAIN ID", "FOLDER", "ACCOUNTS", "EXPLORER")
	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow([]interface{}{
				color.New(color.FgRed).Sprintf("❌ %s", network.Name),
				"", "", "",
				color.New(color.FgRed).Sprint(network.Error.Error()),
			})
			continue
		}
		t.AppendRow([]interface{}{
			color.New(color.FgGreen).Sprintf("✅ %s", network.Name),
			network.ChainID,
			network.Alias,
			network.Accounts,
			network.Explorer,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
