package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

func (r *VerifyRenderer) Render(result *usecase.VerifyResult) error {
	if len(result.Results) == 0 {
		color.New(color.FgYellow).Fprintf(r.out, "Nothing to verify in %s/%s\n", result.Env, result.ChainAlias)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Verification results for %s/%s:\n", result.Env, result.ChainAlias)

	t := newTable("CONTRACT", "ADDRESS", "STATUS", "DETAILS")
	for _, res := range result.Results {
		name := res.Key
		if res.Proxy {
			name += " (proxy)"
		}
		details := res.Message
		if details == "" {
			details = res.ExplorerURL
		}
		t.AppendRow([]interface{}{name, res.Address, r.status(res.Status), details})
	}
	fmt.Fprintln(r.out, t.Render())

	if failed := result.Failed(); failed > 0 {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d of %d contracts failed verification", failed, len(result.Results))))
	}
	return nil
}

func (r *VerifyRenderer) status(s domain.VerificationStatus) string {
	label := Title(string(s))
	switch s {
	case domain.VerificationVerified:
		return color.New(color.FgGreen).Sprintf("✓ %s", label)
	case domain.VerificationSkipped:
		return color.New(color.FgYellow).Sprintf("⏭️  %s", label)
	default:
		return color.New(color.FgRed).Sprintf("✗ %s", label)
	}
}
