package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// StatusRenderer renders on-chain liveness of recorded contracts
type StatusRenderer struct {
	out io.Writer
}

func NewStatusRenderer(out io.Writer) *StatusRenderer {
	return &StatusRenderer{out: out}
}

func (r *StatusRenderer) Render(result *usecase.CheckStatusResult) error {
	if len(result.Statuses) == 0 {
		fmt.Fprintf(r.out, "No contracts recorded in %s/%s\n", result.Env, result.ChainAlias)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📋 %s/%s\n", result.Env, result.ChainAlias)

	t := newTable("CONTRACT", "ADDRESS", "STATUS", "CODE")
	missing := 0
	for _, s := range result.Statuses {
		state := color.New(color.FgGreen).Sprint("live")
		if !s.Live {
			missing++
			state = color.New(color.FgRed).Sprint("missing")
			if s.Reason != "" {
				state += " (" + s.Reason + ")"
			}
		}
		t.AppendRow([]interface{}{s.Key, s.Entry.Address, state, fmt.Sprintf("%d bytes", s.CodeSize)})
	}
	fmt.Fprintln(r.out, t.Render())

	if missing > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d recorded contracts have no code on chain", missing)))
	}
	return nil
}
