package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// PlanRenderer renders plan execution and dry runs
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

func (r *PlanRenderer) Render(result *usecase.RunPlanResult) error {
	if result.DryRun {
		color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📋 Execution order (%d steps):\n", len(result.Order))
	} else {
		color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📋 Executed %d of %d steps:\n", len(result.Results), len(result.Order))
	}

	for i, step := range result.Order {
		marker := "  "
		if !result.DryRun {
			if i < len(result.Results) {
				marker = color.New(color.FgGreen).Sprint("✓ ")
			} else {
				marker = color.New(color.Faint).Sprint("- ")
			}
		}
		fmt.Fprintf(r.out, "%s%d. %s %s", marker, i+1, color.New(color.Bold).Sprint(step.ID), color.New(color.FgYellow).Sprintf("(%s)", step.Task))
		if deps := step.Dependencies(); len(deps) > 0 {
			fmt.Fprintf(r.out, " after %s", strings.Join(deps, ", "))
		}
		fmt.Fprintln(r.out)

		if result.DryRun && len(step.Params) > 0 {
			names := make([]string, 0, len(step.Params))
			for k := range step.Params {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				fmt.Fprintf(r.out, "      %s=%s\n", k, step.Params[k])
			}
		}

		if i < len(result.Results) {
			for _, c := range result.Results[i].Contracts {
				fmt.Fprintf(r.out, "      %s %s\n", c.Contract, color.New(color.FgGreen).Sprint(c.Address))
			}
		}
	}
	return nil
}
