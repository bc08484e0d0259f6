package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/nftops/internal/domain"
)

// TasksRenderer lists the available deploy tasks
type TasksRenderer struct {
	out io.Writer
}

func NewTasksRenderer(out io.Writer) *TasksRenderer {
	return &TasksRenderer{out: out}
}

func (r *TasksRenderer) Render(specs []domain.TaskSpec) error {
	if len(specs) == 0 {
		fmt.Fprintln(r.out, "No tasks registered")
		return nil
	}

	t := newTable("TASK", "CONTRACTS", "DESCRIPTION")
	for _, spec := range specs {
		contracts := strings.Join(spec.Contracts, ", ")
		if spec.Upgradeable {
			contracts += " (proxy)"
		}
		t.AppendRow([]interface{}{color.New(color.FgCyan).Sprint(spec.Name), contracts, spec.Description})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderParams prints the parameters of a single task
func (r *TasksRenderer) RenderParams(spec domain.TaskSpec) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "%s\n", spec.Name)
	fmt.Fprintf(r.out, "  %s\n\n", spec.Description)

	t := newTable("PARAM", "REQUIRED", "DEFAULT", "ENV")
	for _, p := range spec.Params {
		required := ""
		if p.Required {
			required = "yes"
		}
		t.AppendRow([]interface{}{p.Name, required, p.Default, p.Env})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
