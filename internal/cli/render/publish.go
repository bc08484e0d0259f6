package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/nftops/internal/usecase"
)

// PublishRenderer renders uploaded deployment files
type PublishRenderer struct {
	out io.Writer
}

func NewPublishRenderer(out io.Writer) *PublishRenderer {
	return &PublishRenderer{out: out}
}

func (r *PublishRenderer) Render(result *usecase.PublishResult) error {
	if len(result.Keys) == 0 {
		fmt.Fprintln(r.out, FormatWarning("No deployment files to publish"))
		return nil
	}

	verb := "Published"
	if result.DryRun {
		verb = "Would publish"
	}
	fmt.Fprintf(r.out, "📁 %s %d files to %s\n", verb, len(result.Keys), result.Location)
	for _, k := range result.Keys {
		fmt.Fprintf(r.out, "  %s\n", k)
	}
	if !result.DryRun {
		fmt.Fprintln(r.out, FormatSuccess("Publish complete"))
	}
	return nil
}
