package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

func TestSpinnerProgressReporterLines(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)
	ctx := context.Background()

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "plan", Current: 1, Total: 2, Message: "mc (deploy-multicall)"})
	r.Info("Multicall: 0x5FbDB2315678afecb367f032d93F642f64180aa3")
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "verify", Current: 1, Total: 1, Message: "Multicall_V1 verified"})
	r.Error("boom")
	r.Stop()

	out := buf.String()
	assert.Contains(t, out, "● [1/2] mc (deploy-multicall)\n")
	assert.Contains(t, out, "Multicall: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n")
	assert.Contains(t, out, "● Multicall_V1 verified\n")
	assert.Contains(t, out, "boom\n")
}

func TestSpinnerProgressReporterSpinner(t *testing.T) {
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)

	r.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "deploy", Current: 1, Total: 2, Message: "Deploying Auction", Spinner: true})
	assert.Equal(t, " [1/2] Deploying Auction", r.spinner.Suffix)
	r.Stop()
	assert.False(t, r.spinner.Active())
}
